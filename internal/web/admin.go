package web

import (
	"botlist-service/internal/service"
	"botlist-service/internal/utils"
	"encoding/json"
	"github.com/labstack/echo/v4"
	"net/http"
	"strings"
)

func (s *Server) listAllBots(c echo.Context) error {
	bots, err := s.bots.ListAll(c.Request().Context(), callerOf(c))
	if err != nil {
		return fail(err, "Failed to fetch bots")
	}

	return c.JSON(http.StatusOK, echo.Map{"bots": bots})
}

func (s *Server) listPendingBots(c echo.Context) error {
	bots, err := s.bots.ListPending(c.Request().Context(), callerOf(c))
	if err != nil {
		return fail(err, "Failed to fetch bots")
	}

	return c.JSON(http.StatusOK, echo.Map{"bots": bots})
}

func (s *Server) stats(c echo.Context) error {
	stats, err := s.bots.Stats(c.Request().Context(), callerOf(c))
	if err != nil {
		return fail(err, "Failed to fetch stats")
	}

	return c.JSON(http.StatusOK, stats)
}

func (s *Server) approveBot(c echo.Context) error {
	bot, err := s.bots.Approve(c.Request().Context(), callerOf(c), c.Param("id"))
	if err != nil {
		return fail(err, "Failed to approve bot")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Bot approved", "bot": bot})
}

func (s *Server) featureBot(c echo.Context) error {
	bot, err := s.bots.ToggleFeature(c.Request().Context(), callerOf(c), c.Param("id"))
	if err != nil {
		return fail(err, "Failed to feature bot")
	}

	return c.JSON(http.StatusOK, echo.Map{"featured": bot.Featured, "bot": bot})
}

func (s *Server) rejectBot(c echo.Context) error {
	caller, err := requireSession(c)
	if err != nil {
		return err
	}

	if err := s.bots.Reject(c.Request().Context(), caller, c.Param("id"), s.bindReject(c)); err != nil {
		return fail(err, "Failed to reject bot")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Bot rejected and removed from database"})
}

// bindReject accepts both the admin page's form post and a JSON body. It never
// fails: an unreadable body yields an empty reason, which the role check
// outranks. deleteBot is true unless it is exactly false.
func (s *Server) bindReject(c echo.Context) *service.RejectBotRequest {
	req := &service.RejectBotRequest{}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		req.Reason = c.FormValue("reason")
		req.DeleteBot = utils.PointerOf(c.FormValue("deleteBot") != "false")
		return req
	}

	var body map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		s.logger.Debugw("unreadable reject body", "clientId", c.Param("id"), "error", err)
	}

	req.Reason, _ = body["reason"].(string)
	req.DeleteBot = utils.PointerOf(body["deleteBot"] != false)
	return req
}
