package web

import (
	"botlist-service/internal/apperr"
	"botlist-service/internal/service"
	"github.com/labstack/echo/v4"
	"net/http"
	"strconv"
	"strings"
)

func (s *Server) listBots(c echo.Context) error {
	res, err := s.listing.ListApproved(c.Request().Context(), service.ListQuery{
		Query: c.QueryParam("query"),
		Tag:   c.QueryParam("tag"),
		Sort:  c.QueryParam("sort"),
		Page:  intParam(c, "page"),
		Limit: intParam(c, "limit"),
	})
	if err != nil {
		return fail(err, "Failed to fetch bots")
	}

	return c.JSON(http.StatusOK, res)
}

func (s *Server) getBot(c echo.Context) error {
	bot, err := s.bots.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(err, "Failed to fetch bot")
	}

	return c.JSON(http.StatusOK, bot)
}

func (s *Server) submitBot(c echo.Context) error {
	caller, err := requireSession(c)
	if err != nil {
		return err
	}

	req := &service.SubmitBotRequest{}
	if err := c.Bind(req); err != nil {
		return apperr.New(apperr.InvalidArgument, "invalid request body")
	}

	bot, err := s.bots.Submit(c.Request().Context(), caller, req)
	if err != nil {
		return fail(err, "Failed to submit bot")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "bot": bot})
}

func (s *Server) updateBot(c echo.Context) error {
	caller, err := requireSession(c)
	if err != nil {
		return err
	}

	req := &service.UpdateBotRequest{}
	if err := c.Bind(req); err != nil {
		return apperr.New(apperr.InvalidArgument, "invalid request body")
	}

	if err := s.bots.Update(c.Request().Context(), caller, c.Param("id"), req); err != nil {
		return fail(err, "Failed to update bot")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Bot updated successfully"})
}

func (s *Server) deleteBot(c echo.Context) error {
	caller, err := requireSession(c)
	if err != nil {
		return err
	}

	if err := s.bots.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return fail(err, "Failed to delete bot")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Bot deleted successfully"})
}

// intParam treats a missing or malformed value as zero, the service applies defaults.
func intParam(c echo.Context, name string) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.QueryParam(name)))
	if err != nil {
		return 0
	}
	return v
}
