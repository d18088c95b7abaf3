package web

import (
	"botlist-service/internal/apperr"
	"botlist-service/internal/service"
	"github.com/labstack/echo/v4"
	"net/http"
)

func (s *Server) listPartners(c echo.Context) error {
	partners, err := s.partners.List(c.Request().Context())
	if err != nil {
		return fail(err, "Failed to fetch partners")
	}

	return c.JSON(http.StatusOK, partners)
}

func (s *Server) createPartner(c echo.Context) error {
	caller, err := requireSession(c)
	if err != nil {
		return err
	}

	req := &service.CreatePartnerRequest{}
	if err := c.Bind(req); err != nil {
		return apperr.New(apperr.InvalidArgument, "invalid request body")
	}

	partner, err := s.partners.Create(c.Request().Context(), caller, req)
	if err != nil {
		return fail(err, "Failed to create partner")
	}

	return c.JSON(http.StatusCreated, partner)
}
