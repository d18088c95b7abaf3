package web

import (
	"botlist-service/internal/apperr"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"net/http"
)

var statusByCode = map[apperr.Code]int{
	apperr.Unauthenticated: http.StatusUnauthorized,
	apperr.Forbidden:       http.StatusForbidden,
	apperr.InvalidArgument: http.StatusBadRequest,
	apperr.NotFound:        http.StatusNotFound,
	apperr.AlreadyExists:   http.StatusConflict,
	apperr.Upstream:        http.StatusBadGateway,
}

func statusOf(code apperr.Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// failed tags err with the message shown to the client when err is internal.
type failed struct {
	err     error
	message string
}

func (f *failed) Error() string { return f.err.Error() }
func (f *failed) Unwrap() error { return f.err }

func fail(err error, message string) error {
	return &failed{err: err, message: message}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := s.describe(err)
	if status >= http.StatusInternalServerError {
		s.logger.Errorw("request failed", "method", c.Request().Method, "path", c.Path(),
			"status", status, "requestId", c.Get(requestIdKey), "error", err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, echo.Map{"error": message})
	}
	if writeErr != nil {
		s.logger.Errorw("failed to write error response", "error", writeErr)
	}
}

func (s *Server) describe(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}

	fallback := http.StatusText(http.StatusInternalServerError)
	var f *failed
	if errors.As(err, &f) {
		fallback = f.message
	}

	return statusOf(apperr.CodeOf(err)), apperr.MessageOf(err, fallback)
}
