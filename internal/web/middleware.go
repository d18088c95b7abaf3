package web

import (
	"botlist-service/internal/apperr"
	"botlist-service/internal/identity"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"strings"
	"time"
)

const (
	requestIdHeader = "X-Request-ID"

	requestIdKey = "request_id"
	callerKey    = "caller"
)

// requestId keeps an inbound X-Request-ID and generates one otherwise.
func requestId(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(requestIdHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Response().Header().Set(requestIdHeader, id)
		c.Set(requestIdKey, id)

		return next(c)
	}
}

func requestLogger(logger *zap.SugaredLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			logger.Infow("handled request",
				"method", req.Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency", time.Since(start),
				"requestId", c.Get(requestIdKey),
			)
			return nil
		}
	}
}

// authenticate attaches the caller when a bearer token is present. Anonymous
// requests pass through, each operation decides whether it needs a caller.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return next(c)
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
			return apperr.New(apperr.Unauthenticated, "invalid authorization format, expected Bearer token")
		}

		caller, err := s.parser.Parse(token)
		if err != nil {
			s.logger.Debugw("rejected session token", "error", err, "requestId", c.Get(requestIdKey))
			return apperr.New(apperr.Unauthenticated, "invalid or expired token")
		}

		c.Set(callerKey, caller)
		return next(c)
	}
}

func callerOf(c echo.Context) *identity.Caller {
	caller, _ := c.Get(callerKey).(*identity.Caller)
	return caller
}

// requireSession must run before the body is read so anonymous requests get
// 401 whatever they send.
func requireSession(c echo.Context) (*identity.Caller, error) {
	caller := callerOf(c)
	if caller == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Unauthorized")
	}
	return caller, nil
}
