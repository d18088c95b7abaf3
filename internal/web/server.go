package web

import (
	"botlist-service/internal/config"
	"botlist-service/internal/identity"
	"botlist-service/internal/metrics"
	"botlist-service/internal/service"
	"context"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"net/http"
	"sync"
	"time"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	logger *zap.SugaredLogger
	parser *identity.Parser

	bots     *service.BotManager
	listing  *service.ListingService
	partners *service.PartnerDirectory

	echo *echo.Echo
}

func NewServer(logger *zap.SugaredLogger, parser *identity.Parser, bots *service.BotManager,
	listing *service.ListingService, partners *service.PartnerDirectory) *Server {

	s := &Server{
		logger:   logger,
		parser:   parser,
		bots:     bots,
		listing:  listing,
		partners: partners,
		echo:     echo.New(),
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.handleError

	s.echo.Use(middleware.Recover())
	s.echo.Use(requestId)
	s.echo.Use(requestLogger(logger))
	s.echo.Use(metrics.Middleware())
	s.echo.Use(s.authenticate)

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	api.GET("/bots", s.listBots)
	api.POST("/bots", s.submitBot)
	api.GET("/bots/:id", s.getBot)
	api.PUT("/bots/:id", s.updateBot)
	api.DELETE("/bots/:id", s.deleteBot)

	api.GET("/partners", s.listPartners)

	admin := api.Group("/admin")
	admin.GET("/bots", s.listAllBots)
	admin.GET("/bots/pending", s.listPendingBots)
	admin.GET("/stats", s.stats)
	admin.POST("/bots/:id/approve", s.approveBot)
	admin.POST("/bots/:id/reject", s.rejectBot)
	admin.POST("/bots/:id/feature", s.featureBot)
	admin.POST("/bots/:id/delete", s.deleteBot)
	admin.POST("/partners", s.createPartner)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// RunServer serves HTTP until ctx is cancelled, then drains in-flight requests.
func RunServer(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg *config.Config, s *Server) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Infow("listening for HTTP requests", "port", cfg.HTTPPort)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("failed to serve", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("failed to shut down HTTP server", "error", err)
		}
	}()
}
