package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"strconv"
	"time"
)

const namespace = "botlist"

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	BotTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bot_transitions_total",
			Help:      "Bot listing lifecycle transitions",
		},
		[]string{"transition"},
	)

	EnrichmentCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_cache_total",
			Help:      "Bot metadata lookups by cache result",
		},
		[]string{"result"},
	)
)

const (
	TransitionSubmitted  = "submitted"
	TransitionApproved   = "approved"
	TransitionRejected   = "rejected"
	TransitionDeleted    = "deleted"
	TransitionFeatured   = "featured"
	TransitionUnfeatured = "unfeatured"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Middleware records request counts and latency by route template, not raw path.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let echo write the error response so the recorded status is final
				c.Error(err)
			}

			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method
			path := c.Path()

			requestCounter.WithLabelValues(method, path, status).Inc()
			requestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}
