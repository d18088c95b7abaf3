package enrichment

import (
	"botlist-service/internal/apperr"
	"botlist-service/internal/config"
	"botlist-service/internal/metrics"
	"context"
	"encoding/json"
	"fmt"
	"go.uber.org/zap"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBodySize guards against unbounded upstream responses.
const maxBodySize = 1 << 20

type Client struct {
	logger     *zap.SugaredLogger
	httpClient *http.Client
	baseURL    string

	cache Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewClient(logger *zap.SugaredLogger, cfg config.EnrichmentConfig, cache Cache) *Client {
	return &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		cache:      cache,
		ttl:        cfg.CacheTTL,
		now:        time.Now,
	}
}

func (c *Client) Fetch(ctx context.Context, clientId string) *Profile {
	if entry, ok := c.cache.Get(ctx, clientId); ok && c.now().Sub(entry.Timestamp) < c.ttl {
		profile, err := decodeProfile(entry.Data)
		if err == nil {
			metrics.EnrichmentCache.WithLabelValues(metrics.CacheHit).Inc()
			return profile
		}
		c.logger.Warnw("discarding undecodable cached bot metadata", "clientId", clientId, "error", err)
	}
	metrics.EnrichmentCache.WithLabelValues(metrics.CacheMiss).Inc()

	data, err := c.fetchRaw(ctx, clientId)
	if err != nil {
		metrics.EnrichmentCache.WithLabelValues(metrics.CacheError).Inc()
		c.logger.Warnw("failed to fetch bot metadata", "clientId", clientId, "error", err)
		return nil
	}

	profile, err := decodeProfile(data)
	if err != nil {
		metrics.EnrichmentCache.WithLabelValues(metrics.CacheError).Inc()
		c.logger.Warnw("malformed bot metadata", "clientId", clientId, "error", err)
		return nil
	}

	c.cache.Set(ctx, clientId, Entry{Data: data, Timestamp: c.now()})
	return profile
}

func (c *Client) fetchRaw(ctx context.Context, clientId string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/bot/%s", c.baseURL, url.PathEscape(clientId)), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Newf(apperr.Upstream, "bot metadata request failed: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.Newf(apperr.Upstream, "bot metadata api returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, apperr.Newf(apperr.Upstream, "failed to read bot metadata: %s", err)
	}

	return data, nil
}

func decodeProfile(data []byte) (*Profile, error) {
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
