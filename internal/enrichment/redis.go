package enrichment

import (
	"botlist-service/internal/config"
	"context"
	"encoding/json"
	"errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"sync"
	"time"
)

const redisKeyPrefix = "botlist:enrichment:"

// RedisCache shares cached responses between replicas. Redis failures
// degrade to cache misses.
type RedisCache struct {
	logger *zap.SugaredLogger
	client *redis.Client
	// retention bounds how long redis keeps an entry, independent of freshness
	retention time.Duration
}

func NewRedisCache(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.RedisConfig, retention time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down redis client")
		if err := client.Close(); err != nil {
			logger.Errorw("failed to close redis client", "error", err)
		}
	}()

	return &RedisCache{logger: logger, client: client, retention: retention}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (Entry, bool) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warnw("failed to read enrichment cache", "key", key, "error", err)
		}
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		r.logger.Warnw("corrupt enrichment cache entry", "key", key, "error", err)
		return Entry{}, false
	}

	return entry, true
}

func (r *RedisCache) Set(ctx context.Context, key string, entry Entry) {
	raw, err := json.Marshal(entry)
	if err != nil {
		r.logger.Warnw("failed to encode enrichment cache entry", "key", key, "error", err)
		return
	}

	if err := r.client.Set(ctx, redisKeyPrefix+key, raw, r.retention).Err(); err != nil {
		r.logger.Warnw("failed to write enrichment cache", "key", key, "error", err)
	}
}
