package app

import (
	"botlist-service/internal/access"
	"botlist-service/internal/config"
	"botlist-service/internal/enrichment"
	"botlist-service/internal/identity"
	"botlist-service/internal/notifier"
	"botlist-service/internal/repository"
	"botlist-service/internal/service"
	"botlist-service/internal/web"
	"context"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// redis keeps entries a little longer than they stay fresh so a stale read
// still finds the timestamp and refetches instead of missing
const cacheRetentionFactor = 2

func Run(cfg *config.Config, logger *zap.SugaredLogger) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	wg := &sync.WaitGroup{}

	delayedCtx, repoCancel := context.WithCancel(context.Background())
	delayedWg := &sync.WaitGroup{}

	repo, err := repository.NewMongoRepository(delayedCtx, logger, delayedWg, cfg.MongoDB)
	if err != nil {
		logger.Fatalw("failed to create repository", "error", err)
	}

	notif, err := createNotifier(delayedCtx, delayedWg, logger, cfg)
	if err != nil {
		logger.Fatalw("failed to create notifier", "type", cfg.Notifier.Type, "error", err)
	}
	dispatcher := notifier.NewDispatcher(logger, notif, cfg.Notifier.Timeout)

	cache, err := createCache(delayedCtx, delayedWg, logger, cfg)
	if err != nil {
		logger.Fatalw("failed to create enrichment cache", "error", err)
	}
	enricher := enrichment.NewClient(logger, cfg.Enrichment, cache)

	gate := access.NewGate(repo)
	server := web.NewServer(logger, identity.NewParser(cfg.JWTSigningKey),
		service.NewBotManager(logger, repo, gate, enricher, dispatcher),
		service.NewListingService(logger, repo, cfg.MaxPageLimit),
		service.NewPartnerDirectory(logger, repo, gate),
	)

	web.RunServer(ctx, logger, wg, cfg, server)

	wg.Wait()
	logger.Info("shutting down")

	// notifications still in flight need the broker connections below
	dispatcher.Wait()

	logger.Info("shutting down delayed services")
	repoCancel()
	delayedWg.Wait()
}

func createNotifier(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg *config.Config) (notifier.Notifier, error) {
	switch cfg.Notifier.Type {
	case config.NotifierKafka:
		return notifier.NewKafkaNotifier(ctx, wg, logger, cfg.Kafka), nil
	case config.NotifierRabbitMQ:
		return notifier.NewRabbitMqNotifier(ctx, wg, logger, cfg.RabbitMQ)
	default:
		return notifier.NewLogNotifier(logger), nil
	}
}

func createCache(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg *config.Config) (enrichment.Cache, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("using in-memory enrichment cache")
		return enrichment.NewMemoryCache(), nil
	}

	cache, err := enrichment.NewRedisCache(ctx, wg, logger, cfg.Redis, cacheRetentionFactor*cfg.Enrichment.CacheTTL)
	if err != nil {
		return nil, err
	}
	logger.Infow("using redis enrichment cache", "addr", cfg.Redis.Addr)
	return cache, nil
}
