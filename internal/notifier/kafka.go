package notifier

import (
	"botlist-service/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"sync"
)

type kafkaNotifier struct {
	logger *zap.SugaredLogger
	w      *kafka.Writer
}

func NewKafkaNotifier(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.KafkaConfig) Notifier {
	w := &kafka.Writer{
		Addr:        kafka.TCP(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		Topic:       cfg.Topic,
		Async:       true,
		Balancer:    &kafka.Hash{},
		ErrorLogger: zap.NewStdLog(logger.Desugar()),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down kafka writer")
		if err := w.Close(); err != nil {
			logger.Errorw("failed to close kafka writer", "error", err)
		}
	}()

	return &kafkaNotifier{
		logger: logger,
		w:      w,
	}
}

func (k *kafkaNotifier) Notify(ctx context.Context, event *Event) error {
	bytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Keyed by bot so events for one bot stay ordered within a partition
	if err := k.w.WriteMessages(ctx, kafka.Message{
		Key:     []byte(event.BotId),
		Value:   bytes,
		Headers: []kafka.Header{{Key: "X-Event-Type", Value: []byte(event.Type)}},
	}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
