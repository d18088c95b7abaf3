package notifier

import (
	"botlist-service/internal/config"
	"context"
	"encoding/json"
	"fmt"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"sync"
)

const rabbitMqUriFormat = "amqp://%s:%s@%s:%d"

type rabbitMqNotifier struct {
	channel  *amqp.Channel
	exchange string
}

func NewRabbitMqNotifier(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.RabbitMQConfig) (Notifier, error) {
	conn, err := amqp.Dial(fmt.Sprintf(rabbitMqUriFormat, cfg.Username, cfg.Password, cfg.Host, cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	if err := channel.ExchangeDeclare(cfg.Exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down rabbitmq connection")
		if err := conn.Close(); err != nil {
			logger.Errorw("failed to close rabbitmq connection", "error", err)
		}
	}()

	return &rabbitMqNotifier{
		channel:  channel,
		exchange: cfg.Exchange,
	}, nil
}

func (r *rabbitMqNotifier) Notify(ctx context.Context, event *Event) error {
	bytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return r.channel.PublishWithContext(ctx,
		r.exchange,
		"",
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Type:        string(event.Type),
			Body:        bytes,
		})
}
