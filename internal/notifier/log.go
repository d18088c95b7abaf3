package notifier

import (
	"context"
	"go.uber.org/zap"
)

type logNotifier struct {
	logger *zap.SugaredLogger
}

// NewLogNotifier only logs events. Useful for local development without a broker.
func NewLogNotifier(logger *zap.SugaredLogger) Notifier {
	return &logNotifier{logger: logger}
}

func (l *logNotifier) Notify(_ context.Context, event *Event) error {
	l.logger.Infow("bot lifecycle event", "type", event.Type, "botId", event.BotId, "userId", event.UserId)
	return nil
}
