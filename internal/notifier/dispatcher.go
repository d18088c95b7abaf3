package notifier

import (
	"context"
	"go.uber.org/zap"
	"sync"
	"time"
)

// Dispatcher sends notifications in the background. The outcome of a
// dispatch never reaches the caller, failures are only logged.
type Dispatcher struct {
	logger  *zap.SugaredLogger
	notif   Notifier
	timeout time.Duration

	wg sync.WaitGroup
}

func NewDispatcher(logger *zap.SugaredLogger, notif Notifier, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		logger:  logger,
		notif:   notif,
		timeout: timeout,
	}
}

// Dispatch returns immediately. The notification gets its own context so it
// outlives the request that triggered it.
func (d *Dispatcher) Dispatch(event *Event) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Errorw("notifier panicked", "type", event.Type, "botId", event.BotId, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.notif.Notify(ctx, event); err != nil {
			d.logger.Errorw("failed to send notification", "type", event.Type, "botId", event.BotId, "error", err)
		}
	}()
}

// Wait blocks until every dispatched notification has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
