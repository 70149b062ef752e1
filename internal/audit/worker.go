package audit

import (
	"context"
	"log/slog"
)

// Worker drains audit events from a channel into a publisher so request
// paths never block on the sink. Events are dropped with a warning when the
// inbox is full; the audit trail is best-effort relative to request latency.
type Worker struct {
	publisher Publisher
	inbox     chan Event
	logger    *slog.Logger
}

func NewWorker(publisher Publisher, buffer int, logger *slog.Logger) *Worker {
	if buffer <= 0 {
		buffer = 256
	}
	return &Worker{
		publisher: publisher,
		inbox:     make(chan Event, buffer),
		logger:    logger,
	}
}

// Emit enqueues an event without blocking. Implements Publisher so services
// stay unaware of the buffering.
func (w *Worker) Emit(ctx context.Context, event Event) error {
	select {
	case w.inbox <- event:
	default:
		w.logger.WarnContext(ctx, "audit inbox full, dropping event", "action", event.Action)
	}
	return nil
}

// Run consumes the inbox until ctx is cancelled. Publish failures are logged
// and do not stop the worker.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.publisher.Emit(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit publish failed",
					"action", event.Action, "error", err.Error())
			}
		}
	}
}
