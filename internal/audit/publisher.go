package audit

import (
	"context"
	"log/slog"
	"time"
)

// Publisher is the sink services emit to.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// SlogPublisher writes audit events to structured logs. It is the default
// sink when no broker is configured.
type SlogPublisher struct {
	logger *slog.Logger
}

func NewSlogPublisher(logger *slog.Logger) *SlogPublisher {
	return &SlogPublisher{logger: logger}
}

func (p *SlogPublisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	p.logger.InfoContext(ctx, event.Action,
		"log_type", "audit",
		"ensayo_id", event.TestID,
		"tabla", event.Table,
		"repeticion", event.Repetition,
		"conteo", event.Count,
		"request_id", event.RequestID,
	)
	return nil
}
