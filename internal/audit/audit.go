// Package audit captures structured trail events for grid mutations. The
// laboratory's quality system requires every change to a test's matrix to be
// attributable after the fact, so services emit events here instead of
// relying on request logs alone.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded by the germination engine.
const (
	ActionCountAdded         = "germination.count.added"
	ActionCountDateChanged   = "germination.count.date_changed"
	ActionCountRemoved       = "germination.count.removed"
	ActionCountsPurged       = "germination.counts.purged"
	ActionRepetitionExpanded = "germination.repetition.expanded"
	ActionRepetitionRemoved  = "germination.repetition.removed"
	ActionNormalUpserted     = "germination.normal.upserted"
	ActionFinalUpserted      = "germination.final.upserted"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks (slog, Kafka) can fan out.
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	Action     string    `json:"action"`
	TestID     uuid.UUID `json:"ensayo_id"`
	Table      string    `json:"tabla,omitempty"`
	Repetition int       `json:"repeticion,omitempty"`
	Count      int       `json:"conteo,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
}
