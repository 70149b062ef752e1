package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "seedlab/pkg/domain-errors"
)

// Count is one inspection date within a germination test.
//
// Invariants:
//   - (TestID, Number) is unique per test
//   - Number is strictly positive once assigned; 0 means "assign next"
//   - Number is immutable after creation; only Date may change
type Count struct {
	ID     uuid.UUID `json:"id"`
	TestID uuid.UUID `json:"ensayo_id"`
	Number int       `json:"numero"`
	Date   time.Time `json:"fecha"`
}

// NewCount constructs a count with an explicit number.
func NewCount(testID uuid.UUID, number int, date time.Time) (*Count, error) {
	if testID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "count requires a test id")
	}
	if number <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "count number must be positive")
	}
	return &Count{ID: uuid.New(), TestID: testID, Number: number, Date: date}, nil
}

// NewPendingCount constructs a count whose number the store assigns.
func NewPendingCount(testID uuid.UUID, date time.Time) (*Count, error) {
	if testID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "count requires a test id")
	}
	return &Count{ID: uuid.New(), TestID: testID, Date: date}, nil
}
