package models

import (
	"github.com/google/uuid"

	dErrors "seedlab/pkg/domain-errors"
)

// Repetition is one physical sample replicate under a treatment table.
//
// Invariants:
//   - (TestID, Table, Number) is unique per table
//   - Table is a valid TreatmentTable
//   - Number is strictly positive once assigned; 0 means "assign next"
type Repetition struct {
	ID     uuid.UUID      `json:"id"`
	TestID uuid.UUID      `json:"ensayo_id"`
	Table  TreatmentTable `json:"tabla"`
	Number int            `json:"numero"`
}

// NewRepetition constructs a repetition with an explicit number.
func NewRepetition(testID uuid.UUID, table TreatmentTable, number int) (*Repetition, error) {
	if testID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "repetition requires a test id")
	}
	if !table.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "repetition requires a valid treatment table")
	}
	if number <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "repetition number must be positive")
	}
	return &Repetition{ID: uuid.New(), TestID: testID, Table: table, Number: number}, nil
}

// NewPendingRepetition constructs a repetition whose number the store assigns.
func NewPendingRepetition(testID uuid.UUID, table TreatmentTable) (*Repetition, error) {
	if testID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "repetition requires a test id")
	}
	if !table.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "repetition requires a valid treatment table")
	}
	return &Repetition{ID: uuid.New(), TestID: testID, Table: table}, nil
}
