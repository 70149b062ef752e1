package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "seedlab/pkg/domain-errors"
)

// AddCountRequest creates one inspection count. Number nil requests
// auto-numbering; an explicit number must be positive and unused.
type AddCountRequest struct {
	TestID uuid.UUID `json:"ensayo_id"`
	Number *int      `json:"numero,omitempty"`
	Date   time.Time `json:"fecha"`
}

func (r *AddCountRequest) Validate() error {
	if r.TestID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "ensayo_id is required")
	}
	if r.Number != nil && *r.Number <= 0 {
		return dErrors.New(dErrors.CodeValidation, "numero must be positive")
	}
	return nil
}

// AddRepetitionRequest creates one repetition under a treatment table, used
// by the expansion orchestrator. Number nil requests auto-numbering.
type AddRepetitionRequest struct {
	TestID uuid.UUID `json:"ensayo_id"`
	Number *int      `json:"numero,omitempty"`
}

func (r *AddRepetitionRequest) Validate() error {
	if r.TestID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "ensayo_id is required")
	}
	if r.Number != nil && *r.Number <= 0 {
		return dErrors.New(dErrors.CodeValidation, "numero must be positive")
	}
	return nil
}

// UpsertNormalRequest writes one grid cell. The count is addressed by its
// per-test sequential number.
type UpsertNormalRequest struct {
	TestID     uuid.UUID `json:"ensayo_id"`
	Repetition int       `json:"repeticion"`
	Count      int       `json:"conteo"`
	Value      int       `json:"normal"`
}

func (r *UpsertNormalRequest) Validate() error {
	if r.TestID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "ensayo_id is required")
	}
	if r.Repetition <= 0 {
		return dErrors.New(dErrors.CodeValidation, "repeticion must be positive")
	}
	if r.Count <= 0 {
		return dErrors.New(dErrors.CodeValidation, "conteo must be positive")
	}
	if r.Value < 0 {
		return dErrors.New(dErrors.CodeValidation, "normal must not be negative")
	}
	return nil
}

// UpsertFinalRequest writes one repetition's terminal classification counts.
type UpsertFinalRequest struct {
	TestID     uuid.UUID `json:"ensayo_id"`
	Repetition int       `json:"repeticion"`
	Abnormal   int       `json:"anormal"`
	Hard       int       `json:"duras"`
	Fresh      int       `json:"frescas"`
	Dead       int       `json:"muertas"`
}

func (r *UpsertFinalRequest) Validate() error {
	if r.TestID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "ensayo_id is required")
	}
	if r.Repetition <= 0 {
		return dErrors.New(dErrors.CodeValidation, "repeticion must be positive")
	}
	if r.Abnormal < 0 || r.Hard < 0 || r.Fresh < 0 || r.Dead < 0 {
		return dErrors.New(dErrors.CodeValidation, "final counts must not be negative")
	}
	return nil
}
