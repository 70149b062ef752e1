package models

import (
	"github.com/google/uuid"
)

// NormalReading is one editable grid cell: the sprouted ("normal") seed count
// for a repetition at a given inspection count. The grid is kept rectangular
// per table by the expansion orchestrator; a reading is addressed by the
// natural key (TestID, Table, Repetition, Count) and upserted, never
// duplicated.
type NormalReading struct {
	ID         uuid.UUID      `json:"id"`
	TestID     uuid.UUID      `json:"ensayo_id"`
	Table      TreatmentTable `json:"tabla"`
	Repetition int            `json:"repeticion"`
	Count      int            `json:"conteo"`
	Value      int            `json:"normal"`
}

// FinalReading holds the terminal classification counts for one repetition,
// recorded once per (TestID, Table, Repetition) independent of the count axis.
type FinalReading struct {
	ID         uuid.UUID      `json:"id"`
	TestID     uuid.UUID      `json:"ensayo_id"`
	Table      TreatmentTable `json:"tabla"`
	Repetition int            `json:"repeticion"`
	Abnormal   int            `json:"anormal"`
	Hard       int            `json:"duras"`
	Fresh      int            `json:"frescas"`
	Dead       int            `json:"muertas"`
}
