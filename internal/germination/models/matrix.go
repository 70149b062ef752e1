package models

import (
	"github.com/google/uuid"
)

// MatrixSummary is the read-side composition of a germination test's grid:
// the ordered counts, per-table repetition rows joined against those counts,
// and the final readings. It is rebuilt on every read, never persisted.
type MatrixSummary struct {
	TestID uuid.UUID       `json:"ensayo_id"`
	Counts []*Count        `json:"conteos"`
	Tables []TableMatrix   `json:"tablas"`
	Finals []*FinalReading `json:"finales"`
}

// TableMatrix groups one treatment table's repetition rows.
type TableMatrix struct {
	Table TreatmentTable  `json:"tabla"`
	Rows  []RepetitionRow `json:"repeticiones"`
}

// RepetitionRow is one repetition's cells, ordered by count number and
// aligned with MatrixSummary.Counts.
type RepetitionRow struct {
	Repetition int    `json:"numero"`
	Cells      []Cell `json:"celdas"`
}

// Cell is a single grid position. Value is nil when no reading was ever
// written there: a hole is a data-integrity symptom the caller must see, so
// the assembler never synthesizes a zero.
type Cell struct {
	Count int  `json:"conteo"`
	Value *int `json:"normal"`
}
