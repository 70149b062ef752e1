package models

import (
	dErrors "seedlab/pkg/domain-errors"
)

// TreatmentTable partitions repetitions by curing treatment. It is a closed
// set: every boundary crossing re-validates the tag instead of trusting
// upstream input, so a typo in a table string can never reach a store.
type TreatmentTable string

const (
	TableUntreated  TreatmentTable = "UNTREATED"
	TablePlantCured TreatmentTable = "PLANT_CURED"
	TableLabCured   TreatmentTable = "LAB_CURED"
)

// Tables returns the treatment tables in display order.
func Tables() []TreatmentTable {
	return []TreatmentTable{TableUntreated, TablePlantCured, TableLabCured}
}

func (t TreatmentTable) IsValid() bool {
	switch t {
	case TableUntreated, TablePlantCured, TableLabCured:
		return true
	}
	return false
}

func (t TreatmentTable) String() string {
	return string(t)
}

// ParseTable validates a wire-format table tag.
func ParseTable(s string) (TreatmentTable, error) {
	t := TreatmentTable(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "unknown treatment table: "+s)
	}
	return t, nil
}
