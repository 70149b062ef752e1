package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "seedlab/pkg/domain-errors"
)

func TestParseTable(t *testing.T) {
	for _, tag := range []string{"UNTREATED", "PLANT_CURED", "LAB_CURED"} {
		tbl, err := ParseTable(tag)
		require.NoError(t, err)
		assert.Equal(t, tag, tbl.String())
	}
}

func TestParseTableRejectsUnknownTags(t *testing.T) {
	for _, tag := range []string{"", "untreated", "SOLARIZED", "UNTREATED "} {
		_, err := ParseTable(tag)
		require.Error(t, err, "tag %q", tag)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	}
}

func TestTablesDisplayOrder(t *testing.T) {
	assert.Equal(t, []TreatmentTable{TableUntreated, TablePlantCured, TableLabCured}, Tables())
}
