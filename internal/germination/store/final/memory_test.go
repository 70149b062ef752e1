package final

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedlab/internal/germination/models"
)

func finalReading(testID uuid.UUID, table models.TreatmentTable, rep int) *models.FinalReading {
	return &models.FinalReading{
		ID:         uuid.New(),
		TestID:     testID,
		Table:      table,
		Repetition: rep,
		Abnormal:   1,
		Hard:       2,
		Fresh:      3,
		Dead:       4,
	}
}

func TestUpsertOverwritesAllFourValues(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()
	testID := uuid.New()

	require.NoError(t, store.Upsert(ctx, finalReading(testID, models.TableUntreated, 1)))

	updated := finalReading(testID, models.TableUntreated, 1)
	updated.Abnormal, updated.Hard, updated.Fresh, updated.Dead = 5, 6, 7, 8
	require.NoError(t, store.Upsert(ctx, updated))

	readings, err := store.ListByTest(ctx, testID)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 5, readings[0].Abnormal)
	assert.Equal(t, 6, readings[0].Hard)
	assert.Equal(t, 7, readings[0].Fresh)
	assert.Equal(t, 8, readings[0].Dead)
}

func TestUpsertKeyedByTableAndRepetition(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()
	testID := uuid.New()

	require.NoError(t, store.Upsert(ctx, finalReading(testID, models.TableUntreated, 1)))
	require.NoError(t, store.Upsert(ctx, finalReading(testID, models.TableUntreated, 2)))
	require.NoError(t, store.Upsert(ctx, finalReading(testID, models.TablePlantCured, 1)))

	readings, err := store.ListByTest(ctx, testID)
	require.NoError(t, err)
	assert.Len(t, readings, 3)
}

func TestDeleteByRepetitionIsIdempotent(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()
	testID := uuid.New()

	require.NoError(t, store.Upsert(ctx, finalReading(testID, models.TableUntreated, 1)))

	require.NoError(t, store.DeleteByRepetition(ctx, testID, models.TableUntreated, 1))
	require.NoError(t, store.DeleteByRepetition(ctx, testID, models.TableUntreated, 1))

	readings, err := store.ListByTest(ctx, testID)
	require.NoError(t, err)
	assert.Empty(t, readings)
}
