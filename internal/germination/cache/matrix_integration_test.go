//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedlab/internal/germination/models"
	"seedlab/pkg/testutil/containers"
)

func setupCache(t *testing.T, ttl time.Duration) *MatrixCache {
	t.Helper()
	rc := containers.GetRedis(t)
	t.Cleanup(func() {
		_ = rc.FlushAll(context.Background())
	})
	return NewMatrixCache(rc.Client, ttl)
}

func summaryFixture(testID uuid.UUID) *models.MatrixSummary {
	value := 7
	return &models.MatrixSummary{
		TestID: testID,
		Counts: []*models.Count{{ID: uuid.New(), TestID: testID, Number: 1}},
		Tables: []models.TableMatrix{
			{
				Table: models.TableUntreated,
				Rows: []models.RepetitionRow{
					{Repetition: 1, Cells: []models.Cell{{Count: 1, Value: &value}}},
				},
			},
		},
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c := setupCache(t, time.Minute)
	ctx := context.Background()
	testID := uuid.New()

	miss, err := c.Get(ctx, testID)
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, c.Set(ctx, summaryFixture(testID)))

	hit, err := c.Get(ctx, testID)
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, testID, hit.TestID)
	require.Len(t, hit.Tables, 1)
	cell := hit.Tables[0].Rows[0].Cells[0]
	require.NotNil(t, cell.Value)
	assert.Equal(t, 7, *cell.Value)
}

func TestCacheNullCellsSurviveSerialization(t *testing.T) {
	c := setupCache(t, time.Minute)
	ctx := context.Background()
	testID := uuid.New()

	summary := summaryFixture(testID)
	summary.Tables[0].Rows[0].Cells = append(summary.Tables[0].Rows[0].Cells,
		models.Cell{Count: 2, Value: nil})
	require.NoError(t, c.Set(ctx, summary))

	hit, err := c.Get(ctx, testID)
	require.NoError(t, err)
	cells := hit.Tables[0].Rows[0].Cells
	require.Len(t, cells, 2)
	assert.NotNil(t, cells[0].Value)
	assert.Nil(t, cells[1].Value)
}

func TestCacheInvalidate(t *testing.T) {
	c := setupCache(t, time.Minute)
	ctx := context.Background()
	testID := uuid.New()

	require.NoError(t, c.Set(ctx, summaryFixture(testID)))
	require.NoError(t, c.Invalidate(ctx, testID))

	miss, err := c.Get(ctx, testID)
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestCacheEntriesExpire(t *testing.T) {
	c := setupCache(t, 100*time.Millisecond)
	ctx := context.Background()
	testID := uuid.New()

	require.NoError(t, c.Set(ctx, summaryFixture(testID)))

	require.Eventually(t, func() bool {
		miss, err := c.Get(ctx, testID)
		return err == nil && miss == nil
	}, 2*time.Second, 50*time.Millisecond)
}
