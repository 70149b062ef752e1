package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"seedlab/internal/germination/adapters"
	"seedlab/internal/germination/models"
	countStore "seedlab/internal/germination/store/count"
	finalStore "seedlab/internal/germination/store/final"
	normalStore "seedlab/internal/germination/store/normal"
	repetitionStore "seedlab/internal/germination/store/repetition"
	dErrors "seedlab/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	svc     *Service
	tests   *adapters.InMemoryTestDirectory
	testID  uuid.UUID
	baseDay time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.tests = adapters.NewInMemoryTestDirectory()
	s.testID = uuid.New()
	s.tests.Register(s.testID)
	s.baseDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.svc = New(
		countStore.NewInMemory(),
		repetitionStore.NewInMemory(),
		normalStore.NewInMemory(),
		finalStore.NewInMemory(),
		s.tests,
		nil,
		WithLogger(logger),
	)
}

func intPtr(n int) *int { return &n }

// --- counts ---

func (s *ServiceSuite) TestAddCountAutoNumbersFromOne() {
	first, err := s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Date: s.baseDay})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, first.Number)

	second, err := s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Date: s.baseDay.AddDate(0, 0, 3)})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, second.Number)
}

func (s *ServiceSuite) TestAddCountFillsAboveGapsNotInside() {
	_, err := s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Number: intPtr(1), Date: s.baseDay})
	require.NoError(s.T(), err)
	_, err = s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Number: intPtr(5), Date: s.baseDay})
	require.NoError(s.T(), err)

	// Auto-numbering is max+1, it never backfills the 2..4 hole.
	next, err := s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Date: s.baseDay})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 6, next.Number)
}

func (s *ServiceSuite) TestAddCountExplicitDuplicateConflicts() {
	_, err := s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Number: intPtr(2), Date: s.baseDay})
	require.NoError(s.T(), err)

	_, err = s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Number: intPtr(2), Date: s.baseDay})
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestAddCountNumbersIndependentPerTest() {
	otherTest := uuid.New()
	s.tests.Register(otherTest)

	a, err := s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Date: s.baseDay})
	require.NoError(s.T(), err)
	b, err := s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: otherTest, Date: s.baseDay})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 1, a.Number)
	assert.Equal(s.T(), 1, b.Number)
}

func (s *ServiceSuite) TestAddCountRejectsNonPositiveNumber() {
	_, err := s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Number: intPtr(0), Date: s.baseDay})
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Number: intPtr(-3), Date: s.baseDay})
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestListCountsOrderedByNumber() {
	for _, n := range []int{3, 1, 2} {
		_, err := s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Number: intPtr(n), Date: s.baseDay})
		require.NoError(s.T(), err)
	}

	counts, err := s.svc.ListCounts(s.ctx, s.testID)
	require.NoError(s.T(), err)
	require.Len(s.T(), counts, 3)
	for i, c := range counts {
		assert.Equal(s.T(), i+1, c.Number)
	}
}

func (s *ServiceSuite) TestUpdateCountDate() {
	_, err := s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Date: s.baseDay})
	require.NoError(s.T(), err)

	newDate := s.baseDay.AddDate(0, 0, 7)
	require.NoError(s.T(), s.svc.UpdateCountDate(s.ctx, s.testID, 1, newDate))

	counts, err := s.svc.ListCounts(s.ctx, s.testID)
	require.NoError(s.T(), err)
	assert.True(s.T(), counts[0].Date.Equal(newDate))
}

func (s *ServiceSuite) TestUpdateCountDateUnknownCount() {
	err := s.svc.UpdateCountDate(s.ctx, s.testID, 9, s.baseDay)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestRemoveCountCascadesReadings() {
	_, err := s.svc.ExpandRepetition(s.ctx, "UNTREATED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)
	_, err = s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Date: s.baseDay})
	require.NoError(s.T(), err)
	_, err = s.svc.UpsertNormal(s.ctx, "UNTREATED", models.UpsertNormalRequest{
		TestID: s.testID, Repetition: 1, Count: 2, Value: 17,
	})
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.svc.RemoveCount(s.ctx, s.testID, 2))

	readings, err := s.svc.ListNormals(s.ctx, s.testID, "UNTREATED")
	require.NoError(s.T(), err)
	require.Len(s.T(), readings, 1)
	assert.Equal(s.T(), 1, readings[0].Count)
}

func (s *ServiceSuite) TestRemoveCountAbsentIsNoOp() {
	require.NoError(s.T(), s.svc.RemoveCount(s.ctx, s.testID, 4))
}

func (s *ServiceSuite) TestRemoveAllCountsPurgesGrid() {
	_, err := s.svc.ExpandRepetition(s.ctx, "UNTREATED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)
	_, err = s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Date: s.baseDay})
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.svc.RemoveAllCounts(s.ctx, s.testID))

	counts, err := s.svc.ListCounts(s.ctx, s.testID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), counts)
	readings, err := s.svc.ListNormals(s.ctx, s.testID, "UNTREATED")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), readings)
}

// --- expansion ---

func (s *ServiceSuite) TestExpandRepetitionOnEmptyTestBootstrapsFirstCount() {
	exp, err := s.svc.ExpandRepetition(s.ctx, "UNTREATED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 1, exp.Repetition)
	assert.Equal(s.T(), 1, exp.CellsCreated)

	counts, err := s.svc.ListCounts(s.ctx, s.testID)
	require.NoError(s.T(), err)
	require.Len(s.T(), counts, 1)
	assert.Equal(s.T(), 1, counts[0].Number)

	readings, err := s.svc.ListNormals(s.ctx, s.testID, "UNTREATED")
	require.NoError(s.T(), err)
	require.Len(s.T(), readings, 1)
	assert.Equal(s.T(), 0, readings[0].Value)
}

func (s *ServiceSuite) TestExpandRepetitionMaterializesCellPerCount() {
	for range 3 {
		_, err := s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Date: s.baseDay})
		require.NoError(s.T(), err)
	}

	exp, err := s.svc.ExpandRepetition(s.ctx, "PLANT_CURED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 1, exp.Repetition)
	assert.Equal(s.T(), 3, exp.CellsCreated)

	readings, err := s.svc.ListNormals(s.ctx, s.testID, "PLANT_CURED")
	require.NoError(s.T(), err)
	require.Len(s.T(), readings, 3)
	for _, r := range readings {
		assert.Equal(s.T(), 0, r.Value)
	}
}

func (s *ServiceSuite) TestExpandRepetitionNumbersPerTable() {
	_, err := s.svc.ExpandRepetition(s.ctx, "UNTREATED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)
	second, err := s.svc.ExpandRepetition(s.ctx, "UNTREATED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)
	other, err := s.svc.ExpandRepetition(s.ctx, "LAB_CURED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 2, second.Repetition)
	assert.Equal(s.T(), 1, other.Repetition)
}

func (s *ServiceSuite) TestExpandRepetitionExplicitDuplicateConflicts() {
	_, err := s.svc.ExpandRepetition(s.ctx, "UNTREATED", models.AddRepetitionRequest{TestID: s.testID, Number: intPtr(1)})
	require.NoError(s.T(), err)

	_, err = s.svc.ExpandRepetition(s.ctx, "UNTREATED", models.AddRepetitionRequest{TestID: s.testID, Number: intPtr(1)})
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestExpandRepetitionRejectsUnknownTable() {
	_, err := s.svc.ExpandRepetition(s.ctx, "SOLARIZED", models.AddRepetitionRequest{TestID: s.testID})
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestRemoveRepetitionCascades() {
	_, err := s.svc.ExpandRepetition(s.ctx, "UNTREATED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)
	_, err = s.svc.UpsertFinal(s.ctx, "UNTREATED", models.UpsertFinalRequest{
		TestID: s.testID, Repetition: 1, Abnormal: 1, Hard: 2, Fresh: 3, Dead: 4,
	})
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.svc.RemoveRepetition(s.ctx, "UNTREATED", s.testID, 1))

	readings, err := s.svc.ListNormals(s.ctx, s.testID, "UNTREATED")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), readings)

	matrix, err := s.svc.ListMatrix(s.ctx, s.testID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), matrix.Finals)
	assert.Empty(s.T(), matrix.Tables[0].Rows)
}

// --- readings ---

func (s *ServiceSuite) TestUpsertNormalOverwritesValue() {
	_, err := s.svc.ExpandRepetition(s.ctx, "UNTREATED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)

	req := models.UpsertNormalRequest{TestID: s.testID, Repetition: 1, Count: 1, Value: 42}
	_, err = s.svc.UpsertNormal(s.ctx, "UNTREATED", req)
	require.NoError(s.T(), err)

	req.Value = 50
	_, err = s.svc.UpsertNormal(s.ctx, "UNTREATED", req)
	require.NoError(s.T(), err)

	readings, err := s.svc.ListNormals(s.ctx, s.testID, "UNTREATED")
	require.NoError(s.T(), err)
	require.Len(s.T(), readings, 1)
	assert.Equal(s.T(), 50, readings[0].Value)
}

func (s *ServiceSuite) TestUpsertNormalUnknownCount() {
	_, err := s.svc.ExpandRepetition(s.ctx, "UNTREATED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)

	_, err = s.svc.UpsertNormal(s.ctx, "UNTREATED", models.UpsertNormalRequest{
		TestID: s.testID, Repetition: 1, Count: 7, Value: 10,
	})
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestUpsertNormalUnknownRepetition() {
	_, err := s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Date: s.baseDay})
	require.NoError(s.T(), err)

	_, err = s.svc.UpsertNormal(s.ctx, "UNTREATED", models.UpsertNormalRequest{
		TestID: s.testID, Repetition: 1, Count: 1, Value: 10,
	})
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestUpsertNormalRepetitionIsPerTable() {
	// A repetition under UNTREATED does not satisfy a PLANT_CURED write.
	_, err := s.svc.ExpandRepetition(s.ctx, "UNTREATED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)

	_, err = s.svc.UpsertNormal(s.ctx, "PLANT_CURED", models.UpsertNormalRequest{
		TestID: s.testID, Repetition: 1, Count: 1, Value: 5,
	})
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestUpsertNormalRejectsNegativeValue() {
	_, err := s.svc.UpsertNormal(s.ctx, "UNTREATED", models.UpsertNormalRequest{
		TestID: s.testID, Repetition: 1, Count: 1, Value: -1,
	})
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestUpsertFinalOverwritesAllValues() {
	_, err := s.svc.ExpandRepetition(s.ctx, "LAB_CURED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)

	_, err = s.svc.UpsertFinal(s.ctx, "LAB_CURED", models.UpsertFinalRequest{
		TestID: s.testID, Repetition: 1, Abnormal: 1, Hard: 1, Fresh: 1, Dead: 1,
	})
	require.NoError(s.T(), err)
	_, err = s.svc.UpsertFinal(s.ctx, "LAB_CURED", models.UpsertFinalRequest{
		TestID: s.testID, Repetition: 1, Abnormal: 2, Hard: 3, Fresh: 4, Dead: 5,
	})
	require.NoError(s.T(), err)

	matrix, err := s.svc.ListMatrix(s.ctx, s.testID)
	require.NoError(s.T(), err)
	require.Len(s.T(), matrix.Finals, 1)
	final := matrix.Finals[0]
	assert.Equal(s.T(), 2, final.Abnormal)
	assert.Equal(s.T(), 3, final.Hard)
	assert.Equal(s.T(), 4, final.Fresh)
	assert.Equal(s.T(), 5, final.Dead)
}

func (s *ServiceSuite) TestUpsertFinalUnknownRepetition() {
	_, err := s.svc.UpsertFinal(s.ctx, "LAB_CURED", models.UpsertFinalRequest{
		TestID: s.testID, Repetition: 2, Abnormal: 1,
	})
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotFound))
}

// --- matrix ---

func (s *ServiceSuite) TestListMatrixUnknownTest() {
	_, err := s.svc.ListMatrix(s.ctx, uuid.New())
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestListMatrixEmptyTest() {
	matrix, err := s.svc.ListMatrix(s.ctx, s.testID)
	require.NoError(s.T(), err)

	assert.Empty(s.T(), matrix.Counts)
	assert.Empty(s.T(), matrix.Finals)
	require.Len(s.T(), matrix.Tables, 3)
	for _, table := range matrix.Tables {
		assert.Empty(s.T(), table.Rows)
	}
}

func (s *ServiceSuite) TestListMatrixLeavesLateCountCellsNull() {
	_, err := s.svc.ExpandRepetition(s.ctx, "UNTREATED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)
	// Adding a count afterwards does not backfill existing repetitions.
	_, err = s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Date: s.baseDay})
	require.NoError(s.T(), err)

	matrix, err := s.svc.ListMatrix(s.ctx, s.testID)
	require.NoError(s.T(), err)

	row := matrix.Tables[0].Rows[0]
	require.Len(s.T(), row.Cells, 2)
	require.NotNil(s.T(), row.Cells[0].Value)
	assert.Equal(s.T(), 0, *row.Cells[0].Value)
	assert.Nil(s.T(), row.Cells[1].Value)
}

func (s *ServiceSuite) TestListMatrixJoinsValuesByCountNumber() {
	_, err := s.svc.ExpandRepetition(s.ctx, "UNTREATED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)
	_, err = s.svc.AddCount(s.ctx, models.AddCountRequest{TestID: s.testID, Date: s.baseDay})
	require.NoError(s.T(), err)
	_, err = s.svc.UpsertNormal(s.ctx, "UNTREATED", models.UpsertNormalRequest{
		TestID: s.testID, Repetition: 1, Count: 2, Value: 33,
	})
	require.NoError(s.T(), err)

	matrix, err := s.svc.ListMatrix(s.ctx, s.testID)
	require.NoError(s.T(), err)

	row := matrix.Tables[0].Rows[0]
	require.Len(s.T(), row.Cells, 2)
	assert.Equal(s.T(), 1, row.Cells[0].Count)
	assert.Equal(s.T(), 2, row.Cells[1].Count)
	require.NotNil(s.T(), row.Cells[1].Value)
	assert.Equal(s.T(), 33, *row.Cells[1].Value)
}

func (s *ServiceSuite) TestListMatrixTableOrderIsStable() {
	matrix, err := s.svc.ListMatrix(s.ctx, s.testID)
	require.NoError(s.T(), err)

	require.Len(s.T(), matrix.Tables, 3)
	assert.Equal(s.T(), models.TableUntreated, matrix.Tables[0].Table)
	assert.Equal(s.T(), models.TablePlantCured, matrix.Tables[1].Table)
	assert.Equal(s.T(), models.TableLabCured, matrix.Tables[2].Table)
}

// --- cache interaction ---

type recordingCache struct {
	stored      map[uuid.UUID]*models.MatrixSummary
	invalidated int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{stored: make(map[uuid.UUID]*models.MatrixSummary)}
}

func (c *recordingCache) Get(_ context.Context, testID uuid.UUID) (*models.MatrixSummary, error) {
	return c.stored[testID], nil
}

func (c *recordingCache) Set(_ context.Context, summary *models.MatrixSummary) error {
	c.stored[summary.TestID] = summary
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, testID uuid.UUID) error {
	delete(c.stored, testID)
	c.invalidated++
	return nil
}

func (s *ServiceSuite) TestWritesInvalidateMatrixCache() {
	cache := newRecordingCache()
	svc := New(
		countStore.NewInMemory(),
		repetitionStore.NewInMemory(),
		normalStore.NewInMemory(),
		finalStore.NewInMemory(),
		s.tests,
		nil,
		WithMatrixCache(cache),
	)

	_, err := svc.ExpandRepetition(s.ctx, "UNTREATED", models.AddRepetitionRequest{TestID: s.testID})
	require.NoError(s.T(), err)

	first, err := svc.ListMatrix(s.ctx, s.testID)
	require.NoError(s.T(), err)
	again, err := svc.ListMatrix(s.ctx, s.testID)
	require.NoError(s.T(), err)
	assert.Same(s.T(), first, again)

	_, err = svc.UpsertNormal(s.ctx, "UNTREATED", models.UpsertNormalRequest{
		TestID: s.testID, Repetition: 1, Count: 1, Value: 9,
	})
	require.NoError(s.T(), err)
	assert.Empty(s.T(), cache.stored)

	fresh, err := svc.ListMatrix(s.ctx, s.testID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), fresh.Tables[0].Rows[0].Cells[0].Value)
	assert.Equal(s.T(), 9, *fresh.Tables[0].Rows[0].Cells[0].Value)
}
