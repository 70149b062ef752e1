package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"seedlab/internal/germination/models"
	dErrors "seedlab/pkg/domain-errors"
)

// tableLoad carries one treatment table's rows out of the parallel load.
type tableLoad struct {
	reps     []*models.Repetition
	readings []*models.NormalReading
}

// ListMatrix assembles the full summary for a test: ordered counts, per-table
// repetition rows joined against those counts, and final readings.
//
// The assembler performs no locking and tolerates reading a grid
// mid-mutation; the expansion orchestrator always completes
// rectangularization before returning, so a transient hole is not an error
// here. Holes that persist are surfaced as nil cells, never zero-filled.
func (s *Service) ListMatrix(ctx context.Context, testID uuid.UUID) (*models.MatrixSummary, error) {
	if testID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeValidation, "ensayo_id is required")
	}

	exists, err := s.tests.Exists(ctx, testID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check germination test")
	}
	if !exists {
		return nil, dErrors.New(dErrors.CodeNotFound, "germination test not found")
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, testID)
		if err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "matrix cache read failed",
				"ensayo_id", testID, "error", err.Error())
		}
		if cached != nil {
			if s.metrics != nil {
				s.metrics.MatrixCacheHits.Inc()
			}
			return cached, nil
		}
	}

	start := time.Now()
	summary, err := s.assembleMatrix(ctx, testID)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.MatrixAssemblies.Inc()
		s.metrics.ObserveListMatrix(start)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "matrix cache write failed",
				"ensayo_id", testID, "error", err.Error())
		}
	}
	return summary, nil
}

// assembleMatrix loads counts, per-table rows, and finals concurrently with
// shared cancellation, then composes the nested summary.
func (s *Service) assembleMatrix(ctx context.Context, testID uuid.UUID) (*models.MatrixSummary, error) {
	g, gctx := errgroup.WithContext(ctx)

	var counts []*models.Count
	var finals []*models.FinalReading
	tables := models.Tables()
	loads := make([]tableLoad, len(tables))

	g.Go(func() error {
		var err error
		counts, err = s.counts.ListByTest(gctx, testID)
		return err
	})
	g.Go(func() error {
		var err error
		finals, err = s.finals.ListByTest(gctx, testID)
		return err
	})
	for i, table := range tables {
		g.Go(func() error {
			reps, err := s.reps.ListByTable(gctx, testID, table)
			if err != nil {
				return err
			}
			readings, err := s.normals.ListByTable(gctx, testID, table)
			if err != nil {
				return err
			}
			loads[i] = tableLoad{reps: reps, readings: readings}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to assemble matrix")
	}

	summary := &models.MatrixSummary{
		TestID: testID,
		Counts: counts,
		Tables: make([]models.TableMatrix, 0, len(tables)),
		Finals: finals,
	}
	for i, table := range tables {
		summary.Tables = append(summary.Tables, composeTable(table, counts, loads[i]))
	}
	return summary, nil
}

// composeTable joins one table's readings against the count list. A missing
// cell stays nil: a non-rectangular grid is a data-integrity symptom the
// client must see, not silently repair.
func composeTable(table models.TreatmentTable, counts []*models.Count, load tableLoad) models.TableMatrix {
	type cellKey struct {
		repetition int
		count      int
	}
	values := make(map[cellKey]int, len(load.readings))
	for _, r := range load.readings {
		values[cellKey{repetition: r.Repetition, count: r.Count}] = r.Value
	}

	rows := make([]models.RepetitionRow, 0, len(load.reps))
	for _, rep := range load.reps {
		row := models.RepetitionRow{
			Repetition: rep.Number,
			Cells:      make([]models.Cell, 0, len(counts)),
		}
		for _, c := range counts {
			cell := models.Cell{Count: c.Number}
			if v, ok := values[cellKey{repetition: rep.Number, count: c.Number}]; ok {
				value := v
				cell.Value = &value
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	return models.TableMatrix{Table: table, Rows: rows}
}
