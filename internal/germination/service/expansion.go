package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"seedlab/internal/audit"
	"seedlab/internal/germination/models"
	dErrors "seedlab/pkg/domain-errors"
	"seedlab/pkg/platform/sentinel"
	"seedlab/pkg/requestcontext"
)

// expansionAttempts bounds whole-transaction retries when two concurrent
// expansions race for the same auto-assigned number. Inside a transaction the
// stores make a single numbering attempt (a unique violation aborts the
// enclosing postgres transaction), so the retry has to happen out here.
const expansionAttempts = 3

// Expansion reports what a repetition expansion materialized.
type Expansion struct {
	Repetition   int `json:"repeticion"`
	CellsCreated int `json:"celdas_creadas"`
}

// ExpandRepetition adds a repetition to a table and materializes its grid
// cells across every existing count, creating count #1 first when the test
// has none. The whole expansion is one transaction: the caller never
// observes a repetition without its cells.
func (s *Service) ExpandRepetition(ctx context.Context, table string, req models.AddRepetitionRequest) (*Expansion, error) {
	tbl, err := models.ParseTable(table)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	attempts := 1
	if req.Number == nil {
		attempts = expansionAttempts
	}

	var result *Expansion
	for i := 0; i < attempts; i++ {
		result, err = s.expandOnce(ctx, tbl, req)
		if err == nil {
			break
		}
		if req.Number == nil && errors.Is(err, sentinel.ErrConflict) {
			if s.metrics != nil {
				s.metrics.AutoNumberConflicts.Inc()
			}
			continue
		}
		break
	}
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			if req.Number != nil {
				return nil, dErrors.New(dErrors.CodeConflict, "repetition number already exists for table")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to expand repetition")
		}
		var de *dErrors.Error
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to expand repetition")
	}

	s.invalidateMatrix(ctx, req.TestID)
	s.emitAudit(ctx, audit.Event{
		Action:     audit.ActionRepetitionExpanded,
		TestID:     req.TestID,
		Table:      tbl.String(),
		Repetition: result.Repetition,
	})
	if s.metrics != nil {
		s.metrics.RepetitionsExpanded.Inc()
		s.metrics.CellsMaterialized.Add(float64(result.CellsCreated))
	}
	return result, nil
}

func (s *Service) expandOnce(ctx context.Context, table models.TreatmentTable, req models.AddRepetitionRequest) (*Expansion, error) {
	var result *Expansion
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		counts, err := s.counts.ListByTest(txCtx, req.TestID)
		if err != nil {
			return err
		}
		// A repetition must never exist without at least one count column.
		if len(counts) == 0 {
			first, err := models.NewPendingCount(req.TestID, requestcontext.Now(txCtx))
			if err != nil {
				return err
			}
			if err := s.counts.CreateAutoNumbered(txCtx, first); err != nil {
				return err
			}
			counts = append(counts, first)
		}

		rep, err := s.createRepetition(txCtx, table, req)
		if err != nil {
			return err
		}

		cells := 0
		for _, c := range counts {
			reading := &models.NormalReading{
				ID:         uuid.New(),
				TestID:     req.TestID,
				Table:      table,
				Repetition: rep.Number,
				Count:      c.Number,
				Value:      0,
			}
			if err := s.normals.Upsert(txCtx, reading); err != nil {
				return err
			}
			cells++
		}
		result = &Expansion{Repetition: rep.Number, CellsCreated: cells}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) createRepetition(ctx context.Context, table models.TreatmentTable, req models.AddRepetitionRequest) (*models.Repetition, error) {
	if req.Number == nil {
		rep, err := models.NewPendingRepetition(req.TestID, table)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		if err := s.reps.CreateAutoNumbered(ctx, rep); err != nil {
			return nil, err
		}
		return rep, nil
	}
	rep, err := models.NewRepetition(req.TestID, table, *req.Number)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, err.Error())
	}
	if err := s.reps.Create(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// RemoveRepetition deletes a repetition together with its grid cells and its
// final reading as one transaction, the cascade symmetric to RemoveCount.
func (s *Service) RemoveRepetition(ctx context.Context, table string, testID uuid.UUID, number int) error {
	tbl, err := models.ParseTable(table)
	if err != nil {
		return err
	}
	if testID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "ensayo_id is required")
	}
	if number <= 0 {
		return dErrors.New(dErrors.CodeValidation, "numero must be positive")
	}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.finals.DeleteByRepetition(txCtx, testID, tbl, number); err != nil {
			return err
		}
		if err := s.normals.DeleteByRepetition(txCtx, testID, tbl, number); err != nil {
			return err
		}
		return s.reps.Delete(txCtx, testID, tbl, number)
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove repetition")
	}
	s.invalidateMatrix(ctx, testID)
	s.emitAudit(ctx, audit.Event{
		Action:     audit.ActionRepetitionRemoved,
		TestID:     testID,
		Table:      tbl.String(),
		Repetition: number,
	})
	return nil
}
