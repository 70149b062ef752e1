package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"seedlab/internal/audit"
	"seedlab/internal/germination/models"
	dErrors "seedlab/pkg/domain-errors"
	"seedlab/pkg/platform/sentinel"
	"seedlab/pkg/requestcontext"
)

// AddCount creates one inspection count. With no explicit number the store
// assigns max+1 atomically; an explicit number must be positive and unused.
func (s *Service) AddCount(ctx context.Context, req models.AddCountRequest) (*models.Count, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	date := req.Date
	if date.IsZero() {
		date = requestcontext.Now(ctx)
	}

	var c *models.Count
	if req.Number == nil {
		pending, err := models.NewPendingCount(req.TestID, date)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		if err := s.counts.CreateAutoNumbered(ctx, pending); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create count")
		}
		c = pending
	} else {
		explicit, err := models.NewCount(req.TestID, *req.Number, date)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		if err := s.counts.Create(ctx, explicit); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return nil, dErrors.New(dErrors.CodeConflict, "count number already exists for test")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create count")
		}
		c = explicit
	}

	s.invalidateMatrix(ctx, req.TestID)
	s.emitAudit(ctx, audit.Event{Action: audit.ActionCountAdded, TestID: req.TestID, Count: c.Number})
	if s.metrics != nil {
		s.metrics.CountsCreated.Inc()
	}
	return c, nil
}

// ListCounts returns a test's counts ascending by number. A test with no
// counts yields an empty list, not an error.
func (s *Service) ListCounts(ctx context.Context, testID uuid.UUID) ([]*models.Count, error) {
	if testID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeValidation, "ensayo_id is required")
	}
	counts, err := s.counts.ListByTest(ctx, testID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list counts")
	}
	return counts, nil
}

// UpdateCountDate changes a count's inspection date, the only mutable field
// after creation.
func (s *Service) UpdateCountDate(ctx context.Context, testID uuid.UUID, number int, date time.Time) error {
	if testID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "ensayo_id is required")
	}
	if number <= 0 {
		return dErrors.New(dErrors.CodeValidation, "numero must be positive")
	}
	if err := s.counts.UpdateDate(ctx, testID, number, date); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "unknown count for test")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update count date")
	}
	s.invalidateMatrix(ctx, testID)
	s.emitAudit(ctx, audit.Event{Action: audit.ActionCountDateChanged, TestID: testID, Count: number})
	return nil
}

// RemoveCount deletes a count and every normal reading at that count as one
// transaction. Removing an absent count is a no-op: deletion is idempotent.
func (s *Service) RemoveCount(ctx context.Context, testID uuid.UUID, number int) error {
	if testID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "ensayo_id is required")
	}
	if number <= 0 {
		return dErrors.New(dErrors.CodeValidation, "numero must be positive")
	}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.normals.DeleteByCount(txCtx, testID, number); err != nil {
			return err
		}
		return s.counts.Delete(txCtx, testID, number)
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove count")
	}
	s.invalidateMatrix(ctx, testID)
	s.emitAudit(ctx, audit.Event{Action: audit.ActionCountRemoved, TestID: testID, Count: number})
	return nil
}

// RemoveAllCounts purges every count of a test together with all its normal
// readings (bulk path used when the owning test is reset).
func (s *Service) RemoveAllCounts(ctx context.Context, testID uuid.UUID) error {
	if testID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "ensayo_id is required")
	}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.normals.DeleteByTest(txCtx, testID); err != nil {
			return err
		}
		return s.counts.DeleteByTest(txCtx, testID)
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to purge counts")
	}
	s.invalidateMatrix(ctx, testID)
	s.emitAudit(ctx, audit.Event{Action: audit.ActionCountsPurged, TestID: testID})
	return nil
}
