package service

import (
	"context"

	"github.com/google/uuid"

	"seedlab/internal/audit"
	"seedlab/internal/germination/models"
	dErrors "seedlab/pkg/domain-errors"
)

// UpsertNormal writes one grid cell: created if absent, value overwritten if
// present. This is the high-frequency data-entry path, safe to call
// repeatedly with the same key. The table tag is re-validated here; the cell
// must reference an existing count and repetition.
func (s *Service) UpsertNormal(ctx context.Context, table string, req models.UpsertNormalRequest) (*models.NormalReading, error) {
	tbl, err := models.ParseTable(table)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireCount(ctx, req.TestID, req.Count); err != nil {
		return nil, err
	}
	if err := s.requireRepetition(ctx, req.TestID, tbl, req.Repetition); err != nil {
		return nil, err
	}

	reading := &models.NormalReading{
		ID:         uuid.New(),
		TestID:     req.TestID,
		Table:      tbl,
		Repetition: req.Repetition,
		Count:      req.Count,
		Value:      req.Value,
	}
	if err := s.normals.Upsert(ctx, reading); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save normal reading")
	}

	s.invalidateMatrix(ctx, req.TestID)
	s.emitAudit(ctx, audit.Event{
		Action:     audit.ActionNormalUpserted,
		TestID:     req.TestID,
		Table:      tbl.String(),
		Repetition: req.Repetition,
		Count:      req.Count,
	})
	if s.metrics != nil {
		s.metrics.NormalUpserts.Inc()
	}
	return reading, nil
}

// ListNormals returns a table's readings grouped by repetition, ordered by
// count number. Exposed for partial grid views; the assembler uses it too.
func (s *Service) ListNormals(ctx context.Context, testID uuid.UUID, table string) ([]*models.NormalReading, error) {
	tbl, err := models.ParseTable(table)
	if err != nil {
		return nil, err
	}
	if testID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeValidation, "ensayo_id is required")
	}
	readings, err := s.normals.ListByTable(ctx, testID, tbl)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list normal readings")
	}
	return readings, nil
}

// UpsertFinal writes a repetition's terminal classification counts, keyed by
// (test, table, repetition) with no count axis.
func (s *Service) UpsertFinal(ctx context.Context, table string, req models.UpsertFinalRequest) (*models.FinalReading, error) {
	tbl, err := models.ParseTable(table)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireRepetition(ctx, req.TestID, tbl, req.Repetition); err != nil {
		return nil, err
	}

	reading := &models.FinalReading{
		ID:         uuid.New(),
		TestID:     req.TestID,
		Table:      tbl,
		Repetition: req.Repetition,
		Abnormal:   req.Abnormal,
		Hard:       req.Hard,
		Fresh:      req.Fresh,
		Dead:       req.Dead,
	}
	if err := s.finals.Upsert(ctx, reading); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save final reading")
	}

	s.invalidateMatrix(ctx, req.TestID)
	s.emitAudit(ctx, audit.Event{
		Action:     audit.ActionFinalUpserted,
		TestID:     req.TestID,
		Table:      tbl.String(),
		Repetition: req.Repetition,
	})
	if s.metrics != nil {
		s.metrics.FinalUpserts.Inc()
	}
	return reading, nil
}
