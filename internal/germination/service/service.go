// Package service implements the germination matrix engine: counts,
// repetitions, the normal-reading grid, final readings, the matrix read side,
// and the repetition-expansion orchestration that keeps the grid rectangular.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"seedlab/internal/audit"
	germMetrics "seedlab/internal/germination/metrics"
	"seedlab/internal/germination/models"
	dErrors "seedlab/pkg/domain-errors"
	"seedlab/pkg/platform/sentinel"
	"seedlab/pkg/platform/tx"
	"seedlab/pkg/requestcontext"
)

// CountStore persists inspection counts per germination test.
type CountStore interface {
	Create(ctx context.Context, c *models.Count) error
	CreateAutoNumbered(ctx context.Context, c *models.Count) error
	FindByNumber(ctx context.Context, testID uuid.UUID, number int) (*models.Count, error)
	ListByTest(ctx context.Context, testID uuid.UUID) ([]*models.Count, error)
	UpdateDate(ctx context.Context, testID uuid.UUID, number int, date time.Time) error
	Delete(ctx context.Context, testID uuid.UUID, number int) error
	DeleteByTest(ctx context.Context, testID uuid.UUID) error
}

// RepetitionStore persists repetitions per (test, treatment table).
type RepetitionStore interface {
	Create(ctx context.Context, r *models.Repetition) error
	CreateAutoNumbered(ctx context.Context, r *models.Repetition) error
	FindByNumber(ctx context.Context, testID uuid.UUID, table models.TreatmentTable, number int) (*models.Repetition, error)
	ListByTable(ctx context.Context, testID uuid.UUID, table models.TreatmentTable) ([]*models.Repetition, error)
	Delete(ctx context.Context, testID uuid.UUID, table models.TreatmentTable, number int) error
}

// NormalStore persists the editable grid cells.
type NormalStore interface {
	Upsert(ctx context.Context, r *models.NormalReading) error
	ListByTable(ctx context.Context, testID uuid.UUID, table models.TreatmentTable) ([]*models.NormalReading, error)
	ListByTest(ctx context.Context, testID uuid.UUID) ([]*models.NormalReading, error)
	DeleteByCount(ctx context.Context, testID uuid.UUID, count int) error
	DeleteByRepetition(ctx context.Context, testID uuid.UUID, table models.TreatmentTable, repetition int) error
	DeleteByTest(ctx context.Context, testID uuid.UUID) error
}

// FinalStore persists per-repetition terminal readings.
type FinalStore interface {
	Upsert(ctx context.Context, r *models.FinalReading) error
	ListByTest(ctx context.Context, testID uuid.UUID) ([]*models.FinalReading, error)
	DeleteByRepetition(ctx context.Context, testID uuid.UUID, table models.TreatmentTable, repetition int) error
}

// TestDirectory is the port to the surrounding system that owns the
// GerminationTest records. Authorization has already happened upstream; this
// engine only needs existence.
type TestDirectory interface {
	Exists(ctx context.Context, testID uuid.UUID) (bool, error)
}

// MatrixCache caches assembled summaries. Optional; nil means every read
// assembles from the stores.
type MatrixCache interface {
	Get(ctx context.Context, testID uuid.UUID) (*models.MatrixSummary, error)
	Set(ctx context.Context, summary *models.MatrixSummary) error
	Invalidate(ctx context.Context, testID uuid.UUID) error
}

// AuditPublisher receives grid mutation events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates the germination test matrix.
type Service struct {
	counts  CountStore
	reps    RepetitionStore
	normals NormalStore
	finals  FinalStore
	tests   TestDirectory
	tx      tx.Runner

	logger         *slog.Logger
	metrics        *germMetrics.Metrics
	cache          MatrixCache
	auditPublisher AuditPublisher
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *germMetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithMatrixCache(c MatrixCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = p
	}
}

// New constructs a Service. runner must wrap the same backend as the stores
// so delete plans and expansion run atomically.
func New(counts CountStore, reps RepetitionStore, normals NormalStore, finals FinalStore, tests TestDirectory, runner tx.Runner, opts ...Option) *Service {
	s := &Service{
		counts:  counts,
		reps:    reps,
		normals: normals,
		finals:  finals,
		tests:   tests,
		tx:      runner,
	}
	if s.tx == nil {
		s.tx = tx.Passthrough{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// invalidateMatrix drops a test's cached summary after a write. Cache
// failures are logged, never propagated: the store already holds the truth.
func (s *Service) invalidateMatrix(ctx context.Context, testID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, testID); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "matrix cache invalidation failed",
			"ensayo_id", testID, "error", err.Error())
	}
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, event.Action,
			"log_type", "audit",
			"ensayo_id", event.TestID,
			"tabla", event.Table,
			"request_id", event.RequestID,
		)
	}
	if s.auditPublisher == nil {
		return
	}
	_ = s.auditPublisher.Emit(ctx, event)
}

// requireCount translates a count lookup into the engine's error taxonomy.
func (s *Service) requireCount(ctx context.Context, testID uuid.UUID, number int) error {
	if _, err := s.counts.FindByNumber(ctx, testID, number); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "unknown count for test")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check count")
	}
	return nil
}

// requireRepetition translates a repetition lookup into the error taxonomy.
func (s *Service) requireRepetition(ctx context.Context, testID uuid.UUID, table models.TreatmentTable, number int) error {
	if _, err := s.reps.FindByNumber(ctx, testID, table, number); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "unknown repetition for table")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check repetition")
	}
	return nil
}
