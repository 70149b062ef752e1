package count

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"seedlab/internal/germination/models"
	"seedlab/internal/germination/store"
	"seedlab/pkg/platform/sentinel"
	txcontext "seedlab/pkg/platform/tx"
)

// autoNumberAttempts bounds the insert-retry loop when two callers race for
// the same next number. The unique index on (ensayo_id, numero) guarantees at
// most one winner per attempt, so losing more than a couple of rounds in a
// row means something is systematically wrong.
const autoNumberAttempts = 3

// Postgres persists counts in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Create inserts a count with its explicit number. Returns
// sentinel.ErrConflict when (ensayo_id, numero) is already taken.
func (s *Postgres) Create(ctx context.Context, c *models.Count) error {
	q := store.From(ctx, s.db)
	_, err := q.ExecContext(ctx,
		`INSERT INTO conteos (id, ensayo_id, numero, fecha) VALUES ($1, $2, $3, $4)`,
		c.ID, c.TestID, c.Number, c.Date)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create count: %w", err)
	}
	return nil
}

// CreateAutoNumbered inserts a count numbered max(existing)+1 (1 when none
// exist) and fills in c.Number. The read-max and the insert are one
// statement; a concurrent winner surfaces as a unique violation and the
// insert is retried with a fresh max.
//
// Inside a caller-supplied transaction only one attempt is made, because a
// unique violation aborts the enclosing postgres transaction; the caller
// retries the whole transaction instead.
func (s *Postgres) CreateAutoNumbered(ctx context.Context, c *models.Count) error {
	q := store.From(ctx, s.db)
	attempts := autoNumberAttempts
	if _, inTx := txcontext.From(ctx); inTx {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = q.QueryRowContext(ctx,
			`INSERT INTO conteos (id, ensayo_id, numero, fecha)
			 SELECT $1, $2, COALESCE(MAX(numero), 0) + 1, $3
			 FROM conteos WHERE ensayo_id = $2
			 RETURNING numero`,
			c.ID, c.TestID, c.Date).Scan(&c.Number)
		if err == nil {
			return nil
		}
		if !store.IsUniqueViolation(err) {
			return fmt.Errorf("auto-number count: %w", err)
		}
	}
	return fmt.Errorf("auto-number count: %w", sentinel.ErrConflict)
}

// FindByNumber returns the count with the given per-test number.
func (s *Postgres) FindByNumber(ctx context.Context, testID uuid.UUID, number int) (*models.Count, error) {
	q := store.From(ctx, s.db)
	c := &models.Count{}
	err := q.QueryRowContext(ctx,
		`SELECT id, ensayo_id, numero, fecha FROM conteos WHERE ensayo_id = $1 AND numero = $2`,
		testID, number).Scan(&c.ID, &c.TestID, &c.Number, &c.Date)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find count: %w", err)
	}
	return c, nil
}

// ListByTest returns the test's counts ascending by number. A test with no
// counts yields an empty slice, not an error.
func (s *Postgres) ListByTest(ctx context.Context, testID uuid.UUID) ([]*models.Count, error) {
	q := store.From(ctx, s.db)
	rows, err := q.QueryContext(ctx,
		`SELECT id, ensayo_id, numero, fecha FROM conteos WHERE ensayo_id = $1 ORDER BY numero`,
		testID)
	if err != nil {
		return nil, fmt.Errorf("list counts: %w", err)
	}
	defer rows.Close()

	var counts []*models.Count
	for rows.Next() {
		c := &models.Count{}
		if err := rows.Scan(&c.ID, &c.TestID, &c.Number, &c.Date); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list counts: %w", err)
	}
	return counts, nil
}

// UpdateDate changes a count's inspection date. The number never changes.
func (s *Postgres) UpdateDate(ctx context.Context, testID uuid.UUID, number int, date time.Time) error {
	q := store.From(ctx, s.db)
	res, err := q.ExecContext(ctx,
		`UPDATE conteos SET fecha = $3 WHERE ensayo_id = $1 AND numero = $2`,
		testID, number, date)
	if err != nil {
		return fmt.Errorf("update count date: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Delete removes a count. Absent rows are a no-op: deletion is idempotent.
func (s *Postgres) Delete(ctx context.Context, testID uuid.UUID, number int) error {
	q := store.From(ctx, s.db)
	if _, err := q.ExecContext(ctx,
		`DELETE FROM conteos WHERE ensayo_id = $1 AND numero = $2`,
		testID, number); err != nil {
		return fmt.Errorf("delete count: %w", err)
	}
	return nil
}

// DeleteByTest removes every count of a test (bulk purge path).
func (s *Postgres) DeleteByTest(ctx context.Context, testID uuid.UUID) error {
	q := store.From(ctx, s.db)
	if _, err := q.ExecContext(ctx,
		`DELETE FROM conteos WHERE ensayo_id = $1`, testID); err != nil {
		return fmt.Errorf("delete counts by test: %w", err)
	}
	return nil
}
