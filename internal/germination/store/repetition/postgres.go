package repetition

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"seedlab/internal/germination/models"
	"seedlab/internal/germination/store"
	"seedlab/pkg/platform/sentinel"
	txcontext "seedlab/pkg/platform/tx"
)

const autoNumberAttempts = 3

// Postgres persists repetitions in PostgreSQL. The contract mirrors the
// count store but is keyed by (ensayo_id, tabla) instead of ensayo_id alone.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Create inserts a repetition with its explicit number. Returns
// sentinel.ErrConflict when (ensayo_id, tabla, numero) is already taken.
func (s *Postgres) Create(ctx context.Context, r *models.Repetition) error {
	q := store.From(ctx, s.db)
	_, err := q.ExecContext(ctx,
		`INSERT INTO repeticiones (id, ensayo_id, tabla, numero) VALUES ($1, $2, $3, $4)`,
		r.ID, r.TestID, r.Table, r.Number)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create repetition: %w", err)
	}
	return nil
}

// CreateAutoNumbered inserts a repetition numbered max(existing)+1 within its
// table and fills in r.Number. Same single-statement insert-retry discipline
// as the count store; one attempt inside an enclosing transaction.
func (s *Postgres) CreateAutoNumbered(ctx context.Context, r *models.Repetition) error {
	q := store.From(ctx, s.db)
	attempts := autoNumberAttempts
	if _, inTx := txcontext.From(ctx); inTx {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = q.QueryRowContext(ctx,
			`INSERT INTO repeticiones (id, ensayo_id, tabla, numero)
			 SELECT $1, $2, $3, COALESCE(MAX(numero), 0) + 1
			 FROM repeticiones WHERE ensayo_id = $2 AND tabla = $3
			 RETURNING numero`,
			r.ID, r.TestID, r.Table).Scan(&r.Number)
		if err == nil {
			return nil
		}
		if !store.IsUniqueViolation(err) {
			return fmt.Errorf("auto-number repetition: %w", err)
		}
	}
	return fmt.Errorf("auto-number repetition: %w", sentinel.ErrConflict)
}

// FindByNumber returns the repetition with the given number under a table.
func (s *Postgres) FindByNumber(ctx context.Context, testID uuid.UUID, table models.TreatmentTable, number int) (*models.Repetition, error) {
	q := store.From(ctx, s.db)
	r := &models.Repetition{}
	err := q.QueryRowContext(ctx,
		`SELECT id, ensayo_id, tabla, numero FROM repeticiones
		 WHERE ensayo_id = $1 AND tabla = $2 AND numero = $3`,
		testID, table, number).Scan(&r.ID, &r.TestID, &r.Table, &r.Number)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find repetition: %w", err)
	}
	return r, nil
}

// ListByTable returns a table's repetitions ascending by number.
func (s *Postgres) ListByTable(ctx context.Context, testID uuid.UUID, table models.TreatmentTable) ([]*models.Repetition, error) {
	q := store.From(ctx, s.db)
	rows, err := q.QueryContext(ctx,
		`SELECT id, ensayo_id, tabla, numero FROM repeticiones
		 WHERE ensayo_id = $1 AND tabla = $2 ORDER BY numero`,
		testID, table)
	if err != nil {
		return nil, fmt.Errorf("list repetitions: %w", err)
	}
	defer rows.Close()

	var reps []*models.Repetition
	for rows.Next() {
		r := &models.Repetition{}
		if err := rows.Scan(&r.ID, &r.TestID, &r.Table, &r.Number); err != nil {
			return nil, fmt.Errorf("scan repetition: %w", err)
		}
		reps = append(reps, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list repetitions: %w", err)
	}
	return reps, nil
}

// Delete removes a repetition. Absent rows are a no-op.
func (s *Postgres) Delete(ctx context.Context, testID uuid.UUID, table models.TreatmentTable, number int) error {
	q := store.From(ctx, s.db)
	if _, err := q.ExecContext(ctx,
		`DELETE FROM repeticiones WHERE ensayo_id = $1 AND tabla = $2 AND numero = $3`,
		testID, table, number); err != nil {
		return fmt.Errorf("delete repetition: %w", err)
	}
	return nil
}
