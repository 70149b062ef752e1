package normal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"seedlab/internal/germination/models"
	"seedlab/internal/germination/store"
)

// Postgres persists normal readings (the editable grid cells) in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Upsert writes a grid cell as one atomic statement: the row is created if
// absent, or its value overwritten if present. The stored row id is stable
// across overwrites and is returned in r.ID.
func (s *Postgres) Upsert(ctx context.Context, r *models.NormalReading) error {
	q := store.From(ctx, s.db)
	err := q.QueryRowContext(ctx,
		`INSERT INTO lecturas_normales (id, ensayo_id, tabla, repeticion, conteo, valor)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (ensayo_id, tabla, repeticion, conteo)
		 DO UPDATE SET valor = EXCLUDED.valor
		 RETURNING id`,
		r.ID, r.TestID, r.Table, r.Repetition, r.Count, r.Value).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("upsert normal reading: %w", err)
	}
	return nil
}

// ListByTable returns a table's readings grouped by repetition, ordered by
// count number within each group.
func (s *Postgres) ListByTable(ctx context.Context, testID uuid.UUID, table models.TreatmentTable) ([]*models.NormalReading, error) {
	q := store.From(ctx, s.db)
	rows, err := q.QueryContext(ctx,
		`SELECT id, ensayo_id, tabla, repeticion, conteo, valor FROM lecturas_normales
		 WHERE ensayo_id = $1 AND tabla = $2 ORDER BY repeticion, conteo`,
		testID, table)
	if err != nil {
		return nil, fmt.Errorf("list normal readings: %w", err)
	}
	return scanReadings(rows)
}

// ListByTest returns every reading for a test across all tables.
func (s *Postgres) ListByTest(ctx context.Context, testID uuid.UUID) ([]*models.NormalReading, error) {
	q := store.From(ctx, s.db)
	rows, err := q.QueryContext(ctx,
		`SELECT id, ensayo_id, tabla, repeticion, conteo, valor FROM lecturas_normales
		 WHERE ensayo_id = $1 ORDER BY tabla, repeticion, conteo`,
		testID)
	if err != nil {
		return nil, fmt.Errorf("list normal readings: %w", err)
	}
	return scanReadings(rows)
}

func scanReadings(rows *sql.Rows) ([]*models.NormalReading, error) {
	defer rows.Close()
	var readings []*models.NormalReading
	for rows.Next() {
		r := &models.NormalReading{}
		if err := rows.Scan(&r.ID, &r.TestID, &r.Table, &r.Repetition, &r.Count, &r.Value); err != nil {
			return nil, fmt.Errorf("scan normal reading: %w", err)
		}
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list normal readings: %w", err)
	}
	return readings, nil
}

// DeleteByCount removes every reading at a count across all tables and
// repetitions of the test.
func (s *Postgres) DeleteByCount(ctx context.Context, testID uuid.UUID, count int) error {
	q := store.From(ctx, s.db)
	if _, err := q.ExecContext(ctx,
		`DELETE FROM lecturas_normales WHERE ensayo_id = $1 AND conteo = $2`,
		testID, count); err != nil {
		return fmt.Errorf("delete normal readings by count: %w", err)
	}
	return nil
}

// DeleteByRepetition removes a repetition's readings under one table.
func (s *Postgres) DeleteByRepetition(ctx context.Context, testID uuid.UUID, table models.TreatmentTable, repetition int) error {
	q := store.From(ctx, s.db)
	if _, err := q.ExecContext(ctx,
		`DELETE FROM lecturas_normales WHERE ensayo_id = $1 AND tabla = $2 AND repeticion = $3`,
		testID, table, repetition); err != nil {
		return fmt.Errorf("delete normal readings by repetition: %w", err)
	}
	return nil
}

// DeleteByTest removes every reading of a test (bulk purge path).
func (s *Postgres) DeleteByTest(ctx context.Context, testID uuid.UUID) error {
	q := store.From(ctx, s.db)
	if _, err := q.ExecContext(ctx,
		`DELETE FROM lecturas_normales WHERE ensayo_id = $1`, testID); err != nil {
		return fmt.Errorf("delete normal readings by test: %w", err)
	}
	return nil
}
