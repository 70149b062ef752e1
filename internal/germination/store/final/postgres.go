package final

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"seedlab/internal/germination/models"
	"seedlab/internal/germination/store"
)

// Postgres persists final readings in PostgreSQL. One row at most per
// (ensayo_id, tabla, repeticion); the count axis does not apply here.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Upsert writes a repetition's terminal classification as one atomic
// statement, overwriting all four values when the row already exists.
func (s *Postgres) Upsert(ctx context.Context, r *models.FinalReading) error {
	q := store.From(ctx, s.db)
	err := q.QueryRowContext(ctx,
		`INSERT INTO lecturas_finales (id, ensayo_id, tabla, repeticion, anormal, duras, frescas, muertas)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (ensayo_id, tabla, repeticion)
		 DO UPDATE SET anormal = EXCLUDED.anormal, duras = EXCLUDED.duras,
		               frescas = EXCLUDED.frescas, muertas = EXCLUDED.muertas
		 RETURNING id`,
		r.ID, r.TestID, r.Table, r.Repetition, r.Abnormal, r.Hard, r.Fresh, r.Dead).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("upsert final reading: %w", err)
	}
	return nil
}

// ListByTest returns every final reading for a test across all tables.
func (s *Postgres) ListByTest(ctx context.Context, testID uuid.UUID) ([]*models.FinalReading, error) {
	q := store.From(ctx, s.db)
	rows, err := q.QueryContext(ctx,
		`SELECT id, ensayo_id, tabla, repeticion, anormal, duras, frescas, muertas
		 FROM lecturas_finales WHERE ensayo_id = $1 ORDER BY tabla, repeticion`,
		testID)
	if err != nil {
		return nil, fmt.Errorf("list final readings: %w", err)
	}
	defer rows.Close()

	var readings []*models.FinalReading
	for rows.Next() {
		r := &models.FinalReading{}
		if err := rows.Scan(&r.ID, &r.TestID, &r.Table, &r.Repetition,
			&r.Abnormal, &r.Hard, &r.Fresh, &r.Dead); err != nil {
			return nil, fmt.Errorf("scan final reading: %w", err)
		}
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list final readings: %w", err)
	}
	return readings, nil
}

// DeleteByRepetition removes a repetition's final reading if present.
func (s *Postgres) DeleteByRepetition(ctx context.Context, testID uuid.UUID, table models.TreatmentTable, repetition int) error {
	q := store.From(ctx, s.db)
	if _, err := q.ExecContext(ctx,
		`DELETE FROM lecturas_finales WHERE ensayo_id = $1 AND tabla = $2 AND repeticion = $3`,
		testID, table, repetition); err != nil {
		return fmt.Errorf("delete final reading: %w", err)
	}
	return nil
}
