// Package store holds what the germination store implementations share: the
// relational schema, transaction-aware query routing, and translation of
// postgres constraint violations into sentinel errors.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/lib/pq"

	txcontext "seedlab/pkg/platform/tx"
)

//go:embed schema.sql
var schema string

// Migrate applies the germination schema. Statements are idempotent
// (CREATE TABLE IF NOT EXISTS) so repeated startups are safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply germination schema: %w", err)
	}
	return nil
}

// Querier is the subset of *sql.DB and *sql.Tx the stores use.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// From returns the transaction carried by ctx if present, else db, so a store
// joins a service-level delete plan or expansion transparently.
func From(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return db
}

// uniqueViolation is the postgres SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation. Auto-numbering treats it as a lost race; explicit creates treat
// it as a caller conflict.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
