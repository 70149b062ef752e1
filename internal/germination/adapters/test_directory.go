// Package adapters implements the germination service's outward ports. The
// owning GerminationTest records live in the surrounding system; this engine
// only needs a synchronous existence check by ID.
package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// PostgresTestDirectory answers existence checks against the surrounding
// system's germination-test table.
type PostgresTestDirectory struct {
	db *sql.DB
}

func NewPostgresTestDirectory(db *sql.DB) *PostgresTestDirectory {
	return &PostgresTestDirectory{db: db}
}

func (d *PostgresTestDirectory) Exists(ctx context.Context, testID uuid.UUID) (bool, error) {
	var exists bool
	err := d.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM ensayos_germinacion WHERE id = $1 AND eliminado = FALSE)`,
		testID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check germination test existence: %w", err)
	}
	return exists, nil
}

// InMemoryTestDirectory is a registry of known test IDs for unit tests and
// local development.
type InMemoryTestDirectory struct {
	mu  sync.RWMutex
	ids map[uuid.UUID]struct{}
}

func NewInMemoryTestDirectory() *InMemoryTestDirectory {
	return &InMemoryTestDirectory{ids: make(map[uuid.UUID]struct{})}
}

func (d *InMemoryTestDirectory) Register(testID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ids[testID] = struct{}{}
}

func (d *InMemoryTestDirectory) Exists(_ context.Context, testID uuid.UUID) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.ids[testID]
	return ok, nil
}
