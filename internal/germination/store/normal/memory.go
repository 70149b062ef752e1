package normal

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"seedlab/internal/germination/models"
)

type cellKey struct {
	table      models.TreatmentTable
	repetition int
	count      int
}

// InMemory keeps grid cells in a mutex-guarded map. Upsert is atomic under
// the lock, matching the single-statement semantics of the Postgres store.
type InMemory struct {
	mu    sync.RWMutex
	cells map[uuid.UUID]map[cellKey]*models.NormalReading
}

func NewInMemory() *InMemory {
	return &InMemory{cells: make(map[uuid.UUID]map[cellKey]*models.NormalReading)}
}

func (s *InMemory) Upsert(_ context.Context, r *models.NormalReading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byKey := s.cells[r.TestID]
	if byKey == nil {
		byKey = make(map[cellKey]*models.NormalReading)
		s.cells[r.TestID] = byKey
	}
	key := cellKey{table: r.Table, repetition: r.Repetition, count: r.Count}
	if existing, ok := byKey[key]; ok {
		existing.Value = r.Value
		r.ID = existing.ID
		return nil
	}
	stored := *r
	byKey[key] = &stored
	return nil
}

func (s *InMemory) ListByTable(_ context.Context, testID uuid.UUID, table models.TreatmentTable) ([]*models.NormalReading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var readings []*models.NormalReading
	for key, r := range s.cells[testID] {
		if key.table != table {
			continue
		}
		copied := *r
		readings = append(readings, &copied)
	}
	sortReadings(readings)
	return readings, nil
}

func (s *InMemory) ListByTest(_ context.Context, testID uuid.UUID) ([]*models.NormalReading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var readings []*models.NormalReading
	for _, r := range s.cells[testID] {
		copied := *r
		readings = append(readings, &copied)
	}
	sortReadings(readings)
	return readings, nil
}

func sortReadings(readings []*models.NormalReading) {
	sort.Slice(readings, func(i, j int) bool {
		if readings[i].Table != readings[j].Table {
			return readings[i].Table < readings[j].Table
		}
		if readings[i].Repetition != readings[j].Repetition {
			return readings[i].Repetition < readings[j].Repetition
		}
		return readings[i].Count < readings[j].Count
	})
}

func (s *InMemory) DeleteByCount(_ context.Context, testID uuid.UUID, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.cells[testID] {
		if key.count == count {
			delete(s.cells[testID], key)
		}
	}
	return nil
}

func (s *InMemory) DeleteByRepetition(_ context.Context, testID uuid.UUID, table models.TreatmentTable, repetition int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.cells[testID] {
		if key.table == table && key.repetition == repetition {
			delete(s.cells[testID], key)
		}
	}
	return nil
}

func (s *InMemory) DeleteByTest(_ context.Context, testID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cells, testID)
	return nil
}
