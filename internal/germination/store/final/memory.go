package final

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"seedlab/internal/germination/models"
)

type repKey struct {
	table      models.TreatmentTable
	repetition int
}

// InMemory keeps final readings in a mutex-guarded map.
type InMemory struct {
	mu     sync.RWMutex
	finals map[uuid.UUID]map[repKey]*models.FinalReading
}

func NewInMemory() *InMemory {
	return &InMemory{finals: make(map[uuid.UUID]map[repKey]*models.FinalReading)}
}

func (s *InMemory) Upsert(_ context.Context, r *models.FinalReading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byKey := s.finals[r.TestID]
	if byKey == nil {
		byKey = make(map[repKey]*models.FinalReading)
		s.finals[r.TestID] = byKey
	}
	key := repKey{table: r.Table, repetition: r.Repetition}
	if existing, ok := byKey[key]; ok {
		existing.Abnormal = r.Abnormal
		existing.Hard = r.Hard
		existing.Fresh = r.Fresh
		existing.Dead = r.Dead
		r.ID = existing.ID
		return nil
	}
	stored := *r
	byKey[key] = &stored
	return nil
}

func (s *InMemory) ListByTest(_ context.Context, testID uuid.UUID) ([]*models.FinalReading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var readings []*models.FinalReading
	for _, r := range s.finals[testID] {
		copied := *r
		readings = append(readings, &copied)
	}
	sort.Slice(readings, func(i, j int) bool {
		if readings[i].Table != readings[j].Table {
			return readings[i].Table < readings[j].Table
		}
		return readings[i].Repetition < readings[j].Repetition
	})
	return readings, nil
}

func (s *InMemory) DeleteByRepetition(_ context.Context, testID uuid.UUID, table models.TreatmentTable, repetition int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.finals[testID], repKey{table: table, repetition: repetition})
	return nil
}
