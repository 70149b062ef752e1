package repetition

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"seedlab/internal/germination/models"
	"seedlab/pkg/platform/sentinel"
)

type tableKey struct {
	testID uuid.UUID
	table  models.TreatmentTable
}

// InMemory keeps repetitions in a mutex-guarded map, mirroring the Postgres
// contract for unit tests.
type InMemory struct {
	mu   sync.RWMutex
	reps map[tableKey]map[int]*models.Repetition
}

func NewInMemory() *InMemory {
	return &InMemory{reps: make(map[tableKey]map[int]*models.Repetition)}
}

func (s *InMemory) bucket(r *models.Repetition) map[int]*models.Repetition {
	key := tableKey{testID: r.TestID, table: r.Table}
	byNumber := s.reps[key]
	if byNumber == nil {
		byNumber = make(map[int]*models.Repetition)
		s.reps[key] = byNumber
	}
	return byNumber
}

func (s *InMemory) Create(_ context.Context, r *models.Repetition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byNumber := s.bucket(r)
	if _, exists := byNumber[r.Number]; exists {
		return sentinel.ErrConflict
	}
	stored := *r
	byNumber[r.Number] = &stored
	return nil
}

func (s *InMemory) CreateAutoNumbered(_ context.Context, r *models.Repetition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byNumber := s.bucket(r)
	next := 1
	for n := range byNumber {
		if n >= next {
			next = n + 1
		}
	}
	r.Number = next
	stored := *r
	byNumber[next] = &stored
	return nil
}

func (s *InMemory) FindByNumber(_ context.Context, testID uuid.UUID, table models.TreatmentTable, number int) (*models.Repetition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reps[tableKey{testID: testID, table: table}][number]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *InMemory) ListByTable(_ context.Context, testID uuid.UUID, table models.TreatmentTable) ([]*models.Repetition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var reps []*models.Repetition
	for _, r := range s.reps[tableKey{testID: testID, table: table}] {
		copied := *r
		reps = append(reps, &copied)
	}
	sort.Slice(reps, func(i, j int) bool { return reps[i].Number < reps[j].Number })
	return reps, nil
}

func (s *InMemory) Delete(_ context.Context, testID uuid.UUID, table models.TreatmentTable, number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reps[tableKey{testID: testID, table: table}], number)
	return nil
}
