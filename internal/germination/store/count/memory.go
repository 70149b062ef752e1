package count

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"seedlab/internal/germination/models"
	"seedlab/pkg/platform/sentinel"
)

// InMemory keeps counts in a mutex-guarded map, mirroring the Postgres
// contract for unit tests. The mutex serializes read-max-then-insert, which
// is what the unique index does for the SQL store.
type InMemory struct {
	mu     sync.RWMutex
	counts map[uuid.UUID]map[int]*models.Count
}

func NewInMemory() *InMemory {
	return &InMemory{counts: make(map[uuid.UUID]map[int]*models.Count)}
}

func (s *InMemory) Create(_ context.Context, c *models.Count) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byNumber := s.counts[c.TestID]
	if byNumber == nil {
		byNumber = make(map[int]*models.Count)
		s.counts[c.TestID] = byNumber
	}
	if _, exists := byNumber[c.Number]; exists {
		return sentinel.ErrConflict
	}
	stored := *c
	byNumber[c.Number] = &stored
	return nil
}

func (s *InMemory) CreateAutoNumbered(_ context.Context, c *models.Count) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byNumber := s.counts[c.TestID]
	if byNumber == nil {
		byNumber = make(map[int]*models.Count)
		s.counts[c.TestID] = byNumber
	}
	next := 1
	for n := range byNumber {
		if n >= next {
			next = n + 1
		}
	}
	c.Number = next
	stored := *c
	byNumber[next] = &stored
	return nil
}

func (s *InMemory) FindByNumber(_ context.Context, testID uuid.UUID, number int) (*models.Count, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.counts[testID][number]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *InMemory) ListByTest(_ context.Context, testID uuid.UUID) ([]*models.Count, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var counts []*models.Count
	for _, c := range s.counts[testID] {
		copied := *c
		counts = append(counts, &copied)
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Number < counts[j].Number })
	return counts, nil
}

func (s *InMemory) UpdateDate(_ context.Context, testID uuid.UUID, number int, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.counts[testID][number]
	if !ok {
		return sentinel.ErrNotFound
	}
	c.Date = date
	return nil
}

func (s *InMemory) Delete(_ context.Context, testID uuid.UUID, number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts[testID], number)
	return nil
}

func (s *InMemory) DeleteByTest(_ context.Context, testID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, testID)
	return nil
}
