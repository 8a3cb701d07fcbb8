package store

import (
	"context"
	"sort"
	"sync"

	"peoplebook/internal/person/models"
	"peoplebook/pkg/domain"
	"peoplebook/pkg/platform/sentinel"
)

// InMemoryStore keeps person records in a mutex-guarded map. It is the
// default backend when no database is configured and the workhorse of unit
// tests. Documents are copied on the way in and out so callers can never
// alias store state.
type InMemoryStore struct {
	mu     sync.RWMutex
	people map[domain.PersonID]*models.Person
}

// NewInMemory creates an empty in-memory store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		people: make(map[domain.PersonID]*models.Person),
	}
}

// List returns all records ordered by creation time, then identifier for a
// stable tie-break.
func (s *InMemoryStore) List(ctx context.Context) ([]*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Person, 0, len(s.people))
	for _, p := range s.people {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *InMemoryStore) FindByID(ctx context.Context, id domain.PersonID) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.people[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemoryStore) Create(ctx context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.people[p.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *p
	s.people[p.ID] = &cp
	return nil
}

// Execute applies fn to the stored record under the write lock. The mutation
// is discarded when fn errors.
func (s *InMemoryStore) Execute(ctx context.Context, id domain.PersonID, fn func(*models.Person) error) (*models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.people[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	if err := fn(&cp); err != nil {
		return nil, err
	}
	s.people[id] = &cp
	result := cp
	return &result, nil
}

func (s *InMemoryStore) Delete(ctx context.Context, id domain.PersonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.people[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.people, id)
	return nil
}
