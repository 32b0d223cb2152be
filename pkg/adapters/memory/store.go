package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/stevie1mat/flowdsl/pkg/domain"
)

// Store implements ports.WorkflowStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Definition
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Definition),
	}
}

// Save persists a copy of the definition.
func (s *Store) Save(ctx context.Context, def *domain.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[def.ID] = def.Clone()
	return nil
}

// Load returns a copy so callers can't mutate stored definitions through shared slices.
func (s *Store) Load(ctx context.Context, id string) (*domain.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.data[id]
	if !ok {
		return nil, domain.ErrWorkflowNotFound
	}

	ret := def.Clone()
	return &ret, nil
}

// Delete removes the definition.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored ids in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
