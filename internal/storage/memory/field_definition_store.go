package memory

import (
	"context"
	"sort"
	"sync"

	"event-insights/internal/domain"
	"event-insights/internal/storage"
)

// FieldDefinitionStore is an in-memory implementation of
// storage.FieldDefinitionStore.
type FieldDefinitionStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.FieldDefinition // keyed by field id
}

// NewFieldDefinitionStore creates a new in-memory field-definition store.
func NewFieldDefinitionStore() *FieldDefinitionStore {
	return &FieldDefinitionStore{
		data: make(map[int64]*domain.FieldDefinition),
	}
}

// Insert adds a new definition. Returns ErrDuplicateKey if the id exists.
func (s *FieldDefinitionStore) Insert(_ context.Context, f *domain.FieldDefinition) error {
	if f == nil || f.ID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[f.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *f
	s.data[f.ID] = &copy
	return nil
}

// ListByEvent retrieves an event's field definitions, ordered by id ASC.
func (s *FieldDefinitionStore) ListByEvent(_ context.Context, eventID int64) ([]*domain.FieldDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.FieldDefinition
	for _, f := range s.data {
		if f.EventID == eventID {
			copy := *f
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

var _ storage.FieldDefinitionStore = (*FieldDefinitionStore)(nil)
