package memory

import (
	"context"
	"sort"
	"sync"

	"event-insights/internal/domain"
	"event-insights/internal/storage"
)

// RegistrationStore is an in-memory implementation of storage.RegistrationStore.
type RegistrationStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.Registration // keyed by registration id
}

// NewRegistrationStore creates a new in-memory registration store.
func NewRegistrationStore() *RegistrationStore {
	return &RegistrationStore{
		data: make(map[int64]*domain.Registration),
	}
}

// Insert adds a new registration. Returns ErrDuplicateKey if the id exists.
func (s *RegistrationStore) Insert(_ context.Context, r *domain.Registration) error {
	if r == nil || r.ID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *r
	s.data[r.ID] = &copy
	return nil
}

// ListByEvent retrieves all counted registrations for an event,
// ordered by creation time ASC.
func (s *RegistrationStore) ListByEvent(_ context.Context, eventID int64) ([]*domain.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Registration
	for _, r := range s.data {
		if r.EventID == eventID {
			copy := *r
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

var _ storage.RegistrationStore = (*RegistrationStore)(nil)
