package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"event-insights/internal/domain"
	"event-insights/internal/storage"
)

// EventStore is an in-memory implementation of storage.EventStore.
type EventStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.Event // keyed by event id
}

// NewEventStore creates a new in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{
		data: make(map[int64]*domain.Event),
	}
}

// Insert adds a new event. Returns ErrDuplicateKey if the id exists.
func (s *EventStore) Insert(_ context.Context, e *domain.Event) error {
	if e == nil || e.ID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[e.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *e
	s.data[e.ID] = &copy
	return nil
}

// ListByOrg retrieves all of an organization's events, ordered by
// case-insensitive name.
func (s *EventStore) ListByOrg(_ context.Context, orgID int64) ([]*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Event
	for _, e := range s.data {
		if e.OrgID == orgID {
			copy := *e
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		ni, nj := strings.ToLower(result[i].Name), strings.ToLower(result[j].Name)
		if ni != nj {
			return ni < nj
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// GetByID retrieves one event within the organization scope.
// Returns ErrNotFound if the id does not resolve inside it.
func (s *EventStore) GetByID(_ context.Context, orgID, eventID int64) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.data[eventID]
	if !exists || e.OrgID != orgID {
		return nil, storage.ErrNotFound
	}

	copy := *e
	return &copy, nil
}

var _ storage.EventStore = (*EventStore)(nil)
