package memory

import (
	"context"
	"sort"
	"sync"

	"event-insights/internal/domain"
	"event-insights/internal/storage"
)

// TransactionStore is an in-memory implementation of storage.TransactionStore.
type TransactionStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.Transaction // keyed by transaction id
}

// NewTransactionStore creates a new in-memory transaction store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		data: make(map[int64]*domain.Transaction),
	}
}

// Insert adds a new transaction. Returns ErrDuplicateKey if the id exists.
func (s *TransactionStore) Insert(_ context.Context, t *domain.Transaction) error {
	if t == nil || t.ID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[t.ID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *t
	s.data[t.ID] = &copy
	return nil
}

// ListByEvent retrieves all revenue-relevant transactions for an event,
// ordered by occurrence time ASC.
func (s *TransactionStore) ListByEvent(_ context.Context, eventID int64) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Transaction
	for _, t := range s.data {
		if t.EventID == eventID {
			copy := *t
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].OccurredAt.Equal(result[j].OccurredAt) {
			return result[i].OccurredAt.Before(result[j].OccurredAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

var _ storage.TransactionStore = (*TransactionStore)(nil)
