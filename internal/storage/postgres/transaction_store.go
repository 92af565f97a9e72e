package postgres

import (
	"context"
	"fmt"

	"event-insights/internal/domain"
	"event-insights/internal/storage"
)

// TransactionStore implements storage.TransactionStore using PostgreSQL.
// Only revenue-relevant classifications (counts_for 'both' or
// 'organization_only') are ever read.
type TransactionStore struct {
	pool *Pool
}

// NewTransactionStore creates a new TransactionStore.
func NewTransactionStore(pool *Pool) *TransactionStore {
	return &TransactionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

// Insert adds a new transaction with the default counted classification.
// Returns ErrDuplicateKey if the id exists.
func (s *TransactionStore) Insert(ctx context.Context, t *domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, registration_id, event_id, raw_amount, credit, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		t.ID,
		t.RegistrationID,
		t.EventID,
		t.RawAmount,
		t.Credit,
		t.OccurredAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByEvent retrieves all revenue-relevant transactions for an event,
// ordered by occurrence time ASC.
func (s *TransactionStore) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Transaction, error) {
	query := `
		SELECT id, registration_id, event_id, raw_amount, credit, occurred_at
		FROM transactions
		WHERE event_id = $1 AND counts_for IN ('both', 'organization_only')
		ORDER BY occurred_at ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list transactions by event: %w", err)
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.RegistrationID, &t.EventID, &t.RawAmount, &t.Credit, &t.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txs = append(txs, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return txs, nil
}
