package postgres

import (
	"context"
	"fmt"

	"event-insights/internal/domain"
	"event-insights/internal/storage"
)

// RegistrationStore implements storage.RegistrationStore using PostgreSQL.
// Only counted registrations (confirmed, not cancelled) are ever read;
// the status filter is the precondition the analytics engine assumes.
type RegistrationStore struct {
	pool *Pool
}

// NewRegistrationStore creates a new RegistrationStore.
func NewRegistrationStore(pool *Pool) *RegistrationStore {
	return &RegistrationStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RegistrationStore = (*RegistrationStore)(nil)

// Insert adds a new registration with the default counted status.
// Returns ErrDuplicateKey if the id exists.
func (s *RegistrationStore) Insert(ctx context.Context, r *domain.Registration) error {
	query := `
		INSERT INTO registrations (
			id, event_id, created_at, raw_dynamic_fields
		) VALUES ($1, $2, $3, $4)
	`

	_, err := s.pool.Exec(ctx, query,
		r.ID,
		r.EventID,
		r.CreatedAt,
		r.RawDynamicFields,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

// ListByEvent retrieves all counted registrations for an event,
// ordered by creation time ASC.
func (s *RegistrationStore) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Registration, error) {
	query := `
		SELECT id, event_id, created_at, raw_dynamic_fields
		FROM registrations
		WHERE event_id = $1 AND status = 'confirmed' AND NOT cancelled
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations by event: %w", err)
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		var r domain.Registration
		if err := rows.Scan(&r.ID, &r.EventID, &r.CreatedAt, &r.RawDynamicFields); err != nil {
			return nil, fmt.Errorf("scan registration row: %w", err)
		}
		regs = append(regs, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registration rows: %w", err)
	}

	return regs, nil
}
