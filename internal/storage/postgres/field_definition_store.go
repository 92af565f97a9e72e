package postgres

import (
	"context"
	"fmt"

	"event-insights/internal/domain"
	"event-insights/internal/storage"
)

// FieldDefinitionStore implements storage.FieldDefinitionStore using PostgreSQL.
type FieldDefinitionStore struct {
	pool *Pool
}

// NewFieldDefinitionStore creates a new FieldDefinitionStore.
func NewFieldDefinitionStore(pool *Pool) *FieldDefinitionStore {
	return &FieldDefinitionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.FieldDefinitionStore = (*FieldDefinitionStore)(nil)

// Insert adds a new field definition. Returns ErrDuplicateKey if the id exists.
func (s *FieldDefinitionStore) Insert(ctx context.Context, f *domain.FieldDefinition) error {
	query := `
		INSERT INTO event_fields (id, event_id, label)
		VALUES ($1, $2, $3)
	`

	_, err := s.pool.Exec(ctx, query, f.ID, f.EventID, f.Label)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert field definition: %w", err)
	}
	return nil
}

// ListByEvent retrieves an event's field definitions, ordered by id ASC.
func (s *FieldDefinitionStore) ListByEvent(ctx context.Context, eventID int64) ([]*domain.FieldDefinition, error) {
	query := `
		SELECT id, event_id, label
		FROM event_fields
		WHERE event_id = $1
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list field definitions by event: %w", err)
	}
	defer rows.Close()

	var defs []*domain.FieldDefinition
	for rows.Next() {
		var f domain.FieldDefinition
		if err := rows.Scan(&f.ID, &f.EventID, &f.Label); err != nil {
			return nil, fmt.Errorf("scan field definition row: %w", err)
		}
		defs = append(defs, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate field definition rows: %w", err)
	}

	return defs, nil
}
