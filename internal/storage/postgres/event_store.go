package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"event-insights/internal/domain"
	"event-insights/internal/storage"
)

// EventStore implements storage.EventStore using PostgreSQL.
type EventStore struct {
	pool *Pool
}

// NewEventStore creates a new EventStore.
func NewEventStore(pool *Pool) *EventStore {
	return &EventStore{pool: pool}
}

// Compile-time interface check.
var _ storage.EventStore = (*EventStore)(nil)

// Insert adds a new event. Returns ErrDuplicateKey if the id exists.
func (s *EventStore) Insert(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (
			id, org_id, name, created_at, starts_at, target_registrations
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		e.ID,
		e.OrgID,
		e.Name,
		e.CreatedAt,
		e.StartsAt,
		e.TargetRegistrations,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// ListByOrg retrieves all of an organization's events, ordered by
// case-insensitive name.
func (s *EventStore) ListByOrg(ctx context.Context, orgID int64) ([]*domain.Event, error) {
	query := `
		SELECT id, org_id, name, created_at, starts_at, target_registrations
		FROM events
		WHERE org_id = $1
		ORDER BY LOWER(name) ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list events by org: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetByID retrieves one event within the organization scope.
// Returns ErrNotFound if the id does not resolve inside it.
func (s *EventStore) GetByID(ctx context.Context, orgID, eventID int64) (*domain.Event, error) {
	query := `
		SELECT id, org_id, name, created_at, starts_at, target_registrations
		FROM events
		WHERE id = $1 AND org_id = $2
	`

	row := s.pool.QueryRow(ctx, query, eventID, orgID)
	e, err := scanEvent(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return e, nil
}

// scanEvent scans a single row into an Event.
func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event

	err := row.Scan(
		&e.ID,
		&e.OrgID,
		&e.Name,
		&e.CreatedAt,
		&e.StartsAt,
		&e.TargetRegistrations,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// scanEvents scans multiple rows into a slice of Event.
func scanEvents(rows pgx.Rows) ([]*domain.Event, error) {
	var events []*domain.Event

	for rows.Next() {
		var e domain.Event

		err := rows.Scan(
			&e.ID,
			&e.OrgID,
			&e.Name,
			&e.CreatedAt,
			&e.StartsAt,
			&e.TargetRegistrations,
		)
		if err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}

	return events, nil
}
