package storage

import (
	"context"

	"event-insights/internal/domain"
)

// EventStore provides access to events storage. Every query is scoped to
// one organization; rows outside that scope are never visible.
type EventStore interface {
	// ListByOrg retrieves all of an organization's events,
	// ordered by case-insensitive name.
	ListByOrg(ctx context.Context, orgID int64) ([]*domain.Event, error)

	// GetByID retrieves one event within the organization scope.
	// Returns ErrNotFound if the id does not resolve inside it.
	GetByID(ctx context.Context, orgID, eventID int64) (*domain.Event, error)
}

// RegistrationStore provides access to registrations storage.
// Rows are pre-filtered to counted statuses; cancelled and pending
// registrations never reach the engine.
type RegistrationStore interface {
	// ListByEvent retrieves all counted registrations for an event,
	// ordered by creation time ASC.
	ListByEvent(ctx context.Context, eventID int64) ([]*domain.Registration, error)
}

// TransactionStore provides access to transactions storage.
// Rows are pre-filtered to revenue-relevant counts-for classifications.
type TransactionStore interface {
	// ListByEvent retrieves all revenue-relevant transactions for an
	// event, ordered by occurrence time ASC.
	ListByEvent(ctx context.Context, eventID int64) ([]*domain.Transaction, error)
}

// FieldDefinitionStore provides access to dynamic-field definitions.
type FieldDefinitionStore interface {
	// ListByEvent retrieves an event's field definitions, ordered by id ASC.
	ListByEvent(ctx context.Context, eventID int64) ([]*domain.FieldDefinition, error)
}

// Sources bundles the read stores one analytics computation draws from.
// Both the live Postgres stores and an in-memory snapshot can fill it.
type Sources struct {
	Events        EventStore
	Registrations RegistrationStore
	Transactions  TransactionStore
	Fields        FieldDefinitionStore
}
