package domain

import "time"

// Registration represents one counted registration for an event.
// Rows are pre-filtered upstream to valid statuses only; the engine
// never re-checks status or cancellation flags.
// Corresponds to the registrations table in PostgreSQL.
type Registration struct {
	ID        int64     // PRIMARY KEY
	EventID   int64     // owning event
	CreatedAt time.Time // registration timestamp
	// RawDynamicFields is the registrant's serialized dynamic-field answers,
	// zero or more "<field_id>: <value>" lines. May be empty.
	RawDynamicFields string
}
