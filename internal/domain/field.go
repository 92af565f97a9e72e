package domain

// FieldDefinition represents an organization-defined custom question
// attached to one event. Registrant answers live in the registration's
// serialized blob, keyed by the definition id.
// Corresponds to the event_fields table in PostgreSQL.
type FieldDefinition struct {
	ID      int64  // PRIMARY KEY, the key used in answer blobs
	EventID int64  // owning event
	Label   string // human-readable question label
}
