package domain

import "time"

// Event represents an organization's event.
// Corresponds to the events table in PostgreSQL.
type Event struct {
	ID                  int64     // PRIMARY KEY
	OrgID               int64     // owning organization
	Name                string    // display title
	CreatedAt           time.Time // when the event was opened for registration
	StartsAt            time.Time // event start date
	TargetRegistrations int       // registration goal (0 = no goal)
}
