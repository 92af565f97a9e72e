package domain

import "time"

// Transaction represents one revenue-relevant monetary movement on a
// registration. Rows are pre-filtered upstream by counts-for classification.
// Corresponds to the transactions table in PostgreSQL.
type Transaction struct {
	ID             int64     // PRIMARY KEY
	RegistrationID int64     // owning registration
	EventID        int64     // owning event (denormalized through the registration)
	RawAmount      string    // locale-formatted amount, "," decimal separator
	Credit         bool      // true = money in, false = money out
	OccurredAt     time.Time // transaction timestamp
}
