package clickhouse

import (
	"context"
	"fmt"
	"time"

	"event-insights/internal/domain"
)

// ArchiveStore mirrors registration and transaction rows into the BI
// warehouse. Re-exports are idempotent: the archive tables are
// ReplacingMergeTree keyed by row id, so the latest export wins.
type ArchiveStore struct {
	conn *Conn
}

// NewArchiveStore creates a new ArchiveStore.
func NewArchiveStore(conn *Conn) *ArchiveStore {
	return &ArchiveStore{conn: conn}
}

// ArchiveRegistrations appends an event's registrations to the archive.
func (s *ArchiveStore) ArchiveRegistrations(ctx context.Context, orgID int64, regs []*domain.Registration) error {
	if len(regs) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO registrations_archive (id, event_id, org_id, created_at, exported_at)
	`)
	if err != nil {
		return fmt.Errorf("prepare registrations batch: %w", err)
	}

	exportedAt := time.Now().UTC()
	for _, r := range regs {
		err = batch.Append(
			r.ID,
			r.EventID,
			orgID,
			r.CreatedAt,
			exportedAt,
		)
		if err != nil {
			return fmt.Errorf("append registration to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send registrations batch: %w", err)
	}
	return nil
}

// ArchiveTransactions appends an event's transactions to the archive.
func (s *ArchiveStore) ArchiveTransactions(ctx context.Context, orgID int64, txs []*domain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO transactions_archive (id, registration_id, event_id, org_id, raw_amount, credit, occurred_at, exported_at)
	`)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	exportedAt := time.Now().UTC()
	for _, t := range txs {
		credit := uint8(0)
		if t.Credit {
			credit = 1
		}
		err = batch.Append(
			t.ID,
			t.RegistrationID,
			t.EventID,
			orgID,
			t.RawAmount,
			credit,
			t.OccurredAt,
			exportedAt,
		)
		if err != nil {
			return fmt.Errorf("append transaction to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send transactions batch: %w", err)
	}
	return nil
}
