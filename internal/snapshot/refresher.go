package snapshot

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"event-insights/internal/observability"
	"event-insights/internal/storage"
)

// Refresher periodically reloads an organization's dataset and swaps the
// current snapshot atomically. Readers obtain a snapshot with Current and
// keep using it for the whole computation; a refresh never touches a
// snapshot already handed out.
type Refresher struct {
	src      storage.Sources
	orgID    int64
	interval time.Duration
	logger   *log.Logger

	current atomic.Pointer[Snapshot]
}

// NewRefresher creates a Refresher. The first snapshot is loaded by the
// initial Refresh call, not here.
func NewRefresher(src storage.Sources, orgID int64, interval time.Duration, logger *log.Logger) *Refresher {
	if logger == nil {
		logger = log.New(log.Writer(), "[refresh] ", log.LstdFlags)
	}
	return &Refresher{
		src:      src,
		orgID:    orgID,
		interval: interval,
		logger:   logger,
	}
}

// Current returns the latest complete snapshot, or nil before the first
// successful refresh.
func (r *Refresher) Current() *Snapshot {
	return r.current.Load()
}

// Refresh loads a fresh snapshot and swaps it in. On failure the
// previous snapshot stays current.
func (r *Refresher) Refresh(ctx context.Context) error {
	start := time.Now()

	snap, err := Load(ctx, r.src, r.orgID)
	if err != nil {
		observability.RecordSnapshotRefresh("error", time.Since(start).Seconds())
		return err
	}

	r.current.Store(snap)

	events, regs, txs := snap.Counts()
	observability.RecordSnapshotRefresh("success", time.Since(start).Seconds())
	observability.UpdateSnapshotStats(events, regs, txs, snap.LoadedAt())
	r.logger.Printf("snapshot refreshed in %v: %d events, %d registrations, %d transactions",
		time.Since(start), events, regs, txs)
	return nil
}

// Run refreshes immediately, then on every interval tick until the
// context is cancelled. Failed refreshes are logged and retried on the
// next tick.
func (r *Refresher) Run(ctx context.Context) error {
	if err := r.Refresh(ctx); err != nil {
		r.logger.Printf("initial snapshot load failed: %v", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				r.logger.Printf("snapshot refresh failed: %v", err)
			}
		}
	}
}
