// Package snapshot provides an immutable, fully-loaded copy of one
// organization's dashboard dataset, exchanged for a new copy on refresh.
// In-flight computations keep the snapshot they started with and never
// observe a half-updated dataset.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"event-insights/internal/domain"
	"event-insights/internal/storage"
)

// Snapshot is one organization's dataset frozen at load time. Its
// accessors satisfy the storage read interfaces, so the analytics facade
// runs off it exactly as it would off the live stores. Never mutated
// after Load returns.
type Snapshot struct {
	orgID    int64
	loadedAt time.Time

	events        []*domain.Event // ordered by case-insensitive name
	eventsByID    map[int64]*domain.Event
	regsByEvent   map[int64][]*domain.Registration
	txsByEvent    map[int64][]*domain.Transaction
	fieldsByEvent map[int64][]*domain.FieldDefinition
}

// Load materializes the full dataset for one organization.
func Load(ctx context.Context, src storage.Sources, orgID int64) (*Snapshot, error) {
	events, err := src.Events.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	snap := &Snapshot{
		orgID:         orgID,
		loadedAt:      time.Now(),
		events:        events,
		eventsByID:    make(map[int64]*domain.Event, len(events)),
		regsByEvent:   make(map[int64][]*domain.Registration, len(events)),
		txsByEvent:    make(map[int64][]*domain.Transaction, len(events)),
		fieldsByEvent: make(map[int64][]*domain.FieldDefinition, len(events)),
	}

	for _, e := range events {
		snap.eventsByID[e.ID] = e

		regs, err := src.Registrations.ListByEvent(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("load registrations for event %d: %w", e.ID, err)
		}
		snap.regsByEvent[e.ID] = regs

		txs, err := src.Transactions.ListByEvent(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("load transactions for event %d: %w", e.ID, err)
		}
		snap.txsByEvent[e.ID] = txs

		fields, err := src.Fields.ListByEvent(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("load field definitions for event %d: %w", e.ID, err)
		}
		snap.fieldsByEvent[e.ID] = fields
	}

	return snap, nil
}

// OrgID returns the organization this snapshot belongs to.
func (s *Snapshot) OrgID() int64 { return s.orgID }

// LoadedAt returns when the snapshot was materialized.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Counts reports dataset sizes, for logging and gauges.
func (s *Snapshot) Counts() (events, registrations, transactions int) {
	events = len(s.events)
	for _, regs := range s.regsByEvent {
		registrations += len(regs)
	}
	for _, txs := range s.txsByEvent {
		transactions += len(txs)
	}
	return
}

// Sources exposes the snapshot through the storage read interfaces.
func (s *Snapshot) Sources() storage.Sources {
	return storage.Sources{
		Events:        eventView{s},
		Registrations: registrationView{s},
		Transactions:  transactionView{s},
		Fields:        fieldView{s},
	}
}

type eventView struct{ s *Snapshot }

func (v eventView) ListByOrg(_ context.Context, orgID int64) ([]*domain.Event, error) {
	if orgID != v.s.orgID {
		return nil, nil
	}
	out := make([]*domain.Event, len(v.s.events))
	copy(out, v.s.events)
	return out, nil
}

func (v eventView) GetByID(_ context.Context, orgID, eventID int64) (*domain.Event, error) {
	if orgID != v.s.orgID {
		return nil, storage.ErrNotFound
	}
	e, ok := v.s.eventsByID[eventID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return e, nil
}

type registrationView struct{ s *Snapshot }

func (v registrationView) ListByEvent(_ context.Context, eventID int64) ([]*domain.Registration, error) {
	return v.s.regsByEvent[eventID], nil
}

type transactionView struct{ s *Snapshot }

func (v transactionView) ListByEvent(_ context.Context, eventID int64) ([]*domain.Transaction, error) {
	return v.s.txsByEvent[eventID], nil
}

type fieldView struct{ s *Snapshot }

func (v fieldView) ListByEvent(_ context.Context, eventID int64) ([]*domain.FieldDefinition, error) {
	return v.s.fieldsByEvent[eventID], nil
}

var _ storage.EventStore = eventView{}
var _ storage.RegistrationStore = registrationView{}
var _ storage.TransactionStore = transactionView{}
var _ storage.FieldDefinitionStore = fieldView{}
