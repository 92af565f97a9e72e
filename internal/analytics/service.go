package analytics

import (
	"context"
	"fmt"
	"time"

	"event-insights/internal/domain"
	"event-insights/internal/idhash"
	"event-insights/internal/leadtime"
	"event-insights/internal/storage"
)

// Options configures a Service.
type Options struct {
	Events        storage.EventStore
	Registrations storage.RegistrationStore
	Transactions  storage.TransactionStore
	Fields        storage.FieldDefinitionStore
	IDs           *idhash.Codec

	// Now overrides the clock; nil means time.Now. Tests use it to pin
	// lead-day arithmetic.
	Now func() time.Time
}

// Service is the analytics facade: it resolves the organization scope,
// fetches one event's records, and assembles the dashboard views.
// Each call is an independent, synchronous computation.
type Service struct {
	events storage.EventStore
	regs   storage.RegistrationStore
	txs    storage.TransactionStore
	fields storage.FieldDefinitionStore
	ids    *idhash.Codec
	now    func() time.Time
}

// NewService creates the analytics facade.
func NewService(opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		events: opts.Events,
		regs:   opts.Registrations,
		txs:    opts.Transactions,
		fields: opts.Fields,
		ids:    opts.IDs,
		now:    now,
	}
}

// ListEvents returns summaries of all of an organization's events,
// ordered by case-insensitive name. Unknown organizations get an empty
// list, not an error.
func (s *Service) ListEvents(ctx context.Context, orgID int64) ([]domain.EventSummary, error) {
	events, err := s.events.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	summaries := make([]domain.EventSummary, 0, len(events))
	for _, e := range events {
		encoded, err := s.ids.Encode(e.ID)
		if err != nil {
			return nil, fmt.Errorf("encode event id %d: %w", e.ID, err)
		}
		summaries = append(summaries, domain.EventSummary{
			ID:                  encoded,
			Name:                e.Name,
			CreatedAt:           e.CreatedAt,
			StartDate:           e.StartsAt,
			TargetRegistrations: e.TargetRegistrations,
		})
	}
	return summaries, nil
}

// Registrations returns the registration chart and KPIs for one event.
// Returns storage.ErrNotFound when the event id does not resolve within
// the organization scope.
func (s *Service) Registrations(ctx context.Context, orgID, eventID int64) (*domain.EventRegistrationView, error) {
	event, err := s.events.GetByID(ctx, orgID, eventID)
	if err != nil {
		return nil, err
	}

	regs, err := s.regs.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	encoded, err := s.ids.Encode(event.ID)
	if err != nil {
		return nil, fmt.Errorf("encode event id %d: %w", event.ID, err)
	}

	now := s.now()
	w := leadtime.Window{CreatedAt: event.CreatedAt, StartsAt: event.StartsAt}
	count := len(regs)

	return &domain.EventRegistrationView{
		ID:            encoded,
		Series:        BuildRegistrationSeries(w, regs, now),
		CurrentCount:  count,
		AveragePerDay: AveragePerDay(w, count, now),
		Target:        event.TargetRegistrations,
		DaysRemaining: w.DaysRemaining(now),
		DailyGoal:     DailyTarget(w, event.TargetRegistrations, count, now),
		IsActive:      w.Active(now),
	}, nil
}

// Revenue returns the revenue chart and KPIs for one event.
// Returns storage.ErrNotFound when the event id does not resolve within
// the organization scope.
func (s *Service) Revenue(ctx context.Context, orgID, eventID int64) (*domain.EventRevenueView, error) {
	event, err := s.events.GetByID(ctx, orgID, eventID)
	if err != nil {
		return nil, err
	}

	txs, err := s.txs.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	encoded, err := s.ids.Encode(event.ID)
	if err != nil {
		return nil, fmt.Errorf("encode event id %d: %w", event.ID, err)
	}

	w := leadtime.Window{CreatedAt: event.CreatedAt, StartsAt: event.StartsAt}

	return &domain.EventRevenueView{
		ID:           encoded,
		Series:       BuildRevenueSeries(w, txs),
		TicketPrice:  TicketPrice(txs),
		TotalRevenue: TotalRevenue(txs),
	}, nil
}

// FieldDistribution returns the dynamic-field answer distribution for
// one event. Returns storage.ErrNotFound when the event id does not
// resolve within the organization scope.
func (s *Service) FieldDistribution(ctx context.Context, orgID, eventID int64) (*domain.FieldDistributionView, error) {
	if _, err := s.events.GetByID(ctx, orgID, eventID); err != nil {
		return nil, err
	}

	defs, err := s.fields.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list field definitions: %w", err)
	}

	regs, err := s.regs.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	view := BuildFieldDistribution(defs, regs)
	return &view, nil
}
