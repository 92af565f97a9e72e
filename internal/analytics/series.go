// Package analytics turns raw registration and transaction records into
// the lead-day series, KPIs, and answer distributions behind the event
// dashboard. Everything here is a pure transformation over data already
// materialized in memory; no I/O, no shared state between computations.
package analytics

import (
	"time"

	"event-insights/internal/domain"
	"event-insights/internal/leadtime"
	"event-insights/internal/money"
)

// BuildRegistrationSeries converts registrations into a cumulative
// count series bucketed by lead day, descending from the lead time at
// event creation down to the current lead time (or 0 once the event has
// started). The bucket at day d counts every registration with lead day
// >= d; the final bucket is force-set to the true total so registrations
// falling outside the computed floor are never lost.
func BuildRegistrationSeries(w leadtime.Window, regs []*domain.Registration, now time.Time) domain.RegistrationSeries {
	series := domain.RegistrationSeries{
		RemainingDays: []int{},
		Counts:        []int{},
	}
	if len(regs) == 0 {
		return series
	}

	maxLead := w.MaxLead()
	floor := w.FloorBound(now)

	perDay := make(map[int]int)
	for _, r := range regs {
		d := w.Lead(r.CreatedAt)
		if d > maxLead {
			// Registered before the event was opened; fold into the top bucket.
			d = maxLead
		}
		perDay[d]++
	}

	sum := 0
	for day := maxLead; day >= floor; day-- {
		sum += perDay[day]
		series.RemainingDays = append(series.RemainingDays, day)
		series.Counts = append(series.Counts, sum)
	}

	// Registrations with lead days below the floor (e.g. made after the
	// event started) are missing from the walk above; the last bucket
	// always reports the full count.
	if n := len(series.Counts); n > 0 {
		series.Counts[n-1] = len(regs)
	}

	return series
}

// BuildRevenueSeries converts transactions into cumulative signed
// revenue bucketed by lead day, presented ascending over [0, maxLead].
// The bucket at day d sums everything with lead day >= d, so values at
// small lead days carry all revenue accrued while approaching the event.
// Bucket values are rounded to 2 decimals only on the way out.
func BuildRevenueSeries(w leadtime.Window, txs []*domain.Transaction) domain.RevenueSeries {
	series := domain.RevenueSeries{
		RemainingDays: []int{},
		Amounts:       []float64{},
	}
	if len(txs) == 0 {
		return series
	}

	maxLead := w.MaxLead()

	perDay := make([]float64, maxLead+1)
	for _, t := range txs {
		d := w.Lead(t.OccurredAt)
		if d < 0 || d > maxLead {
			// Outside the chartable window; still part of TotalRevenue.
			continue
		}
		perDay[d] += money.Signed(money.ParseAmount(t.RawAmount), t.Credit)
	}

	series.RemainingDays = make([]int, maxLead+1)
	series.Amounts = make([]float64, maxLead+1)

	cum := 0.0
	for day := maxLead; day >= 0; day-- {
		cum += perDay[day]
		series.RemainingDays[day] = day
		series.Amounts[day] = money.Round2(cum)
	}

	return series
}
