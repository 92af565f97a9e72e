package analytics

import (
	"time"

	"event-insights/internal/domain"
	"event-insights/internal/leadtime"
	"event-insights/internal/money"
)

// AveragePerDay is the registration rate over the days the registration
// window has been open. 0.0 when no full day has elapsed yet.
func AveragePerDay(w leadtime.Window, count int, now time.Time) float64 {
	elapsed := w.ElapsedDays(now)
	if elapsed <= 0 {
		return 0
	}
	return money.Round2(float64(count) / float64(elapsed))
}

// DailyTarget is the per-day registration pace needed to reach the goal
// before the event starts, rounded to 1 decimal. 0.0 once the event has
// started or when no full day remains.
func DailyTarget(w leadtime.Window, goal, current int, now time.Time) float64 {
	if !w.Active(now) {
		return 0
	}
	remaining := w.DaysRemaining(now)
	if remaining <= 0 {
		return 0
	}

	needed := goal - current
	if needed < 0 {
		needed = 0
	}
	return money.Round1(float64(needed) / float64(remaining))
}

// TicketPrice is the mean normalized amount across credit transactions
// only. 0.0 when the event has no credits yet.
func TicketPrice(txs []*domain.Transaction) float64 {
	sum := 0.0
	n := 0
	for _, t := range txs {
		if !t.Credit {
			continue
		}
		sum += money.ParseAmount(t.RawAmount)
		n++
	}
	if n == 0 {
		return 0
	}
	return money.Round2(sum / float64(n))
}

// TotalRevenue is the sum of signed amounts across all revenue-eligible
// transactions, rounded to 2 decimals. Debits subtract.
func TotalRevenue(txs []*domain.Transaction) float64 {
	sum := 0.0
	for _, t := range txs {
		sum += money.Signed(money.ParseAmount(t.RawAmount), t.Credit)
	}
	return money.Round2(sum)
}
