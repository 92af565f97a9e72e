// Package leadtime centralizes date arithmetic relative to an event's
// start date. Every calculator and series builder goes through one
// Window so that "has the event started yet" is decided in exactly one
// place.
package leadtime

import "time"

const day = 24 * time.Hour

// Days returns the floor number of whole days from t until start.
// Positive means t is before start (lead time), negative means after.
// Floors toward negative infinity, matching calendar day differences.
func Days(start, t time.Time) int {
	d := start.Sub(t)
	n := int(d / day)
	if d < 0 && d%day != 0 {
		n--
	}
	return n
}

// Window is the lead-time frame of one event: from its creation to its
// start. Events are assumed created before they start.
type Window struct {
	CreatedAt time.Time
	StartsAt  time.Time
}

// MaxLead is the lead time at event creation, the top of every series
// domain. 0 or positive.
func (w Window) MaxLead() int {
	return Days(w.StartsAt, w.CreatedAt)
}

// Lead returns the lead day of an arbitrary timestamp.
func (w Window) Lead(t time.Time) int {
	return Days(w.StartsAt, t)
}

// DaysRemaining is the lead day of now, clamped at 0 once the event has
// started.
func (w Window) DaysRemaining(now time.Time) int {
	if d := Days(w.StartsAt, now); d > 0 {
		return d
	}
	return 0
}

// FloorBound is the smallest lead day a registration series covers:
// the current lead time while the event has not started, 0 afterwards.
func (w Window) FloorBound(now time.Time) int {
	return w.DaysRemaining(now)
}

// ElapsedDays is the number of days the registration window has been
// open: from creation until now, or until start once the event started.
// May be 0 or negative for events created moments ago.
func (w Window) ElapsedDays(now time.Time) int {
	end := now
	if w.StartsAt.Before(now) {
		end = w.StartsAt
	}
	return Days(end, w.CreatedAt)
}

// Active reports whether the event has not started yet.
func (w Window) Active(now time.Time) bool {
	return now.Before(w.StartsAt)
}
