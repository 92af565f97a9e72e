package domain

// RegistrationSeries is a cumulative count of registrations bucketed by
// lead day (days remaining before event start). Days run descending from
// the lead time at event creation down to the current lead time, or to 0
// once the event has started. Counts are monotonically non-decreasing.
// An event with no registrations yields empty slices, not a zero bucket.
type RegistrationSeries struct {
	RemainingDays []int `json:"remaining_days"`
	Counts        []int `json:"inscriptions"`
}

// RevenueSeries is cumulative signed revenue bucketed by lead day,
// ascending from 0 up to the lead time at event creation. The bucket at
// day d holds everything accrued from the earliest lead day down to and
// including d, so values grow as d shrinks. Debits can cause dips.
type RevenueSeries struct {
	RemainingDays []int     `json:"remaining_days"`
	Amounts       []float64 `json:"revenue"`
}
