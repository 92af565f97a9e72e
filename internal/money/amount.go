// Package money normalizes locale-formatted monetary amounts and applies
// the credit/debit sign convention.
package money

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount parses a raw amount that uses "," as the decimal separator.
// Anything that does not parse (including the empty string) is 0.0 so that
// one bad record never aborts a whole computation.
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Signed applies the sign convention: credits count positive, debits
// negative. A missing credit flag is a debit.
func Signed(amount float64, credit bool) float64 {
	if credit {
		return amount
	}
	return -amount
}

// Round2 rounds to 2 decimal places. Used only when externalizing sums,
// never mid-computation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to 1 decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
