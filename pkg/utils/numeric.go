package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCount is returned when a count value cannot be parsed.
var ErrInvalidCount = errors.New("invalid count value")

// suffixMultipliers maps magnitude suffixes used by platform APIs to their numeric value.
var suffixMultipliers = map[byte]float64{
	'k': 1_000,
	'm': 1_000_000,
	'b': 1_000_000_000,
}

// ParseApproxCount converts counts like "1.2M", "853k" or "1204" to an int64.
// Platform APIs report member and karma counts either as raw numbers or as
// suffixed strings; everything downstream works with the canonical numeric form.
func ParseApproxCount(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, ErrInvalidCount
	}

	multiplier := 1.0
	if m, ok := suffixMultipliers[s[len(s)-1]]; ok {
		multiplier = m
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, ErrInvalidCount
	}

	return int64(math.Round(value * multiplier)), nil
}

// ClampScore bounds a raw score to the closed interval [0, 100] and rounds
// it to an integer. NaN maps to the neutral midpoint 50.
func ClampScore(raw float64) int {
	if math.IsNaN(raw) {
		return 50
	}

	return int(math.Max(0, math.Min(100, math.Round(raw))))
}

// Median returns the median of values. Values must be sorted ascending.
// Returns 0 for an empty slice.
func Median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}
