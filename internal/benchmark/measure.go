// Package benchmark times the sales report query before and after the
// customer segment index is applied.
package benchmark

import (
	"math"
	"time"
)

// Measure runs fn and returns its result with the wall time it took.
func Measure[T any](fn func() (T, error)) (T, time.Duration, error) {
	start := time.Now()
	v, err := fn()
	return v, time.Since(start), err
}

// Outcome classifies a before/after comparison.
type Outcome string

// Comparison outcomes.
const (
	OutcomeImproved     Outcome = "improved"
	OutcomeNotImproved  Outcome = "not_improved"
	OutcomeInconclusive Outcome = "inconclusive"
)

// Comparison is the verdict on two timings of the same report.
type Comparison struct {
	Before time.Duration `json:"-"`
	After  time.Duration `json:"-"`

	// ReductionPercent is positive for an improvement, -1 when the
	// optimized run was not faster and 0 when inconclusive.
	ReductionPercent float64 `json:"reduction_percent"`
	Outcome          Outcome `json:"outcome"`
}

// Compare classifies the timings of the legacy and optimized runs.
func Compare(before, after time.Duration) Comparison {
	c := Comparison{Before: before, After: after}
	switch {
	case before <= 0 || after <= 0:
		c.Outcome = OutcomeInconclusive
	case after < before:
		c.Outcome = OutcomeImproved
		c.ReductionPercent = float64(before-after) / float64(before) * 100
	default:
		c.Outcome = OutcomeNotImproved
		c.ReductionPercent = -1
	}
	return c
}

// Milliseconds converts d to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return math.Round(float64(d)/float64(time.Microsecond)) / 1000
}
