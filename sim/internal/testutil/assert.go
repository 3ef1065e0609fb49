// Package testutil provides shared test helpers for the tracksim engine.
// It consolidates the golden dataset loader and float-tolerance assertions
// used across the sim/ tests.
package testutil

import (
	"math"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	if math.IsInf(want, 0) || math.IsInf(got, 0) {
		if want != got {
			t.Errorf("%s: got %v, want %v", name, got, want)
		}
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertNonNegative fails when v is negative or NaN. +Inf is allowed.
func AssertNonNegative(t *testing.T, name string, v float64) {
	t.Helper()
	if math.IsNaN(v) || v < 0 {
		t.Errorf("%s: got %v, want >= 0", name, v)
	}
}
