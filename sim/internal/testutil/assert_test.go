package testutil

import (
	"math"
	"testing"
)

func TestAssertFloat64Equal_WithinTolerance_Passes(t *testing.T) {
	AssertFloat64Equal(t, "close", 100.0, 100.0000001, 1e-6)
	AssertFloat64Equal(t, "zeros", 0, 0, 1e-9)
	AssertFloat64Equal(t, "inf", math.Inf(1), math.Inf(1), 1e-9)
}

func TestAssertNonNegative_AllowsZeroAndInf(t *testing.T) {
	AssertNonNegative(t, "zero", 0)
	AssertNonNegative(t, "inf", math.Inf(1))
	AssertNonNegative(t, "positive", 3.5)
}

func TestLoadGoldenDataset_HasReferenceStation(t *testing.T) {
	dataset := LoadGoldenDataset(t)

	if len(dataset.Tests) == 0 {
		t.Fatal("golden dataset has no test cases")
	}
	tc := dataset.Tests[0]
	if tc.AnnualRidership <= 0 || tc.TrackBeds <= 0 || tc.Horizon <= 0 {
		t.Errorf("incomplete golden case %+v", tc)
	}
}
