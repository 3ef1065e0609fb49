package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mtasim/tracksim/sim/internal/testutil"
)

func TestNewInterval(t *testing.T) {
	iv := NewInterval([]float64{2, 4, 4, 4, 5, 5, 7, 9}, Z95)

	// sample stddev (n-1) of this set is sqrt(32/7)
	std := math.Sqrt(32.0 / 7)
	assert.Equal(t, 8, iv.N)
	testutil.AssertFloat64Equal(t, "mean", 5, iv.Mean, 1e-12)
	testutil.AssertFloat64Equal(t, "stddev", std, iv.StdDev, 1e-12)
	testutil.AssertFloat64Equal(t, "half-width", 1.96*std/math.Sqrt(8), iv.HalfWidth, 1e-12)
	testutil.AssertFloat64Equal(t, "lower", 5-iv.HalfWidth, iv.Lower(), 1e-12)
	testutil.AssertFloat64Equal(t, "upper", 5+iv.HalfWidth, iv.Upper(), 1e-12)
}

func TestNewInterval_FewSamples(t *testing.T) {
	assert.Equal(t, Interval{}, NewInterval(nil, Z95))
	assert.Equal(t, Interval{N: 1, Mean: 3}, NewInterval([]float64{3}, Z95))
}

func TestSeparated(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{Mean: 1, HalfWidth: 0.5}, Interval{Mean: 3, HalfWidth: 0.5}, true},
		{"disjoint reversed", Interval{Mean: 3, HalfWidth: 0.5}, Interval{Mean: 1, HalfWidth: 0.5}, true},
		{"overlapping", Interval{Mean: 1, HalfWidth: 1.5}, Interval{Mean: 3, HalfWidth: 1}, false},
		{"touching is not separated", Interval{Mean: 1, HalfWidth: 1}, Interval{Mean: 3, HalfWidth: 1}, false},
		{"identical degenerate", Interval{Mean: 2}, Interval{Mean: 2}, false},
		{"distinct degenerate", Interval{Mean: 2}, Interval{Mean: 2.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Separated(tt.a, tt.b))
		})
	}
}

func TestMetric_Value(t *testing.T) {
	o := PolicyOutcome{Fires: 2, Cleanings: 5, TotalCleanings: 7, MaintenanceCost: 110000, ProductivityLoss: 42.5}

	assert.Equal(t, 2.0, MetricFires.Value(o))
	assert.Equal(t, 5.0, MetricCleanings.Value(o))
	assert.Equal(t, 7.0, MetricTotalCleanings.Value(o))
	assert.Equal(t, 110000.0, MetricMaintenance.Value(o))
	assert.Equal(t, 42.5, MetricProductivity.Value(o))
	assert.Panics(t, func() { Metric("cost").Value(o) })
}

func TestIsValidMetric_OnlyComparisonMetrics(t *testing.T) {
	assert.True(t, IsValidMetric("fires"))
	assert.True(t, IsValidMetric("maintenance"))
	assert.True(t, IsValidMetric("productivity"))
	assert.False(t, IsValidMetric("cleanings"))
	assert.False(t, IsValidMetric(""))
}

func TestCompare_UsesEachPolicysSeries(t *testing.T) {
	records := []ReplicationRecord{
		recordWith(1, 10), recordWith(2, 10), recordWith(3, 10),
	}

	pi := Compare(records, MetricMaintenance, Z95)

	testutil.AssertFloat64Equal(t, "baseline mean", 2, pi.Baseline.Mean, 1e-12)
	testutil.AssertFloat64Equal(t, "alt mean", 10, pi.Alt.Mean, 1e-12)
	assert.Equal(t, 0.0, pi.Alt.HalfWidth)
	assert.True(t, pi.Separated)
}

// recordWith builds a record whose maintenance costs are the given values.
func recordWith(baseline, alt float64) ReplicationRecord {
	return ReplicationRecord{
		Baseline: PolicyOutcome{MaintenanceCost: baseline},
		Alt:      PolicyOutcome{MaintenanceCost: alt},
	}
}
