// sim/stats.go
package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Z95 is the two-sided 95% normal critical value.
const Z95 = 1.96

// Metric selects a per-replication outcome to compare between policies.
type Metric string

const (
	MetricFires          Metric = "fires"
	MetricMaintenance    Metric = "maintenance"
	MetricProductivity   Metric = "productivity"
	MetricCleanings      Metric = "cleanings"
	MetricTotalCleanings Metric = "total-cleanings"
)

// ValidMetrics is the set of metrics accepted as the stopping comparison.
var ValidMetrics = map[Metric]bool{MetricFires: true, MetricMaintenance: true, MetricProductivity: true}

// ReportMetrics lists every metric summarized at the end of an experiment.
var ReportMetrics = []Metric{MetricFires, MetricCleanings, MetricTotalCleanings, MetricMaintenance, MetricProductivity}

// IsValidMetric returns true if name is an accepted comparison metric.
func IsValidMetric(name string) bool {
	return ValidMetrics[Metric(name)]
}

// Value extracts the metric from a policy outcome.
func (m Metric) Value(o PolicyOutcome) float64 {
	switch m {
	case MetricFires:
		return float64(o.Fires)
	case MetricMaintenance:
		return o.MaintenanceCost
	case MetricProductivity:
		return o.ProductivityLoss
	case MetricCleanings:
		return float64(o.Cleanings)
	case MetricTotalCleanings:
		return float64(o.TotalCleanings)
	default:
		panic(fmt.Sprintf("Metric.Value: unknown metric %q", string(m)))
	}
}

// Series returns the metric for one policy across records, in order.
func (m Metric) Series(records []ReplicationRecord, id PolicyID) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = m.Value(r.Outcome(id))
	}
	return out
}

// Interval is a normal-approximation confidence interval around a sample mean.
type Interval struct {
	N         int     `json:"n"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"stddev"`
	HalfWidth float64 `json:"half_width"`
}

// NewInterval computes mean, sample standard deviation (n-1) and the
// half-width z*stddev/sqrt(n). Fewer than two samples give zero spread.
func NewInterval(data []float64, z float64) Interval {
	n := len(data)
	if n == 0 {
		return Interval{}
	}
	if n == 1 {
		return Interval{N: 1, Mean: data[0]}
	}
	mean, std := stat.MeanStdDev(data, nil)
	return Interval{
		N:         n,
		Mean:      mean,
		StdDev:    std,
		HalfWidth: z * std / math.Sqrt(float64(n)),
	}
}

// Lower is the lower confidence bound.
func (iv Interval) Lower() float64 { return iv.Mean - iv.HalfWidth }

// Upper is the upper confidence bound.
func (iv Interval) Upper() float64 { return iv.Mean + iv.HalfWidth }

// Separated reports whether two intervals no longer overlap: the upper bound
// of the lower-mean interval lies strictly below the lower bound of the other.
func Separated(a, b Interval) bool {
	lo, hi := a, b
	if b.Mean < a.Mean {
		lo, hi = b, a
	}
	return lo.Upper() < hi.Lower()
}

// PairedIntervals holds the interval of one metric for both policies.
type PairedIntervals struct {
	Baseline  Interval `json:"baseline"`
	Alt       Interval `json:"alt"`
	Separated bool     `json:"separated"`
}

// Compare computes both policies' intervals of m over records.
func Compare(records []ReplicationRecord, m Metric, z float64) PairedIntervals {
	b := NewInterval(m.Series(records, Baseline), z)
	a := NewInterval(m.Series(records, Alt), z)
	return PairedIntervals{Baseline: b, Alt: a, Separated: Separated(b, a)}
}
