package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DefaultMinReplications is the number of replications run before the
// stopping rule is first evaluated.
const DefaultMinReplications = 10

// StopReason explains why an experiment ended.
type StopReason string

const (
	StopNone      StopReason = ""
	StopSeparated StopReason = "separated"
	StopCap       StopReason = "replication-cap"
)

// StopDecision is the stopper's verdict after one replication.
type StopDecision struct {
	Stop      bool
	Reason    StopReason
	Separated bool
	Intervals PairedIntervals // zero until MinReplications is reached
}

// SequentialStopper accumulates replication records and decides when enough
// evidence separates the two policies on the comparison metric.
type SequentialStopper struct {
	Metric          Metric
	MinReplications int
	MaxReplications int // 0 = no cap
	Z               float64

	records []ReplicationRecord
}

// NewSequentialStopper validates the metric and returns an empty stopper.
func NewSequentialStopper(metric Metric, minReps, maxReps int) (*SequentialStopper, error) {
	if !ValidMetrics[metric] {
		return nil, fmt.Errorf("unknown comparison metric %q", string(metric))
	}
	if minReps < 2 {
		return nil, fmt.Errorf("min replications must be at least 2, got %d", minReps)
	}
	if maxReps < 0 {
		return nil, fmt.Errorf("max replications must be non-negative, got %d", maxReps)
	}
	return &SequentialStopper{
		Metric:          metric,
		MinReplications: minReps,
		MaxReplications: maxReps,
		Z:               Z95,
	}, nil
}

// Observe appends rec and decides whether to stop. Separation is checked
// first; the cap forces a stop regardless of it.
func (st *SequentialStopper) Observe(rec ReplicationRecord) StopDecision {
	st.records = append(st.records, rec)
	n := len(st.records)

	var d StopDecision
	if n >= st.MinReplications {
		d.Intervals = Compare(st.records, st.Metric, st.Z)
		d.Separated = d.Intervals.Separated
		logrus.Debugf("after %d replications %s: baseline %.4f +/- %.4f, alt %.4f +/- %.4f",
			n, st.Metric, d.Intervals.Baseline.Mean, d.Intervals.Baseline.HalfWidth, d.Intervals.Alt.Mean, d.Intervals.Alt.HalfWidth)
		if d.Separated {
			logrus.Infof("%s windows no longer overlap after %d replications", st.Metric, n)
			d.Stop, d.Reason = true, StopSeparated
			return d
		}
	}
	if st.MaxReplications > 0 && n >= st.MaxReplications {
		d.Stop, d.Reason = true, StopCap
	}
	return d
}

// Records returns the accumulated history. Callers must not modify it.
func (st *SequentialStopper) Records() []ReplicationRecord {
	return st.records
}

// Len returns the number of observed replications.
func (st *SequentialStopper) Len() int {
	return len(st.records)
}
