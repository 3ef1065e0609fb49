package sim

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mtasim/tracksim/sim/trace"
)

// ExperimentConfig groups everything needed to run a paired experiment.
type ExperimentConfig struct {
	Params          StationParameters
	Horizon         float64 // minutes per replication (MinutesPerYear by default)
	Metric          Metric  // comparison metric for the stopping rule
	MinReplications int     // replications before the rule is evaluated (>= 2)
	MaxReplications int     // hard cap; 0 = run until separation
	Seed            int64
	Trace           trace.TraceConfig
}

// NewExperimentConfig returns a yearlong, uncapped experiment comparing metric.
func NewExperimentConfig(params StationParameters, metric Metric, seed int64) ExperimentConfig {
	return ExperimentConfig{
		Params:          params,
		Horizon:         MinutesPerYear,
		Metric:          metric,
		MinReplications: DefaultMinReplications,
		Seed:            seed,
		Trace:           trace.TraceConfig{Level: trace.TraceLevelNone},
	}
}

// Validate checks the configuration before any replication runs.
func (c ExperimentConfig) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return fmt.Errorf("station parameters: %w", err)
	}
	if !(c.Horizon > 0) {
		return fmt.Errorf("horizon must be positive, got %v", c.Horizon)
	}
	if !ValidMetrics[c.Metric] {
		return fmt.Errorf("unknown comparison metric %q (want fires, maintenance or productivity)", string(c.Metric))
	}
	if c.MinReplications < 2 {
		return fmt.Errorf("min replications must be at least 2, got %d", c.MinReplications)
	}
	if c.MaxReplications < 0 {
		return fmt.Errorf("max replications must be non-negative, got %d", c.MaxReplications)
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return fmt.Errorf("unknown trace level %q", string(c.Trace.Level))
	}
	return nil
}

// ExperimentResult bundles all outputs of an experiment.
type ExperimentResult struct {
	Key          SimulationKey
	Records      []ReplicationRecord
	Comparison   Metric
	Summary      map[Metric]PairedIntervals // every ReportMetrics entry
	Separated    bool
	Reason       StopReason
	Replications int

	Trace        *trace.SimulationTrace // nil if trace level is "none"
	TraceSummary *trace.TraceSummary    // nil if trace level is "none"

	WallTime time.Duration
}

// ReplicationObserver is notified after every replication, e.g. to drive a
// progress display.
type ReplicationObserver func(rec ReplicationRecord, decision StopDecision)

// RunExperiment runs replications until the stopper separates the policies or
// the cap is reached. observe may be nil.
func RunExperiment(cfg ExperimentConfig, observe ReplicationObserver) (*ExperimentResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	stopper, err := NewSequentialStopper(cfg.Metric, cfg.MinReplications, cfg.MaxReplications)
	if err != nil {
		return nil, err
	}
	if cfg.MaxReplications == 0 {
		logrus.Warnf("no replication cap set; running until %s intervals separate", cfg.Metric)
	}

	key := NewSimulationKey(cfg.Seed)
	rngs := NewPartitionedRNG(key)
	var tr *trace.SimulationTrace
	if cfg.Trace.Level == trace.TraceLevelEvents {
		tr = trace.NewSimulationTrace(cfg.Trace)
	}

	start := time.Now()
	var decision StopDecision
	for n := 0; !decision.Stop; n++ {
		var repTrace *trace.SimulationTrace
		if cfg.Trace.Enabled(n) {
			repTrace = tr
		}
		rec := RunReplication(cfg.Params, cfg.Horizon, n, rngs.ForReplication(n), repTrace)
		rngs.Release(SubsystemReplication(n))

		decision = stopper.Observe(rec)
		if observe != nil {
			observe(rec, decision)
		}
	}

	res := &ExperimentResult{
		Key:          key,
		Records:      stopper.Records(),
		Comparison:   cfg.Metric,
		Summary:      Summarize(stopper.Records(), Z95),
		Separated:    decision.Separated,
		Reason:       decision.Reason,
		Replications: stopper.Len(),
		Trace:        tr,
		WallTime:     time.Since(start),
	}
	if tr != nil {
		res.TraceSummary = trace.Summarize(tr)
	}
	logrus.Infof("experiment stopped after %d replications (%s, separated=%v)", res.Replications, res.Reason, res.Separated)
	return res, nil
}

// Summarize computes paired intervals for every report metric.
func Summarize(records []ReplicationRecord, z float64) map[Metric]PairedIntervals {
	out := make(map[Metric]PairedIntervals, len(ReportMetrics))
	for _, m := range ReportMetrics {
		out[m] = Compare(records, m, z)
	}
	return out
}
