package sim

import (
	"math"

	"github.com/mtasim/tracksim/sim/trace"
)

// regressionParams is the reference station: 20M riders on one track bed,
// alt threshold 6000, baseline cleaning every 60000 minutes.
func regressionParams() StationParameters {
	return NewStationParameters(20_000_000, 1, 6000, 60000)
}

// quickParams is a station with free, instantaneous closures so that
// productivity draws do not dominate test runtime.
func quickParams() StationParameters {
	p := regressionParams()
	p.CleaningMinutes = 0
	p.FireRepairMinutes = 0
	return p
}

// newTestStation builds replication 0 of seed on its own stream.
func newTestStation(params StationParameters, horizon float64, seed int64, tr *trace.SimulationTrace) *Station {
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	return NewStation(params, horizon, 0, rng.ForReplication(0), tr)
}

// eventTrace returns a trace that records every event.
func eventTrace() *trace.SimulationTrace {
	return trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
}

// freeze parks the shared arrival and scheduled clocks far in the future so a
// test can race only the fire clocks.
func freeze(s *Station) {
	s.trashResidual = 1e15
	s.scheduledResidual = math.Inf(1)
}
