package sim

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/mtasim/tracksim/sim/trace"
)

// PolicyOutcome is one policy's final counters for a replication.
type PolicyOutcome struct {
	Fires            int     `json:"fires"`
	Cleanings        int     `json:"cleanings"`       // scheduled (baseline) or threshold (alt)
	TotalCleanings   int     `json:"total_cleanings"` // cleanings + fire repairs
	MaintenanceCost  float64 `json:"maintenance_cost"`
	ProductivityLoss float64 `json:"productivity_loss"`
}

// ReplicationRecord is the immutable result of one yearlong replication.
type ReplicationRecord struct {
	Index     int            `json:"index"`
	EndClock  float64        `json:"end_clock"`
	Events    int            `json:"events"`
	Baseline  PolicyOutcome  `json:"baseline"`
	Alt       PolicyOutcome  `json:"alt"`
	LossCount LossCounts     `json:"-"`
	Kinds     map[string]int `json:"event_kinds"`
}

// Outcome returns the outcome of the given policy.
func (r ReplicationRecord) Outcome(id PolicyID) PolicyOutcome {
	if id == Baseline {
		return r.Baseline
	}
	return r.Alt
}

// RunReplication executes replication n of an experiment on its own stream:
// a fresh Station is built, driven to the horizon and summarized. tr may be
// nil.
func RunReplication(params StationParameters, horizon float64, n int, rng *rand.Rand, tr *trace.SimulationTrace) ReplicationRecord {
	s := NewStation(params, horizon, n, rng, tr)
	s.Run()
	return s.Record()
}

// Record snapshots the station into a ReplicationRecord.
func (s *Station) Record() ReplicationRecord {
	kinds := make(map[string]int, numEventKinds)
	for k := TrashArrival; k < numEventKinds; k++ {
		kinds[k.String()] = s.EventCount[k]
	}
	rec := ReplicationRecord{
		Index:     s.Replication,
		EndClock:  s.Clock,
		Events:    s.StepCount,
		Baseline:  s.policies[Baseline].Outcome(),
		Alt:       s.policies[Alt].Outcome(),
		LossCount: s.ledger.Counts(),
		Kinds:     kinds,
	}
	logrus.Infof("replication %d: baseline fires=%d cleanings=%d cost=%.0f loss=%.2f | alt fires=%d cleanings=%d cost=%.0f loss=%.2f",
		rec.Index,
		rec.Baseline.Fires, rec.Baseline.TotalCleanings, rec.Baseline.MaintenanceCost, rec.Baseline.ProductivityLoss,
		rec.Alt.Fires, rec.Alt.TotalCleanings, rec.Alt.MaintenanceCost, rec.Alt.ProductivityLoss)
	return rec
}
