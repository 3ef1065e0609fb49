package sim

import (
	"fmt"
	"math"
)

// PolicyID names one of the two compared maintenance policies.
type PolicyID int

const (
	Baseline PolicyID = iota // fixed-period cleaning
	Alt                      // trash-threshold cleaning
)

// Policies lists both policies in dispatch-priority order.
var Policies = [2]PolicyID{Baseline, Alt}

func (id PolicyID) String() string {
	switch id {
	case Baseline:
		return "baseline"
	case Alt:
		return "alt"
	default:
		return fmt.Sprintf("policy(%d)", int(id))
	}
}

// Other returns the policy this one is paired against.
func (id PolicyID) Other() PolicyID {
	if id == Baseline {
		return Alt
	}
	return Baseline
}

// PolicyState is the mutable record of one policy within a replication.
// Both policies use this same structure; behaviour differs only through the
// CleaningStrategy attached to it.
type PolicyState struct {
	ID       PolicyID
	Strategy CleaningStrategy

	Trash            int64   // aggregate trash on the track bed
	Cleanings        int     // policy-triggered no-fire cleanings
	Fires            int     // fires, each followed by a repair-cleaning
	MaintenanceCost  float64 // cumulative maintenance spend
	ProductivityLoss float64 // cumulative rider productivity loss

	FireRate     float64 // current fire rate, proportional to Trash
	FireResidual float64 // time to next fire; +Inf when no clock is active
}

// NewPolicyState returns a zeroed state with no active fire clock.
func NewPolicyState(id PolicyID, strategy CleaningStrategy) *PolicyState {
	return &PolicyState{
		ID:           id,
		Strategy:     strategy,
		FireResidual: math.Inf(1),
	}
}

// TotalCleanings counts every cleaning, including the repair after a fire.
func (ps *PolicyState) TotalCleanings() int {
	return ps.Cleanings + ps.Fires
}

// resetTrash empties the track bed and clears the fire clock. The clock is
// recomputed at the next trash arrival.
func (ps *PolicyState) resetTrash() {
	ps.Trash = 0
	ps.FireRate = 0
	ps.FireResidual = math.Inf(1)
}

// Outcome snapshots the counters for a ReplicationRecord.
func (ps *PolicyState) Outcome() PolicyOutcome {
	return PolicyOutcome{
		Fires:            ps.Fires,
		Cleanings:        ps.Cleanings,
		TotalCleanings:   ps.TotalCleanings(),
		MaintenanceCost:  ps.MaintenanceCost,
		ProductivityLoss: ps.ProductivityLoss,
	}
}

// CleaningStrategy decides when a policy cleans its track bed outside of
// fire repairs.
type CleaningStrategy interface {
	// Name identifies the strategy in logs and reports.
	Name() string
	// OnTrashArrival is called after the state's trash count was incremented
	// and reports whether an immediate cleaning is due.
	OnTrashArrival(state *PolicyState) bool
	// InitialScheduledResidual is the time to the first scheduled cleaning,
	// or +Inf for strategies that never schedule one.
	InitialScheduledResidual() float64
	// NextScheduledResidual is the residual installed after a scheduled
	// cleaning fires.
	NextScheduledResidual() float64
}

// PeriodicCleaning cleans every Period minutes regardless of trash level.
type PeriodicCleaning struct {
	Period float64
}

func (p *PeriodicCleaning) Name() string                       { return "periodic" }
func (p *PeriodicCleaning) OnTrashArrival(_ *PolicyState) bool { return false }
func (p *PeriodicCleaning) InitialScheduledResidual() float64  { return p.Period }
func (p *PeriodicCleaning) NextScheduledResidual() float64     { return p.Period }

// ThresholdCleaning cleans as soon as trash exceeds Threshold.
type ThresholdCleaning struct {
	Threshold int64
}

func (t *ThresholdCleaning) Name() string { return "threshold" }

func (t *ThresholdCleaning) OnTrashArrival(state *PolicyState) bool {
	return state.Trash > t.Threshold
}

func (t *ThresholdCleaning) InitialScheduledResidual() float64 { return math.Inf(1) }
func (t *ThresholdCleaning) NextScheduledResidual() float64    { return math.Inf(1) }

// NewStrategies builds the baseline and alt strategies described by params.
func NewStrategies(params StationParameters) [2]CleaningStrategy {
	return [2]CleaningStrategy{
		Baseline: &PeriodicCleaning{Period: params.CleaningPeriod},
		Alt:      &ThresholdCleaning{Threshold: params.TrashThreshold},
	}
}
