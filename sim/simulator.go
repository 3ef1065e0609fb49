// sim/simulator.go
package sim

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/mtasim/tracksim/sim/trace"
)

// residualTolerance absorbs floating-point drift when a losing clock is
// decremented by the winner's residual.
const residualTolerance = 1e-9

// Station is one replication of the paired station: both policies, the shared
// clock, the four competing residuals and the productivity ledger.
// A Station is built fresh for every replication and discarded afterwards.
type Station struct {
	Params      StationParameters
	Clock       float64 // shared simulated time in minutes
	Horizon     float64
	Replication int

	policies [2]*PolicyState

	trashResidual     float64 // shared by both policies
	scheduledResidual float64 // baseline's scheduled cleaning; +Inf if none

	// coupled is set when both fire clocks were derived from one uniform at
	// equal positive trash, and cleared whenever either clock is reset.
	coupled      bool
	simultaneous bool // set by the current dispatch

	crn    *CommonRandomNumbers
	ledger *ProductivityLedger
	trace  *trace.SimulationTrace // nil when tracing is off

	StepCount  int
	EventCount [numEventKinds]int
}

// NewStation builds the initial state of replication n: zero trash, a fresh
// trash-arrival draw, the first scheduled cleaning one period out and no
// active fire clocks. tr may be nil.
func NewStation(params StationParameters, horizon float64, n int, rng *rand.Rand, tr *trace.SimulationTrace) *Station {
	strategies := NewStrategies(params)
	s := &Station{
		Params:      params,
		Horizon:     horizon,
		Replication: n,
		crn:         NewCommonRandomNumbers(rng, params.TrashArrivalRate()),
		ledger:      NewProductivityLedger(params, rng),
		trace:       tr,
	}
	for _, id := range Policies {
		s.policies[id] = NewPolicyState(id, strategies[id])
	}
	s.trashResidual = s.crn.NextArrival()
	s.scheduledResidual = s.policies[Baseline].Strategy.InitialScheduledResidual()
	return s
}

// Policy returns the live state of one policy.
func (s *Station) Policy(id PolicyID) *PolicyState {
	return s.policies[id]
}

// Ledger returns the productivity ledger of this replication.
func (s *Station) Ledger() *ProductivityLedger {
	return s.ledger
}

// Coupled reports whether the current fire clocks share one ignition.
func (s *Station) Coupled() bool {
	return s.coupled
}

// Residuals returns the four competing clocks.
func (s *Station) Residuals() trace.Residuals {
	return trace.Residuals{
		TrashArrival:      s.trashResidual,
		ScheduledCleaning: s.scheduledResidual,
		FireBaseline:      s.policies[Baseline].FireResidual,
		FireAlt:           s.policies[Alt].FireResidual,
	}
}

func (s *Station) residualArray() [numEventKinds]float64 {
	return [numEventKinds]float64{
		TrashArrival:      s.trashResidual,
		ScheduledCleaning: s.scheduledResidual,
		FireBaseline:      s.policies[Baseline].FireResidual,
		FireAlt:           s.policies[Alt].FireResidual,
	}
}

func (s *Station) setResidual(kind EventKind, v float64) {
	switch kind {
	case TrashArrival:
		s.trashResidual = v
	case ScheduledCleaning:
		s.scheduledResidual = v
	case FireBaseline:
		s.policies[Baseline].FireResidual = v
	case FireAlt:
		s.policies[Alt].FireResidual = v
	}
}

// NextEvent returns the clock that fires next and its residual. Ties go to
// the lower EventKind.
func (s *Station) NextEvent() (EventKind, float64) {
	r := s.residualArray()
	kind := TrashArrival
	for k := TrashArrival + 1; k < numEventKinds; k++ {
		if r[k] < r[kind] {
			kind = k
		}
	}
	return kind, r[kind]
}

// Run dispatches events until the shared clock reaches the horizon. The event
// that crosses the horizon is dispatched.
func (s *Station) Run() {
	for s.Clock < s.Horizon {
		s.Step()
	}
	logrus.Debugf("[t=%.2f] replication %d ended after %d events", s.Clock, s.Replication, s.StepCount)
}

// Step advances the clock to the next event, decrements every losing clock by
// the elapsed time and dispatches the winner.
func (s *Station) Step() EventKind {
	before := s.Residuals()
	kind, elapsed := s.NextEvent()
	if elapsed < 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		panic(fmt.Sprintf("Step: invalid elapsed time %v for %s at t=%v", elapsed, kind, s.Clock))
	}

	s.Clock += elapsed
	r := s.residualArray()
	for k := TrashArrival; k < numEventKinds; k++ {
		if k == kind {
			continue
		}
		s.setResidual(k, decrement(r[k], elapsed, k))
	}

	s.simultaneous = false
	eventFor(kind).Execute(s)
	s.StepCount++
	s.EventCount[kind]++
	if s.simultaneous {
		s.EventCount[FireAlt]++
	}

	logrus.Tracef("[t=%.4f] %s elapsed=%.4f", s.Clock, kind, elapsed)
	if s.trace != nil {
		s.trace.RecordEvent(trace.EventRecord{
			Replication:   s.Replication,
			Seq:           s.StepCount - 1,
			Clock:         s.Clock,
			Kind:          kind.String(),
			Elapsed:       elapsed,
			Before:        before,
			After:         s.Residuals(),
			Coupled:       s.coupled,
			Simultaneous:  s.simultaneous,
			TrashBaseline: s.policies[Baseline].Trash,
			TrashAlt:      s.policies[Alt].Trash,
		})
	}
	return kind
}

// decrement subtracts elapsed from a losing clock. Drift below zero within
// residualTolerance is clamped; anything further is a scheduler fault.
func decrement(residual, elapsed float64, kind EventKind) float64 {
	if math.IsInf(residual, 1) {
		return residual
	}
	v := residual - elapsed
	if v < 0 {
		if v < -residualTolerance {
			panic(fmt.Sprintf("decrement: %s residual went negative (%v - %v = %v)", kind, residual, elapsed, v))
		}
		return 0
	}
	return v
}

// recomputeFireResiduals derives both fire clocks from a single shared
// uniform using each policy's own trash-driven rate.
func (s *Station) recomputeFireResiduals() {
	u := s.crn.FireDraw()
	for _, ps := range s.policies {
		ps.FireRate = s.Params.FireArrivalRateScalar * float64(ps.Trash)
		ps.FireResidual = FireResidual(u, ps.FireRate)
	}
	b, a := s.policies[Baseline], s.policies[Alt]
	s.coupled = b.Trash == a.Trash && !math.IsInf(b.FireResidual, 1)
}

// clean performs a no-fire cleaning of ps.
func (s *Station) clean(ps *PolicyState) {
	ps.Cleanings++
	ps.MaintenanceCost += s.Params.CleaningCost
	s.charge(ps, NoFireCleaning)
	ps.resetTrash()
	s.coupled = false
}

// burn records a fire on ps and the repair-cleaning that follows it.
func (s *Station) burn(ps *PolicyState) {
	logrus.Debugf("[t=%.2f] FIRE %s at trash=%d", s.Clock, ps.ID, ps.Trash)
	ps.Fires++
	ps.MaintenanceCost += s.Params.FireRepairCost
	s.charge(ps, FireRepair)
	ps.resetTrash()
	s.coupled = false
}

func (s *Station) charge(ps *PolicyState, kind DisruptionKind) {
	loss, shared := s.ledger.Charge(ps.ID, kind)
	ps.ProductivityLoss += loss
	logrus.Debugf("[t=%.2f] %s productivity loss +%.2f (%s, shared=%v)", s.Clock, ps.ID, loss, kind, shared)
	if s.trace != nil {
		s.trace.RecordCharge(trace.ChargeRecord{
			Replication: s.Replication,
			Clock:       s.Clock,
			Policy:      ps.ID.String(),
			Kind:        kind.String(),
			Amount:      loss,
			Shared:      shared,
		})
	}
}
