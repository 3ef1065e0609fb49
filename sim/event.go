package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// EventKind identifies one of the four competing clocks of a replication.
// The ordinal is the tie-break priority: lower kinds dispatch first.
type EventKind int

const (
	TrashArrival EventKind = iota
	ScheduledCleaning
	FireBaseline
	FireAlt

	numEventKinds = 4
)

func (k EventKind) String() string {
	switch k {
	case TrashArrival:
		return "trash-arrival"
	case ScheduledCleaning:
		return "scheduled-cleaning"
	case FireBaseline:
		return "fire-baseline"
	case FireAlt:
		return "fire-alt"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event defines the interface for all simulation events.
// Each event knows which residual clock it owns and applies its effect to the
// station when that clock wins the race.
type Event interface {
	Kind() EventKind
	Execute(*Station)
}

// TrashArrivalEvent is one unit of trash landing on the track bed, observed
// by both policies.
type TrashArrivalEvent struct{}

func (e *TrashArrivalEvent) Kind() EventKind { return TrashArrival }

// Execute draws the next shared arrival, adds the trash to both policies,
// lets each strategy clean on the spot, then recomputes both fire clocks from
// one shared uniform.
func (e *TrashArrivalEvent) Execute(s *Station) {
	s.trashResidual = s.crn.NextArrival()
	for _, ps := range s.policies {
		ps.Trash++
	}
	for _, ps := range s.policies {
		if ps.Strategy.OnTrashArrival(ps) {
			logrus.Debugf("[t=%.2f] %s %s cleaning at trash=%d", s.Clock, ps.ID, ps.Strategy.Name(), ps.Trash)
			s.clean(ps)
		}
	}
	s.recomputeFireResiduals()
}

// ScheduledCleaningEvent is the baseline policy's fixed-period cleaning.
type ScheduledCleaningEvent struct{}

func (e *ScheduledCleaningEvent) Kind() EventKind { return ScheduledCleaning }

// Execute cleans the baseline track bed and restarts the period.
func (e *ScheduledCleaningEvent) Execute(s *Station) {
	ps := s.policies[Baseline]
	logrus.Debugf("[t=%.2f] baseline scheduled cleaning at trash=%d", s.Clock, ps.Trash)
	s.scheduledResidual = ps.Strategy.NextScheduledResidual()
	s.clean(ps)
}

// FireEvent is an ignition on one policy's track bed.
type FireEvent struct {
	Policy PolicyID
}

func (e *FireEvent) Kind() EventKind {
	if e.Policy == Baseline {
		return FireBaseline
	}
	return FireAlt
}

// Execute repairs the burning policy. A baseline fire whose clock came from
// the same draw at the same trash level as alt's is the same ignition, so alt
// burns in the same step.
func (e *FireEvent) Execute(s *Station) {
	simultaneous := e.Policy == Baseline && s.coupled
	s.burn(s.policies[e.Policy])
	if simultaneous {
		s.burn(s.policies[Alt])
		s.simultaneous = true
	}
}

// eventFor returns the handler for the clock that won the race.
func eventFor(kind EventKind) Event {
	switch kind {
	case TrashArrival:
		return &TrashArrivalEvent{}
	case ScheduledCleaning:
		return &ScheduledCleaningEvent{}
	case FireBaseline:
		return &FireEvent{Policy: Baseline}
	case FireAlt:
		return &FireEvent{Policy: Alt}
	default:
		panic(fmt.Sprintf("eventFor: unknown event kind %d", int(kind)))
	}
}
