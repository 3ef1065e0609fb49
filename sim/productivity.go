// Implements the paired productivity-loss accounting.
// A loss realized by one policy for a kind of disruption is queued so the
// other policy is charged the identical amount for its matching disruption.

package sim

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// DisruptionKind classifies a track closure for productivity accounting.
type DisruptionKind int

const (
	NoFireCleaning DisruptionKind = iota
	FireRepair
)

func (k DisruptionKind) String() string {
	switch k {
	case NoFireCleaning:
		return "no-fire-cleaning"
	case FireRepair:
		return "fire-repair"
	default:
		return fmt.Sprintf("disruption(%d)", int(k))
	}
}

// LossQueue is a FIFO of realized loss values awaiting the other policy.
type LossQueue struct {
	queue []float64
}

// Enqueue adds a value to the back of the queue.
func (lq *LossQueue) Enqueue(v float64) {
	lq.queue = append(lq.queue, v)
}

// Dequeue removes the value at the front. ok is false when empty.
func (lq *LossQueue) Dequeue() (v float64, ok bool) {
	if len(lq.queue) == 0 {
		return 0, false
	}
	v = lq.queue[0]
	lq.queue = lq.queue[1:]
	return v, true
}

// Len returns the number of pending values.
func (lq *LossQueue) Len() int {
	return len(lq.queue)
}

func (lq *LossQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range lq.queue {
		sb.WriteString(fmt.Sprintf("%.2f", v))
		if i < len(lq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// LossCounts tallies values per disruption kind across a replication.
type LossCounts struct {
	Generated [2]int // indexed by DisruptionKind
	Consumed  [2]int
}

// ProductivityLedger charges productivity loss to policies, sharing realized
// values between them wherever both suffer the same kind of disruption.
type ProductivityLedger struct {
	params StationParameters
	rng    *rand.Rand

	// pending[kind][producer] holds values generated by producer that the
	// other policy has not yet consumed.
	pending [2][2]LossQueue
	counts  LossCounts
}

// NewProductivityLedger creates an empty ledger drawing from rng.
func NewProductivityLedger(params StationParameters, rng *rand.Rand) *ProductivityLedger {
	return &ProductivityLedger{params: params, rng: rng}
}

// Charge returns the loss to book against policy for a disruption of kind.
// If the other policy already realized a loss of this kind that policy has not
// matched yet, that exact value is consumed and shared is true; otherwise a
// fresh value is drawn and queued for the other policy.
func (l *ProductivityLedger) Charge(policy PolicyID, kind DisruptionKind) (loss float64, shared bool) {
	if v, ok := l.pending[kind][policy.Other()].Dequeue(); ok {
		l.counts.Consumed[kind]++
		return v, true
	}
	v := l.draw(kind)
	l.pending[kind][policy].Enqueue(v)
	l.counts.Generated[kind]++
	return v, false
}

// Pending returns the number of values generated by producer and still
// waiting for the other policy.
func (l *ProductivityLedger) Pending(kind DisruptionKind, producer PolicyID) int {
	return l.pending[kind][producer].Len()
}

// Counts returns the generated/consumed tallies so far.
func (l *ProductivityLedger) Counts() LossCounts {
	return l.counts
}

// draw samples riders delayed by a closure and sums their wage loss. Each
// rider is delayed for a uniformly weighted share of the closure.
func (l *ProductivityLedger) draw(kind DisruptionKind) float64 {
	duration := l.params.CleaningMinutes
	if kind == FireRepair {
		duration = l.params.FireRepairMinutes
	}
	lambda := l.params.RidersPerMinutePerTrack() * duration
	if lambda <= 0 {
		return 0
	}
	riders := int(distuv.Poisson{Lambda: lambda, Src: l.rng}.Rand())
	loss := 0.0
	for i := 0; i < riders; i++ {
		loss += l.params.WagePerMinute * duration * l.rng.Float64()
	}
	return loss
}
