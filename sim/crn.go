package sim

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// CommonRandomNumbers is the single source of randomness for one replication.
// Both policies consume the same trash-arrival draws and the same fire
// uniform, which pairs them for a variance-reduced comparison.
type CommonRandomNumbers struct {
	rng     *rand.Rand
	arrival distuv.Exponential
}

// NewCommonRandomNumbers wraps rng. trashRate must be positive.
func NewCommonRandomNumbers(rng *rand.Rand, trashRate float64) *CommonRandomNumbers {
	return &CommonRandomNumbers{
		rng:     rng,
		arrival: distuv.Exponential{Rate: trashRate, Src: rng},
	}
}

// NextArrival draws the time until the next shared trash arrival.
func (c *CommonRandomNumbers) NextArrival() float64 {
	return c.arrival.Rand()
}

// FireDraw returns the shared uniform for a fire-clock recompute, clamped into
// the open interval (0, 1) so the inverse transform stays finite.
func (c *CommonRandomNumbers) FireDraw() float64 {
	return clampOpenUnit(c.rng.Float64())
}

// Rand exposes the underlying stream for the productivity-loss draws.
func (c *CommonRandomNumbers) Rand() *rand.Rand {
	return c.rng
}

// FireResidual converts a shared uniform into a residual fire clock for a
// policy burning at rate. Zero rate means nothing to ignite.
func FireResidual(u, rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	return -math.Log(1-u) / rate
}

func clampOpenUnit(u float64) float64 {
	const eps = 1e-12
	switch {
	case u <= 0:
		return eps
	case u >= 1:
		return 1 - eps
	default:
		return u
	}
}
