package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible experiment.
// Two experiments with the same SimulationKey and identical StationParameters
// MUST produce bit-for-bit identical ReplicationRecords.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

// SubsystemReplication returns the stream name for replication n.
// Every replication draws from its own stream so that any replication can be
// replayed in isolation.
func SubsystemReplication(n int) string {
	return fmt.Sprintf("replication_%d", n)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG streams per subsystem.
//
// Derivation formula: the stream for a subsystem is a PCG generator seeded with
// (masterSeed, masterSeed XOR fnv1a64(subsystemName)).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := newRandFromSeeds(uint64(p.key), uint64(int64(p.key)^fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// ForReplication is shorthand for ForSubsystem(SubsystemReplication(n)).
func (p *PartitionedRNG) ForReplication(n int) *rand.Rand {
	return p.ForSubsystem(SubsystemReplication(n))
}

// Release drops the cached stream for name. Replications are never replayed
// within one experiment, so the runner releases each stream once its record
// is built.
func (p *PartitionedRNG) Release(name string) {
	delete(p.subsystems, name)
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func newRandFromSeeds(seed1, seed2 uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed1, seed2))
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
