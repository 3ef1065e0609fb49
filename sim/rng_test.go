package sim

import (
	"math"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// BDD: Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 3; i++ {
		v1 := rng1.ForReplication(0).Float64()
		v2 := rng2.ForReplication(0).Float64()
		if v1 != v2 {
			t.Errorf("Value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// BDD: Drawing from replication A doesn't affect replication B
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	rngB := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 10; i++ {
		rngA.ForReplication(0).Float64()
	}
	aFirst := rngA.ForReplication(1).Float64()
	bFirst := rngB.ForReplication(1).Float64()

	if aFirst != bFirst {
		t.Errorf("replication 1 first value = %v, want %v (isolation broken)", aFirst, bFirst)
	}
}

func TestPartitionedRNG_DistinctReplicationsDiffer(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	if rng.ForReplication(0).Float64() == rng.ForReplication(1).Float64() {
		t.Error("replications 0 and 1 produced the same first value")
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	// BDD: Same name returns same *rand.Rand instance
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if rng.ForReplication(3) != rng.ForSubsystem(SubsystemReplication(3)) {
		t.Error("ForSubsystem returned different instances for same name")
	}
}

func TestPartitionedRNG_Release_RestartsStream(t *testing.T) {
	// GIVEN a stream that has been drawn from
	rng := NewPartitionedRNG(NewSimulationKey(7))
	first := rng.ForReplication(0).Float64()
	rng.ForReplication(0).Float64()

	// WHEN it is released and requested again
	rng.Release(SubsystemReplication(0))

	// THEN the stream restarts from its first value
	if got := rng.ForReplication(0).Float64(); got != first {
		t.Errorf("after Release first value = %v, want %v", got, first)
	}
	if len(rng.subsystems) != 1 {
		t.Errorf("have %d cached subsystems, want 1", len(rng.subsystems))
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_NegativeSeed(t *testing.T) {
	// BDD: MinInt64 seed works correctly
	rng := NewPartitionedRNG(NewSimulationKey(math.MinInt64))

	val := rng.ForReplication(0).Float64()
	if val < 0 || val >= 1 {
		t.Errorf("Float64() returned %v, want [0, 1)", val)
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	// BDD: Subsystems map is empty until ForSubsystem is called
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if len(rng.subsystems) != 0 {
		t.Errorf("New PartitionedRNG has %d subsystems, want 0", len(rng.subsystems))
	}

	rng.ForReplication(0)

	if len(rng.subsystems) != 1 {
		t.Errorf("After one ForSubsystem call, have %d subsystems, want 1", len(rng.subsystems))
	}
}

// === fnv1a64 Tests ===

func TestFnv1a64_Deterministic(t *testing.T) {
	input := "replication_0"
	if fnv1a64(input) != fnv1a64(input) {
		t.Errorf("fnv1a64(%q) not deterministic", input)
	}
}

func TestFnv1a64_Collision(t *testing.T) {
	// Different stream names should produce different hashes (spot check)
	names := []string{"replication_0", "replication_1", "replication_10", "replication_100", ""}

	hashes := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := hashes[h]; ok {
			t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
		}
		hashes[h] = name
	}
}

// === SubsystemReplication Tests ===

func TestSubsystemReplication(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "replication_0"},
		{1, "replication_1"},
		{100, "replication_100"},
	}

	for _, tt := range tests {
		if got := SubsystemReplication(tt.n); got != tt.want {
			t.Errorf("SubsystemReplication(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

// === Benchmark ===

func BenchmarkPartitionedRNG_ForSubsystem_CacheHit(b *testing.B) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	rng.ForReplication(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rng.ForReplication(0)
	}
}
