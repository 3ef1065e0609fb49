// Package sim provides the paired discrete-event simulation engine for
// comparing two track-bed maintenance policies at one subway station.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - policy.go: PolicyState and the CleaningStrategy of each policy
//   - event.go: the four competing events (trash arrival, scheduled
//     cleaning, baseline fire, alt fire) and their handlers
//   - simulator.go: the competing-risk loop over residual clocks
//
// # Pairing
//
// Both policies observe one physical rider stream. Every replication draws
// from a single stream (see rng.go and crn.go):
//   - trash arrivals are shared, so both policies accumulate identical trash
//     between their cleanings
//   - each fire-clock recompute draws one uniform and applies it to both
//     policies' trash-driven rates, so equal trash means the same ignition
//   - productivity losses realized by one policy are replayed to the other
//     for its matching disruption (productivity.go)
//
// # Experiments
//
// RunExperiment repeats yearlong replications, each on its own seeded
// stream, and feeds the records to a SequentialStopper that halts once the
// 95% intervals of the comparison metric no longer overlap, or a replication
// cap is reached.
package sim
