package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every dispatched event and productivity charge.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
	// MaxReplications bounds how many replications are traced; 0 traces all.
	MaxReplications int
}

// Enabled reports whether replication n (0-based) should be traced.
func (c TraceConfig) Enabled(n int) bool {
	if c.Level != TraceLevelEvents {
		return false
	}
	return c.MaxReplications <= 0 || n < c.MaxReplications
}

// SimulationTrace collects event records during an experiment.
type SimulationTrace struct {
	Config  TraceConfig
	Events  []EventRecord
	Charges []ChargeRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:  config,
		Events:  make([]EventRecord, 0),
		Charges: make([]ChargeRecord, 0),
	}
}

// RecordEvent appends a dispatched-event record.
func (st *SimulationTrace) RecordEvent(record EventRecord) {
	st.Events = append(st.Events, record)
}

// RecordCharge appends a productivity charge record.
func (st *SimulationTrace) RecordCharge(record ChargeRecord) {
	st.Charges = append(st.Charges, record)
}
