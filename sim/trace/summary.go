package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents          int
	KindDistribution     map[string]int // event kind → count
	SimultaneousFires    int
	TotalCharges         int
	SharedCharges        int
	ChargeAmountByPolicy map[string]float64
	MaxClock             float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		KindDistribution:     make(map[string]int),
		ChargeAmountByPolicy: make(map[string]float64),
	}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	for _, e := range st.Events {
		summary.KindDistribution[e.Kind]++
		if e.Simultaneous {
			summary.SimultaneousFires++
		}
		if e.Clock > summary.MaxClock {
			summary.MaxClock = e.Clock
		}
	}

	summary.TotalCharges = len(st.Charges)
	for _, c := range st.Charges {
		if c.Shared {
			summary.SharedCharges++
		}
		summary.ChargeAmountByPolicy[c.Policy] += c.Amount
	}

	return summary
}
