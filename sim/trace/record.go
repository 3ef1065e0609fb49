// Package trace provides event-trace recording for paired maintenance simulations.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Residuals captures the four competing clocks at one instant.
// Inapplicable clocks are +Inf.
type Residuals struct {
	TrashArrival      float64
	ScheduledCleaning float64
	FireBaseline      float64
	FireAlt           float64
}

// EventRecord captures a single dispatched event.
type EventRecord struct {
	Replication  int
	Seq          int     // dispatch index within the replication
	Clock        float64 // shared clock after advancing
	Kind         string
	Elapsed      float64
	Before       Residuals // residuals when the event was selected
	After        Residuals // residuals once the handler returned
	Coupled      bool      // fire clocks came from one draw at equal trash
	Simultaneous bool      // a baseline fire also fired alt in the same step

	TrashBaseline int64 // trash after the handler
	TrashAlt      int64
}

// ChargeRecord captures one productivity-loss charge.
type ChargeRecord struct {
	Replication int
	Clock       float64
	Policy      string
	Kind        string
	Amount      float64
	Shared      bool // consumed from the other policy's queue
}
