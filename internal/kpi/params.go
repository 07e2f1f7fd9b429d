package kpi

import "fmt"

// Documented defaults for the KPI parameter record. They materially
// change profitability figures, so the engine never falls back to them
// silently: construction without an explicit record fails fast.
const (
	DefaultVariableCostPerSeatLeg = 25.0
	DefaultConnectionValuePct     = 0.15
)

// Params is the immutable configuration record passed to the KPI
// engine at construction. One record per run; scenario analysis swaps
// the whole record rather than overriding single calls.
type Params struct {
	// VariableCostPerSeatLeg is the variable cost in currency per
	// seat-leg flown.
	VariableCostPerSeatLeg float64 `json:"variable_cost_per_seat_leg"`

	// ConnectionValuePct is the fraction of ticket revenue credited as
	// downstream connection value.
	ConnectionValuePct float64 `json:"connection_value_pct"`
}

// DefaultParams returns the documented default record.
func DefaultParams() Params {
	return Params{
		VariableCostPerSeatLeg: DefaultVariableCostPerSeatLeg,
		ConnectionValuePct:     DefaultConnectionValuePct,
	}
}

// Validate checks the record for values that would corrupt every
// downstream profitability figure.
func (p Params) Validate() error {
	if p.VariableCostPerSeatLeg < 0 {
		return fmt.Errorf("variable_cost_per_seat_leg must not be negative, got %v", p.VariableCostPerSeatLeg)
	}
	if p.ConnectionValuePct < 0 || p.ConnectionValuePct > 1 {
		return fmt.Errorf("connection_value_pct must be within [0,1], got %v", p.ConnectionValuePct)
	}
	return nil
}
