// Package der simulates distributed energy resources against interval load
// series. A behavior model (Battery today; EVSE, solar and fuel-switching
// variants share the same seams) owns the per-step physics, a strategy gates
// when it acts, and the director drives a full series through them.
package der

import (
	"errors"
	"time"
)

// ErrConfiguration marks invalid DER parameters, raised at construction time
// and never mid-simulation.
var ErrConfiguration = errors.New("invalid der configuration")

// Operation is one interval's DER output row.
type Operation struct {
	// Power is the DER's own grid-side reading in kW. Positive draws from the
	// grid (charging), negative supplies it (discharging).
	Power float64
	// Charge is the stored energy (kWh) at the end of the interval.
	Charge float64
	// Capacity is the usable storage bound (kWh); constant per run but
	// reported per row for uniform output frames.
	Capacity float64
}

// Stepper advances a DER through one interval of the driving load. It is the
// single capability the director requires of a behavior model: given this
// interval's timestamp, inferred duration and load power reading, produce the
// DER's output row and carry its state forward.
//
// A zero duration means the interval length is unknown; steppers must not
// change state or report power for such rows.
type Stepper interface {
	Step(ts time.Time, period time.Duration, load float64) (Operation, error)
}

// SimulationBuilder pairs a behavior model with its strategy and hands the
// director a fresh Stepper per run, keeping runs independent and reentrant.
type SimulationBuilder interface {
	NewStepper() Stepper
}
