package der

import (
	"fmt"
	"math"
	"time"

	"der_simulator/internal/frame"
)

// Battery models the physical characteristics of a storage asset. It is an
// immutable configuration object shared across simulation runs.
type Battery struct {
	rating            float64 // kW
	dischargeDuration time.Duration
	efficiency        float64 // round-trip, (0, 1]
}

// NewBattery validates and builds a battery configuration.
func NewBattery(rating float64, dischargeDuration time.Duration, efficiency float64) (Battery, error) {
	if rating <= 0 {
		return Battery{}, fmt.Errorf("%w: rating must be greater than zero", ErrConfiguration)
	}
	if dischargeDuration <= 0 {
		return Battery{}, fmt.Errorf("%w: discharge duration must be greater than zero", ErrConfiguration)
	}
	if efficiency <= 0 || efficiency > 1 {
		return Battery{}, fmt.Errorf("%w: efficiency must be in (0, 1]", ErrConfiguration)
	}
	return Battery{
		rating:            rating,
		dischargeDuration: dischargeDuration,
		efficiency:        efficiency,
	}, nil
}

func (b Battery) Rating() float64 { return b.rating }

func (b Battery) DischargeDuration() time.Duration { return b.dischargeDuration }

func (b Battery) Efficiency() float64 { return b.efficiency }

// Capacity is the usable stored energy in kWh: rating sustained for the full
// discharge duration.
func (b Battery) Capacity() float64 {
	return b.rating * b.dischargeDuration.Hours()
}

// lossFraction is the share of the round-trip loss borne by each leg. The
// loss is split evenly: a state change of E kWh draws E*(1+l) from the grid
// when charging and delivers E*(1-l) when discharging.
func (b Battery) lossFraction() float64 {
	return (1 - b.efficiency) / 2
}

// BatteryStrategy pairs the month-hour schedules gating battery actions. Each
// cell is a threshold on the driving load's power reading at that timestamp:
// the battery attempts to charge when the load is at or below the charge
// threshold and to discharge when at or above the discharge threshold.
// Immutable; shared across runs.
type BatteryStrategy struct {
	chargeSchedule    *frame.Frame288
	dischargeSchedule *frame.Frame288
}

// NewBatteryStrategy validates and builds a strategy from its two schedules.
func NewBatteryStrategy(chargeSchedule, dischargeSchedule *frame.Frame288) (BatteryStrategy, error) {
	if chargeSchedule == nil || dischargeSchedule == nil {
		return BatteryStrategy{}, fmt.Errorf("%w: both schedules are required", ErrConfiguration)
	}
	return BatteryStrategy{
		chargeSchedule:    chargeSchedule,
		dischargeSchedule: dischargeSchedule,
	}, nil
}

func (s BatteryStrategy) ChargeSchedule() *frame.Frame288 { return s.chargeSchedule }

func (s BatteryStrategy) DischargeSchedule() *frame.Frame288 { return s.dischargeSchedule }

// thresholds looks up the (charge, discharge) limits for a timestamp.
func (s BatteryStrategy) thresholds(ts time.Time) (float64, float64) {
	hour, month := ts.Hour(), int(ts.Month())
	c, _ := s.chargeSchedule.ValueAt(hour, month)
	d, _ := s.dischargeSchedule.ValueAt(hour, month)
	return c, d
}

// BatterySimulationBuilder adapts a Battery plus its strategy to the
// director's driving loop.
type BatterySimulationBuilder struct {
	DER      Battery
	Strategy BatteryStrategy
}

func (b BatterySimulationBuilder) NewStepper() Stepper {
	return &batteryStepper{battery: b.DER, strategy: b.Strategy}
}

// batteryStepper threads the running charge level through one simulation run.
type batteryStepper struct {
	battery  Battery
	strategy BatteryStrategy
	charge   float64 // kWh, 0 <= charge <= capacity
}

// Step applies the battery state machine to one interval:
//
//  1. load <= charge threshold: charge. Otherwise load >= discharge
//     threshold: discharge. Otherwise idle. The charge check runs first, so
//     charging wins when a reading satisfies both schedules.
//  2. The state-side rate (kWh per hour of stored energy change) is bounded
//     by the distance from load to threshold, the rating, and the remaining
//     headroom or charge.
//  3. The reported grid-side power carries the split efficiency loss.
func (st *batteryStepper) Step(ts time.Time, period time.Duration, load float64) (Operation, error) {
	op := Operation{Charge: st.charge, Capacity: st.battery.Capacity()}

	hours := period.Hours()
	if hours <= 0 {
		// Unknown interval length: no state change, no reported power.
		return op, nil
	}

	chargeLimit, dischargeLimit := st.strategy.thresholds(ts)
	loss := st.battery.lossFraction()

	switch {
	case load <= chargeLimit:
		rate := math.Min(chargeLimit-load, st.battery.Rating())
		rate = math.Min(rate, (op.Capacity-st.charge)/hours)
		if rate > 0 {
			st.charge = math.Min(st.charge+rate*hours, op.Capacity)
			op.Power = rate * (1 + loss)
		}
	case load >= dischargeLimit:
		rate := math.Min(load-dischargeLimit, st.battery.Rating())
		rate = math.Min(rate, st.charge/hours)
		if rate > 0 {
			st.charge = math.Max(st.charge-rate*hours, 0)
			op.Power = -rate * (1 - loss)
		}
	}

	op.Charge = st.charge
	return op, nil
}
