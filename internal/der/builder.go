package der

import (
	"fmt"

	"der_simulator/internal/frame"
)

// Simulation bundles one run's results: the driving load, the DER's own
// trajectory, and the load with the DER superimposed.
type Simulation struct {
	// Load is the pre-DER input frame, untouched.
	Load *frame.IntervalFrame
	// DER holds the asset's own trajectory: kw, charge and capacity columns
	// on the input's index.
	DER *frame.IntervalFrame
	// Post is the post-DER load: input plus the DER's power column.
	Post *frame.IntervalFrame
}

// Month-hour summaries of the pre- and post-DER load, for report layers that
// compare the two without reaching into the frames.

func (s *Simulation) PreAverage288() *frame.Frame288 { return s.Load.AverageFrame288() }

func (s *Simulation) PostAverage288() *frame.Frame288 { return s.Post.AverageFrame288() }

func (s *Simulation) PrePeak288() *frame.Frame288 { return s.Load.MaximumFrame288() }

func (s *Simulation) PostPeak288() *frame.Frame288 { return s.Post.MaximumFrame288() }

func (s *Simulation) PreTotal288() *frame.Frame288 { return s.Load.TotalFrame288() }

func (s *Simulation) PostTotal288() *frame.Frame288 { return s.Post.TotalFrame288() }

// Director runs a behavior model against full input series. It owns the
// iteration; the builder's steppers own the per-interval physics. Runs are
// deterministic, single-pass and side-effect free, so callers may fan out
// over meters without coordination.
type Director struct {
	builder SimulationBuilder
}

func NewDirector(builder SimulationBuilder) Director {
	return Director{builder: builder}
}

// RunSingleSimulation drives the input frame through a fresh stepper in
// timestamp order. An empty input produces an empty result, not an error; a
// step error aborts the run with no partial result.
func (d Director) RunSingleSimulation(load *frame.IntervalFrame) (*Simulation, error) {
	stepper := d.builder.NewStepper()

	n := load.Len()
	power := make([]float64, n)
	charge := make([]float64, n)
	capacity := make([]float64, n)

	for i := 0; i < n; i++ {
		op, err := stepper.Step(load.Timestamp(i), load.PeriodAt(i), load.Value(i))
		if err != nil {
			return nil, fmt.Errorf("step %d at %s: %w", i, load.Timestamp(i), err)
		}
		power[i] = op.Power
		charge[i] = op.Charge
		capacity[i] = op.Capacity
	}

	derFrame, err := frame.New(frame.Power, load.Index(), map[string][]float64{
		"kw":       power,
		"charge":   charge,
		"capacity": capacity,
	})
	if err != nil {
		return nil, err
	}

	post, err := composePost(load, derFrame)
	if err != nil {
		return nil, err
	}

	return &Simulation{Load: load, DER: derFrame, Post: post}, nil
}

// composePost superimposes the DER's power column onto the load.
func composePost(load, derFrame *frame.IntervalFrame) (*frame.IntervalFrame, error) {
	powerOnly, err := derFrame.Select("kw")
	if err != nil {
		return nil, err
	}
	return load.Add(powerOnly)
}

// Aggregate combines many runs into one fleet-level result by elementwise
// summation, one simulation per meter.
func Aggregate(sims []*Simulation) (*Simulation, error) {
	if len(sims) == 0 {
		return nil, fmt.Errorf("%w: no simulations to aggregate", ErrConfiguration)
	}

	loads := make([]*frame.IntervalFrame, len(sims))
	ders := make([]*frame.IntervalFrame, len(sims))
	posts := make([]*frame.IntervalFrame, len(sims))
	for i, sim := range sims {
		loads[i] = sim.Load
		ders[i] = sim.DER
		posts[i] = sim.Post
	}

	load, err := frame.Sum(loads...)
	if err != nil {
		return nil, err
	}
	derFrame, err := frame.Sum(ders...)
	if err != nil {
		return nil, err
	}
	post, err := frame.Sum(posts...)
	if err != nil {
		return nil, err
	}
	return &Simulation{Load: load, DER: derFrame, Post: post}, nil
}
