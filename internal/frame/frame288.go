package frame

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Frame288 is a fixed 12-month by 24-hour grid of aggregated values. It is
// derived from an IntervalFrame as a summary statistic, or constructed from a
// literal grid to serve as a control schedule. Cells with no source data hold
// NaN and callers must handle that.
type Frame288 struct {
	cells [12][24]float64
}

// NewFrame288 wraps a literal month-major grid: cells[month-1][hour].
func NewFrame288(cells [12][24]float64) *Frame288 {
	return &Frame288{cells: cells}
}

// UniformFrame288 fills every cell with the same value.
func UniformFrame288(value float64) *Frame288 {
	f := &Frame288{}
	for m := range f.cells {
		for h := range f.cells[m] {
			f.cells[m][h] = value
		}
	}
	return f
}

// ValueAt returns the cell for hour 0-23 of month 1-12.
func (f *Frame288) ValueAt(hour, month int) (float64, error) {
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: hour %d not in [0, 23]", ErrBounds, hour)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %d not in [1, 12]", ErrBounds, month)
	}
	return f.cells[month-1][hour], nil
}

// Add returns the cellwise sum of two grids.
func (f *Frame288) Add(other *Frame288) *Frame288 {
	out := &Frame288{}
	for m := range out.cells {
		for h := range out.cells[m] {
			out.cells[m][h] = f.cells[m][h] + other.cells[m][h]
		}
	}
	return out
}

// Multiply returns the cellwise product of two grids.
func (f *Frame288) Multiply(other *Frame288) *Frame288 {
	out := &Frame288{}
	for m := range out.cells {
		for h := range out.cells[m] {
			out.cells[m][h] = f.cells[m][h] * other.cells[m][h]
		}
	}
	return out
}

// AddScalar returns the grid with v added to every cell.
func (f *Frame288) AddScalar(v float64) *Frame288 {
	out := &Frame288{}
	for m := range out.cells {
		for h := range out.cells[m] {
			out.cells[m][h] = f.cells[m][h] + v
		}
	}
	return out
}

// MultiplyScalar returns the grid scaled by v.
func (f *Frame288) MultiplyScalar(v float64) *Frame288 {
	out := &Frame288{}
	for m := range out.cells {
		for h := range out.cells[m] {
			out.cells[m][h] = f.cells[m][h] * v
		}
	}
	return out
}

// String renders the grid as an hour-by-month table for CLI reports.
func (f *Frame288) String() string {
	var b strings.Builder
	b.WriteString("hour")
	for m := 1; m <= 12; m++ {
		fmt.Fprintf(&b, "%9d", m)
	}
	b.WriteString("\n")
	for h := 0; h < 24; h++ {
		fmt.Fprintf(&b, "%4d", h)
		for m := 1; m <= 12; m++ {
			fmt.Fprintf(&b, "%9.2f", f.cells[m-1][h])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// group288 collects per-cell sample slices from a frame. Energy rows whose
// duration is unknown cannot be expressed as power and are skipped when
// asPower is set.
func (f *IntervalFrame) group288(asPower bool) [12][24][]float64 {
	var groups [12][24][]float64
	for i, ts := range f.index {
		var v float64
		if asPower {
			pv, ok := f.powerValue(i)
			if !ok {
				continue
			}
			v = pv
		} else {
			v = f.energyValue(i)
		}
		m, h := int(ts.Month())-1, ts.Hour()
		groups[m][h] = append(groups[m][h], v)
	}
	return groups
}

func (f *IntervalFrame) aggregate288(asPower bool, empty float64, agg Aggregator) *Frame288 {
	groups := f.group288(asPower)
	out := &Frame288{}
	for m := range out.cells {
		for h := range out.cells[m] {
			if len(groups[m][h]) == 0 {
				out.cells[m][h] = empty
				continue
			}
			out.cells[m][h] = agg(groups[m][h])
		}
	}
	return out
}

// AverageFrame288 is the mean power (kW) per month-hour.
func (f *IntervalFrame) AverageFrame288() *Frame288 {
	return f.aggregate288(true, math.NaN(), meanValues)
}

// MinimumFrame288 is the minimum power (kW) per month-hour.
func (f *IntervalFrame) MinimumFrame288() *Frame288 {
	return f.aggregate288(true, math.NaN(), floats.Min)
}

// MaximumFrame288 is the maximum power (kW) per month-hour.
func (f *IntervalFrame) MaximumFrame288() *Frame288 {
	return f.aggregate288(true, math.NaN(), floats.Max)
}

// TotalFrame288 is the summed energy (kWh) per month-hour. Power rows are
// converted with their inferred durations before summing, so the totals agree
// across differing interval lengths.
func (f *IntervalFrame) TotalFrame288() *Frame288 {
	return f.aggregate288(false, 0, sumValues)
}

// CountFrame288 is the observation count per month-hour.
func (f *IntervalFrame) CountFrame288() *Frame288 {
	return f.aggregate288(false, 0, func(values []float64) float64 {
		return float64(len(values))
	})
}

func meanValues(values []float64) float64 { return stat.Mean(values, nil) }
func sumValues(values []float64) float64  { return floats.Sum(values) }
