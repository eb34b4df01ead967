package frame

import (
	"fmt"
	"sort"
	"time"
)

// Unit declares the physical quantity a frame's readings measure. It decides
// how resampling and energy totals treat each row.
type Unit int

const (
	Power  Unit = iota // kW readings
	Energy             // kWh readings
)

func (u Unit) String() string {
	switch u {
	case Power:
		return "power"
	case Energy:
		return "energy"
	default:
		return "unknown"
	}
}

// defaultColumn is the value column assumed for a unit when one is present.
func (u Unit) defaultColumn() string {
	if u == Energy {
		return "kwh"
	}
	return "kw"
}

// IntervalFrame is an immutable time-indexed numeric series with one or more
// named columns. The index is strictly increasing; each row's duration is
// inferred from the gap to the next row (the last row inherits the previous
// gap, and a single-row frame has an unknown duration of zero).
//
// All derived frames (filtered, resampled, summed) are new values; operands
// are never mutated.
type IntervalFrame struct {
	unit        Unit
	index       []time.Time
	columns     []string
	data        map[string][]float64
	valueColumn string
}

// New builds a frame from a timestamp index and named columns. Every column
// must match the index length and the index must be strictly increasing.
func New(unit Unit, index []time.Time, data map[string][]float64) (*IntervalFrame, error) {
	for i := 1; i < len(index); i++ {
		if !index[i].After(index[i-1]) {
			return nil, fmt.Errorf("%w: index must be strictly increasing at row %d", ErrConfiguration, i)
		}
	}

	columns := make([]string, 0, len(data))
	copied := make(map[string][]float64, len(data))
	for name, values := range data {
		if len(values) != len(index) {
			return nil, fmt.Errorf("%w: column %q has %d values for %d timestamps",
				ErrConfiguration, name, len(values), len(index))
		}
		columns = append(columns, name)
		copied[name] = append([]float64(nil), values...)
	}
	sort.Strings(columns)

	valueColumn := ""
	if len(columns) > 0 {
		valueColumn = columns[0]
		for _, name := range columns {
			if name == unit.defaultColumn() {
				valueColumn = name
			}
		}
	}

	return &IntervalFrame{
		unit:        unit,
		index:       append([]time.Time(nil), index...),
		columns:     columns,
		data:        copied,
		valueColumn: valueColumn,
	}, nil
}

// NewSeries builds a single-column frame using the unit's default column name.
func NewSeries(unit Unit, index []time.Time, values []float64) (*IntervalFrame, error) {
	return New(unit, index, map[string][]float64{unit.defaultColumn(): values})
}

// Empty returns a rowless frame of the given unit.
func Empty(unit Unit) *IntervalFrame {
	f, _ := New(unit, nil, nil)
	return f
}

func (f *IntervalFrame) Unit() Unit { return f.unit }

func (f *IntervalFrame) Len() int { return len(f.index) }

func (f *IntervalFrame) ValueColumn() string { return f.valueColumn }

func (f *IntervalFrame) Columns() []string { return append([]string(nil), f.columns...) }

func (f *IntervalFrame) Timestamp(i int) time.Time { return f.index[i] }

// Index returns a copy of the timestamp index.
func (f *IntervalFrame) Index() []time.Time {
	return append([]time.Time(nil), f.index...)
}

// Column returns a copy of a named column's values.
func (f *IntervalFrame) Column(name string) ([]float64, bool) {
	values, ok := f.data[name]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), values...), true
}

// Value returns row i of the frame's value column.
func (f *IntervalFrame) Value(i int) float64 {
	return f.data[f.valueColumn][i]
}

// PeriodAt returns the inferred duration of row i. The last row inherits the
// previous row's duration; a single-row frame has no inferable duration and
// returns zero.
func (f *IntervalFrame) PeriodAt(i int) time.Duration {
	if len(f.index) < 2 {
		return 0
	}
	if i == len(f.index)-1 {
		return f.index[i].Sub(f.index[i-1])
	}
	return f.index[i+1].Sub(f.index[i])
}

// nativePeriod is the smallest gap between consecutive timestamps, or zero
// when the frame has fewer than two rows.
func (f *IntervalFrame) nativePeriod() time.Duration {
	var native time.Duration
	for i := 1; i < len(f.index); i++ {
		gap := f.index[i].Sub(f.index[i-1])
		if native == 0 || gap < native {
			native = gap
		}
	}
	return native
}

// powerValue returns row i expressed in kW. Energy rows with an unknown
// duration cannot be converted and report ok=false.
func (f *IntervalFrame) powerValue(i int) (float64, bool) {
	v := f.Value(i)
	if f.unit == Power {
		return v, true
	}
	hours := f.PeriodAt(i).Hours()
	if hours <= 0 {
		return 0, false
	}
	return v / hours, true
}

// energyValue returns row i expressed in kWh. Power rows with an unknown
// duration contribute no energy.
func (f *IntervalFrame) energyValue(i int) float64 {
	v := f.Value(i)
	if f.unit == Energy {
		return v
	}
	return v * f.PeriodAt(i).Hours()
}

// FilterByDatetime returns the rows with timestamps in [start, endLimit).
// A window matching nothing yields an empty frame, not an error.
func (f *IntervalFrame) FilterByDatetime(start, endLimit time.Time) *IntervalFrame {
	lo := sort.Search(len(f.index), func(i int) bool { return !f.index[i].Before(start) })
	hi := sort.Search(len(f.index), func(i int) bool { return !f.index[i].Before(endLimit) })

	data := make(map[string][]float64, len(f.columns))
	for _, name := range f.columns {
		data[name] = f.data[name][lo:hi]
	}
	out, _ := New(f.unit, f.index[lo:hi], data)
	return out
}

// Aggregator folds a bucket of values into one.
type Aggregator func(values []float64) float64

// Resample regroups rows into buckets of target length, applying agg to each
// column per bucket. A nil agg uses the unit's default: mean for power
// readings, sum for energy readings. Buckets shorter than the frame's native
// interval cannot be produced without interpolation and are rejected.
func (f *IntervalFrame) Resample(target time.Duration, agg Aggregator) (*IntervalFrame, error) {
	if target <= 0 {
		return nil, fmt.Errorf("%w: resample target %v must be positive", ErrConfiguration, target)
	}
	if native := f.nativePeriod(); native > 0 && target < native {
		return nil, fmt.Errorf("%w: resample target %v is shorter than native interval %v",
			ErrConfiguration, target, native)
	}
	if agg == nil {
		if f.unit == Energy {
			agg = sumValues
		} else {
			agg = meanValues
		}
	}

	buckets := make(map[time.Time][]int)
	var order []time.Time
	for i, ts := range f.index {
		bucket := ts.Truncate(target)
		if _, seen := buckets[bucket]; !seen {
			order = append(order, bucket)
		}
		buckets[bucket] = append(buckets[bucket], i)
	}

	data := make(map[string][]float64, len(f.columns))
	for _, name := range f.columns {
		values := make([]float64, 0, len(order))
		for _, bucket := range order {
			group := make([]float64, 0, len(buckets[bucket]))
			for _, i := range buckets[bucket] {
				group = append(group, f.data[name][i])
			}
			values = append(values, agg(group))
		}
		data[name] = values
	}
	return New(f.unit, order, data)
}

// Select returns a frame restricted to the named columns.
func (f *IntervalFrame) Select(names ...string) (*IntervalFrame, error) {
	data := make(map[string][]float64, len(names))
	for _, name := range names {
		values, ok := f.data[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown column %q", ErrConfiguration, name)
		}
		data[name] = values
	}
	return New(f.unit, f.index, data)
}

// Add returns the elementwise sum of two frames over the union of their
// timestamps and columns, reading missing values as zero. Frames of differing
// units cannot be combined, nor can frames whose native interval lengths
// disagree.
func (f *IntervalFrame) Add(other *IntervalFrame) (*IntervalFrame, error) {
	if f.unit != other.unit {
		return nil, fmt.Errorf("%w: cannot add %s frame to %s frame", ErrUnitMismatch, other.unit, f.unit)
	}
	p1, p2 := f.nativePeriod(), other.nativePeriod()
	if p1 > 0 && p2 > 0 && p1 != p2 {
		return nil, fmt.Errorf("%w: native intervals %v and %v differ", ErrAlignment, p1, p2)
	}

	index := mergeIndexes(f.index, other.index)

	columns := make(map[string]bool, len(f.columns)+len(other.columns))
	for _, name := range f.columns {
		columns[name] = true
	}
	for _, name := range other.columns {
		columns[name] = true
	}

	data := make(map[string][]float64, len(columns))
	for name := range columns {
		values := make([]float64, len(index))
		addColumn(values, index, f.index, f.data[name])
		addColumn(values, index, other.index, other.data[name])
		data[name] = values
	}
	return New(f.unit, index, data)
}

// Sum folds any number of frames with Add. At least one frame is required.
func Sum(frames ...*IntervalFrame) (*IntervalFrame, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no frames to sum", ErrConfiguration)
	}
	total := frames[0]
	for _, f := range frames[1:] {
		var err error
		total, err = total.Add(f)
		if err != nil {
			return nil, err
		}
	}
	return total, nil
}

func mergeIndexes(a, b []time.Time) []time.Time {
	merged := make([]time.Time, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Before(b[j]):
			merged = append(merged, a[i])
			i++
		case b[j].Before(a[i]):
			merged = append(merged, b[j])
			j++
		default:
			merged = append(merged, a[i])
			i++
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}

// addColumn accumulates src (indexed by srcIndex) into dst (indexed by the
// merged index). src may be nil when the source frame lacks the column.
func addColumn(dst []float64, index, srcIndex []time.Time, src []float64) {
	if src == nil {
		return
	}
	j := 0
	for i, ts := range index {
		if j < len(srcIndex) && srcIndex[j].Equal(ts) {
			dst[i] += src[j]
			j++
		}
	}
}
