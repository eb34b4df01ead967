package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"der_simulator/internal/frame"
)

var startTime = time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

func makeLoad(t *testing.T, values []float64) *frame.IntervalFrame {
	t.Helper()
	index := make([]time.Time, len(values))
	for i := range index {
		index[i] = startTime.Add(time.Duration(i) * time.Hour)
	}
	f, err := frame.NewSeries(frame.Power, index, values)
	require.NoError(t, err)
	return f
}

func TestStore_AddAndQuery(t *testing.T) {
	s := New()
	s.AddMeter("meter-b", makeLoad(t, []float64{1, 2, 3}))
	s.AddMeter("meter-a", makeLoad(t, []float64{4, 5, 6}))

	assert.Equal(t, 2, s.Len())

	load, ok := s.Meter("meter-a")
	require.True(t, ok)
	assert.Equal(t, 3, load.Len())
	assert.Equal(t, 4.0, load.Value(0))

	_, ok = s.Meter("nonexistent")
	assert.False(t, ok)
}

func TestStore_MeterIDsSorted(t *testing.T) {
	s := New()
	s.AddMeter("meter-c", makeLoad(t, []float64{1}))
	s.AddMeter("meter-a", makeLoad(t, []float64{1}))
	s.AddMeter("meter-b", makeLoad(t, []float64{1}))

	assert.Equal(t, []string{"meter-a", "meter-b", "meter-c"}, s.MeterIDs())
}

func TestStore_ReplaceMeter(t *testing.T) {
	s := New()
	s.AddMeter("meter-a", makeLoad(t, []float64{1, 2}))
	s.AddMeter("meter-a", makeLoad(t, []float64{9}))

	assert.Equal(t, 1, s.Len())
	load, ok := s.Meter("meter-a")
	require.True(t, ok)
	assert.Equal(t, 1, load.Len())
	assert.Equal(t, 9.0, load.Value(0))
}
