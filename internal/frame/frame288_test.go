package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame288_ValueAt(t *testing.T) {
	var cells [12][24]float64
	cells[0][0] = 1.5   // January midnight
	cells[11][23] = 2.5 // December 23:00
	f := NewFrame288(cells)

	v, err := f.ValueAt(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	v, err = f.ValueAt(23, 12)
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)
}

func TestFrame288_ValueAtBounds(t *testing.T) {
	f := UniformFrame288(0)

	_, err := f.ValueAt(-1, 1)
	assert.ErrorIs(t, err, ErrBounds)
	_, err = f.ValueAt(24, 1)
	assert.ErrorIs(t, err, ErrBounds)
	_, err = f.ValueAt(0, 0)
	assert.ErrorIs(t, err, ErrBounds)
	_, err = f.ValueAt(0, 13)
	assert.ErrorIs(t, err, ErrBounds)
}

func TestFrame288_Arithmetic(t *testing.T) {
	twos := UniformFrame288(2)
	threes := UniformFrame288(3)

	sum := twos.Add(threes)
	product := twos.Multiply(threes)
	shifted := twos.AddScalar(10)
	scaled := twos.MultiplyScalar(-1)

	for month := 1; month <= 12; month++ {
		for hour := 0; hour < 24; hour++ {
			v, err := sum.ValueAt(hour, month)
			require.NoError(t, err)
			assert.Equal(t, 5.0, v)

			v, _ = product.ValueAt(hour, month)
			assert.Equal(t, 6.0, v)
			v, _ = shifted.ValueAt(hour, month)
			assert.Equal(t, 12.0, v)
			v, _ = scaled.ValueAt(hour, month)
			assert.Equal(t, -2.0, v)
		}
	}

	// operands untouched
	v, _ := twos.ValueAt(0, 1)
	assert.Equal(t, 2.0, v)
}
