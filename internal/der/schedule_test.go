package der

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiurnalSchedule_Window(t *testing.T) {
	s, err := DiurnalSchedule(8, 17, 1, 2)
	require.NoError(t, err)

	for month := 1; month <= 12; month++ {
		for hour := 0; hour < 24; hour++ {
			v, err := s.ValueAt(hour, month)
			require.NoError(t, err)
			if hour >= 8 && hour < 17 {
				assert.Equal(t, 1.0, v, "month %d hour %d", month, hour)
			} else {
				assert.Equal(t, 2.0, v, "month %d hour %d", month, hour)
			}
		}
	}
}

func TestDiurnalSchedule_WrapsAcrossMidnight(t *testing.T) {
	s, err := DiurnalSchedule(22, 6, 1, 2)
	require.NoError(t, err)

	for hour := 0; hour < 24; hour++ {
		v, _ := s.ValueAt(hour, 1)
		if hour >= 22 || hour < 6 {
			assert.Equal(t, 1.0, v, "hour %d", hour)
		} else {
			assert.Equal(t, 2.0, v, "hour %d", hour)
		}
	}
}

func TestDiurnalSchedule_EmptyWindow(t *testing.T) {
	// equal start and end limit leaves the out-of-window limit everywhere
	s, err := DiurnalSchedule(0, 0, 1, 2)
	require.NoError(t, err)

	for hour := 0; hour < 24; hour++ {
		v, _ := s.ValueAt(hour, 1)
		assert.Equal(t, 2.0, v)
	}
}

func TestDiurnalSchedule_RejectsBadHours(t *testing.T) {
	_, err := DiurnalSchedule(-1, 0, 1, 2)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = DiurnalSchedule(0, 24, 1, 2)
	assert.ErrorIs(t, err, ErrConfiguration)
}
