package der

import (
	"fmt"

	"der_simulator/internal/frame"
)

// DiurnalSchedule builds a control-schedule grid that applies inLimit to the
// hours in [startHour, endLimitHour) of every month and outLimit elsewhere.
// The window wraps across midnight when startHour > endLimitHour and is empty
// when they are equal, leaving outLimit everywhere.
func DiurnalSchedule(startHour, endLimitHour int, inLimit, outLimit float64) (*frame.Frame288, error) {
	if startHour < 0 || startHour > 23 {
		return nil, fmt.Errorf("%w: start hour %d not in [0, 23]", ErrConfiguration, startHour)
	}
	if endLimitHour < 0 || endLimitHour > 23 {
		return nil, fmt.Errorf("%w: end limit hour %d not in [0, 23]", ErrConfiguration, endLimitHour)
	}

	var cells [12][24]float64
	for m := 0; m < 12; m++ {
		for h := 0; h < 24; h++ {
			if inDiurnalWindow(h, startHour, endLimitHour) {
				cells[m][h] = inLimit
			} else {
				cells[m][h] = outLimit
			}
		}
	}
	return frame.NewFrame288(cells), nil
}

func inDiurnalWindow(hour, start, endLimit int) bool {
	if start == endLimit {
		return false
	}
	if start < endLimit {
		return hour >= start && hour < endLimit
	}
	return hour >= start || hour < endLimit
}
