package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"der_simulator/internal/der"
	"der_simulator/internal/frame"
)

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_DiurnalScenario(t *testing.T) {
	path := writeScenario(t, `
battery:
  rating_kw: 5
  discharge_duration_hours: 2
  efficiency: 0.5
charge_schedule:
  start_hour: 0
  end_limit_hour: 0
  in_limit: 0
  out_limit: 0
discharge_schedule:
  start_hour: 0
  end_limit_hour: 0
  in_limit: 5
  out_limit: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	battery, err := cfg.BuildBattery()
	require.NoError(t, err)
	assert.Equal(t, 5.0, battery.Rating())
	assert.Equal(t, 2*time.Hour, battery.DischargeDuration())
	assert.Equal(t, 10.0, battery.Capacity())

	strategy, err := cfg.BuildStrategy()
	require.NoError(t, err)
	v, err := strategy.DischargeSchedule().ValueAt(12, 6)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
}

func TestLoad_GridScenarioWithInfinities(t *testing.T) {
	scenario := `
battery:
  rating_kw: 10
  discharge_duration_hours: 4
  efficiency: 0.85
charge_schedule:
  start_hour: 0
  end_limit_hour: 8
  in_limit: .inf
  out_limit: -.inf
discharge_schedule:
  start_hour: 16
  end_limit_hour: 21
  in_limit: 0
  out_limit: .inf
`
	cfg, err := Load(writeScenario(t, scenario))
	require.NoError(t, err)

	strategy, err := cfg.BuildStrategy()
	require.NoError(t, err)

	// grid charging allowed overnight, disabled during the day
	v, _ := strategy.ChargeSchedule().ValueAt(3, 1)
	assert.True(t, math.IsInf(v, 1))
	v, _ = strategy.ChargeSchedule().ValueAt(12, 1)
	assert.True(t, math.IsInf(v, -1))
}

func TestLoad_FullGridLiteral(t *testing.T) {
	row := "[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0]"
	grid := ""
	for i := 0; i < 12; i++ {
		grid += "    - " + row + "\n"
	}
	scenario := `
battery:
  rating_kw: 5
  discharge_duration_hours: 2
  efficiency: 0.5
charge_schedule:
  grid:
` + grid + `
discharge_schedule:
  start_hour: 0
  end_limit_hour: 0
  in_limit: 5
  out_limit: 5
`
	cfg, err := Load(writeScenario(t, scenario))
	require.NoError(t, err)

	strategy, err := cfg.BuildStrategy()
	require.NoError(t, err)
	v, err := strategy.ChargeSchedule().ValueAt(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestLoad_RejectsBadBattery(t *testing.T) {
	path := writeScenario(t, `
battery:
  rating_kw: 5
  discharge_duration_hours: 2
  efficiency: 1.5
charge_schedule:
  in_limit: 0
  out_limit: 0
discharge_schedule:
  in_limit: 5
  out_limit: 5
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, der.ErrConfiguration)
}

func TestLoad_RejectsMalformedGrid(t *testing.T) {
	path := writeScenario(t, `
battery:
  rating_kw: 5
  discharge_duration_hours: 2
  efficiency: 0.5
charge_schedule:
  grid:
    - [0, 0, 0]
discharge_schedule:
  in_limit: 5
  out_limit: 5
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, frame.ErrConfiguration)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
