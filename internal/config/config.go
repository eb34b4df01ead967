package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"der_simulator/internal/der"
	"der_simulator/internal/frame"
)

// Config is the on-disk scenario shape (YAML): one battery plus its
// charge/discharge schedules.
type Config struct {
	Battery           BatteryConfig  `yaml:"battery"`
	ChargeSchedule    ScheduleConfig `yaml:"charge_schedule"`
	DischargeSchedule ScheduleConfig `yaml:"discharge_schedule"`
}

type BatteryConfig struct {
	RatingKW               float64 `yaml:"rating_kw"`
	DischargeDurationHours float64 `yaml:"discharge_duration_hours"`
	Efficiency             float64 `yaml:"efficiency"`
}

// ScheduleConfig describes a 288 control schedule either as a full
// month-major grid (12 rows of 24 hourly thresholds) or as a diurnal
// shorthand window. YAML's .inf/-.inf encode always/never thresholds.
type ScheduleConfig struct {
	Grid [][]float64 `yaml:"grid"`

	StartHour    int     `yaml:"start_hour"`
	EndLimitHour int     `yaml:"end_limit_hour"`
	InLimit      float64 `yaml:"in_limit"`
	OutLimit     float64 `yaml:"out_limit"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

// Validate builds every configured object once, surfacing construction
// errors at load time rather than mid-run.
func (c *Config) Validate() error {
	if _, err := c.BuildBattery(); err != nil {
		return err
	}
	if _, err := c.BuildStrategy(); err != nil {
		return err
	}
	return nil
}

// BuildBattery constructs the configured battery.
func (c *Config) BuildBattery() (der.Battery, error) {
	duration := time.Duration(c.Battery.DischargeDurationHours * float64(time.Hour))
	return der.NewBattery(c.Battery.RatingKW, duration, c.Battery.Efficiency)
}

// BuildStrategy constructs the configured charge/discharge strategy.
func (c *Config) BuildStrategy() (der.BatteryStrategy, error) {
	charge, err := c.ChargeSchedule.build()
	if err != nil {
		return der.BatteryStrategy{}, fmt.Errorf("charge_schedule: %w", err)
	}
	discharge, err := c.DischargeSchedule.build()
	if err != nil {
		return der.BatteryStrategy{}, fmt.Errorf("discharge_schedule: %w", err)
	}
	return der.NewBatteryStrategy(charge, discharge)
}

func (s ScheduleConfig) build() (*frame.Frame288, error) {
	if len(s.Grid) == 0 {
		return der.DiurnalSchedule(s.StartHour, s.EndLimitHour, s.InLimit, s.OutLimit)
	}

	if len(s.Grid) != 12 {
		return nil, fmt.Errorf("%w: grid must have 12 month rows, got %d", frame.ErrConfiguration, len(s.Grid))
	}
	var cells [12][24]float64
	for m, row := range s.Grid {
		if len(row) != 24 {
			return nil, fmt.Errorf("%w: month %d must have 24 hourly values, got %d",
				frame.ErrConfiguration, m+1, len(row))
		}
		copy(cells[m][:], row)
	}
	return frame.NewFrame288(cells), nil
}
