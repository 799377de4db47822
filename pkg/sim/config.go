// pkg/sim/config.go
// Copyright(c) 2026 towersim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"towersim/pkg/math"
)

// Duration wraps time.Duration so that config files can say "50ms" or "8s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config carries every load-time constant of the simulation. All values
// are overridable from a YAML file; zero-config runs use the defaults,
// which match the classic 800x700 field.
type Config struct {
	FieldWidth  float32 `yaml:"field_width"`
	FieldHeight float32 `yaml:"field_height"`

	TickPeriod  Duration `yaml:"tick_period"`
	SpawnPeriod Duration `yaml:"spawn_period"`

	SafeDistance     float32 `yaml:"safe_distance"`      // units
	SafeAltitudeDiff int     `yaml:"safe_altitude_diff"` // meters

	LandingZoneRadius  float32 `yaml:"landing_zone_radius"` // units
	LandingMaxAltitude int     `yaml:"landing_max_altitude"`
	LandingScore       int     `yaml:"landing_score"`

	FuelBurnPerTick float32 `yaml:"fuel_burn_per_tick"` // percent per tick at reference speed
	ReferenceSpeed  float32 `yaml:"reference_speed"`    // km/h
	KmPerUnit       float32 `yaml:"km_per_unit"`        // field scale
	GroundThreshold int     `yaml:"ground_threshold"`   // meters

	SpawnMargin        float32 `yaml:"spawn_margin"`
	SpawnMinSeparation float32 `yaml:"spawn_min_separation"`
	SpawnRetryCap      int     `yaml:"spawn_retry_cap"`
	InitialAircraft    int     `yaml:"initial_aircraft"`

	BoundsMargin float32 `yaml:"bounds_margin"`

	CrashRemovalDelay  Duration `yaml:"crash_removal_delay"`
	LandedRemovalDelay Duration `yaml:"landed_removal_delay"`
}

func DefaultConfig() *Config {
	return &Config{
		FieldWidth:  800,
		FieldHeight: 700,

		TickPeriod:  Duration(50 * time.Millisecond),
		SpawnPeriod: Duration(8 * time.Second),

		SafeDistance:     30,
		SafeAltitudeDiff: 300,

		LandingZoneRadius:  40,
		LandingMaxAltitude: 800,
		LandingScore:       10,

		FuelBurnPerTick: 0.002, // ~2.4%/min at the reference speed
		ReferenceSpeed:  400,
		KmPerUnit:       0.03, // 1 unit is about 30 m
		GroundThreshold: 100,

		SpawnMargin:        10,
		SpawnMinSeparation: 80,
		SpawnRetryCap:      10,
		InitialAircraft:    2,

		BoundsMargin: 100,

		CrashRemovalDelay:  Duration(5 * time.Second),
		LandedRemovalDelay: Duration(1 * time.Second),
	}
}

// LoadConfig returns the defaults overlaid with the values from the given
// YAML file. An empty path or a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.FieldWidth <= 0 || c.FieldHeight <= 0 {
		return fmt.Errorf("field dimensions must be positive: %gx%g", c.FieldWidth, c.FieldHeight)
	}
	if time.Duration(c.TickPeriod) <= 0 {
		return fmt.Errorf("tick_period must be positive: %s", time.Duration(c.TickPeriod))
	}
	if time.Duration(c.SpawnPeriod) <= 0 {
		return fmt.Errorf("spawn_period must be positive: %s", time.Duration(c.SpawnPeriod))
	}
	if c.SafeDistance < 0 || c.SafeAltitudeDiff < 0 {
		return fmt.Errorf("separation thresholds must be non-negative")
	}
	if c.LandingZoneRadius <= 0 {
		return fmt.Errorf("landing_zone_radius must be positive: %g", c.LandingZoneRadius)
	}
	if c.ReferenceSpeed <= 0 {
		return fmt.Errorf("reference_speed must be positive: %g", c.ReferenceSpeed)
	}
	if c.KmPerUnit <= 0 {
		return fmt.Errorf("km_per_unit must be positive: %g", c.KmPerUnit)
	}
	if c.SpawnRetryCap < 1 {
		return fmt.Errorf("spawn_retry_cap must be at least 1: %d", c.SpawnRetryCap)
	}
	return nil
}

// Bounds returns the playing field extent.
func (c *Config) Bounds() math.Extent2D {
	return math.Extent2D{P1: [2]float32{c.FieldWidth, c.FieldHeight}}
}
