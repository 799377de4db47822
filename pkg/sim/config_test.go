// pkg/sim/config_test.go
// Copyright(c) 2026 towersim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, float32(800), cfg.FieldWidth)
	assert.Equal(t, float32(700), cfg.FieldHeight)
	assert.Equal(t, 50*time.Millisecond, time.Duration(cfg.TickPeriod))
	assert.Equal(t, 8*time.Second, time.Duration(cfg.SpawnPeriod))

	bounds := cfg.Bounds()
	assert.Equal(t, [2]float32{400, 350}, bounds.Center())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "towersim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
field_width: 1000
tick_period: 100ms
safe_distance: 50
landing_score: 25
crash_removal_delay: 2s
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Overridden values...
	assert.Equal(t, float32(1000), cfg.FieldWidth)
	assert.Equal(t, 100*time.Millisecond, time.Duration(cfg.TickPeriod))
	assert.Equal(t, float32(50), cfg.SafeDistance)
	assert.Equal(t, 25, cfg.LandingScore)
	assert.Equal(t, 2*time.Second, time.Duration(cfg.CrashRemovalDelay))

	// ...and defaults for everything else.
	assert.Equal(t, float32(700), cfg.FieldHeight)
	assert.Equal(t, 8*time.Second, time.Duration(cfg.SpawnPeriod))
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")

	require.NoError(t, os.WriteFile(path, []byte("tick_period: -50ms\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("field_width: [nope\n"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	for _, mutate := range []func(*Config){
		func(c *Config) { c.FieldWidth = 0 },
		func(c *Config) { c.TickPeriod = 0 },
		func(c *Config) { c.SpawnPeriod = Duration(-time.Second) },
		func(c *Config) { c.SafeDistance = -1 },
		func(c *Config) { c.LandingZoneRadius = 0 },
		func(c *Config) { c.ReferenceSpeed = 0 },
		func(c *Config) { c.KmPerUnit = -0.5 },
		func(c *Config) { c.SpawnRetryCap = 0 },
	} {
		cfg := DefaultConfig()
		mutate(cfg)
		assert.Error(t, cfg.Validate())
	}
}
