package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "racer.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50.0, cfg.Track.SegmentLength)
	assert.Equal(t, 20.0, cfg.Track.TrackWidth)
	assert.Equal(t, 10, cfg.Track.RenderDistance)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[track]
render_distance = 6
seed = 99

[vehicle]
max_speed = 30.0

[log]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Track.RenderDistance)
	assert.Equal(t, int64(99), cfg.Track.Seed)
	assert.Equal(t, 30.0, cfg.Vehicle.MaxSpeed)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep defaults
	assert.Equal(t, 50.0, cfg.Track.SegmentLength)
	assert.Equal(t, Default().Camera, cfg.Camera)
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, `
[track]
segment_lenght = 40.0
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "segment_lenght")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad_InvalidValue(t *testing.T) {
	path := writeConfig(t, `
[track]
curve_frequency = 1.5
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero segment length", func(c *Config) { c.Track.SegmentLength = 0 }},
		{"negative width", func(c *Config) { c.Track.TrackWidth = -1 }},
		{"curvature inverted", func(c *Config) { c.Track.MinCurvature, c.Track.MaxCurvature = 0.5, 0.1 }},
		{"elevation inverted", func(c *Config) { c.Track.MinElevation, c.Track.MaxElevation = 3, -3 }},
		{"zero render distance", func(c *Config) { c.Track.RenderDistance = 0 }},
		{"too few control points", func(c *Config) { c.Track.ControlPoints = 4 }},
		{"zero max speed", func(c *Config) { c.Vehicle.MaxSpeed = 0 }},
		{"damping above one", func(c *Config) { c.Vehicle.Damping = 1.2 }},
		{"camera band inverted", func(c *Config) { c.Camera.MinDistance, c.Camera.MaxDistance = 10, 5 }},
		{"zero tolerance", func(c *Config) { c.Boundary.Tolerance = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
