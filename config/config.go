// Package config holds the runtime configuration surface of a session.
// Values are loaded once and treated as constants for the session lifetime.
package config

import (
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/lixenwraith/vi-racer/parameter"
)

// ErrInvalid is the cause of every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Track configures segment generation and streaming
type Track struct {
	SegmentLength      float64 `toml:"segment_length"`
	TrackWidth         float64 `toml:"track_width"`
	MinCurvature       float64 `toml:"min_curvature"`
	MaxCurvature       float64 `toml:"max_curvature"`
	MinElevation       float64 `toml:"min_elevation"`
	MaxElevation       float64 `toml:"max_elevation"`
	CurveFrequency     float64 `toml:"curve_frequency"`
	ElevationFrequency float64 `toml:"elevation_frequency"`
	RenderDistance     int     `toml:"render_distance"`
	Seed               int64   `toml:"seed"`
	StraightLeadIn     int     `toml:"straight_lead_in"`
	ControlPoints      int     `toml:"control_points"`
}

// Vehicle configures player physics
type Vehicle struct {
	Thrust            float64 `toml:"thrust"`
	BoostMultiplier   float64 `toml:"boost_multiplier"`
	BrakeForce        float64 `toml:"brake_force"`
	ReverseThreshold  float64 `toml:"reverse_threshold"`
	ReverseKick       float64 `toml:"reverse_kick"`
	ReverseForce      float64 `toml:"reverse_force"`
	StopSpeed         float64 `toml:"stop_speed"`
	MaxSpeed          float64 `toml:"max_speed"`
	Damping           float64 `toml:"damping"`
	SteerRate         float64 `toml:"steer_rate"`
	SteerFullSpeed    float64 `toml:"steer_full_speed"`
	MinSteerAuthority float64 `toml:"min_steer_authority"`
	MouseSensitivity  float64 `toml:"mouse_sensitivity"`
	RollRate          float64 `toml:"roll_rate"`
	Gravity           float64 `toml:"gravity"`
	GroundEpsilon     float64 `toml:"ground_epsilon"`
	LateralFriction   float64 `toml:"lateral_friction"`
}

// Camera configures the follow rig
type Camera struct {
	BaseHeight        float64 `toml:"base_height"`
	HeightDrop        float64 `toml:"height_drop"`
	BaseDistance      float64 `toml:"base_distance"`
	DistanceGrow      float64 `toml:"distance_grow"`
	FollowSharpness   float64 `toml:"follow_sharpness"`
	RotationSharpness float64 `toml:"rotation_sharpness"`
	LookAhead         float64 `toml:"look_ahead"`
	MinDistance       float64 `toml:"min_distance"`
	MaxDistance       float64 `toml:"max_distance"`
	MinHeight         float64 `toml:"min_height"`
}

// Boundary configures off-track correction
type Boundary struct {
	Tolerance          float64 `toml:"tolerance"`
	CorrectionStrength float64 `toml:"correction_strength"`
	OffTrackDamping    float64 `toml:"off_track_damping"`
	Jitter             float64 `toml:"jitter"`
	JitterSeed         int64   `toml:"jitter_seed"`
}

// Log configures diagnostics output
type Log struct {
	Level string `toml:"level"`
	Debug bool   `toml:"debug"`
}

// Network configures the websocket bridge
type Network struct {
	Address  string `toml:"address"`
	TickRate int    `toml:"tick_rate"`
}

// Config is the full configuration tree
type Config struct {
	Track    Track    `toml:"track"`
	Vehicle  Vehicle  `toml:"vehicle"`
	Camera   Camera   `toml:"camera"`
	Boundary Boundary `toml:"boundary"`
	Log      Log      `toml:"log"`
	Network  Network  `toml:"network"`
}

// Default returns the configuration built from parameter defaults
func Default() Config {
	return Config{
		Track: DefaultTrack(),
		Vehicle: Vehicle{
			Thrust:            parameter.VehicleThrust,
			BoostMultiplier:   parameter.VehicleBoostMultiplier,
			BrakeForce:        parameter.VehicleBrakeForce,
			ReverseThreshold:  parameter.VehicleReverseThreshold,
			ReverseKick:       parameter.VehicleReverseKick,
			ReverseForce:      parameter.VehicleReverseForce,
			StopSpeed:         parameter.VehicleStopSpeed,
			MaxSpeed:          parameter.VehicleMaxSpeed,
			Damping:           parameter.VehicleDamping,
			SteerRate:         parameter.VehicleSteerRate,
			SteerFullSpeed:    parameter.VehicleSteerFullSpeed,
			MinSteerAuthority: parameter.VehicleMinSteerAuthority,
			MouseSensitivity:  parameter.VehicleMouseSensitivity,
			RollRate:          parameter.VehicleRollRate,
			Gravity:           parameter.VehicleGravity,
			GroundEpsilon:     parameter.VehicleGroundEpsilon,
			LateralFriction:   parameter.VehicleLateralFriction,
		},
		Camera: Camera{
			BaseHeight:        parameter.CameraBaseHeight,
			HeightDrop:        parameter.CameraHeightDrop,
			BaseDistance:      parameter.CameraBaseDistance,
			DistanceGrow:      parameter.CameraDistanceGrow,
			FollowSharpness:   parameter.CameraFollowSharpness,
			RotationSharpness: parameter.CameraRotationSharpness,
			LookAhead:         parameter.CameraLookAhead,
			MinDistance:       parameter.CameraMinDistance,
			MaxDistance:       parameter.CameraMaxDistance,
			MinHeight:         parameter.CameraMinHeight,
		},
		Boundary: Boundary{
			Tolerance:          parameter.BoundaryTolerance,
			CorrectionStrength: parameter.BoundaryCorrectionStrength,
			OffTrackDamping:    parameter.BoundaryOffTrackDamping,
			Jitter:             parameter.BoundaryJitter,
			JitterSeed:         parameter.BoundaryJitterSeed,
		},
		Log: Log{
			Level: "info",
		},
		Network: Network{
			Address:  parameter.NetworkAddress,
			TickRate: parameter.NetworkTickRate,
		},
	}
}

// DefaultTrack returns the default track configuration
func DefaultTrack() Track {
	return Track{
		SegmentLength:      parameter.SegmentLength,
		TrackWidth:         parameter.TrackWidth,
		MinCurvature:       parameter.MinCurvature,
		MaxCurvature:       parameter.MaxCurvature,
		MinElevation:       parameter.MinElevation,
		MaxElevation:       parameter.MaxElevation,
		CurveFrequency:     parameter.CurveFrequency,
		ElevationFrequency: parameter.ElevationFrequency,
		RenderDistance:     parameter.RenderDistance,
		Seed:               parameter.TrackSeed,
		StraightLeadIn:     parameter.StraightLeadIn,
		ControlPoints:      parameter.ControlPointCount,
	}
}

// Load decodes a TOML file over the defaults and validates the result
// Unknown keys are rejected so typos do not silently fall back to defaults
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "decode config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.Wrapf(ErrInvalid, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks every section
func (c Config) Validate() error {
	if err := c.Track.Validate(); err != nil {
		return err
	}
	if err := c.Vehicle.Validate(); err != nil {
		return err
	}
	if err := c.Camera.Validate(); err != nil {
		return err
	}
	return c.Boundary.Validate()
}

// Validate checks track ranges
func (t Track) Validate() error {
	switch {
	case !positive(t.SegmentLength):
		return invalid("track.segment_length must be > 0, got %v", t.SegmentLength)
	case !positive(t.TrackWidth):
		return invalid("track.track_width must be > 0, got %v", t.TrackWidth)
	case t.MinCurvature < 0 || t.MaxCurvature < t.MinCurvature:
		return invalid("track curvature range [%v, %v] invalid", t.MinCurvature, t.MaxCurvature)
	case t.MaxCurvature >= math.Pi:
		return invalid("track.max_curvature must be < pi, got %v", t.MaxCurvature)
	case t.MaxElevation < t.MinElevation:
		return invalid("track elevation range [%v, %v] invalid", t.MinElevation, t.MaxElevation)
	case t.CurveFrequency < 0 || t.CurveFrequency > 1:
		return invalid("track.curve_frequency must be in [0,1], got %v", t.CurveFrequency)
	case t.ElevationFrequency < 0 || t.ElevationFrequency > 1:
		return invalid("track.elevation_frequency must be in [0,1], got %v", t.ElevationFrequency)
	case t.RenderDistance < 1:
		return invalid("track.render_distance must be >= 1, got %d", t.RenderDistance)
	case t.StraightLeadIn < 0:
		return invalid("track.straight_lead_in must be >= 0, got %d", t.StraightLeadIn)
	case t.ControlPoints < 10:
		return invalid("track.control_points must be >= 10, got %d", t.ControlPoints)
	}
	return nil
}

// Validate checks vehicle ranges
func (v Vehicle) Validate() error {
	switch {
	case !positive(v.MaxSpeed):
		return invalid("vehicle.max_speed must be > 0, got %v", v.MaxSpeed)
	case v.Damping <= 0 || v.Damping > 1:
		return invalid("vehicle.damping must be in (0,1], got %v", v.Damping)
	case v.Thrust < 0 || v.BrakeForce < 0 || v.ReverseForce < 0 || v.ReverseKick < 0:
		return invalid("vehicle forces must be >= 0")
	case v.ReverseThreshold < 0 || v.StopSpeed < 0:
		return invalid("vehicle speed thresholds must be >= 0")
	case v.MinSteerAuthority < 0 || v.MinSteerAuthority > 1:
		return invalid("vehicle.min_steer_authority must be in [0,1], got %v", v.MinSteerAuthority)
	case !positive(v.SteerFullSpeed):
		return invalid("vehicle.steer_full_speed must be > 0, got %v", v.SteerFullSpeed)
	case v.Gravity < 0 || v.LateralFriction < 0:
		return invalid("vehicle gravity and lateral_friction must be >= 0")
	}
	return nil
}

// Validate checks camera ranges
func (c Camera) Validate() error {
	switch {
	case !positive(c.MinDistance) || c.MaxDistance < c.MinDistance:
		return invalid("camera distance band [%v, %v] invalid", c.MinDistance, c.MaxDistance)
	case c.FollowSharpness < 0 || c.RotationSharpness < 0:
		return invalid("camera sharpness must be >= 0")
	case c.MinHeight < 0:
		return invalid("camera.min_height must be >= 0, got %v", c.MinHeight)
	}
	return nil
}

// Validate checks boundary ranges
func (b Boundary) Validate() error {
	switch {
	case !positive(b.Tolerance):
		return invalid("boundary.tolerance must be > 0, got %v", b.Tolerance)
	case b.OffTrackDamping <= 0 || b.OffTrackDamping > 1:
		return invalid("boundary.off_track_damping must be in (0,1], got %v", b.OffTrackDamping)
	case b.CorrectionStrength < 0 || b.Jitter < 0:
		return invalid("boundary strength and jitter must be >= 0")
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func invalid(format string, args ...any) error {
	return errors.Wrapf(ErrInvalid, format, args...)
}
