package component

import (
	"github.com/lixenwraith/vi-racer/vmath"
)

// MovementComponent carries linear motion state
// Force accumulates within a frame and is cleared after integration
type MovementComponent struct {
	Velocity vmath.Vec3F
	Force    vmath.Vec3F
	Thrust   float64 // Forward force at full throttle
	Damping  float64 // Per-reference-frame velocity multiplier in (0,1]
}

// MaxSpeedComponent is the hard speed limit applied after integration
type MaxSpeedComponent struct {
	MaxSpeed float64
}
