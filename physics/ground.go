package physics

import (
	"math"

	"github.com/lixenwraith/vi-racer/config"
	"github.com/lixenwraith/vi-racer/vmath"
)

// ApplyGroundContact resolves vertical motion against the surface height
// Grounded: clamps height, kills downward velocity and bleeds sideways slip.
// Airborne: applies gravity. Returns whether the vehicle is grounded.
func ApplyGroundContact(pos, vel *vmath.Vec3F, surface float64, heading vmath.Vec3F, dt float64, cfg *config.Vehicle) bool {
	if pos.Y > surface+cfg.GroundEpsilon {
		vel.Y -= cfg.Gravity * dt
		return false
	}

	pos.Y = surface
	if vel.Y < 0 {
		vel.Y = 0
	}

	right := vmath.V3FNormalize(vmath.V3FCross(heading, vmath.V3FUp))
	if right != vmath.V3FZero {
		slip := vmath.V3FDot(*vel, right)
		keep := math.Exp(-cfg.LateralFriction * dt)
		*vel = vmath.V3FSub(*vel, vmath.V3FScale(right, slip*(1-keep)))
	}
	return true
}
