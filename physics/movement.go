// Package physics holds the pure motion helpers used by the movement systems.
// Functions mutate the values they are handed and never touch the world.
package physics

import (
	"math"

	"github.com/lixenwraith/vi-racer/component"
	"github.com/lixenwraith/vi-racer/parameter"
	"github.com/lixenwraith/vi-racer/vmath"
)

// CapSpeed limits the velocity vector magnitude to maxSpeed
// Returns true if velocity was clamped
func CapSpeed(vel *vmath.Vec3F, maxSpeed float64) bool {
	if maxSpeed < 0 {
		maxSpeed = 0
	}
	magSq := vmath.V3FMagSq(*vel)
	if magSq <= maxSpeed*maxSpeed {
		return false
	}
	*vel = vmath.V3FScale(*vel, maxSpeed/math.Sqrt(magSq))
	return true
}

// DampingFactor converts a per-reference-frame multiplier into the factor for dt seconds
// so drag is independent of frame rate
func DampingFactor(damping, dt float64) float64 {
	if damping <= 0 {
		return 0
	}
	if damping >= 1 {
		return 1
	}
	return math.Pow(damping, dt*parameter.ReferenceFrameRate)
}

// Integrate applies accumulated force as direct acceleration, damps velocity and clears force
func Integrate(mv *component.MovementComponent, dt float64) {
	mv.Velocity = vmath.V3FAdd(mv.Velocity, vmath.V3FScale(mv.Force, dt))
	mv.Velocity = vmath.V3FScale(mv.Velocity, DampingFactor(mv.Damping, dt))
	mv.Force = vmath.V3FZero
}

// Advance moves a position by velocity over dt
func Advance(pos *vmath.Vec3F, vel vmath.Vec3F, dt float64) {
	*pos = vmath.V3FAdd(*pos, vmath.V3FScale(vel, dt))
}

// ForwardSpeed is the signed speed along heading, negative when rolling backward
func ForwardSpeed(vel, heading vmath.Vec3F) float64 {
	return vmath.V3FDot(vel, heading)
}

// HeadingFromYaw returns the horizontal unit heading for a yaw angle
func HeadingFromYaw(yaw float64) vmath.Vec3F {
	return vmath.V3FRotateY(vmath.V3FForward, yaw)
}

// YawFromHeading inverts HeadingFromYaw for the horizontal part of h
func YawFromHeading(h vmath.Vec3F) float64 {
	if h.X == 0 && h.Z == 0 {
		return 0
	}
	return math.Atan2(-h.X, -h.Z)
}

// Orientation composes yaw about +Y with bank about the resulting heading
func Orientation(yaw, bank float64) vmath.Quat {
	q := vmath.QuatFromAxisAngle(vmath.V3FUp, yaw)
	if bank == 0 {
		return q
	}
	return vmath.QuatMul(vmath.QuatFromAxisAngle(HeadingFromYaw(yaw), bank), q)
}
