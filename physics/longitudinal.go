package physics

import (
	"math"

	"github.com/lixenwraith/vi-racer/component"
	"github.com/lixenwraith/vi-racer/config"
	"github.com/lixenwraith/vi-racer/vmath"
)

// NextLongitudinalState derives the driving mode from input and the signed forward speed
// Reversing requires brake held and forward speed at or below the reverse threshold;
// above it the same input only brakes. A negative throttle counts as brake.
func NextLongitudinalState(in *component.InputComponent, forwardSpeed float64, cfg *config.Vehicle) component.LongitudinalState {
	braking := in.Brake || in.Forward < 0

	switch {
	case braking && forwardSpeed <= cfg.ReverseThreshold:
		return component.StateReversing
	case braking:
		return component.StateBrakingToStop
	case in.Forward > 0:
		return component.StateForward
	case math.Abs(forwardSpeed) <= cfg.StopSpeed:
		return component.StateStopped
	case forwardSpeed > 0:
		return component.StateForward
	default:
		// Rolling backward with no input decays under damping
		return component.StateBrakingToStop
	}
}

// DriveForce returns the continuous longitudinal force for a state
func DriveForce(state component.LongitudinalState, in *component.InputComponent, heading vmath.Vec3F, forwardSpeed float64, cfg *config.Vehicle) vmath.Vec3F {
	switch state {
	case component.StateForward:
		if in.Forward <= 0 {
			return vmath.V3FZero
		}
		thrust := cfg.Thrust * in.Forward
		if in.Boost {
			thrust *= cfg.BoostMultiplier
		}
		return vmath.V3FScale(heading, thrust)

	case component.StateBrakingToStop:
		if !in.Brake && in.Forward >= 0 {
			return vmath.V3FZero
		}
		// Oppose current travel only
		if forwardSpeed > 0 {
			return vmath.V3FScale(heading, -cfg.BrakeForce)
		}
		return vmath.V3FZero

	case component.StateReversing:
		return vmath.V3FScale(heading, -cfg.ReverseForce)
	}
	return vmath.V3FZero
}

// ReverseKick is the velocity impulse applied on the frame Reversing is entered
func ReverseKick(heading vmath.Vec3F, cfg *config.Vehicle) vmath.Vec3F {
	return vmath.V3FScale(heading, -cfg.ReverseKick)
}

// SteerAuthority scales steering by speed: none beyond the minimum at a standstill, full at SteerFullSpeed
func SteerAuthority(speed float64, cfg *config.Vehicle) float64 {
	if cfg.SteerFullSpeed <= 0 {
		return 1
	}
	a := math.Abs(speed) / cfg.SteerFullSpeed
	return math.Max(cfg.MinSteerAuthority, math.Min(1, a))
}

// YawDelta converts strafe and horizontal mouse motion into a heading change for dt
// Positive strafe steers right; steering inverts while rolling backward
func YawDelta(in *component.InputComponent, forwardSpeed, dt float64, cfg *config.Vehicle) float64 {
	authority := SteerAuthority(forwardSpeed, cfg)
	steer := -in.Strafe*cfg.SteerRate*dt - in.MouseDelta.X*cfg.MouseSensitivity
	if forwardSpeed < 0 {
		steer = -steer
	}
	return steer * authority
}
