package system

import (
	"math"
	"sync/atomic"

	"github.com/lixenwraith/vi-racer/component"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/parameter"
	"github.com/lixenwraith/vi-racer/physics"
	"github.com/lixenwraith/vi-racer/status"
	"github.com/lixenwraith/vi-racer/vmath"
)

// maxGroundBank limits banking while wheels are on the surface
const maxGroundBank = math.Pi / 4

// DriveSystem converts the player's input into heading changes, forces and impulses,
// and resolves ground contact against last frame's surface height
type DriveSystem struct {
	engine.SystemBase

	statState *status.AtomicString
	statSpeed *status.AtomicFloat
	statTop   *status.AtomicFloat
	statKicks *atomic.Int64
}

// NewDriveSystem creates the input-to-movement stage
func NewDriveSystem(world *engine.World) engine.System {
	s := &DriveSystem{SystemBase: engine.NewSystemBase(world)}
	s.statState = s.Resource.Status.Strings.Get(status.PlayerState)
	s.statSpeed = s.Resource.Status.Floats.Get(status.PlayerSpeed)
	s.statTop = s.Resource.Status.Floats.Get(status.PlayerTopSpeed)
	s.statKicks = s.Resource.Status.Ints.Get(status.PlayerReverseKicks)
	return s
}

func (s *DriveSystem) Name() string  { return "InputToMovement" }
func (s *DriveSystem) Priority() int { return parameter.PriorityDrive }

func (s *DriveSystem) Update() {
	player, ok := s.World.PlayerEntity()
	if !ok {
		return
	}
	tr, ok1 := s.Component.Transform.Get(player)
	in, ok2 := s.Component.Input.Get(player)
	mv, ok3 := s.Component.Movement.Get(player)
	veh, ok4 := s.Component.Vehicle.Get(player)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return
	}

	cfg := &s.Resource.Config.Vehicle
	dt := s.Resource.Time.Delta

	heading := physics.HeadingFromYaw(veh.Yaw)
	fwd := physics.ForwardSpeed(mv.Velocity, heading)

	veh.Yaw += physics.YawDelta(in, fwd, dt, cfg)
	heading = physics.HeadingFromYaw(veh.Yaw)

	next := physics.NextLongitudinalState(in, fwd, cfg)
	if next == component.StateReversing && veh.State != component.StateReversing {
		mv.Velocity = vmath.V3FAdd(mv.Velocity, physics.ReverseKick(heading, cfg))
		s.statKicks.Add(1)
	}
	veh.State = next
	mv.Force = vmath.V3FAdd(mv.Force, physics.DriveForce(next, in, heading, fwd, cfg))

	surface := 0.0
	if contact, ok := s.Component.TrackContact.Get(player); ok && contact.HasSurface {
		surface = contact.SurfaceHeight
	}
	veh.Grounded = physics.ApplyGroundContact(&tr.Position, &mv.Velocity, surface, heading, dt, cfg)

	veh.Bank += in.Roll * cfg.RollRate * dt
	if veh.Grounded {
		if in.Roll == 0 {
			veh.Bank *= math.Exp(-cfg.RollRate * dt)
		}
		veh.Bank = math.Max(-maxGroundBank, math.Min(maxGroundBank, veh.Bank))
	}
	tr.Rotation = physics.Orientation(veh.Yaw, veh.Bank)

	if state := veh.State.String(); s.statState.Swap(state) != state {
		s.Resource.Log.Debugf("player state -> %s", state)
	}
	speed := vmath.V3FMag(mv.Velocity)
	s.statSpeed.Set(speed)
	s.statTop.Max(speed)
}
