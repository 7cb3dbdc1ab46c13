package system

import (
	"math"

	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/parameter"
	"github.com/lixenwraith/vi-racer/physics"
	"github.com/lixenwraith/vi-racer/vmath"
)

// CameraSystem eases the camera toward a speed-dependent chase pose behind the player
// Position and orientation blend exponentially; the result is clamped to the distance band and minimum height
type CameraSystem struct {
	engine.SystemBase
}

func NewCameraSystem(world *engine.World) engine.System {
	return &CameraSystem{SystemBase: engine.NewSystemBase(world)}
}

func (s *CameraSystem) Name() string  { return "CameraFollow" }
func (s *CameraSystem) Priority() int { return parameter.PriorityCamera }

func (s *CameraSystem) Update() {
	player, ok := s.World.PlayerEntity()
	if !ok {
		return
	}
	cam, ok := s.World.CameraEntity()
	if !ok {
		return
	}
	ptr, ok1 := s.Component.Transform.Get(player)
	ctr, ok2 := s.Component.Transform.Get(cam)
	rig, ok3 := s.Component.CameraRig.Get(cam)
	if !ok1 || !ok2 || !ok3 {
		return
	}

	cfg := &s.Resource.Config.Camera
	dt := s.Resource.Time.Delta

	heading := vmath.V3FNormalize(vmath.V3FHorizontal(ptr.Forward()))
	speedRatio := 0.0
	if veh, ok := s.Component.Vehicle.Get(player); ok {
		heading = physics.HeadingFromYaw(veh.Yaw)
	}
	if heading == vmath.V3FZero {
		heading = vmath.V3FForward
	}
	if mv, ok := s.Component.Movement.Get(player); ok {
		if limit, ok := s.Component.MaxSpeed.Get(player); ok && limit.MaxSpeed > 0 {
			speedRatio = math.Min(1, vmath.V3FMag(mv.Velocity)/limit.MaxSpeed)
		}
	}

	height := cfg.BaseHeight - cfg.HeightDrop*speedRatio
	distance := cfg.BaseDistance + cfg.DistanceGrow*speedRatio
	desired := vmath.V3FAdd(ptr.Position, vmath.V3FAdd(vmath.V3FScale(heading, -distance), vmath.V3FScale(vmath.V3FUp, height)))
	lookAt := vmath.V3FAdd(ptr.Position, vmath.V3FScale(heading, cfg.LookAhead))

	snap := !rig.Initialized
	if snap {
		ctr.Position = desired
		rig.Target = lookAt
		rig.Initialized = true
	} else {
		follow := 1 - math.Exp(-cfg.FollowSharpness*dt)
		ctr.Position = vmath.V3FLerp(ctr.Position, desired, follow)
		rig.Target = vmath.V3FLerp(rig.Target, lookAt, follow)
	}

	// Distance band around the player
	offset := vmath.V3FSub(ctr.Position, ptr.Position)
	d := vmath.V3FMag(offset)
	switch {
	case d < 1e-9:
		offset = vmath.V3FScale(heading, -cfg.MinDistance)
	case d < cfg.MinDistance:
		offset = vmath.V3FScale(offset, cfg.MinDistance/d)
	case d > cfg.MaxDistance:
		offset = vmath.V3FScale(offset, cfg.MaxDistance/d)
	}
	ctr.Position = vmath.V3FAdd(ptr.Position, offset)

	ground := ptr.Position.Y
	if contact, ok := s.Component.TrackContact.Get(player); ok && contact.HasSurface {
		ground = contact.SurfaceHeight
	}
	if floor := ground + cfg.MinHeight; ctr.Position.Y < floor {
		ctr.Position.Y = floor
		// Lifting may overshoot the band; give up horizontal distance, never height
		offset = vmath.V3FSub(ctr.Position, ptr.Position)
		if vmath.V3FMag(offset) > cfg.MaxDistance && math.Abs(offset.Y) < cfg.MaxDistance {
			horiz := vmath.V3FHorizontal(offset)
			if hm := vmath.V3FMag(horiz); hm > 1e-9 {
				keep := math.Sqrt(cfg.MaxDistance*cfg.MaxDistance - offset.Y*offset.Y)
				horiz = vmath.V3FScale(horiz, keep/hm)
				ctr.Position.X = ptr.Position.X + horiz.X
				ctr.Position.Z = ptr.Position.Z + horiz.Z
			}
		}
	}

	look := vmath.QuatLookRotation(vmath.V3FSub(rig.Target, ctr.Position), vmath.V3FUp)
	if snap {
		ctr.Rotation = look
	} else {
		ctr.Rotation = vmath.QuatSlerp(ctr.Rotation, look, 1-math.Exp(-cfg.RotationSharpness*dt))
	}
}
