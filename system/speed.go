package system

import (
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/parameter"
	"github.com/lixenwraith/vi-racer/physics"
)

// SpeedLimitSystem hard-clamps velocity magnitude to MaxSpeed, preserving direction
type SpeedLimitSystem struct {
	engine.SystemBase
}

func NewSpeedLimitSystem(world *engine.World) engine.System {
	return &SpeedLimitSystem{SystemBase: engine.NewSystemBase(world)}
}

func (s *SpeedLimitSystem) Name() string  { return "LimitSpeed" }
func (s *SpeedLimitSystem) Priority() int { return parameter.PrioritySpeed }

func (s *SpeedLimitSystem) Update() {
	for _, e := range s.Component.MaxSpeed.All() {
		limit, ok1 := s.Component.MaxSpeed.Get(e)
		mv, ok2 := s.Component.Movement.Get(e)
		if !ok1 || !ok2 {
			continue
		}
		physics.CapSpeed(&mv.Velocity, limit.MaxSpeed)
	}
}
