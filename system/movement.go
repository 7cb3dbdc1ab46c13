package system

import (
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/parameter"
	"github.com/lixenwraith/vi-racer/physics"
)

// MovementSystem advances every moving entity by its velocity
type MovementSystem struct {
	engine.SystemBase
}

func NewMovementSystem(world *engine.World) engine.System {
	return &MovementSystem{SystemBase: engine.NewSystemBase(world)}
}

func (s *MovementSystem) Name() string  { return "MoveEntities" }
func (s *MovementSystem) Priority() int { return parameter.PriorityMovement }

func (s *MovementSystem) Update() {
	dt := s.Resource.Time.Delta
	for _, e := range s.Component.Movement.All() {
		mv, ok1 := s.Component.Movement.Get(e)
		tr, ok2 := s.Component.Transform.Get(e)
		if !ok1 || !ok2 {
			continue
		}
		physics.Advance(&tr.Position, mv.Velocity, dt)
	}
}
