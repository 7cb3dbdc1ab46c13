package system

import (
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/parameter"
	"github.com/lixenwraith/vi-racer/physics"
)

// ForceSystem integrates accumulated force into velocity, damps it and clears the force
type ForceSystem struct {
	engine.SystemBase
}

func NewForceSystem(world *engine.World) engine.System {
	return &ForceSystem{SystemBase: engine.NewSystemBase(world)}
}

func (s *ForceSystem) Name() string  { return "ApplyForce" }
func (s *ForceSystem) Priority() int { return parameter.PriorityForce }

func (s *ForceSystem) Update() {
	dt := s.Resource.Time.Delta
	for _, e := range s.Component.Movement.All() {
		if mv, ok := s.Component.Movement.Get(e); ok {
			physics.Integrate(mv, dt)
		}
	}
}
