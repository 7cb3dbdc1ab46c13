package system

import (
	"github.com/lixenwraith/vi-racer/component"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/parameter"
)

// InputSource is the destructive per-frame read of the input accumulator
type InputSource interface {
	Drain() component.InputComponent
}

// PollInputSystem copies accumulated input into the player's InputComponent
type PollInputSystem struct {
	engine.SystemBase
	source InputSource
}

// NewPollInputSystem creates the input stage; a nil source leaves input untouched
func NewPollInputSystem(world *engine.World, source InputSource) engine.System {
	return &PollInputSystem{
		SystemBase: engine.NewSystemBase(world),
		source:     source,
	}
}

func (s *PollInputSystem) Name() string  { return "PollInput" }
func (s *PollInputSystem) Priority() int { return parameter.PriorityInput }

// Update drains exactly once per frame, even without a player, so stale deltas never carry over
func (s *PollInputSystem) Update() {
	if s.source == nil {
		return
	}
	in := s.source.Drain()

	player, ok := s.World.PlayerEntity()
	if !ok {
		return
	}
	s.Component.Input.Set(player, in)
}
