package system

import (
	"github.com/lixenwraith/vi-racer/component"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/parameter"
)

// ViewSink receives the final transforms of a frame; implemented by renderers
type ViewSink interface {
	SyncView(view component.ViewComponent, t component.TransformComponent)
}

// ViewSystem hands every viewable entity's transform to the sink
type ViewSystem struct {
	engine.SystemBase
	sink ViewSink
}

// NewViewSystem creates the hand-off stage; a nil sink makes it a no-op
func NewViewSystem(world *engine.World, sink ViewSink) engine.System {
	return &ViewSystem{
		SystemBase: engine.NewSystemBase(world),
		sink:       sink,
	}
}

func (s *ViewSystem) Name() string  { return "SyncView" }
func (s *ViewSystem) Priority() int { return parameter.PriorityView }

func (s *ViewSystem) Update() {
	if s.sink == nil {
		return
	}
	for _, e := range s.Component.View.All() {
		view, ok1 := s.Component.View.Get(e)
		tr, ok2 := s.Component.Transform.Get(e)
		if !ok1 || !ok2 {
			continue
		}
		s.sink.SyncView(*view, *tr)
	}
}
