package engine

import (
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/lixenwraith/vi-racer/component"
	"github.com/lixenwraith/vi-racer/config"
	"github.com/lixenwraith/vi-racer/logging"
	"github.com/lixenwraith/vi-racer/status"
	"github.com/lixenwraith/vi-racer/track"
	"github.com/lixenwraith/vi-racer/vmath"
)

// World owns the entity substrate, typed component stores, resources and the system pipeline
// Not safe for concurrent use; the session goroutine is the only caller
type World struct {
	ecs *ecs.World

	Resource   Resource
	Components ComponentStore

	systems []System
}

// NewWorld creates an empty world with resources built from cfg
func NewWorld(cfg config.Config, reg *status.Registry, log *logging.Logger) *World {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if log == nil {
		log = logging.Discard()
	}
	ew := ecs.NewWorld()
	w := &World{
		ecs: &ew,
		Resource: Resource{
			Time:   &TimeResource{},
			Config: &ConfigResource{Config: cfg},
			Track:  &TrackResource{},
			Status: reg,
			Log:    log,
		},
	}
	w.Components = newComponentStore(w)
	return w
}

// CreateEntity spawns an entity with a transform; every entity in this schema has one
func (w *World) CreateEntity(t component.TransformComponent) ecs.Entity {
	return w.Components.Transform.m.NewEntity(&t)
}

// DestroyEntity removes e and all its components; dead handles are ignored
func (w *World) DestroyEntity(e ecs.Entity) {
	if w.Alive(e) {
		w.ecs.RemoveEntity(e)
	}
}

// Alive reports whether e refers to a live entity
func (w *World) Alive(e ecs.Entity) bool {
	return e != (ecs.Entity{}) && w.ecs.Alive(e)
}

// SpawnSegment creates an IsTrack entity carrying the segment, positioned at its start
func (w *World) SpawnSegment(params *track.SegmentParams) ecs.Entity {
	t := component.NewTransform(params.StartPosition)
	t.Rotation = vmath.QuatLookRotation(params.StartDirection, vmath.V3FUp)
	e := w.CreateEntity(t)
	w.Components.Track.Set(e, component.IsTrack{})
	w.Components.TrackSegment.Set(e, component.TrackSegmentComponent{Params: *params})
	w.Components.View.Set(e, component.ViewComponent{Handle: uint64(params.Index), Kind: component.ViewSegment})
	return e
}

// DespawnSegment destroys a segment entity
func (w *World) DespawnSegment(e ecs.Entity) {
	w.DestroyEntity(e)
}

// AddSystem adds a system to the world and sorts by priority
// Equal priorities keep registration order
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// Systems returns a copy of the registered pipeline in run order
func (w *World) Systems() []System {
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

// Update runs all systems sequentially
func (w *World) Update() {
	for _, s := range w.systems {
		s.Update()
	}
}

// PlayerEntity returns the single player, if spawned
func (w *World) PlayerEntity() (ecs.Entity, bool) {
	return w.Components.Player.First()
}

// CameraEntity returns the single camera, if spawned
func (w *World) CameraEntity() (ecs.Entity, bool) {
	return w.Components.Camera.First()
}
