package engine

import (
	"github.com/lixenwraith/vi-racer/component"
)

// ComponentStore provides cached pointer to typed component store
// Initialized once per world; systems copy it through SystemBase
type ComponentStore struct {
	// Spatial
	Transform *Store[component.TransformComponent]

	// Player
	Movement     *Store[component.MovementComponent]
	Input        *Store[component.InputComponent]
	MaxSpeed     *Store[component.MaxSpeedComponent]
	Vehicle      *Store[component.VehicleComponent]
	TrackContact *Store[component.TrackContactComponent]

	// Track
	TrackSegment *Store[component.TrackSegmentComponent]

	// Camera and view
	CameraRig *Store[component.CameraRigComponent]
	View      *Store[component.ViewComponent]

	// Tags
	Player *Store[component.IsPlayer]
	Camera *Store[component.IsCamera]
	Track  *Store[component.IsTrack]
	Ground *Store[component.IsGround]
}

func newComponentStore(w *World) ComponentStore {
	return ComponentStore{
		Transform: NewStore[component.TransformComponent](w.ecs),

		Movement:     NewStore[component.MovementComponent](w.ecs),
		Input:        NewStore[component.InputComponent](w.ecs),
		MaxSpeed:     NewStore[component.MaxSpeedComponent](w.ecs),
		Vehicle:      NewStore[component.VehicleComponent](w.ecs),
		TrackContact: NewStore[component.TrackContactComponent](w.ecs),

		TrackSegment: NewStore[component.TrackSegmentComponent](w.ecs),

		CameraRig: NewStore[component.CameraRigComponent](w.ecs),
		View:      NewStore[component.ViewComponent](w.ecs),

		Player: NewStore[component.IsPlayer](w.ecs),
		Camera: NewStore[component.IsCamera](w.ecs),
		Track:  NewStore[component.IsTrack](w.ecs),
		Ground: NewStore[component.IsGround](w.ecs),
	}
}
