package component

import (
	"github.com/lixenwraith/vi-racer/vmath"
)

// CameraRigComponent is the follow camera's smoothing state
type CameraRigComponent struct {
	Target      vmath.Vec3F // Smoothed look-at point
	Initialized bool        // First follow frame snaps instead of blending
}

// ViewComponent links an entity to a renderer-side handle
type ViewComponent struct {
	Handle uint64
	Kind   ViewKind
}

// ViewKind selects the renderer representation
type ViewKind uint8

const (
	ViewVehicle ViewKind = iota
	ViewCamera
	ViewSegment
	ViewGround
)

var viewKindNames = [...]string{
	ViewVehicle: "vehicle",
	ViewCamera:  "camera",
	ViewSegment: "segment",
	ViewGround:  "ground",
}

func (k ViewKind) String() string {
	if int(k) < len(viewKindNames) {
		return viewKindNames[k]
	}
	return "unknown"
}
