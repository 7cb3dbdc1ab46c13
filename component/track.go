package component

import (
	"github.com/lixenwraith/vi-racer/track"
	"github.com/lixenwraith/vi-racer/vmath"
)

// TrackSegmentComponent attaches immutable segment geometry to a track entity
type TrackSegmentComponent struct {
	Params track.SegmentParams
}

// TrackContactComponent is the player's relation to the track, written by the boundary system
// Movement reads SurfaceHeight on the next frame for ground contact
type TrackContactComponent struct {
	Segment       int
	Lateral       float64
	SurfaceHeight float64
	HasSurface    bool
	OffTrack      bool
	Correction    vmath.Vec3F // Corrective force applied this frame, zero when on track
}
