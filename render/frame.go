// Package render holds the renderer-facing snapshot of a simulation frame and
// a top-down terminal renderer that draws it.
package render

import (
	"github.com/lixenwraith/vi-racer/vmath"
)

// Frame is an immutable copy of everything a renderer may draw for one tick
// Control point slices are shared with the track cache; they are never mutated after generation
type Frame struct {
	Frame   int64   `json:"frame"`
	Elapsed float64 `json:"elapsed"`

	Player   PlayerView     `json:"player"`
	Camera   CameraPose     `json:"camera"`
	Segments []SegmentView  `json:"segments"`
	Entities []EntityView   `json:"entities"`
	Metrics  map[string]any `json:"metrics,omitempty"`
}

// CameraPose is the active camera, passed explicitly to culling queries
type CameraPose struct {
	Position vmath.Vec3F `json:"position"`
	Rotation vmath.Quat  `json:"rotation"`
}

// Forward returns the camera view direction
func (c CameraPose) Forward() vmath.Vec3F {
	return vmath.QuatForward(c.Rotation)
}

// PlayerView is the vehicle state a HUD needs
type PlayerView struct {
	Present  bool        `json:"present"`
	Position vmath.Vec3F `json:"position"`
	Velocity vmath.Vec3F `json:"velocity"`
	Heading  vmath.Vec3F `json:"heading"`
	Speed    float64     `json:"speed"`
	MaxSpeed float64     `json:"max_speed"`
	Bank     float64     `json:"bank"`
	State    string      `json:"state"`
	Grounded bool        `json:"grounded"`
	OffTrack bool        `json:"off_track"`
	Segment  int         `json:"segment"`
	Lateral  float64     `json:"lateral"`
}

// SegmentView is the drawable part of one active segment
type SegmentView struct {
	Index         int           `json:"index"`
	Type          string        `json:"type"`
	Fallback      bool          `json:"fallback,omitempty"`
	Width         float64       `json:"width"`
	ControlPoints []vmath.Vec3F `json:"points"`
}

// EntityView is one transform handed off by the view sync stage
type EntityView struct {
	Handle   uint64      `json:"handle"`
	Kind     string      `json:"kind"`
	Position vmath.Vec3F `json:"position"`
	Rotation vmath.Quat  `json:"rotation"`
}

// VisibleSegments returns the segments with any centerline sample within radius of the camera
// Order of frame.Segments is preserved
func VisibleSegments(frame *Frame, camera CameraPose, radius float64) []SegmentView {
	if frame == nil || radius <= 0 {
		return nil
	}
	r2 := radius * radius
	var out []SegmentView
	for _, seg := range frame.Segments {
		for _, p := range seg.ControlPoints {
			if vmath.V3FMagSq(vmath.V3FSub(p, camera.Position)) <= r2 {
				out = append(out, seg)
				break
			}
		}
	}
	return out
}
