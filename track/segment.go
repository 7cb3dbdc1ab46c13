// Package track generates and streams the procedural track: segment geometry,
// boundary queries and the active-window segment manager.
package track

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/vi-racer/vmath"
)

// ErrMalformedSegment reports generator input or output that cannot form a segment
var ErrMalformedSegment = errors.New("malformed segment")

// SegmentType labels a segment's shape for rendering and patterning
type SegmentType uint8

const (
	SegmentStraight SegmentType = iota
	SegmentCurveLeft
	SegmentCurveRight
	SegmentHillUp
	SegmentHillDown
	SegmentChicane
	SegmentSCurve
)

var segmentTypeNames = [...]string{
	SegmentStraight:   "straight",
	SegmentCurveLeft:  "curve-left",
	SegmentCurveRight: "curve-right",
	SegmentHillUp:     "hill-up",
	SegmentHillDown:   "hill-down",
	SegmentChicane:    "chicane",
	SegmentSCurve:     "s-curve",
}

func (t SegmentType) String() string {
	if int(t) < len(segmentTypeNames) {
		return segmentTypeNames[t]
	}
	return "unknown"
}

// IsCurve reports whether the type turns the heading
func (t SegmentType) IsCurve() bool {
	return t == SegmentCurveLeft || t == SegmentCurveRight
}

// SegmentParams is the immutable description of one track segment
// Continuity: seg[i].EndPosition == seg[i+1].StartPosition and likewise for directions
type SegmentParams struct {
	Index     int
	Length    float64
	Width     float64
	Type      SegmentType
	Curvature float64 // Signed total turn in radians, negative = left
	Elevation float64 // Net vertical change

	StartPosition  vmath.Vec3F
	EndPosition    vmath.Vec3F
	StartDirection vmath.Vec3F
	EndDirection   vmath.Vec3F

	// ControlPoints samples the centerline from StartPosition to EndPosition, len >= 2
	ControlPoints []vmath.Vec3F

	// Fallback marks a degraded straight segment substituted for a failed generation
	Fallback bool
}

// validate checks the invariants consumers rely on
func (s *SegmentParams) validate() error {
	if len(s.ControlPoints) < 2 {
		return errors.Wrapf(ErrMalformedSegment, "segment %d has %d control points", s.Index, len(s.ControlPoints))
	}
	for i, p := range s.ControlPoints {
		if !vmath.V3FIsFinite(p) {
			return errors.Wrapf(ErrMalformedSegment, "segment %d control point %d not finite", s.Index, i)
		}
	}
	if !vmath.V3FIsFinite(s.EndPosition) || !vmath.V3FIsFinite(s.EndDirection) {
		return errors.Wrapf(ErrMalformedSegment, "segment %d end pose not finite", s.Index)
	}
	if vmath.V3FMagSq(s.EndDirection) < 1e-12 {
		return errors.Wrapf(ErrMalformedSegment, "segment %d end direction is zero", s.Index)
	}
	return nil
}
