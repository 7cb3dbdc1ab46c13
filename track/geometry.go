package track

import (
	"math"

	"github.com/lixenwraith/vi-racer/vmath"
)

// Projection is the nearest point of a centerline polyline to a query position
type Projection struct {
	Closest vmath.Vec3F // Nearest centerline point, Y interpolated
	Tangent vmath.Vec3F // Horizontal unit heading at Closest
	Index   int         // Polyline edge index holding Closest
	Along   float64     // Horizontal path distance from the first point to Closest
	Lateral float64     // Signed horizontal offset, positive = right of travel

	// BeforeStart/PastEnd report the query lies beyond the polyline ends longitudinally
	BeforeStart bool
	PastEnd     bool
}

// RightOf returns the horizontal right-hand perpendicular of heading
func RightOf(heading vmath.Vec3F) vmath.Vec3F {
	return vmath.V3FNormalize(vmath.Vec3F{X: -heading.Z, Z: heading.X})
}

// Edges offsets the centerline by half the width on each side in the horizontal plane
func Edges(points []vmath.Vec3F, width float64) (left, right []vmath.Vec3F) {
	n := len(points)
	if n == 0 {
		return nil, nil
	}
	left = make([]vmath.Vec3F, n)
	right = make([]vmath.Vec3F, n)
	half := width / 2
	for i := range points {
		r := vmath.V3FScale(RightOf(tangentAt(points, i)), half)
		left[i] = vmath.V3FSub(points[i], r)
		right[i] = vmath.V3FAdd(points[i], r)
	}
	return left, right
}

// tangentAt estimates the horizontal heading at point i from its neighbours
func tangentAt(points []vmath.Vec3F, i int) vmath.Vec3F {
	n := len(points)
	if n < 2 {
		return vmath.V3FForward
	}
	a, b := i-1, i+1
	if a < 0 {
		a = 0
	}
	if b >= n {
		b = n - 1
	}
	t := vmath.V3FNormalize(vmath.V3FHorizontal(vmath.V3FSub(points[b], points[a])))
	if t == vmath.V3FZero {
		return vmath.V3FForward
	}
	return t
}

// ProjectOnPath finds the nearest point on the polyline to p, measured horizontally
func ProjectOnPath(points []vmath.Vec3F, p vmath.Vec3F) Projection {
	switch len(points) {
	case 0:
		return Projection{Closest: p, Tangent: vmath.V3FForward}
	case 1:
		return Projection{Closest: points[0], Tangent: vmath.V3FForward}
	}

	best := Projection{Index: -1}
	bestDist := math.Inf(1)
	along := 0.0
	last := len(points) - 2

	for i := 0; i <= last; i++ {
		a, b := points[i], points[i+1]
		ab := vmath.V3FHorizontal(vmath.V3FSub(b, a))
		lenSq := vmath.V3FMagSq(ab)
		edgeLen := math.Sqrt(lenSq)
		if lenSq < 1e-12 {
			continue
		}

		raw := vmath.V3FDot(vmath.V3FHorizontal(vmath.V3FSub(p, a)), ab) / lenSq
		t := math.Max(0, math.Min(1, raw))
		c := vmath.V3FLerp(a, b, t)
		d := vmath.V3FMagSq(vmath.V3FHorizontal(vmath.V3FSub(p, c)))

		if d < bestDist {
			bestDist = d
			tangent := vmath.V3FScale(ab, 1/edgeLen)
			best = Projection{
				Closest:     c,
				Tangent:     tangent,
				Index:       i,
				Along:       along + t*edgeLen,
				Lateral:     vmath.V3FDot(vmath.V3FHorizontal(vmath.V3FSub(p, c)), RightOf(tangent)),
				BeforeStart: i == 0 && raw < 0,
				PastEnd:     i == last && raw > 1,
			}
		}
		along += edgeLen
	}

	if best.Index < 0 {
		// Fully degenerate polyline
		return Projection{Closest: points[0], Tangent: vmath.V3FForward}
	}
	return best
}

// LateralOffset is the signed horizontal distance of p from the segment centerline
func LateralOffset(s *SegmentParams, p vmath.Vec3F) float64 {
	return ProjectOnPath(s.ControlPoints, p).Lateral
}

// Contains reports whether p lies within the segment's longitudinal span and
// within tolerance half-widths of its centerline
func Contains(s *SegmentParams, p vmath.Vec3F, tolerance float64) bool {
	pr := ProjectOnPath(s.ControlPoints, p)
	if pr.BeforeStart || pr.PastEnd {
		return false
	}
	return math.Abs(pr.Lateral) <= s.Width*tolerance/2
}

// SurfaceHeight returns the centerline elevation nearest to p
func SurfaceHeight(s *SegmentParams, p vmath.Vec3F) float64 {
	return ProjectOnPath(s.ControlPoints, p).Closest.Y
}

// PathLength is the 3D length of the polyline
func PathLength(points []vmath.Vec3F) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += vmath.V3FDist(points[i-1], points[i])
	}
	return total
}

// PointAlong returns the point at distance d along the polyline, clamped to its ends
func PointAlong(points []vmath.Vec3F, d float64) vmath.Vec3F {
	if len(points) == 0 {
		return vmath.V3FZero
	}
	if d <= 0 {
		return points[0]
	}
	for i := 1; i < len(points); i++ {
		l := vmath.V3FDist(points[i-1], points[i])
		if d <= l && l > 0 {
			return vmath.V3FLerp(points[i-1], points[i], d/l)
		}
		d -= l
	}
	return points[len(points)-1]
}

// Midpoint is the centerline point halfway along the segment
func Midpoint(s *SegmentParams) vmath.Vec3F {
	return PointAlong(s.ControlPoints, PathLength(s.ControlPoints)/2)
}

// ClosestSegment returns the position in segments of the one whose midpoint is
// nearest to p, or -1 for an empty slice
func ClosestSegment(segments []SegmentParams, p vmath.Vec3F) int {
	best := -1
	bestDist := math.Inf(1)
	for i := range segments {
		d := vmath.V3FMagSq(vmath.V3FSub(Midpoint(&segments[i]), p))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
