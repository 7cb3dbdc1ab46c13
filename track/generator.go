package track

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/lixenwraith/vi-racer/config"
	"github.com/lixenwraith/vi-racer/logging"
	"github.com/lixenwraith/vi-racer/noise"
	"github.com/lixenwraith/vi-racer/parameter"
	"github.com/lixenwraith/vi-racer/vmath"
)

// nextFunc is the generation step, replaceable in tests to inject faults
type nextFunc func(prev SegmentParams, index int) (SegmentParams, error)

// Generator derives segments from their predecessor
// Output is a pure function of config, noise field and the predecessor
type Generator struct {
	cfg   config.Track
	field *noise.Field
	log   *logging.Logger
	next  nextFunc
}

// NewGenerator creates a generator over the process-wide noise field
func NewGenerator(cfg config.Track, log *logging.Logger) *Generator {
	if log == nil {
		log = logging.Discard()
	}
	g := &Generator{
		cfg:   cfg,
		field: noise.Default(),
		log:   log,
	}
	g.next = g.GenerateNextSegment
	return g
}

// GenerateFirstSegment is the fixed origin segment for cfg
func GenerateFirstSegment(cfg config.Track) SegmentParams {
	return NewGenerator(cfg, nil).GenerateFirstSegment()
}

// GenerateNextSegment derives segment index from prev under cfg
func GenerateNextSegment(cfg config.Track, prev SegmentParams, index int) (SegmentParams, error) {
	return NewGenerator(cfg, nil).GenerateNextSegment(prev, index)
}

// NewFallbackSegment is the deterministic straight substitute anchored at anchor
func NewFallbackSegment(cfg config.Track, index int, anchor, heading vmath.Vec3F) SegmentParams {
	return NewGenerator(cfg, nil).NewFallbackSegment(index, anchor, heading)
}

// Config returns the track configuration the generator was built with
func (g *Generator) Config() config.Track {
	return g.cfg
}

// GenerateFirstSegment returns the fixed straight segment at the origin heading -Z
func (g *Generator) GenerateFirstSegment() SegmentParams {
	return g.straight(0, vmath.V3FZero, vmath.V3FForward, false)
}

// GenerateNextSegment derives segment index from prev
func (g *Generator) GenerateNextSegment(prev SegmentParams, index int) (SegmentParams, error) {
	if index <= 0 {
		return SegmentParams{}, errors.Wrapf(ErrMalformedSegment, "next segment index %d must be > 0", index)
	}
	if !vmath.V3FIsFinite(prev.EndPosition) || !vmath.V3FIsFinite(prev.EndDirection) {
		return SegmentParams{}, errors.Wrapf(ErrMalformedSegment, "predecessor %d end pose not finite", prev.Index)
	}
	dir := vmath.V3FNormalize(vmath.V3FHorizontal(prev.EndDirection))
	if dir == vmath.V3FZero {
		return SegmentParams{}, errors.Wrapf(ErrMalformedSegment, "predecessor %d has no horizontal heading", prev.Index)
	}
	if g.cfg.SegmentLength <= 0 {
		return SegmentParams{}, errors.Wrapf(ErrMalformedSegment, "segment length %.3f", g.cfg.SegmentLength)
	}

	shape, elevSample := g.samples(index)
	segType, curvature, elevation := g.classify(index, shape, elevSample)

	seg := SegmentParams{
		Index:          index,
		Length:         g.cfg.SegmentLength,
		Width:          g.cfg.TrackWidth,
		Type:           segType,
		Curvature:      curvature,
		Elevation:      elevation,
		StartPosition:  prev.EndPosition,
		StartDirection: prev.EndDirection,
	}

	if segType.IsCurve() {
		g.buildArc(&seg, dir)
	} else {
		g.buildStraight(&seg, dir)
	}

	// Safety net for degenerate sampling
	if len(seg.ControlPoints) < 2 {
		seg.ControlPoints = []vmath.Vec3F{seg.StartPosition, seg.EndPosition}
	}
	return seg, nil
}

// Safe returns a valid segment for index, substituting a deterministic straight
// fallback anchored at prev's end (or the origin) when generation fails or panics
// degraded reports whether the fallback was used
func (g *Generator) Safe(prev *SegmentParams, index int) (seg SegmentParams, degraded bool) {
	if index == 0 {
		return g.GenerateFirstSegment(), false
	}

	anchor, heading := vmath.V3FZero, vmath.V3FForward
	if prev != nil {
		anchor, heading = prev.EndPosition, prev.EndDirection
	}

	fallback := func(cause error) (SegmentParams, bool) {
		g.log.Warnf("segment %d generation failed, using fallback: %v", index, cause)
		return g.NewFallbackSegment(index, anchor, heading), true
	}

	if prev == nil {
		return fallback(errors.Wrapf(ErrMalformedSegment, "no predecessor cached for %d", index))
	}

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Errorf("generator panic: %v", r)
			}
		}()
		seg, err = g.next(*prev, index)
	}()
	if err != nil {
		return fallback(err)
	}
	if verr := seg.validate(); verr != nil {
		return fallback(verr)
	}
	return seg, false
}

// NewFallbackSegment builds the degraded straight segment used on generation faults
func (g *Generator) NewFallbackSegment(index int, anchor, heading vmath.Vec3F) SegmentParams {
	if !vmath.V3FIsFinite(anchor) {
		anchor = vmath.V3FZero
	}
	dir := vmath.V3FNormalize(vmath.V3FHorizontal(heading))
	if dir == vmath.V3FZero || !vmath.V3FIsFinite(dir) {
		dir = vmath.V3FForward
	}
	return g.straight(index, anchor, dir, true)
}

// samples reads the shape and elevation noise for index from decorrelated offsets
func (g *Generator) samples(index int) (shape, elevation float64) {
	x := float64(index)*parameter.NoiseIndexStep + float64(g.cfg.Seed)
	shape = g.field.Noise(x, 0.5, 0)
	elevation = g.field.Noise(x+parameter.ElevationNoiseOffset, 0.5, 0)
	return shape, elevation
}

// classify applies the lead-in policy and the curve-over-hill labeling precedence
func (g *Generator) classify(index int, shape, elevSample float64) (SegmentType, float64, float64) {
	if index <= g.cfg.StraightLeadIn {
		return SegmentStraight, 0, 0
	}

	segType := SegmentStraight
	curvature := 0.0

	if math.Abs(shape) > 1-g.cfg.CurveFrequency {
		mag := lerp(g.cfg.MinCurvature, g.cfg.MaxCurvature, math.Abs(shape))
		if shape < 0 {
			segType, curvature = SegmentCurveLeft, -mag
		} else {
			segType, curvature = SegmentCurveRight, mag
		}
	}

	// Elevation is applied either way; only the label yields to curves
	elevation := lerp(g.cfg.MinElevation, g.cfg.MaxElevation, (elevSample+1)/2)
	if math.Abs(elevSample) > 1-g.cfg.ElevationFrequency && !segType.IsCurve() {
		if elevation >= 0 {
			segType = SegmentHillUp
		} else {
			segType = SegmentHillDown
		}
	}
	return segType, curvature, elevation
}

// buildArc samples a circular arc of radius Length/|Curvature| with a linear elevation ramp
func (g *Generator) buildArc(seg *SegmentParams, dir vmath.Vec3F) {
	radius := seg.Length / math.Abs(seg.Curvature)

	// Left turns rotate the heading counter-clockwise seen from above (positive angle)
	turn := -seg.Curvature
	side := vmath.V3FRotateY(dir, math.Pi/2) // left of travel
	if seg.Curvature > 0 {
		side = vmath.V3FNeg(side)
	}
	center := vmath.V3FAdd(seg.StartPosition, vmath.V3FScale(side, radius))
	spoke := vmath.V3FHorizontal(vmath.V3FSub(seg.StartPosition, center))

	pointAt := func(t float64) vmath.Vec3F {
		p := vmath.V3FAdd(center, vmath.V3FRotateY(spoke, turn*t))
		p.Y = seg.StartPosition.Y + seg.Elevation*t
		return p
	}

	n := g.pointCount()
	seg.ControlPoints = make([]vmath.Vec3F, n)
	seg.ControlPoints[0] = seg.StartPosition
	for i := 1; i < n; i++ {
		seg.ControlPoints[i] = pointAt(float64(i) / float64(n-1))
	}
	seg.EndPosition = seg.ControlPoints[n-1]
	seg.EndDirection = vmath.V3FNormalize(vmath.V3FRotateY(dir, turn))
}

// buildStraight interpolates horizontally with a sine-eased elevation ramp; heading is unchanged
func (g *Generator) buildStraight(seg *SegmentParams, dir vmath.Vec3F) {
	end := vmath.V3FAdd(seg.StartPosition, vmath.V3FScale(dir, seg.Length))
	end.Y = seg.StartPosition.Y + seg.Elevation

	n := g.pointCount()
	seg.ControlPoints = make([]vmath.Vec3F, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		p := vmath.V3FLerp(seg.StartPosition, end, t)
		p.Y = seg.StartPosition.Y + seg.Elevation*easeSine(t)
		seg.ControlPoints[i] = p
	}
	seg.ControlPoints[0] = seg.StartPosition
	seg.ControlPoints[n-1] = end
	seg.EndPosition = end
	seg.EndDirection = seg.StartDirection
}

func (g *Generator) straight(index int, start, dir vmath.Vec3F, fallback bool) SegmentParams {
	seg := SegmentParams{
		Index:          index,
		Length:         g.cfg.SegmentLength,
		Width:          g.cfg.TrackWidth,
		Type:           SegmentStraight,
		StartPosition:  start,
		StartDirection: dir,
		Fallback:       fallback,
	}
	g.buildStraight(&seg, dir)
	return seg
}

func (g *Generator) pointCount() int {
	if g.cfg.ControlPoints < 10 {
		return parameter.ControlPointCount
	}
	return g.cfg.ControlPoints
}

// String is used by track-dump and debug logs
func (s SegmentParams) String() string {
	return fmt.Sprintf("#%d %-11s curv=%+.3f elev=%+.2f start=(%.2f,%.2f,%.2f) end=(%.2f,%.2f,%.2f) pts=%d fallback=%t",
		s.Index, s.Type, s.Curvature, s.Elevation,
		s.StartPosition.X, s.StartPosition.Y, s.StartPosition.Z,
		s.EndPosition.X, s.EndPosition.Y, s.EndPosition.Z,
		len(s.ControlPoints), s.Fallback)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// easeSine maps [0,1] onto [0,1] with zero slope at both ends
func easeSine(t float64) float64 {
	return (1 - math.Cos(math.Pi*t)) / 2
}
