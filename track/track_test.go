package track

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-racer/config"
	"github.com/lixenwraith/vi-racer/parameter"
	"github.com/lixenwraith/vi-racer/vmath"
)

const eps = 1e-9

// arkSpawner backs segments with real entities carrying their params
type arkSpawner struct {
	world    *ecs.World
	segments *ecs.Map[SegmentParams]
	spawned  int
	removed  int
}

func newArkSpawner() *arkSpawner {
	ew := ecs.NewWorld()
	w := &ew
	return &arkSpawner{world: w, segments: ecs.NewMap[SegmentParams](w)}
}

func (a *arkSpawner) SpawnSegment(p *SegmentParams) ecs.Entity {
	a.spawned++
	return a.segments.NewEntity(p)
}

func (a *arkSpawner) DespawnSegment(e ecs.Entity) {
	a.removed++
	a.world.RemoveEntity(e)
}

func newTestStream(t *testing.T) (*Stream, *arkSpawner) {
	t.Helper()
	sp := newArkSpawner()
	return NewStream(NewGenerator(config.DefaultTrack(), nil), sp, nil), sp
}

func generateChain(t *testing.T, g *Generator, n int) []SegmentParams {
	t.Helper()
	out := []SegmentParams{g.GenerateFirstSegment()}
	for i := 1; i < n; i++ {
		seg, err := g.GenerateNextSegment(out[i-1], i)
		require.NoError(t, err)
		out = append(out, seg)
	}
	return out
}

func TestGenerateFirstSegment(t *testing.T) {
	seg := GenerateFirstSegment(config.DefaultTrack())

	assert.Equal(t, 0, seg.Index)
	assert.Equal(t, SegmentStraight, seg.Type)
	assert.Equal(t, 50.0, seg.Length)
	assert.Equal(t, 20.0, seg.Width)
	assert.GreaterOrEqual(t, len(seg.ControlPoints), 10)
	assert.Equal(t, vmath.V3FZero, seg.StartPosition)
	assert.True(t, vmath.V3FApproxEqual(vmath.Vec3F{Z: -50}, seg.EndPosition, eps))
	assert.Equal(t, vmath.V3FForward, seg.StartDirection)
	assert.Equal(t, vmath.V3FForward, seg.EndDirection)
	assert.False(t, seg.Fallback)
}

func TestGeneratorContinuity(t *testing.T) {
	chain := generateChain(t, NewGenerator(config.DefaultTrack(), nil), 300)

	for i := 1; i < len(chain); i++ {
		prev, cur := chain[i-1], chain[i]
		assert.True(t, vmath.V3FApproxEqual(prev.EndPosition, cur.StartPosition, eps), "position seam at %d", i)
		assert.True(t, vmath.V3FApproxEqual(prev.EndDirection, cur.StartDirection, eps), "direction seam at %d", i)
		assert.GreaterOrEqual(t, len(cur.ControlPoints), 10)
		assert.Equal(t, cur.StartPosition, cur.ControlPoints[0])
		assert.Equal(t, cur.EndPosition, cur.ControlPoints[len(cur.ControlPoints)-1])
		assert.InDelta(t, 1.0, vmath.V3FMag(cur.EndDirection), 1e-9)
	}
}

func TestGeneratorDeterminism(t *testing.T) {
	a := generateChain(t, NewGenerator(config.DefaultTrack(), nil), 100)
	b := generateChain(t, NewGenerator(config.DefaultTrack(), nil), 100)
	assert.Equal(t, a, b)

	cfg := config.DefaultTrack()
	cfg.Seed++
	c := generateChain(t, NewGenerator(cfg, nil), 100)
	assert.NotEqual(t, a, c)
}

func TestGeneratorLeadInIsStraight(t *testing.T) {
	cfg := config.DefaultTrack()
	chain := generateChain(t, NewGenerator(cfg, nil), cfg.StraightLeadIn+1)

	for _, seg := range chain {
		assert.Equal(t, SegmentStraight, seg.Type, "segment %d", seg.Index)
		assert.Zero(t, seg.Curvature)
		assert.Zero(t, seg.Elevation)
		assert.True(t, vmath.V3FApproxEqual(vmath.Vec3F{Z: -50 * float64(seg.Index+1)}, seg.EndPosition, 1e-6))
	}
}

func TestGeneratorShapes(t *testing.T) {
	cfg := config.DefaultTrack()
	chain := generateChain(t, NewGenerator(cfg, nil), 400)

	seen := map[SegmentType]bool{}
	for _, seg := range chain[cfg.StraightLeadIn+1:] {
		seen[seg.Type] = true
		assert.GreaterOrEqual(t, seg.Elevation, cfg.MinElevation-eps)
		assert.LessOrEqual(t, seg.Elevation, cfg.MaxElevation+eps)
		assert.InDelta(t, seg.StartPosition.Y+seg.Elevation, seg.EndPosition.Y, 1e-9)

		switch seg.Type {
		case SegmentCurveLeft, SegmentCurveRight:
			mag := math.Abs(seg.Curvature)
			assert.GreaterOrEqual(t, mag, cfg.MinCurvature-eps)
			assert.LessOrEqual(t, mag, cfg.MaxCurvature+eps)
			// End heading is the start heading turned by the full arc
			turned := vmath.V3FRotateY(seg.StartDirection, -seg.Curvature)
			assert.True(t, vmath.V3FApproxEqual(turned, seg.EndDirection, 1e-9))
			// Horizontal chord of an arc is 2r sin(theta/2)
			r := seg.Length / mag
			chord := vmath.V3FMag(vmath.V3FHorizontal(vmath.V3FSub(seg.EndPosition, seg.StartPosition)))
			assert.InDelta(t, 2*r*math.Sin(mag/2), chord, 1e-6)
			// Left turns curve toward the left of the start heading
			side := vmath.V3FDot(vmath.V3FSub(seg.EndPosition, seg.StartPosition), RightOf(seg.StartDirection))
			if seg.Type == SegmentCurveLeft {
				assert.Less(t, seg.Curvature, 0.0)
				assert.Less(t, side, 0.0)
			} else {
				assert.Greater(t, seg.Curvature, 0.0)
				assert.Greater(t, side, 0.0)
			}
		default:
			assert.Zero(t, seg.Curvature)
			assert.Equal(t, seg.StartDirection, seg.EndDirection)
			if seg.Type == SegmentHillUp {
				assert.GreaterOrEqual(t, seg.Elevation, 0.0)
			}
			if seg.Type == SegmentHillDown {
				assert.Less(t, seg.Elevation, 0.0)
			}
		}
		assert.NotEqual(t, SegmentChicane, seg.Type)
		assert.NotEqual(t, SegmentSCurve, seg.Type)
	}
	assert.True(t, seen[SegmentCurveLeft] || seen[SegmentCurveRight], "expected curves in 400 segments")
}

func TestGenerateNextSegmentRejectsMalformed(t *testing.T) {
	g := NewGenerator(config.DefaultTrack(), nil)
	first := g.GenerateFirstSegment()

	tests := []struct {
		name  string
		prev  SegmentParams
		index int
	}{
		{"zero index", first, 0},
		{"nan position", SegmentParams{EndPosition: vmath.Vec3F{X: math.NaN()}, EndDirection: vmath.V3FForward}, 1},
		{"vertical heading", SegmentParams{EndDirection: vmath.V3FUp}, 1},
		{"zero heading", SegmentParams{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.GenerateNextSegment(tt.prev, tt.index)
			assert.ErrorIs(t, err, ErrMalformedSegment)
		})
	}
}

func TestSafeFallsBackOnFaults(t *testing.T) {
	g := NewGenerator(config.DefaultTrack(), nil)
	prev := g.GenerateFirstSegment()

	t.Run("healthy", func(t *testing.T) {
		seg, degraded := g.Safe(&prev, 1)
		assert.False(t, degraded)
		assert.False(t, seg.Fallback)
	})

	faults := map[string]nextFunc{
		"error": func(SegmentParams, int) (SegmentParams, error) {
			return SegmentParams{}, errors.New("boom")
		},
		"panic": func(SegmentParams, int) (SegmentParams, error) {
			panic("boom")
		},
		"too few points": func(p SegmentParams, i int) (SegmentParams, error) {
			return SegmentParams{Index: i, EndDirection: vmath.V3FForward, ControlPoints: []vmath.Vec3F{p.EndPosition}}, nil
		},
	}
	for name, fault := range faults {
		t.Run(name, func(t *testing.T) {
			g.next = fault
			defer func() { g.next = g.GenerateNextSegment }()

			seg, degraded := g.Safe(&prev, 1)
			require.True(t, degraded)
			assert.True(t, seg.Fallback)
			assert.Equal(t, SegmentStraight, seg.Type)
			assert.Equal(t, prev.EndPosition, seg.StartPosition)
			assert.Equal(t, prev.EndDirection, seg.EndDirection)
			assert.GreaterOrEqual(t, len(seg.ControlPoints), 2)
		})
	}

	t.Run("no predecessor anchors at origin", func(t *testing.T) {
		seg, degraded := g.Safe(nil, 7)
		assert.True(t, degraded)
		assert.Equal(t, vmath.V3FZero, seg.StartPosition)
		assert.Equal(t, 7, seg.Index)
	})
}

func TestProjectOnPath(t *testing.T) {
	seg := GenerateFirstSegment(config.DefaultTrack())

	tests := []struct {
		name        string
		p           vmath.Vec3F
		lateral     float64
		along       float64
		beforeStart bool
		pastEnd     bool
	}{
		{"on centerline", vmath.Vec3F{Z: -20}, 0, 20, false, false},
		{"right of travel", vmath.Vec3F{X: 4, Z: -10}, 4, 10, false, false},
		{"left of travel", vmath.Vec3F{X: -7, Y: 3, Z: -30}, -7, 30, false, false},
		{"behind start", vmath.Vec3F{X: 1, Z: 5}, 1, 0, true, false},
		{"past end", vmath.Vec3F{Z: -60}, 0, 50, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := ProjectOnPath(seg.ControlPoints, tt.p)
			assert.InDelta(t, tt.lateral, pr.Lateral, 1e-9)
			assert.InDelta(t, tt.along, pr.Along, 1e-9)
			assert.Equal(t, tt.beforeStart, pr.BeforeStart)
			assert.Equal(t, tt.pastEnd, pr.PastEnd)
			assert.True(t, vmath.V3FApproxEqual(vmath.V3FForward, pr.Tangent, 1e-12))
		})
	}
}

func TestContainsAndEdges(t *testing.T) {
	seg := GenerateFirstSegment(config.DefaultTrack())

	assert.True(t, Contains(&seg, vmath.Vec3F{X: 9, Z: -25}, 1))
	assert.False(t, Contains(&seg, vmath.Vec3F{X: 11, Z: -25}, 1))
	assert.True(t, Contains(&seg, vmath.Vec3F{X: 11, Z: -25}, 2))
	assert.False(t, Contains(&seg, vmath.Vec3F{Z: 1}, 1))
	assert.InDelta(t, -3.0, LateralOffset(&seg, vmath.Vec3F{X: -3, Z: -5}), 1e-9)

	left, right := Edges(seg.ControlPoints, seg.Width)
	require.Len(t, left, len(seg.ControlPoints))
	for i := range left {
		assert.InDelta(t, -10, left[i].X, 1e-9)
		assert.InDelta(t, 10, right[i].X, 1e-9)
		assert.InDelta(t, seg.ControlPoints[i].Z, left[i].Z, 1e-9)
	}
}

func TestMidpointAndClosestSegment(t *testing.T) {
	chain := generateChain(t, NewGenerator(config.DefaultTrack(), nil), 4)

	assert.True(t, vmath.V3FApproxEqual(vmath.Vec3F{Z: -25}, Midpoint(&chain[0]), 1e-9))
	assert.Equal(t, 2, ClosestSegment(chain, vmath.Vec3F{X: 3, Z: -120}))
	assert.Equal(t, -1, ClosestSegment(nil, vmath.V3FZero))
}

func TestSurfaceHeightFollowsElevation(t *testing.T) {
	start := vmath.V3FZero
	seg := SegmentParams{
		Width:         20,
		ControlPoints: []vmath.Vec3F{start, {Y: 4, Z: -50}},
	}
	assert.InDelta(t, 2.0, SurfaceHeight(&seg, vmath.Vec3F{Y: 10, Z: -25}), 1e-9)
}

func TestSpawnInitialTrack(t *testing.T) {
	s, sp := newTestStream(t)
	s.SpawnInitialTrack()

	assert.Equal(t, 10, s.ActiveCount())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, s.ActiveIndices())
	assert.Equal(t, 0, s.Lowest())
	assert.Equal(t, 9, s.Highest())
	assert.Equal(t, 10, sp.spawned)

	for _, i := range s.ActiveIndices() {
		e, ok := s.Entity(i)
		require.True(t, ok)
		require.True(t, sp.world.Alive(e))
		seg, _ := s.Segment(i)
		assert.Equal(t, seg.Index, sp.segments.Get(e).Index)
	}
}

func TestSpawnSegmentIdempotent(t *testing.T) {
	s, sp := newTestStream(t)

	a, err := s.SpawnSegment(0)
	require.NoError(t, err)
	b, err := s.SpawnSegment(0)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, sp.spawned)

	_, err = s.SpawnSegment(-1)
	assert.ErrorIs(t, err, ErrMalformedSegment)
}

func TestRemoveSegmentAdvancesLowWater(t *testing.T) {
	s, sp := newTestStream(t)
	s.SpawnInitialTrack()

	assert.True(t, s.RemoveSegment(0))
	assert.Equal(t, 1, s.Lowest())
	assert.False(t, s.RemoveSegment(0))

	// Out-of-order removal leaves the low-water mark alone
	assert.True(t, s.RemoveSegment(5))
	assert.Equal(t, 1, s.Lowest())

	assert.True(t, s.RemoveSegment(9))
	assert.Equal(t, 8, s.Highest())
	assert.Equal(t, 3, sp.removed)
}

func TestResetTrack(t *testing.T) {
	s, sp := newTestStream(t)
	s.SpawnInitialTrack()
	s.ResetTrack()

	assert.Zero(t, s.ActiveCount())
	assert.Empty(t, s.ActiveIndices())
	assert.Equal(t, -1, s.Lowest())
	assert.Equal(t, -1, s.Highest())
	assert.Equal(t, 10, sp.removed)
}

func TestFindContainingSegment(t *testing.T) {
	s, _ := newTestStream(t)
	assert.Equal(t, -1, s.FindContainingSegment(vmath.V3FZero))

	s.SpawnInitialTrack()
	assert.Equal(t, 0, s.FindContainingSegment(vmath.Vec3F{Z: -10}))
	assert.Equal(t, 1, s.FindContainingSegment(vmath.Vec3F{X: 3, Z: -75}))
	// Behind the first active segment
	assert.Equal(t, -1, s.FindContainingSegment(vmath.Vec3F{Z: 30}))

	// Beyond the generated track the nearest endpoint wins
	last, _ := s.Segment(9)
	beyond := vmath.V3FAdd(last.EndPosition, vmath.V3FScale(last.EndDirection, 200))
	assert.Equal(t, 9, s.FindContainingSegment(beyond))
}

// driveTo advances the player segment by segment so every Update sees a contiguous window
func driveTo(t *testing.T, s *Stream, target int) {
	t.Helper()
	for i := 0; i <= target; i++ {
		seg, ok := s.Segment(i)
		require.True(t, ok, "segment %d not spawned before reaching it", i)
		require.Equal(t, i, s.Update(Midpoint(&seg)))
	}
}

func TestUpdateWindowAdvances(t *testing.T) {
	s, _ := newTestStream(t)
	s.SpawnInitialTrack()

	driveTo(t, s, 12)

	want := make([]int, 0, 21)
	for i := 2; i <= 22; i++ {
		want = append(want, i)
	}
	assert.Equal(t, want, s.ActiveIndices())
	assert.Equal(t, 2, s.Lowest())
	assert.Equal(t, 22, s.Highest())
	assert.Equal(t, 12, s.Current())
}

func TestWindowInvariant(t *testing.T) {
	s, _ := newTestStream(t)
	rd := s.RenderDistance()

	require.Equal(t, 0, s.Update(vmath.Vec3F{Z: -1}))
	for i := 0; i < 60; i++ {
		seg, ok := s.Segment(i)
		require.True(t, ok)
		cur := s.Update(Midpoint(&seg))
		require.Equal(t, i, cur)

		lo := max(0, cur-rd)
		indices := s.ActiveIndices()
		require.Len(t, indices, cur+rd-lo+1)
		for n, idx := range indices {
			require.Equal(t, lo+n, idx)
		}
	}
}

func TestUpdateSpawnsInitialTrackWhenEmpty(t *testing.T) {
	s, _ := newTestStream(t)
	s.Update(vmath.Vec3F{Z: -5})
	assert.Equal(t, 10, s.ActiveCount())
	assert.Equal(t, 0, s.Current())
}

func TestUpdateBackwardReplaysEvictedSegments(t *testing.T) {
	s, _ := newTestStream(t)
	s.SpawnInitialTrack()
	driveTo(t, s, 30)
	require.Equal(t, 20, s.Lowest())

	reference := generateChain(t, NewGenerator(config.DefaultTrack(), nil), 31)

	// Reverse back through the window; respawned segments must match the original chain
	for i := 30; i >= 15; i-- {
		seg, ok := s.Segment(i)
		require.True(t, ok)
		require.Equal(t, i, s.Update(Midpoint(&seg)))
	}
	for _, i := range s.ActiveIndices() {
		if i > 30 {
			continue
		}
		seg, _ := s.Segment(i)
		assert.Equal(t, reference[i], seg, "segment %d", i)
	}
	assert.Equal(t, 5, s.Lowest())
}

func TestUpdateRecoversBehindTrack(t *testing.T) {
	s, _ := newTestStream(t)
	s.SpawnInitialTrack()

	cur := s.Update(vmath.Vec3F{Z: 40})
	assert.Equal(t, -1, cur)
	assert.Equal(t, 0, s.Lowest())
	assert.Equal(t, 10, s.Highest())
	assert.Equal(t, 11, s.ActiveCount())
}

func TestOffTrackPlayerDeepInTrackStaysLocated(t *testing.T) {
	s, sp := newTestStream(t)
	s.SpawnInitialTrack()
	driveTo(t, s, 20)

	seg, ok := s.Segment(20)
	require.True(t, ok)
	heading := vmath.V3FNormalize(vmath.V3FHorizontal(vmath.V3FSub(seg.EndPosition, seg.StartPosition)))
	beside := vmath.V3FAdd(Midpoint(&seg), vmath.V3FScale(RightOf(heading), 1.3*seg.Width))
	require.False(t, Contains(&seg, beside, parameter.ContainmentTolerance))

	removed := sp.removed
	for frame := 0; frame < 100; frame++ {
		cur := s.Update(beside)
		require.NotEqual(t, -1, cur, "player lost on frame %d", frame)
	}

	// The window stays around the player instead of snapping back to the origin
	assert.InDelta(t, 20, s.Current(), 2)
	assert.Greater(t, s.Lowest(), 0)
	_, ok = s.Segment(20)
	assert.True(t, ok)
	assert.LessOrEqual(t, sp.removed-removed, 4)
}

func TestRecoverSpawnsForwardWithoutEvicting(t *testing.T) {
	s, sp := newTestStream(t)
	s.SpawnInitialTrack()
	require.Equal(t, 9, s.Highest())

	s.Recover()
	assert.Equal(t, 0, s.Lowest())
	assert.Equal(t, 10, s.Highest())
	assert.Zero(t, sp.removed)

	// Behind the origin the player is unlocated and the window is left in place
	assert.Equal(t, -1, s.Update(vmath.Vec3F{Z: 40}))
	assert.Equal(t, 11, s.ActiveCount())
	assert.Zero(t, sp.removed)
}

func TestStreamCountsFallbacks(t *testing.T) {
	s, _ := newTestStream(t)
	s.gen.next = func(SegmentParams, int) (SegmentParams, error) {
		return SegmentParams{}, errors.New("generator offline")
	}
	s.SpawnInitialTrack()

	assert.Equal(t, 10, s.ActiveCount())
	assert.Equal(t, 9, s.FallbackCount())
	for _, i := range s.ActiveIndices() {
		seg, _ := s.Segment(i)
		assert.Equal(t, i > 0, seg.Fallback)
		if i > 0 {
			prev, _ := s.Segment(i - 1)
			assert.Equal(t, prev.EndPosition, seg.StartPosition)
		}
	}
}
