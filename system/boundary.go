package system

import (
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/lixenwraith/vi-racer/component"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/parameter"
	"github.com/lixenwraith/vi-racer/physics"
	"github.com/lixenwraith/vi-racer/status"
	"github.com/lixenwraith/vi-racer/track"
	"github.com/lixenwraith/vi-racer/vmath"
)

// BoundarySystem keeps the player near the track: beyond width*tolerance/2 from the
// centerline it pushes back proportionally to the excess, damps velocity and jitters position
type BoundarySystem struct {
	engine.SystemBase

	rng *rand.Rand

	statOffTrack *atomic.Bool
}

func NewBoundarySystem(world *engine.World) engine.System {
	s := &BoundarySystem{SystemBase: engine.NewSystemBase(world)}
	s.rng = rand.New(rand.NewSource(s.Resource.Config.Boundary.JitterSeed))
	s.statOffTrack = s.Resource.Status.Bools.Get(status.PlayerOffTrack)
	return s
}

func (s *BoundarySystem) Name() string  { return "EnforceBoundary" }
func (s *BoundarySystem) Priority() int { return parameter.PriorityBoundary }

func (s *BoundarySystem) Update() {
	stream := s.Resource.Track.Stream
	if stream == nil {
		return
	}
	player, ok := s.World.PlayerEntity()
	if !ok {
		return
	}
	tr, ok1 := s.Component.Transform.Get(player)
	mv, ok2 := s.Component.Movement.Get(player)
	if !ok1 || !ok2 {
		return
	}

	segments := stream.Segments()
	idx := track.ClosestSegment(segments, tr.Position)
	if idx < 0 {
		return
	}
	seg := &segments[idx]
	pr := track.ProjectOnPath(seg.ControlPoints, tr.Position)

	contact := component.TrackContactComponent{
		Segment:       seg.Index,
		Lateral:       pr.Lateral,
		SurfaceHeight: pr.Closest.Y,
		HasSurface:    true,
	}

	cfg := &s.Resource.Config.Boundary
	limit := seg.Width * cfg.Tolerance / 2
	if excess := math.Abs(pr.Lateral) - limit; excess > 0 {
		outward := track.RightOf(pr.Tangent)
		if pr.Lateral < 0 {
			outward = vmath.V3FNeg(outward)
		}
		contact.Correction = vmath.V3FScale(outward, -excess*cfg.CorrectionStrength)
		contact.OffTrack = true

		mv.Force = vmath.V3FAdd(mv.Force, contact.Correction)
		mv.Velocity = vmath.V3FScale(mv.Velocity, physics.DampingFactor(cfg.OffTrackDamping, s.Resource.Time.Delta))

		if cfg.Jitter > 0 {
			tr.Position.X += (s.rng.Float64()*2 - 1) * cfg.Jitter
			tr.Position.Z += (s.rng.Float64()*2 - 1) * cfg.Jitter
		}
	}

	s.Component.TrackContact.Set(player, contact)
	s.statOffTrack.Store(contact.OffTrack)
}
