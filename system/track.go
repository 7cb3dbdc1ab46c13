package system

import (
	"sync/atomic"

	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/parameter"
	"github.com/lixenwraith/vi-racer/status"
)

// TrackSystem streams segments around the player's freshly moved position
type TrackSystem struct {
	engine.SystemBase

	statActive    *atomic.Int64
	statLowest    *atomic.Int64
	statHighest   *atomic.Int64
	statFallbacks *atomic.Int64
	statSegment   *atomic.Int64
}

func NewTrackSystem(world *engine.World) engine.System {
	s := &TrackSystem{SystemBase: engine.NewSystemBase(world)}
	reg := s.Resource.Status
	s.statActive = reg.Ints.Get(status.TrackActive)
	s.statLowest = reg.Ints.Get(status.TrackLowest)
	s.statHighest = reg.Ints.Get(status.TrackHighest)
	s.statFallbacks = reg.Ints.Get(status.TrackFallbacks)
	s.statSegment = reg.Ints.Get(status.PlayerSegment)
	return s
}

func (s *TrackSystem) Name() string  { return "UpdateTrack" }
func (s *TrackSystem) Priority() int { return parameter.PriorityTrack }

func (s *TrackSystem) Update() {
	stream := s.Resource.Track.Stream
	if stream == nil {
		return
	}
	player, ok := s.World.PlayerEntity()
	if !ok {
		return
	}
	tr, ok := s.Component.Transform.Get(player)
	if !ok {
		return
	}

	prevFallbacks := stream.FallbackCount()
	cur := stream.Update(tr.Position)
	if n := stream.FallbackCount() - prevFallbacks; n > 0 {
		s.Resource.Log.Warnf("track degraded: %d fallback segment(s) near %d", n, cur)
	}

	s.statSegment.Store(int64(cur))
	s.statActive.Store(int64(stream.ActiveCount()))
	s.statLowest.Store(int64(stream.Lowest()))
	s.statHighest.Store(int64(stream.Highest()))
	s.statFallbacks.Store(int64(stream.FallbackCount()))
}
