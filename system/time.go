// Package system implements the per-frame simulation pipeline stages.
// Each system is a total function over possibly missing entities: absence means early return.
package system

import (
	"math"
	"sync/atomic"

	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/parameter"
	"github.com/lixenwraith/vi-racer/status"
)

// TimeSystem advances the frame clock from the delta queued by Tick
// Runs first so every later system sees this frame's delta
type TimeSystem struct {
	engine.SystemBase

	samples [parameter.FPSSampleWindow]float64
	next    int
	filled  int

	statFrame *atomic.Int64
	statFPS   *status.AtomicFloat
}

// NewTimeSystem creates the clock stage
func NewTimeSystem(world *engine.World) engine.System {
	s := &TimeSystem{SystemBase: engine.NewSystemBase(world)}
	s.statFrame = s.Resource.Status.Ints.Get(status.SimFrame)
	s.statFPS = s.Resource.Status.Floats.Get(status.SimFPS)
	return s
}

func (s *TimeSystem) Name() string  { return "UpdateTime" }
func (s *TimeSystem) Priority() int { return parameter.PriorityTime }

// Update clamps the raw delta and accumulates elapsed time
func (s *TimeSystem) Update() {
	t := s.Resource.Time
	dt := t.Pending()
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}

	t.Delta = dt
	t.Elapsed += dt
	t.Frame++
	s.statFrame.Store(t.Frame)

	if dt > 0 {
		s.samples[s.next] = dt
		s.next = (s.next + 1) % len(s.samples)
		if s.filled < len(s.samples) {
			s.filled++
		}
		sum := 0.0
		for i := 0; i < s.filled; i++ {
			sum += s.samples[i]
		}
		s.statFPS.Set(float64(s.filled) / sum)
	}
}
