package status

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMapCachesPointers(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(TrackActive)
	b := r.Ints.Get(TrackActive)
	assert.Same(t, a, b)
	assert.True(t, r.Ints.Has(TrackActive))
	assert.False(t, r.Ints.Has(TrackLowest))
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(SimFrame).Store(42)
	r.Floats.Get(PlayerSpeed).Set(12.5)
	r.Bools.Get(PlayerOffTrack).Store(true)
	r.Strings.Get(PlayerState).Store("reversing")

	snap := r.Snapshot()
	assert.Equal(t, int64(42), snap[SimFrame])
	assert.Equal(t, 12.5, snap[PlayerSpeed])
	assert.Equal(t, true, snap[PlayerOffTrack])
	assert.Equal(t, "reversing", snap[PlayerState])
	assert.Equal(t, 4, r.TotalCount())
}

func TestAtomicFloatConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 500.0, f.Get())
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	assert.Empty(t, s.Load())
	s.Store("this label is far longer than the limit allows")
	assert.Len(t, s.Load(), MaxStringLen)
}

func TestAtomicStringSwapReportsPrevious(t *testing.T) {
	var s AtomicString
	assert.Empty(t, s.Swap("forward"))
	assert.Equal(t, "forward", s.Swap("braking_to_stop"))
	assert.Equal(t, "braking_to_stop", s.Swap("braking_to_stop"))
	assert.Equal(t, "braking_to_stop", s.Load())
}

func TestAtomicFloatMax(t *testing.T) {
	var f AtomicFloat
	assert.Equal(t, 3.0, f.Max(3))
	assert.Equal(t, 3.0, f.Max(1))
	assert.Equal(t, 3.0, f.Max(math.NaN()))
	assert.Equal(t, 7.5, f.Max(7.5))
	assert.Equal(t, 7.5, f.Get())
}

func TestSnapshotPrefixAndKeys(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(TrackHighest).Store(18)
	r.Ints.Get(TrackActive).Store(19)
	r.Ints.Get(SimFrame).Store(3)
	r.Floats.Get(PlayerSpeed).Set(1)

	assert.Equal(t, []string{SimFrame, TrackActive, TrackHighest}, r.Ints.Keys())

	snap := r.SnapshotPrefix("track.")
	assert.Len(t, snap, 2)
	assert.Equal(t, int64(19), snap[TrackActive])
	assert.NotContains(t, snap, SimFrame)
	assert.Empty(t, r.SnapshotPrefix("nope."))
}
