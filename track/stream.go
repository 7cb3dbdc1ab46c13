package track

import (
	"sort"

	"github.com/kelindar/bitmap"
	"github.com/mlange-42/ark/ecs"
	"github.com/pkg/errors"

	"github.com/lixenwraith/vi-racer/logging"
	"github.com/lixenwraith/vi-racer/parameter"
	"github.com/lixenwraith/vi-racer/vmath"
)

// SegmentSpawner creates and destroys the entities backing track segments
type SegmentSpawner interface {
	SpawnSegment(params *SegmentParams) ecs.Entity
	DespawnSegment(e ecs.Entity)
}

// Stream owns the active window of segments around the player
// Single consumer: called from the simulation goroutine only
type Stream struct {
	gen     *Generator
	spawner SegmentSpawner
	log     *logging.Logger

	renderDistance int

	spawned map[int]ecs.Entity
	cache   map[int]SegmentParams
	active  bitmap.Bitmap

	highest   int
	lowest    int
	current   int
	fallbacks int
}

// NewStream creates an empty stream; nothing is spawned until Update or SpawnInitialTrack
func NewStream(gen *Generator, spawner SegmentSpawner, log *logging.Logger) *Stream {
	if log == nil {
		log = logging.Discard()
	}
	rd := gen.Config().RenderDistance
	if rd < 1 {
		rd = 1
	}
	return &Stream{
		gen:            gen,
		spawner:        spawner,
		log:            log,
		renderDistance: rd,
		spawned:        make(map[int]ecs.Entity),
		cache:          make(map[int]SegmentParams),
		highest:        -1,
		lowest:         -1,
		current:        -1,
	}
}

// SpawnSegment ensures segment index exists and returns its entity
// Idempotent; generation faults are absorbed by the fallback policy
func (s *Stream) SpawnSegment(index int) (ecs.Entity, error) {
	if index < 0 {
		return ecs.Entity{}, errors.Wrapf(ErrMalformedSegment, "negative segment index %d", index)
	}
	if e, ok := s.spawned[index]; ok {
		return e, nil
	}

	params, degraded := s.paramsFor(index)
	if degraded {
		s.fallbacks++
	}

	e := s.spawner.SpawnSegment(&params)
	s.spawned[index] = e
	s.cache[index] = params
	s.active.Set(uint32(index))

	if index > s.highest {
		s.highest = index
	}
	if s.lowest < 0 || index < s.lowest {
		s.lowest = index
	}
	return e, nil
}

// paramsFor generates index from its cached predecessor, replaying the chain
// from the nearest cached ancestor (or the origin) when the predecessor was evicted
func (s *Stream) paramsFor(index int) (SegmentParams, bool) {
	if index == 0 {
		return s.gen.GenerateFirstSegment(), false
	}
	if prev, ok := s.cache[index-1]; ok {
		return s.gen.Safe(&prev, index)
	}

	base := -1
	for i := range s.cache {
		if i < index && i > base {
			base = i
		}
	}
	var prev SegmentParams
	if base < 0 {
		base = 0
		prev = s.gen.GenerateFirstSegment()
	} else {
		prev = s.cache[base]
	}
	for i := base + 1; i < index; i++ {
		prev, _ = s.gen.Safe(&prev, i)
	}
	s.log.Debugf("replayed segments %d..%d to rebuild %d", base, index-1, index)
	return s.gen.Safe(&prev, index)
}

// RemoveSegment destroys segment index, reporting whether it was active
func (s *Stream) RemoveSegment(index int) bool {
	e, ok := s.spawned[index]
	if !ok {
		return false
	}
	s.spawner.DespawnSegment(e)
	delete(s.spawned, index)
	delete(s.cache, index)
	s.active.Remove(uint32(index))

	// Low-water mark advances only on in-order eviction; Update re-derives it
	if index == s.lowest {
		s.lowest++
	}
	if index == s.highest {
		s.highest = -1
		if top, ok := s.active.Max(); ok {
			s.highest = int(top)
		}
	}
	if len(s.spawned) == 0 {
		s.lowest, s.highest = -1, -1
	}
	return true
}

// SpawnInitialTrack resets the stream and spawns segments 0 through renderDistance-1
func (s *Stream) SpawnInitialTrack() {
	s.ResetTrack()
	// Segment 0 needs no predecessor and always succeeds
	_, _ = s.SpawnSegment(0)
	for i := 1; i < s.renderDistance; i++ {
		_, _ = s.SpawnSegment(i)
	}
	s.log.Debugf("initial track spawned: %d segments", len(s.spawned))
}

// ResetTrack destroys every spawned segment and clears all bookkeeping
func (s *Stream) ResetTrack() {
	for _, e := range s.spawned {
		s.spawner.DespawnSegment(e)
	}
	s.spawned = make(map[int]ecs.Entity)
	s.cache = make(map[int]SegmentParams)
	s.active = nil
	s.highest, s.lowest, s.current = -1, -1, -1
}

// FindContainingSegment returns the active segment holding pos
// Without an exact match the segment with the nearest endpoint wins; -1 means no
// segments exist or pos is behind the start of the track itself
func (s *Stream) FindContainingSegment(pos vmath.Vec3F) int {
	indices := s.ActiveIndices()
	if len(indices) == 0 {
		return -1
	}

	// Nearest to the last known segment first, so self-overlapping track keeps continuity
	for _, i := range s.byProximity(indices) {
		seg := s.cache[i]
		if Contains(&seg, pos, parameter.ContainmentTolerance) {
			return i
		}
	}

	// Only the origin segment has a meaningful "behind"; deeper in the track the
	// window's lowest segment may face any direction relative to the player
	if first := s.cache[indices[0]]; indices[0] == 0 &&
		vmath.V3FDot(vmath.V3FHorizontal(vmath.V3FSub(pos, first.StartPosition)), first.StartDirection) < 0 {
		return -1
	}

	best, bestDist := -1, 0.0
	for _, i := range indices {
		seg := s.cache[i]
		for _, end := range [2]vmath.Vec3F{seg.StartPosition, seg.EndPosition} {
			d := vmath.V3FMagSq(vmath.V3FSub(pos, end))
			if best < 0 || d < bestDist {
				best, bestDist = i, d
			}
		}
	}
	return best
}

func (s *Stream) byProximity(indices []int) []int {
	if s.current < 0 {
		return indices
	}
	out := make([]int, len(indices))
	copy(out, indices)
	sort.SliceStable(out, func(a, b int) bool {
		return absInt(out[a]-s.current) < absInt(out[b]-s.current)
	})
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Update is the per-frame driver: keeps [current-renderDistance, current+renderDistance]
// spawned around the player's segment and evicts everything outside it
// Returns the player's current segment index, -1 when unknown
func (s *Stream) Update(playerPos vmath.Vec3F) int {
	if len(s.spawned) == 0 {
		s.SpawnInitialTrack()
		s.current = s.FindContainingSegment(playerPos)
		return s.current
	}

	cur := s.FindContainingSegment(playerPos)
	if cur < 0 {
		s.Recover()
		s.current = s.FindContainingSegment(playerPos)
		return s.current
	}
	s.current = cur

	lo := cur - s.renderDistance
	if lo < 0 {
		lo = 0
	}
	s.setWindow(lo, cur+s.renderDistance)
	return cur
}

// Recover keeps the track growing when the player cannot be located by spawning
// forward from index 1; nothing already active is evicted
func (s *Stream) Recover() {
	s.log.Warnf("player outside active track %d..%d, spawning forward from 1", s.lowest, s.highest)
	for i := 1; i <= s.renderDistance; i++ {
		_, _ = s.SpawnSegment(i)
	}
}

// setWindow spawns [lo, hi] in ascending order, then evicts active indices outside it
func (s *Stream) setWindow(lo, hi int) {
	for i := lo; i <= hi; i++ {
		_, _ = s.SpawnSegment(i)
	}

	var evict []int
	for _, i := range s.ActiveIndices() {
		if i < lo || i > hi {
			evict = append(evict, i)
		}
	}
	for _, i := range evict {
		s.RemoveSegment(i)
	}

	if bottom, ok := s.active.Min(); ok {
		s.lowest = int(bottom)
	}
}

// Segment returns the cached parameters of an active segment
func (s *Stream) Segment(index int) (SegmentParams, bool) {
	seg, ok := s.cache[index]
	return seg, ok
}

// Entity returns the entity backing an active segment
func (s *Stream) Entity(index int) (ecs.Entity, bool) {
	e, ok := s.spawned[index]
	return e, ok
}

// ActiveIndices lists active segment indices in ascending order
func (s *Stream) ActiveIndices() []int {
	bottom, ok := s.active.Min()
	if !ok {
		return nil
	}
	top, _ := s.active.Max()
	out := make([]int, 0, s.active.Count())
	for i := bottom; i <= top; i++ {
		if s.active.Contains(i) {
			out = append(out, int(i))
		}
	}
	return out
}

// Segments returns the active segments in ascending index order
func (s *Stream) Segments() []SegmentParams {
	indices := s.ActiveIndices()
	out := make([]SegmentParams, len(indices))
	for n, i := range indices {
		out[n] = s.cache[i]
	}
	return out
}

func (s *Stream) ActiveCount() int {
	return len(s.spawned)
}

func (s *Stream) Lowest() int {
	return s.lowest
}

func (s *Stream) Highest() int {
	return s.highest
}

// Current is the segment index resolved by the last Update
func (s *Stream) Current() int {
	return s.current
}

// FallbackCount is the number of degraded segments spawned over the stream lifetime
func (s *Stream) FallbackCount() int {
	return s.fallbacks
}

func (s *Stream) RenderDistance() int {
	return s.renderDistance
}
