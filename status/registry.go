// Package status is the lock-free metrics registry shared by the simulation and its readers.
package status

import "sync/atomic"

// Metric keys written by the simulation
const (
	SimFrame = "sim.frame"
	SimFPS   = "sim.fps"

	TrackActive    = "track.active"
	TrackLowest    = "track.lowest"
	TrackHighest   = "track.highest"
	TrackFallbacks = "track.fallbacks"

	PlayerSpeed    = "player.speed"
	PlayerTopSpeed = "player.top_speed"
	PlayerOffTrack = "player.offtrack"
	PlayerSegment  = "player.segment"
	PlayerState    = "player.state"

	PlayerReverseKicks = "player.reverse_kicks"
)

// Registry is the central metrics facade
// Systems cache pointers during init; Update loops write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot copies every metric into a plain map for HUD and bridge readers
// Values are read individually; the map is not a consistent cut across metrics
func (r *Registry) Snapshot() map[string]any {
	return r.SnapshotPrefix("")
}

// SnapshotPrefix copies the metrics whose key starts with prefix
func (r *Registry) SnapshotPrefix(prefix string) map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(prefix, func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(prefix, func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(prefix, func(k string, v *AtomicFloat) { out[k] = v.Get() })
	r.Strings.Range(prefix, func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}
