package engine

import (
	"github.com/lixenwraith/vi-racer/config"
	"github.com/lixenwraith/vi-racer/logging"
	"github.com/lixenwraith/vi-racer/status"
	"github.com/lixenwraith/vi-racer/track"
)

// Resource holds singleton session resources, accessed via World.Resource
type Resource struct {
	Time   *TimeResource
	Config *ConfigResource
	Track  *TrackResource

	// Telemetry
	Status *status.Registry
	Log    *logging.Logger
}

// TimeResource is the frame clock, updated first in every frame
type TimeResource struct {
	// Delta is the clamped duration of the current frame in seconds
	Delta float64

	// Elapsed is simulated seconds since session start
	Elapsed float64

	// Frame is the current frame count
	Frame int64

	// pending is the raw delta handed to Tick, consumed by the time system
	pending float64
}

// Advance queues the raw frame delta for the time system
func (tr *TimeResource) Advance(dt float64) {
	tr.pending = dt
}

// Pending returns the queued raw delta
func (tr *TimeResource) Pending() float64 {
	return tr.pending
}

// Reset zeroes the clock
func (tr *TimeResource) Reset() {
	*tr = TimeResource{}
}

// ConfigResource holds the immutable session configuration
type ConfigResource struct {
	config.Config
}

// TrackResource exposes the segment stream to systems
type TrackResource struct {
	Stream *track.Stream
}
