// Package input accumulates device events between frames into one control record.
package input

import (
	"sync"
	"time"

	"github.com/lixenwraith/vi-racer/component"
	"github.com/lixenwraith/vi-racer/parameter"
)

// Collector is the single-producer/single-consumer input accumulator
// Producers call Press/SetState/AddMouseDelta from any goroutine; the poll system calls Drain once per frame
type Collector struct {
	mu sync.Mutex

	// held maps an action to the instant its hold window expires
	held  [actionCount]time.Time
	state component.InputComponent
	mouse component.MouseDelta

	hold time.Duration
	now  func() time.Time
}

// NewCollector creates a collector using the default hold window and wall clock
func NewCollector() *Collector {
	return &Collector{
		hold: parameter.InputHoldWindow,
		now:  time.Now,
	}
}

// Press engages a for the hold window, extending it when repeated
func (c *Collector) Press(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	c.mu.Lock()
	c.held[a] = c.now().Add(c.hold)
	c.mu.Unlock()
}

// Release disengages a immediately
func (c *Collector) Release(a Action) {
	if a >= actionCount {
		return
	}
	c.mu.Lock()
	c.held[a] = time.Time{}
	c.mu.Unlock()
}

// SetState replaces the level-triggered controls, used by producers that report key-up
// Mouse delta is accumulated separately and left untouched
func (c *Collector) SetState(in component.InputComponent) {
	c.mu.Lock()
	in.MouseDelta = component.MouseDelta{}
	c.state = in
	c.mu.Unlock()
}

// AddMouseDelta accumulates pointer motion until the next Drain
func (c *Collector) AddMouseDelta(dx, dy float64) {
	c.mu.Lock()
	c.mouse.X += dx
	c.mouse.Y += dy
	c.mu.Unlock()
}

// Drain returns the merged control record and resets the per-frame accumulators
// Consumption is destructive: call exactly once per frame
func (c *Collector) Drain() component.InputComponent {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	active := func(a Action) bool { return now.Before(c.held[a]) }

	in := c.state
	in.MouseDelta = c.mouse
	c.mouse = component.MouseDelta{}

	if active(ActionThrottle) {
		in.Forward = 1
	}
	if active(ActionBrake) {
		in.Brake = true
	}
	if active(ActionBoost) {
		in.Boost = true
	}
	in.Strafe = clampAxis(in.Strafe + axis(active(ActionSteerRight), active(ActionSteerLeft)))
	in.Roll = clampAxis(in.Roll + axis(active(ActionRollRight), active(ActionRollLeft)))
	return in
}

// Reset drops all held actions and accumulated state
func (c *Collector) Reset() {
	c.mu.Lock()
	c.held = [actionCount]time.Time{}
	c.state = component.InputComponent{}
	c.mouse = component.MouseDelta{}
	c.mu.Unlock()
}

func axis(pos, neg bool) float64 {
	v := 0.0
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

func clampAxis(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
