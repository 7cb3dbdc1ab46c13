package status

import (
	"sync/atomic"
)

// MaxStringLen bounds published labels; longitudinal state names fit well inside it
const MaxStringLen = 32

// AtomicString holds a short label such as the player's longitudinal state
// ("forward", "braking_to_stop") written by the simulation and read by the HUD
// Zero value reads as the empty string
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store publishes val, truncated to MaxStringLen
func (s *AtomicString) Store(val string) {
	s.Swap(val)
}

// Swap publishes val and returns the label it replaced, so writers can detect transitions
func (s *AtomicString) Swap(val string) string {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	if p := s.ptr.Swap(&val); p != nil {
		return *p
	}
	return ""
}

// Load returns the current label
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
