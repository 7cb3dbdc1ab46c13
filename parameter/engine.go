package parameter

import "time"

// Frame loop timing
const (
	// FrameUpdateInterval is the host loop interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// ReferenceFrameRate converts per-frame multipliers into per-second decay
	// A damping of 0.98 means 0.98 retained per 1/60 s regardless of actual delta
	ReferenceFrameRate = 60.0

	// MaxFrameDelta clamps a single tick's delta in seconds
	// Host stalls (debugger, window drag) would otherwise tunnel the vehicle through segments
	MaxFrameDelta = 0.1
)

// Status bar / HUD refresh
const (
	// FPSSampleWindow is the number of frames averaged for the fps metric
	FPSSampleWindow = 30
)

// Input collection
const (
	// InputHoldWindow keeps a key-press action engaged between terminal auto-repeat events
	// Terminals report presses only; the action releases when repeats stop
	InputHoldWindow = 150 * time.Millisecond
)
