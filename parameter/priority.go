package parameter

// System Execution Priorities (lower runs first)
// Order is the frame contract: later systems read state written earlier in the same frame
const (
	PriorityTime     = 10
	PriorityInput    = 20
	PriorityDrive    = 30 // Input to force/rotation
	PriorityForce    = 40 // Integrate force into velocity, apply damping
	PrioritySpeed    = 50 // Hard clamp after integration
	PriorityMovement = 60
	PriorityTrack    = 70 // Needs this frame's moved player position
	PriorityBoundary = 80 // Needs segments spawned for this frame
	PriorityCamera   = 90
	PriorityView     = 100 // Last: hand-off to renderer
)
