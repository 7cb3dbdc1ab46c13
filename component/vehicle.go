package component

// LongitudinalState is the vehicle's forward/backward driving mode
type LongitudinalState uint8

const (
	StateStopped LongitudinalState = iota
	StateForward
	StateBrakingToStop
	StateReversing
)

var longitudinalStateNames = [...]string{
	StateStopped:       "stopped",
	StateForward:       "forward",
	StateBrakingToStop: "braking",
	StateReversing:     "reversing",
}

func (s LongitudinalState) String() string {
	if int(s) < len(longitudinalStateNames) {
		return longitudinalStateNames[s]
	}
	return "unknown"
}

// VehicleComponent holds player-only driving state
// Yaw and Bank are the source of truth for the transform rotation
type VehicleComponent struct {
	State    LongitudinalState
	Grounded bool
	Yaw      float64 // Radians about +Y, 0 faces -Z, positive turns left
	Bank     float64 // Radians about the heading axis
}
