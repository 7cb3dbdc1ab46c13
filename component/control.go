package component

// MouseDelta is accumulated pointer motion since the last poll
type MouseDelta struct {
	X, Y float64
}

// InputComponent is the per-frame control record
// Forward, Strafe and Roll are in [-1, 1]; producers normally send -1, 0 or 1
type InputComponent struct {
	Forward    float64
	Strafe     float64
	Roll       float64
	Boost      bool
	Brake      bool
	MouseDelta MouseDelta
}

// Idle reports whether no control is engaged
func (i InputComponent) Idle() bool {
	return i.Forward == 0 && i.Strafe == 0 && i.Roll == 0 && !i.Boost && !i.Brake &&
		i.MouseDelta.X == 0 && i.MouseDelta.Y == 0
}
