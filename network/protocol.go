package network

import (
	"github.com/lixenwraith/vi-racer/component"
	"github.com/lixenwraith/vi-racer/render"
)

// Message types on the wire, JSON text frames both ways
const (
	MsgInput     = "input"
	MsgHeartbeat = "heartbeat"
	MsgReset     = "reset"

	MsgWelcome = "welcome"
	MsgState   = "state"
	MsgError   = "error"
)

// InputMessage mirrors the control record; keys are level-triggered, mouse deltas accumulate
type InputMessage struct {
	Forward float64 `json:"forward"`
	Strafe  float64 `json:"strafe"`
	Roll    float64 `json:"roll"`
	Boost   bool    `json:"boost"`
	Brake   bool    `json:"brake"`
	MouseDX float64 `json:"mouse_dx"`
	MouseDY float64 `json:"mouse_dy"`
}

func (m *InputMessage) component() component.InputComponent {
	return component.InputComponent{
		Forward: m.Forward,
		Strafe:  m.Strafe,
		Roll:    m.Roll,
		Boost:   m.Boost,
		Brake:   m.Brake,
	}
}

// ClientMessage is everything a browser may send
type ClientMessage struct {
	Type   string        `json:"type"`
	Input  *InputMessage `json:"input,omitempty"`
	SentAt int64         `json:"sent_at,omitempty"`
}

// ServerMessage is everything the bridge sends
type ServerMessage struct {
	Type       string        `json:"type"`
	ClientID   string        `json:"client_id,omitempty"`
	SessionID  string        `json:"session_id,omitempty"`
	ServerTime int64         `json:"server_time"`
	ClientTime int64         `json:"client_time,omitempty"`
	Error      string        `json:"error,omitempty"`
	Frame      *render.Frame `json:"frame,omitempty"`
}
