package input

import (
	"github.com/gdamore/tcell/v2"
)

// Action is a driving control engaged by a key
type Action uint8

const (
	ActionNone Action = iota
	ActionThrottle
	ActionBrake
	ActionSteerLeft
	ActionSteerRight
	ActionBoost
	ActionRollLeft
	ActionRollRight
	ActionQuit
	ActionToggleMute
	actionCount
)

var actionNames = [...]string{
	ActionNone:       "none",
	ActionThrottle:   "throttle",
	ActionBrake:      "brake",
	ActionSteerLeft:  "steer-left",
	ActionSteerRight: "steer-right",
	ActionBoost:      "boost",
	ActionRollLeft:   "roll-left",
	ActionRollRight:  "roll-right",
	ActionQuit:       "quit",
	ActionToggleMute: "toggle-mute",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction resolves an action name as sent by remote clients
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name && Action(i) != ActionNone {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// KeyTable maps keys to actions
type KeyTable struct {
	// Special keys (Ctrl+*, arrows)
	SpecialKeys map[tcell.Key]Action

	// Rune bindings, vi home row plus wasd
	Runes map[rune]Action
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Action{
			tcell.KeyUp:     ActionThrottle,
			tcell.KeyDown:   ActionBrake,
			tcell.KeyLeft:   ActionSteerLeft,
			tcell.KeyRight:  ActionSteerRight,
			tcell.KeyCtrlQ:  ActionQuit,
			tcell.KeyCtrlC:  ActionQuit,
			tcell.KeyEscape: ActionQuit,
			tcell.KeyCtrlS:  ActionToggleMute,
		},
		Runes: map[rune]Action{
			'k': ActionThrottle,
			'j': ActionBrake,
			'h': ActionSteerLeft,
			'l': ActionSteerRight,
			'w': ActionThrottle,
			's': ActionBrake,
			'a': ActionSteerLeft,
			'd': ActionSteerRight,
			' ': ActionBoost,
			'u': ActionRollLeft,
			'o': ActionRollRight,
		},
	}
}

// Lookup resolves a key event to its action
func (t *KeyTable) Lookup(ev *tcell.EventKey) (Action, bool) {
	return t.LookupKey(ev.Key(), ev.Rune())
}

// LookupKey resolves a key code, consulting runes for tcell.KeyRune
func (t *KeyTable) LookupKey(key tcell.Key, r rune) (Action, bool) {
	if key == tcell.KeyRune {
		a, ok := t.Runes[r]
		return a, ok
	}
	a, ok := t.SpecialKeys[key]
	return a, ok
}
