package core

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveLeft         // A, Left arrow
	ActionMoveRight        // D, Right arrow
	ActionRotateCW         // E, Up arrow
	ActionRotateCCW        // Q, Z
	ActionFastFall         // S, Down arrow - held for soft drop
	ActionHardDrop         // Space
	ActionConfirm          // Space - start game, retry after game over
	ActionPause            // P
	ActionQuit             // Esc
	actionCount
)

// Actions lists every bindable action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount-1)
	for a := ActionNone + 1; a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// String returns the config name of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionMoveLeft:
		return "move_left"
	case ActionMoveRight:
		return "move_right"
	case ActionRotateCW:
		return "rotate_cw"
	case ActionRotateCCW:
		return "rotate_ccw"
	case ActionFastFall:
		return "fast_fall"
	case ActionHardDrop:
		return "hard_drop"
	case ActionConfirm:
		return "confirm"
	case ActionPause:
		return "pause"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ParseAction resolves a config name back to an Action.
func ParseAction(name string) (Action, error) {
	for _, a := range Actions() {
		if a.String() == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("core: unknown action %q", name)
}

func (a Action) bit() uint32 {
	return 1 << uint(a)
}

// InputFrame is the edge state of every action for one simulation tick.
//
// Pressed and Released are single-frame edges. Repeated fires on the press
// edge and then again at the auto-repeat rate while the action is held.
type InputFrame struct {
	held     uint32
	pressed  uint32
	released uint32
	repeated uint32
}

// Held reports whether the action is currently down.
func (f InputFrame) Held(a Action) bool { return f.held&a.bit() != 0 }

// Pressed reports whether the action went down this frame.
func (f InputFrame) Pressed(a Action) bool { return f.pressed&a.bit() != 0 }

// Released reports whether the action went up this frame.
func (f InputFrame) Released(a Action) bool { return f.released&a.bit() != 0 }

// Repeated reports whether the action fired its press or auto-repeat edge.
func (f InputFrame) Repeated(a Action) bool { return f.repeated&a.bit() != 0 }

// Press marks a down edge. The action also counts as held and repeated.
func (f *InputFrame) Press(a Action) {
	f.held |= a.bit()
	f.pressed |= a.bit()
	f.repeated |= a.bit()
}

// Release marks an up edge.
func (f *InputFrame) Release(a Action) {
	f.held &^= a.bit()
	f.released |= a.bit()
}

// Repeat marks an auto-repeat edge on a held action.
func (f *InputFrame) Repeat(a Action) {
	f.held |= a.bit()
	f.repeated |= a.bit()
}

type keyState struct {
	prev         bool
	down         bool
	initialPress int64
	lastPress    int64
}

// Keyboard turns raw held/not-held samples into per-frame edges with
// delayed auto-repeat.
type Keyboard struct {
	clock    Clock
	delay    int64
	interval int64
	keys     *intmap.Map[Action, *keyState]
}

// Default auto-repeat timing in milliseconds.
const (
	DefaultRepeatDelay    = 180
	DefaultRepeatInterval = 75
)

// NewKeyboard creates a debouncer. delay is the wait before auto-repeat
// starts and interval the gap between repeats, both in milliseconds.
func NewKeyboard(clock Clock, delay, interval int64) *Keyboard {
	kb := &Keyboard{
		clock:    clock,
		delay:    delay,
		interval: interval,
		keys:     intmap.New[Action, *keyState](int(actionCount)),
	}
	for _, a := range Actions() {
		kb.keys.Put(a, &keyState{})
	}
	return kb
}

// Update samples every action once and returns the edges for this frame.
func (kb *Keyboard) Update(held func(Action) bool) InputFrame {
	now := kb.clock.Millis()
	var f InputFrame

	for _, a := range Actions() {
		ks, ok := kb.keys.Get(a)
		if !ok {
			ks = &keyState{}
			kb.keys.Put(a, ks)
		}

		ks.prev = ks.down
		ks.down = held(a)

		switch {
		case ks.down && !ks.prev:
			ks.initialPress = now
			ks.lastPress = now
			f.Press(a)
		case !ks.down && ks.prev:
			f.Release(a)
		case ks.down:
			f.held |= a.bit()
			if now-ks.initialPress >= kb.delay && now-ks.lastPress >= kb.interval {
				ks.lastPress = now
				f.Repeat(a)
			}
		}
	}
	return f
}

// Reset forgets all key state, as after focus loss.
func (kb *Keyboard) Reset() {
	kb.keys.Clear()
	for _, a := range Actions() {
		kb.keys.Put(a, &keyState{})
	}
}
