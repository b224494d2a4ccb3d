package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions using the
// configured keymap.
type KeyMapper struct {
	bindings map[string][]core.Action
	keymap   config.KeymapConfig
}

// NewKeyMapper resolves a keymap. A nil keymap uses the built-in defaults.
func NewKeyMapper(km config.KeymapConfig) (*KeyMapper, error) {
	if km == nil {
		km = config.DefaultTetrisConfig().Keymap
	}
	bindings, err := km.Bindings()
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	return &KeyMapper{bindings: bindings, keymap: km}, nil
}

// keyName normalizes a key message to the names used in config files.
func keyName(msg tea.KeyMsg) string {
	switch s := msg.String(); s {
	case " ":
		return "space"
	default:
		return strings.ToLower(s)
	}
}

// MapKey returns the actions bound to the key, or nil.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) []core.Action {
	return km.bindings[keyName(msg)]
}

// HelpKeys builds help bindings for the in-game help line.
func (km *KeyMapper) HelpKeys() GameKeyMap {
	bind := func(a core.Action, desc string) key.Binding {
		keys := km.keymap.KeysFor(a)
		return key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), desc),
		)
	}
	return GameKeyMap{
		Left:     bind(core.ActionMoveLeft, "left"),
		Right:    bind(core.ActionMoveRight, "right"),
		RotateCW: bind(core.ActionRotateCW, "rotate"),
		Rotate:   bind(core.ActionRotateCCW, "rotate ccw"),
		FastFall: bind(core.ActionFastFall, "fall"),
		HardDrop: bind(core.ActionHardDrop, "drop"),
		Pause:    bind(core.ActionPause, "pause"),
		Quit:     bind(core.ActionQuit, "quit"),
	}
}

// GameKeyMap is the in-game help.KeyMap.
type GameKeyMap struct {
	Left     key.Binding
	Right    key.Binding
	RotateCW key.Binding
	Rotate   key.Binding
	FastFall key.Binding
	HardDrop key.Binding
	Pause    key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RotateCW, k.FastFall, k.HardDrop, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.FastFall, k.HardDrop},
		{k.RotateCW, k.Rotate, k.Pause, k.Quit},
	}
}

// HoldTracker synthesizes key releases. Terminals only report presses (and
// OS auto-repeat), so an action counts as held until no event for it has
// arrived within the hold window. The first press gets a long window that
// covers the OS repeat delay; once repeats flow, the short window applies.
type HoldTracker struct {
	clock core.Clock
	first int64
	hold  int64
	keys  *intmap.Map[core.Action, holdState]
}

type holdState struct {
	last      int64
	repeating bool
}

// NewHoldTracker creates a tracker. firstMs is the window after a fresh
// press and holdMs the window between repeats, both in milliseconds.
func NewHoldTracker(clock core.Clock, firstMs, holdMs int64) *HoldTracker {
	return &HoldTracker{
		clock: clock,
		first: max(firstMs, holdMs),
		hold:  holdMs,
		keys:  intmap.New[core.Action, holdState](len(core.Actions())),
	}
}

func (h *HoldTracker) window(st holdState) int64 {
	if st.repeating {
		return h.hold
	}
	return h.first
}

// Touch records a press or repeat event for a.
func (h *HoldTracker) Touch(a core.Action) {
	now := h.clock.Millis()
	st, ok := h.keys.Get(a)
	repeating := ok && now-st.last < h.window(st)
	h.keys.Put(a, holdState{last: now, repeating: repeating})
}

// Held reports whether a is still considered down.
func (h *HoldTracker) Held(a core.Action) bool {
	st, ok := h.keys.Get(a)
	if !ok {
		return false
	}
	if h.clock.Millis()-st.last < h.window(st) {
		return true
	}
	h.keys.Del(a)
	return false
}

// Reset releases every action.
func (h *HoldTracker) Reset() {
	h.keys.Clear()
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
