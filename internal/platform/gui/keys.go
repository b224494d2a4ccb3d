package gui

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/core"
)

// keyNames maps config key names to ebiten keys.
var keyNames = map[string]ebiten.Key{
	"left":      ebiten.KeyArrowLeft,
	"right":     ebiten.KeyArrowRight,
	"up":        ebiten.KeyArrowUp,
	"down":      ebiten.KeyArrowDown,
	"space":     ebiten.KeySpace,
	"esc":       ebiten.KeyEscape,
	"enter":     ebiten.KeyEnter,
	"tab":       ebiten.KeyTab,
	"backspace": ebiten.KeyBackspace,
	"shift":     ebiten.KeyShift,
	"ctrl":      ebiten.KeyControl,
	"alt":       ebiten.KeyAlt,
}

func init() {
	letters := []ebiten.Key{
		ebiten.KeyA,
		ebiten.KeyB,
		ebiten.KeyC,
		ebiten.KeyD,
		ebiten.KeyE,
		ebiten.KeyF,
		ebiten.KeyG,
		ebiten.KeyH,
		ebiten.KeyI,
		ebiten.KeyJ,
		ebiten.KeyK,
		ebiten.KeyL,
		ebiten.KeyM,
		ebiten.KeyN,
		ebiten.KeyO,
		ebiten.KeyP,
		ebiten.KeyQ,
		ebiten.KeyR,
		ebiten.KeyS,
		ebiten.KeyT,
		ebiten.KeyU,
		ebiten.KeyV,
		ebiten.KeyW,
		ebiten.KeyX,
		ebiten.KeyY,
		ebiten.KeyZ,
	}
	for i, k := range letters {
		keyNames[string(rune('a'+i))] = k
	}
	digits := []ebiten.Key{ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9}
	for i, k := range digits {
		keyNames[string(rune('0'+i))] = k
	}
}

// KeyByName returns the ebiten key for a config key name.
func KeyByName(name string) (ebiten.Key, bool) {
	k, ok := keyNames[name]
	return k, ok
}

// KeyBindings maps each action to the physical keys that hold it.
type KeyBindings map[core.Action][]ebiten.Key

// ResolveKeys converts a keymap. Key names with no desktop equivalent
// (terminal chords such as "ctrl+c") are returned in unknown, sorted.
func ResolveKeys(km config.KeymapConfig) (KeyBindings, []string, error) {
	if km == nil {
		km = config.DefaultTetrisConfig().Keymap
	}
	byKey, err := km.Bindings()
	if err != nil {
		return nil, nil, fmt.Errorf("gui: %w", err)
	}

	out := make(KeyBindings)
	var unknown []string
	for name, actions := range byKey {
		k, ok := KeyByName(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		for _, a := range actions {
			out[a] = append(out[a], k)
		}
	}
	for a := range out {
		keys := out[a]
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	}
	sort.Strings(unknown)
	return out, unknown, nil
}

// Held reports whether any key bound to a is down according to pressed.
func (b KeyBindings) Held(a core.Action, pressed func(ebiten.Key) bool) bool {
	for _, k := range b[a] {
		if pressed(k) {
			return true
		}
	}
	return false
}
