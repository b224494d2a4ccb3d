// Package config provides YAML-based game configuration loading and
// difficulty management for Tetrion.
package config

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tetrion/internal/core"
)

// TetrisConfig contains all configuration for the falling-block game.
type TetrisConfig struct {
	Timing     TetrisTiming     `yaml:"timing"`
	Scoring    TetrisScoring    `yaml:"scoring"`
	Input      InputConfig      `yaml:"input"`
	Keymap     KeymapConfig     `yaml:"keymap"`
	Audio      AudioConfig      `yaml:"audio"`
	Display    DisplayConfig    `yaml:"display"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisTiming defines the fall ticker in milliseconds.
type TetrisTiming struct {
	DefaultIntervalMs int `yaml:"default_interval_ms"`
	MinIntervalMs     int `yaml:"min_interval_ms"`
	MaxIntervalMs     int `yaml:"max_interval_ms"` // informational; level-up clamps to default
	FastFallDivisor   int `yaml:"fast_fall_divisor"`
	SpeedUpMs         int `yaml:"speed_up_ms"` // interval reduction per level
}

// TetrisScoring defines point values.
type TetrisScoring struct {
	Move       int `yaml:"move"`
	Landed     int `yaml:"landed"`
	RowDeleted int `yaml:"row_deleted"`
	PerLevel   int `yaml:"per_level"`
}

// InputConfig defines keyboard debouncing.
type InputConfig struct {
	RepeatDelayMs    int `yaml:"repeat_delay_ms"`
	RepeatIntervalMs int `yaml:"repeat_interval_ms"`
	// Terminals do not report key releases. A key counts as held for
	// TerminalFirstHoldMs after a fresh press, which must outlast the OS
	// repeat delay, and for TerminalHoldMs after each repeat.
	TerminalFirstHoldMs int `yaml:"terminal_first_hold_ms"`
	TerminalHoldMs      int `yaml:"terminal_hold_ms"`
}

// KeymapConfig maps action names to key names ("a", "left", "space", "esc").
type KeymapConfig map[string][]string

// AudioConfig defines sound effect output.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0 to 1.0
	SampleRate int     `yaml:"sample_rate"`
}

// DisplayConfig defines desktop window geometry.
type DisplayConfig struct {
	TileSize int `yaml:"tile_size"` // pixels per tile
	Scale    int `yaml:"scale"`     // window scale factor
}

// DifficultyConfig defines level progression.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`        // speed up on level-up
	InitialLevel float64 `yaml:"initial_level"`  // 0.0 = slowest start, 1.0 = fastest
	SpeedUpScale float64 `yaml:"speed_up_scale"` // multiplies timing.speed_up_ms
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Empty means none.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// presetRules holds the start level and speed-up scale of each preset.
var presetRules = map[DifficultyPreset]struct {
	initialLevel float64
	speedUpScale float64
}{
	DifficultyEasy:   {0.0, 0.4},
	DifficultyNormal: {0.0, 1.0},
	DifficultyHard:   {0.5, 2.0},
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	return presetRules[preset].initialLevel
}

// SpeedUpScaleForPreset returns the speed_up_scale for a difficulty preset.
// Unknown presets and fixed use 1.
func SpeedUpScaleForPreset(preset DifficultyPreset) float64 {
	if r, ok := presetRules[preset]; ok {
		return r.speedUpScale
	}
	return 1
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
//
//	easy   - slowest start, level-ups speed up by 0.4 x speed_up_ms
//	normal - slowest start, level-ups speed up by speed_up_ms
//	hard   - halfway start, level-ups speed up by 2 x speed_up_ms
//	fixed  - slowest start, no speed-up
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
		cfg.Difficulty.SpeedUpScale = 1
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	cfg.Difficulty.SpeedUpScale = SpeedUpScaleForPreset(preset)
}

// Validate replaces nonsensical values with defaults so a bad file
// degrades instead of breaking the game.
func (c *TetrisConfig) Validate() {
	def := DefaultTetrisConfig()

	t := &c.Timing
	if t.DefaultIntervalMs <= 0 {
		t.DefaultIntervalMs = def.Timing.DefaultIntervalMs
	}
	if t.MinIntervalMs <= 0 || t.MinIntervalMs > t.DefaultIntervalMs {
		t.MinIntervalMs = min(def.Timing.MinIntervalMs, t.DefaultIntervalMs)
	}
	if t.MaxIntervalMs < t.MinIntervalMs {
		t.MaxIntervalMs = t.DefaultIntervalMs
	}
	if t.FastFallDivisor < 1 {
		t.FastFallDivisor = def.Timing.FastFallDivisor
	}
	if t.SpeedUpMs < 0 {
		t.SpeedUpMs = 0
	}

	s := &c.Scoring
	if s.Move < 0 {
		s.Move = def.Scoring.Move
	}
	if s.Landed < 0 {
		s.Landed = def.Scoring.Landed
	}
	if s.RowDeleted < 0 {
		s.RowDeleted = def.Scoring.RowDeleted
	}
	if s.PerLevel <= 0 {
		s.PerLevel = def.Scoring.PerLevel
	}

	in := &c.Input
	if in.RepeatDelayMs <= 0 {
		in.RepeatDelayMs = def.Input.RepeatDelayMs
	}
	if in.RepeatIntervalMs <= 0 {
		in.RepeatIntervalMs = def.Input.RepeatIntervalMs
	}
	if in.TerminalHoldMs <= 0 {
		in.TerminalHoldMs = def.Input.TerminalHoldMs
	}
	if in.TerminalFirstHoldMs < in.TerminalHoldMs {
		in.TerminalFirstHoldMs = max(def.Input.TerminalFirstHoldMs, in.TerminalHoldMs)
	}

	if len(c.Keymap) == 0 {
		c.Keymap = def.Keymap
	}

	c.Audio.Volume = clampF(c.Audio.Volume, 0, 1)
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = def.Audio.SampleRate
	}

	if c.Display.TileSize <= 0 {
		c.Display.TileSize = def.Display.TileSize
	}
	if c.Display.Scale <= 0 {
		c.Display.Scale = def.Display.Scale
	}

	c.Difficulty.InitialLevel = clampF(c.Difficulty.InitialLevel, 0, 1)
	if c.Difficulty.SpeedUpScale <= 0 {
		c.Difficulty.SpeedUpScale = def.Difficulty.SpeedUpScale
	}
}

// Bindings resolves the keymap into key name -> action.
// A key bound to several actions triggers all of them.
func (k KeymapConfig) Bindings() (map[string][]core.Action, error) {
	names := make([]string, 0, len(k))
	for name := range k {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string][]core.Action)
	for _, name := range names {
		action, err := core.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("config: keymap: %w", err)
		}
		for _, key := range k[name] {
			out[key] = append(out[key], action)
		}
	}
	return out, nil
}

// KeysFor returns the keys bound to an action, for help text.
func (k KeymapConfig) KeysFor(a core.Action) []string {
	return k[a.String()]
}
