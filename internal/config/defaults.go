package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the hard-coded configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Timing: TetrisTiming{
			DefaultIntervalMs: 350,
			MinIntervalMs:     50,
			MaxIntervalMs:     320,
			FastFallDivisor:   5,
			SpeedUpMs:         5,
		},
		Scoring: TetrisScoring{
			Move:       1,
			Landed:     2,
			RowDeleted: 10,
			PerLevel:   100,
		},
		Input: InputConfig{
			RepeatDelayMs:       180,
			RepeatIntervalMs:    75,
			TerminalFirstHoldMs: 550,
			TerminalHoldMs:      120,
		},
		Keymap: KeymapConfig{
			"move_left":  {"a", "left"},
			"move_right": {"d", "right"},
			"rotate_cw":  {"e", "up"},
			"rotate_ccw": {"q", "z"},
			"fast_fall":  {"s", "down"},
			"hard_drop":  {"space"},
			"confirm":    {"space"},
			"pause":      {"p"},
			"quit":       {"esc"},
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.7,
			SampleRate: 44100,
		},
		Display: DisplayConfig{
			TileSize: 16,
			Scale:    2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			SpeedUpScale: 1.0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris":
		return defaultTetrisYAML
	default:
		return nil
	}
}
