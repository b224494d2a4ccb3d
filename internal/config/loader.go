package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTetris loads the game configuration.
// Search order: customPath -> ~/.arcade/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides
// the keys it names. The result is validated.
func LoadTetris(customPath string) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := decodeTetris(data, &cfg); err != nil {
			return DefaultTetrisConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tetris.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := decodeTetris(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultTetrisConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "tetris.yaml")); err == nil {
		if err := decodeTetris(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultTetrisConfig()
	}

	// Use embedded default YAML
	if err := decodeTetris(defaultTetrisYAML, &cfg); err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadTetrisWithPreset loads the configuration and applies a preset on top.
func LoadTetrisWithPreset(customPath string, preset DifficultyPreset) (TetrisConfig, error) {
	cfg, err := LoadTetris(customPath)
	if preset != "" {
		ApplyTetrisPreset(&cfg, preset)
	}
	return cfg, err
}

func decodeTetris(data []byte, cfg *TetrisConfig) error {
	// A keymap in the file replaces the default one instead of merging.
	var partial struct {
		Keymap KeymapConfig `yaml:"keymap"`
	}
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return err
	}
	if len(partial.Keymap) > 0 {
		cfg.Keymap = nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	cfg.Validate()
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Marshal renders a config as YAML, used by `tetrion config`.
func Marshal(cfg TetrisConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}
