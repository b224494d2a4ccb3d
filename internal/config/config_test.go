package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tetrion/internal/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg TetrisConfig
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML("tetris"), &cfg))
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestLoadTetrisCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := []byte("timing:\n  default_interval_ms: 300\nscoring:\n  row_deleted: 40\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadTetris(path)
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.Timing.DefaultIntervalMs)
	assert.Equal(t, 40, cfg.Scoring.RowDeleted)
	// Untouched keys keep their defaults.
	assert.Equal(t, 50, cfg.Timing.MinIntervalMs)
	assert.Equal(t, 2, cfg.Scoring.Landed)
	assert.Equal(t, DefaultTetrisConfig().Keymap, cfg.Keymap)
}

func TestLoadTetrisKeymapReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := []byte("keymap:\n  move_left: [h]\n  move_right: [l]\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadTetris(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Keymap, 2)
	assert.Equal(t, []string{"h"}, cfg.Keymap["move_left"])
}

func TestLoadTetrisMissingCustomPath(t *testing.T) {
	cfg, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, DefaultTetrisConfig().Timing, cfg.Timing)
}

func TestLoadTetrisInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timing: [unclosed"), 0o644))

	cfg, err := LoadTetris(path)
	require.Error(t, err)
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestValidateClamps(t *testing.T) {
	cfg := TetrisConfig{
		Timing: TetrisTiming{
			DefaultIntervalMs: 200,
			MinIntervalMs:     500,
			FastFallDivisor:   0,
			SpeedUpMs:         -3,
		},
		Scoring:    TetrisScoring{Move: -1, PerLevel: 0},
		Audio:      AudioConfig{Volume: 4},
		Difficulty: DifficultyConfig{InitialLevel: -2},
	}
	cfg.Validate()

	assert.Equal(t, 200, cfg.Timing.DefaultIntervalMs)
	assert.Equal(t, 50, cfg.Timing.MinIntervalMs)
	assert.Equal(t, 5, cfg.Timing.FastFallDivisor)
	assert.Equal(t, 0, cfg.Timing.SpeedUpMs)
	assert.Equal(t, 1, cfg.Scoring.Move)
	assert.Equal(t, 100, cfg.Scoring.PerLevel)
	assert.InDelta(t, 1.0, cfg.Audio.Volume, 1e-9)
	assert.InDelta(t, 0.0, cfg.Difficulty.InitialLevel, 1e-9)
	assert.NotEmpty(t, cfg.Keymap)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", "", false},
		{"easy", DifficultyEasy, false},
		{"normal", DifficultyNormal, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"insane", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePreset(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPresetsDriveDifficulty(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		wantInterval int64
		wantStep     int64
	}{
		{DifficultyEasy, 350, 2},
		{DifficultyNormal, 350, 5},
		{DifficultyHard, 200, 10},
		{DifficultyFixed, 350, 0},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			ApplyTetrisPreset(&cfg, tc.preset)

			dm := NewDifficultyManager(cfg.Timing, cfg.Difficulty)
			assert.Equal(t, tc.wantInterval, dm.StartInterval())
			assert.Equal(t, tc.wantStep, dm.SpeedUpStep())
		})
	}
}

func TestPresetsDiffer(t *testing.T) {
	type rules struct{ start, step int64 }
	seen := map[rules]DifficultyPreset{}
	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed} {
		cfg := DefaultTetrisConfig()
		ApplyTetrisPreset(&cfg, p)
		dm := NewDifficultyManager(cfg.Timing, cfg.Difficulty)
		r := rules{dm.StartInterval(), dm.SpeedUpStep()}

		other, dup := seen[r]
		assert.False(t, dup, "%s and %s produce the same rules %+v", p, other, r)
		seen[r] = p
	}
}

func TestSpeedUpScaleValidated(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Difficulty.SpeedUpScale = -3
	cfg.Validate()
	assert.InDelta(t, 1.0, cfg.Difficulty.SpeedUpScale, 1e-9)
}

func TestKeymapBindings(t *testing.T) {
	b, err := DefaultTetrisConfig().Keymap.Bindings()
	require.NoError(t, err)

	assert.Equal(t, []core.Action{core.ActionMoveLeft}, b["left"])
	assert.ElementsMatch(t, []core.Action{core.ActionHardDrop, core.ActionConfirm}, b["space"])
	assert.Equal(t, []core.Action{core.ActionQuit}, b["esc"])

	_, err = KeymapConfig{"teleport": {"t"}}.Bindings()
	assert.Error(t, err)
}

func TestMarshalRoundTripsKeymap(t *testing.T) {
	data, err := Marshal(DefaultTetrisConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), "move_left")
}
