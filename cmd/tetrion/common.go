package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tetrion/internal/audio"
	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/core"
	"github.com/vovakirdan/tetrion/internal/games/tetris"
	"github.com/vovakirdan/tetrion/internal/storage"
)

var (
	flagMute   bool
	flagVolume float64
)

// addAudioFlags registers the sound flags shared by the playing commands.
func addAudioFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	cmd.Flags().Float64Var(&flagVolume, "volume", -1, "Effect volume 0.0-1.0 (default: from config)")
}

// loadConfig loads the Tetris config for --config and --difficulty. A
// broken file is reported and the defaults are used.
func loadConfig(logger *log.Logger) config.TetrisConfig {
	preset, _ := config.ParsePreset(flagDifficulty)
	cfg, err := config.LoadTetrisWithPreset(flagConfig, preset)
	if err != nil {
		logger.Warn("could not load config, using defaults", "error", err)
	}
	return cfg
}

// openStore opens the scores database; games run without it on failure.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// startAudio opens the speaker and routes game sounds to it. The game is
// silent if audio is disabled, muted or unavailable.
func startAudio(cfg config.AudioConfig, logger *log.Logger) *audio.Player {
	if flagMute {
		cfg.Enabled = false
	}
	player := audio.New(cfg, logger)
	if flagVolume >= 0 {
		player.SetVolume(flagVolume)
	}
	if err := player.Init(); err != nil {
		logger.Warn("audio unavailable", "error", err)
	}
	if player.Ready() {
		logger.Debug("sound on")
	} else {
		logger.Info("sound off")
	}
	tetris.SetSound(player)
	return player
}
