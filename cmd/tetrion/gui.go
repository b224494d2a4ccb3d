package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetrion/internal/core"
	"github.com/vovakirdan/tetrion/internal/platform/gui"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play there.

Unlike the terminal, the window sees real key-up events, so held keys
behave exactly as pressed. F11 toggles fullscreen.

The window size comes from display.tile_size and display.scale.

Examples:
  tetrion gui
  tetrion gui --difficulty hard --fps 60`,
	Args: cobra.NoArgs,
	Run:  runGUI,
}

func init() {
	addAudioFlags(guiCmd)
}

func runGUI(_ *cobra.Command, _ []string) {
	logger, closeLog := mustLogger(false)
	defer closeLog()

	tetrisCfg := loadConfig(logger)
	player := startAudio(tetrisCfg.Audio, logger)
	defer player.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	err := gui.Run(gui.Options{
		Config: tetrisCfg,
		Runtime: core.RuntimeConfig{
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Sound:  player,
		Store:  store,
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
