package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetrion/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Open the menu to start a game or browse high scores.

Navigation:
  Up/Down or W/S  - Move cursor
  Enter/Space     - Select
  Tab             - High scores
  Q/Ctrl+C        - Quit`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	addAudioFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := mustLogger(true)
	defer closeLog()

	tetrisCfg := loadConfig(logger)
	player := startAudio(tetrisCfg.Audio, logger)
	defer player.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	err := tui.RunSession(runtimeConfig(), tui.Options{
		Store:  store,
		Logger: logger,
		Config: tetrisCfg,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running menu: %v\n", err)
		os.Exit(1)
	}
}
