package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetrion/internal/platform/tui"
	"github.com/vovakirdan/tetrion/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Default controls:
  A/Left, D/Right  - Move
  E/Up             - Rotate clockwise
  Q/Z              - Rotate counter-clockwise
  S/Down           - Fall faster while held
  Space            - Start, retry, hard drop
  P                - Pause
  Esc              - Quit
  Ctrl+S           - Save a screenshot
  ?                - Toggle full help

Keys are read from the terminal, which has no key-up events. A key counts
as held until no repeat arrives for input.terminal_hold_ms.

Difficulty options:
  easy   - Slowest start, gentle speed-up per level
  normal - Slowest start, speed_up_ms faster per level
  hard   - Start halfway to the fastest speed, double speed-up per level
  fixed  - No progression, stays at config's initial level

Examples:
  tetrion play
  tetrion play --difficulty easy
  tetrion play --mute
  tetrion play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addAudioFlags(playCmd)
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "tetris"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetrion list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog := mustLogger(true)
	defer closeLog()

	tetrisCfg := loadConfig(logger)
	player := startAudio(tetrisCfg.Audio, logger)
	defer player.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	game, err := registry.Create(gameID, tetrisCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting game", "game", gameID, "difficulty", flagDifficulty, "seed", flagSeed)
	err = tui.Run(game, runtimeConfig(), tui.Options{
		Store:  store,
		Logger: logger,
		Config: tetrisCfg,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
