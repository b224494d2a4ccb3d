// tetrion is a falling-block puzzle game for the terminal and the desktop.
//
// Usage:
//
//	tetrion play             - Play in the terminal
//	tetrion gui              - Play in a desktop window
//	tetrion menu             - Start menu with game and high scores
//	tetrion serve            - Start SSH server for remote play
//	tetrion scores           - Show high scores
//	tetrion config           - Print the effective configuration
//	tetrion list             - List available games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetrion/internal/config"
	_ "github.com/vovakirdan/tetrion/internal/games/tetris" // registers "tetris"
	"github.com/vovakirdan/tetrion/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetrion",
	Short: "Tetrion - falling blocks in your terminal",
	Long: `Tetrion is a falling-block puzzle game. Play it in the terminal,
in a desktop window, or host it over SSH.

Available commands:
  play     - Play in the terminal
  gui      - Play in a desktop window
  menu     - Interactive menu with high scores
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the effective configuration
  list     - Show all available games

Examples:
  tetrion play
  tetrion play --difficulty hard
  tetrion gui --config ./my-tetris.yaml
  tetrion serve --ssh :2222
  tetrion scores --player ana`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		_, err := config.ParsePreset(flagDifficulty)
		return err
	},
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
