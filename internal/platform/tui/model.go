package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/core"
	"github.com/vovakirdan/tetrion/internal/registry"
	"github.com/vovakirdan/tetrion/internal/storage"
)

// Options configures a game model.
type Options struct {
	Store  *storage.Store
	Logger *log.Logger

	// Player is recorded with saved scores (the SSH user name).
	Player string

	// Config builds games and supplies keymap and input timing. The zero
	// value means config.DefaultTetrisConfig().
	Config config.TetrisConfig

	// ScreenshotDir defaults to ~/.arcade/screenshots.
	ScreenshotDir string
}

func (o Options) gameConfig() config.TetrisConfig {
	if o.Config.Keymap == nil {
		return config.DefaultTetrisConfig()
	}
	return o.Config
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	player    string
	shotDir   string
	keys      *KeyMapper
	holds     *HoldTracker
	keyboard  *core.Keyboard
	help      help.Model
	helpKeys  GameKeyMap
	gameState core.GameState

	embedded   bool // owned by a SessionModel; leaving returns to its menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Clock == nil {
		cfg.Clock = core.NewSystemClock()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	tc := opts.gameConfig()
	keys, err := NewKeyMapper(tc.Keymap)
	if err != nil {
		return Model{}, err
	}

	in := tc.Input
	def := config.DefaultTetrisConfig().Input
	if in.RepeatDelayMs <= 0 || in.RepeatIntervalMs <= 0 || in.TerminalHoldMs <= 0 || in.TerminalFirstHoldMs <= 0 {
		in = def
	}

	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			shotDir = filepath.Join(home, ".arcade", "screenshots")
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, boardHeight(cfg.ScreenH)),
		store:    opts.Store,
		logger:   logger,
		config:   cfg,
		player:   opts.Player,
		shotDir:  shotDir,
		keys:     keys,
		holds:    NewHoldTracker(cfg.Clock, int64(in.TerminalFirstHoldMs), int64(in.TerminalHoldMs)),
		keyboard: core.NewKeyboard(cfg.Clock, int64(in.RepeatDelayMs), int64(in.RepeatIntervalMs)),
		help:     h,
		helpKeys: keys.HelpKeys(),
	}, nil
}

// boardHeight leaves the bottom line for help.
func boardHeight(screenH int) int {
	if screenH <= 1 {
		return screenH
	}
	return screenH - 1
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records key events; the next tick turns them into input edges.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	for _, a := range m.keys.MapKey(msg) {
		m.holds.Touch(a)
	}
	return m, nil
}

// handleResize processes window resize events. The board is centered on
// every render, so the running game is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, boardHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	frame := m.keyboard.Update(m.holds.Held)
	result := m.game.Step(frame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.saveScore()
	} else {
		// Retried: the next game over is a new result.
		m.scoreSaved = false
	}

	if m.gameState.Quit {
		m.saveScore()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore stores the current result once per game.
func (m *Model) saveScore() {
	if m.scoreSaved || m.gameState.Score <= 0 {
		return
	}
	m.scoreSaved = true
	if m.store == nil {
		return
	}

	_, err := m.store.SaveScore(m.game.ID(), storage.Result{
		Player: m.player,
		Score:  m.gameState.Score,
		Level:  m.gameState.Level,
		Rows:   m.gameState.Rows,
	})
	if err != nil {
		m.logger.Warn("could not save score", "error", err)
		return
	}
	m.logger.Info("score saved", "player", m.player, "score", m.gameState.Score, "level", m.gameState.Level)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	path, err := m.Screenshot()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// Screenshot renders the game and writes it as plain text under the
// screenshot directory. It returns the file path.
func (m *Model) Screenshot() (string, error) {
	if m.shotDir == "" {
		return "", fmt.Errorf("tui: screenshot: no directory")
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", fmt.Errorf("tui: screenshot: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405.000")
	path := filepath.Join(m.shotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("tui: screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + StyleFor(core.ColorGray).Render(m.help.View(m.helpKeys))
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game and blocks until it exits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model, err := NewModel(game, cfg, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
