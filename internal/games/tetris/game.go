package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/core"
	"github.com/vovakirdan/tetrion/internal/registry"
)

// defaultSound is used by sessions created through the registry. The
// audio device is process-wide, so the sink is too.
var defaultSound Sound = NopSound{}

// SetSound sets the sound sink for sessions created after the call.
func SetSound(s Sound) {
	if s == nil {
		s = NopSound{}
	}
	defaultSound = s
}

func init() {
	registry.Register("tetris", func(cfg config.TetrisConfig) registry.Game {
		return New(cfg)
	})
}

// Session is one game: a Tetrion plus pause and quit orchestration.
type Session struct {
	width, height int
	sound         Sound
	hud           *HUD
	tetrion       *Tetrion
	cfg           config.TetrisConfig

	tick    uint64
	running bool
	paused  bool
	quit    bool

	screenW int
	screenH int
}

// New creates a session with the default playfield. Call Reset before use.
func New(tc config.TetrisConfig) *Session {
	tc.Validate()
	return &Session{
		width:  DefaultWidth,
		height: DefaultHeight,
		cfg:    tc,
	}
}

// NewSession creates a session with a custom playfield size and sound sink
// and resets it. The grid size is validated here so Reset cannot fail.
func NewSession(width, height int, tc config.TetrisConfig, sound Sound, cfg core.RuntimeConfig) (*Session, error) {
	if _, err := NewGrid(width, height); err != nil {
		return nil, err
	}
	tc.Validate()
	s := &Session{
		width:  width,
		height: height,
		sound:  sound,
		cfg:    tc,
	}
	s.Reset(cfg)
	return s, nil
}

// ID returns the game identifier.
func (s *Session) ID() string {
	return "tetris"
}

// Title returns the display name.
func (s *Session) Title() string {
	return "Tetrion"
}

// Reset starts a fresh playfield at the start prompt.
func (s *Session) Reset(cfg core.RuntimeConfig) {
	sound := s.sound
	if sound == nil {
		sound = defaultSound
	}

	s.hud = &HUD{}
	t, err := NewTetrion(Options{
		Width:    s.width,
		Height:   s.height,
		Rand:     rand.New(rand.NewSource(cfg.Seed)),
		Clock:    cfg.ClockOrDefault(),
		Sound:    sound,
		Notifier: s.hud,
		Rules:    RulesFromConfig(s.cfg),
	})
	if err != nil {
		// Sizes are validated by New and NewSession.
		panic(err)
	}
	s.tetrion = t

	s.tick = 0
	s.running = true
	s.paused = false
	s.quit = false
	s.screenW = cfg.ScreenW
	s.screenH = cfg.ScreenH
}

// Step handles one frame of input and advances the playfield.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	s.tick++

	if s.running {
		s.tetrion.HandleInput(in)
	}

	if in.Released(core.ActionPause) && (s.running || s.paused) && s.tetrion.Playing() {
		s.togglePause()
	}

	if in.Released(core.ActionQuit) {
		s.running = false
		s.quit = true
	}

	if s.running {
		s.tetrion.Update()
	}

	return core.StepResult{State: s.State()}
}

func (s *Session) togglePause() {
	if s.running {
		s.running = false
		s.paused = true
		s.hud.ShowOverlay(OverlayPaused)
		s.tetrion.Pause()
	} else {
		s.running = true
		s.paused = false
		s.hud.HideOverlay(OverlayPaused)
		s.tetrion.Resume()
	}
	s.tetrion.sound.Play(SoundLevelUp)
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    s.tetrion.Score(),
		Level:    s.tetrion.Level(),
		Rows:     s.tetrion.RowsCleared(),
		GameOver: s.tetrion.State() == StateGameOver,
		Paused:   s.paused,
		Quit:     s.quit,
	}
}

// Tetrion returns the playfield.
func (s *Session) Tetrion() *Tetrion { return s.tetrion }

// HUD returns the UI state fed by the playfield.
func (s *Session) HUD() *HUD { return s.hud }

// Config returns the configuration loaded on the last Reset.
func (s *Session) Config() config.TetrisConfig { return s.cfg }

// Paused reports whether the session is paused.
func (s *Session) Paused() bool { return s.paused }
