package tetris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/core"
)

// State is the phase of the playfield state machine.
type State int

const (
	StateNotStarted State = iota
	StateNormal
	StateUpdatingRows
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateNormal:
		return "normal"
	case StateUpdatingRows:
		return "updating_rows"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Direction is a unit move.
type Direction int

const (
	DirDown Direction = iota
	DirLeft
	DirRight
)

func (d Direction) offset() core.Point {
	switch d {
	case DirDown:
		return core.Point{Y: 1}
	case DirLeft:
		return core.Point{X: -1}
	case DirRight:
		return core.Point{X: 1}
	default:
		panic(fmt.Sprintf("tetris: invalid direction %d", d))
	}
}

// Rules holds the tunable constants of the fall ticker and scoring.
// Intervals are in milliseconds.
type Rules struct {
	DefaultInterval int64 // upper clamp after a level-up
	MinInterval     int64
	StartInterval   int64 // interval at level 1
	FastFallDivisor int64
	SpeedUpStep     int64 // interval reduction per level; 0 keeps the speed fixed

	ScoreMove       int
	ScoreLanded     int
	ScoreRowDeleted int
	PointsPerLevel  int
}

// DefaultRules returns the classic values.
func DefaultRules() Rules {
	return RulesFromConfig(config.DefaultTetrisConfig())
}

// RulesFromConfig derives rules from a loaded configuration.
func RulesFromConfig(cfg config.TetrisConfig) Rules {
	dm := config.NewDifficultyManager(cfg.Timing, cfg.Difficulty)
	return Rules{
		DefaultInterval: int64(cfg.Timing.DefaultIntervalMs),
		MinInterval:     int64(cfg.Timing.MinIntervalMs),
		StartInterval:   dm.StartInterval(),
		FastFallDivisor: int64(cfg.Timing.FastFallDivisor),
		SpeedUpStep:     dm.SpeedUpStep(),
		ScoreMove:       cfg.Scoring.Move,
		ScoreLanded:     cfg.Scoring.Landed,
		ScoreRowDeleted: cfg.Scoring.RowDeleted,
		PointsPerLevel:  cfg.Scoring.PerLevel,
	}
}

// Options configures a Tetrion. Nil collaborators get no-op defaults.
type Options struct {
	Width, Height int
	Rand          *rand.Rand
	Clock         core.Clock
	Sound         Sound
	Notifier      Notifier
	Rules         Rules
}

// Tetrion is the playfield simulation: active and next piece, locked blocks,
// fall ticker, score and level.
type Tetrion struct {
	grid   *Grid
	rng    *rand.Rand
	clock  core.Clock
	sound  Sound
	notify Notifier
	rules  Rules

	piece Piece
	next  Piece

	ticker   core.Timer
	base     int64 // normal fall interval
	saved    int64 // interval restored when fast fall ends
	fastFall bool
	dropped  bool

	state State
	score int
	level int
	rows  int
}

// NewTetrion allocates the grid and resets the playfield.
func NewTetrion(opts Options) (*Tetrion, error) {
	if opts.Width == 0 && opts.Height == 0 {
		opts.Width, opts.Height = DefaultWidth, DefaultHeight
	}
	grid, err := NewGrid(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(0))
	}
	if opts.Clock == nil {
		opts.Clock = core.NewSystemClock()
	}
	if opts.Sound == nil {
		opts.Sound = NopSound{}
	}
	if opts.Notifier == nil {
		opts.Notifier = &HUD{}
	}
	if opts.Rules == (Rules{}) {
		opts.Rules = DefaultRules()
	}
	if opts.Rules.StartInterval <= 0 {
		opts.Rules.StartInterval = opts.Rules.DefaultInterval
	}
	if opts.Rules.PointsPerLevel <= 0 {
		opts.Rules.PointsPerLevel = 100
	}
	if opts.Rules.FastFallDivisor < 1 {
		opts.Rules.FastFallDivisor = 1
	}

	t := &Tetrion{
		grid:   grid,
		rng:    opts.Rand,
		clock:  opts.Clock,
		sound:  opts.Sound,
		notify: opts.Notifier,
		rules:  opts.Rules,
	}
	t.Reset()
	return t, nil
}

// Reset reinitialises score, level, pieces, grid and ticker and waits for
// the start input.
func (t *Tetrion) Reset() {
	t.score = 0
	t.level = 1
	t.rows = 0
	t.piece = randomPiece(t.rng, t.grid.Width())
	t.next = randomPiece(t.rng, t.grid.Width())
	t.base = t.rules.StartInterval
	t.saved = t.base
	t.fastFall = false
	t.ticker = core.NewTimer(t.clock, t.base)
	t.state = StateNotStarted
	t.dropped = false
	t.grid.Clear()

	t.notify.SetStats(t.score, t.level)
	t.notify.SetNextPiece(t.next)
	t.notify.HideOverlay(OverlayGameOver)
	t.notify.HideOverlay(OverlayRetryOrQuit)
	t.notify.ShowOverlay(OverlayPressSpace)
}

// Retry resets and starts immediately, skipping the start prompt.
func (t *Tetrion) Retry() {
	t.Reset()
	t.state = StateNormal
	t.notify.HideOverlay(OverlayPressSpace)
}

// Start leaves the start prompt.
func (t *Tetrion) Start() {
	if t.state != StateNotStarted {
		return
	}
	t.state = StateNormal
	t.ticker.Restart()
	t.notify.HideOverlay(OverlayPressSpace)
	t.sound.Play(SoundLevelUp)
}

// TryMove shifts the active piece one cell. On failure the position is unchanged.
func (t *Tetrion) TryMove(dir Direction) bool {
	old := t.piece.Pos
	t.piece.Pos = old.Add(dir.offset())
	if !t.grid.Fits(t.piece) {
		t.piece.Pos = old
		return false
	}
	t.sound.Play(SoundMove)
	return true
}

// Rotate turns the active piece, trying kick candidates cumulatively.
// If none fits the piece is restored exactly.
func (t *Tetrion) Rotate(dir Spin) bool {
	old := t.piece
	t.piece.rotate(dir)

	if !t.grid.Fits(t.piece) && !t.tryKicks() {
		t.piece = old
		return false
	}
	t.sound.Play(SoundRotate)
	return true
}

func (t *Tetrion) tryKicks() bool {
	for i := 0; i < kickCount; i++ {
		t.piece.Pos = t.piece.Pos.Add(t.piece.KickOffset(i))
		if t.grid.Fits(t.piece) {
			return true
		}
	}
	return false
}

// HardDrop moves the piece down until it rests. The next tick locks it.
func (t *Tetrion) HardDrop() {
	for i := 0; i < t.grid.Height()-1; i++ {
		if !t.TryMove(DirDown) {
			t.dropped = true
			t.ticker.Restart()
			return
		}
		t.AddScore(t.rules.ScoreMove)
	}
}

// AddScore adds points, levelling up when a level boundary is crossed.
func (t *Tetrion) AddScore(delta int) {
	per := t.rules.PointsPerLevel
	if t.score > 0 && (t.score+delta)/per >= t.score/per+1 {
		t.level++
		t.sound.Play(SoundLevelUp)

		t.base = core.Clamp(t.base-t.rules.SpeedUpStep, t.rules.MinInterval, t.rules.DefaultInterval)
		t.saved = t.base
		t.ticker.Interval = t.currentInterval()
	}

	t.score += delta
	t.notify.SetStats(t.score, t.level)
}

func (t *Tetrion) currentInterval() int64 {
	if t.fastFall {
		return max(t.base/t.rules.FastFallDivisor, 1)
	}
	return t.base
}

// FastFallOn speeds up the fall. No-op when already fast.
func (t *Tetrion) FastFallOn() {
	if t.fastFall {
		return
	}
	t.saved = t.base
	t.fastFall = true
	t.ticker.Interval = t.currentInterval()
	t.ticker.Restart()
}

// FastFallOff restores the saved interval.
func (t *Tetrion) FastFallOff() {
	t.fastFall = false
	t.base = t.saved
	t.ticker.Interval = t.base
	t.ticker.Restart()
}

// Pause freezes at normal speed so a held fast-fall does not survive the pause.
func (t *Tetrion) Pause() {
	t.FastFallOff()
}

// Resume restarts the ticker so paused time does not count as elapsed.
func (t *Tetrion) Resume() {
	t.ticker.Restart()
}

// Update advances the state machine when the ticker has elapsed.
func (t *Tetrion) Update() {
	switch t.state {
	case StateNormal:
		if t.ticker.Done() {
			t.doTick()
		}
	case StateUpdatingRows:
		if t.ticker.Done() {
			t.updateRows()
		}
	}
}

func (t *Tetrion) doTick() {
	if !t.grid.Fits(t.piece) {
		t.state = StateGameOver
		t.notify.ShowOverlay(OverlayGameOver)
		t.notify.ShowOverlay(OverlayRetryOrQuit)
		t.sound.Play(SoundGameOver)
		return
	}

	if t.TryMove(DirDown) {
		t.AddScore(t.rules.ScoreMove)
	} else {
		t.grid.Lock(t.piece)
		t.state = StateUpdatingRows

		t.piece = t.next
		t.next = randomPiece(t.rng, t.grid.Width())
		t.notify.SetNextPiece(t.next)

		if t.dropped {
			t.dropped = false
			t.sound.Play(SoundDrop)
		} else {
			t.sound.Play(SoundLanded)
		}
		t.AddScore(t.rules.ScoreLanded)
	}

	t.ticker.Restart()
}

func (t *Tetrion) updateRows() {
	row, ok := t.grid.FullRow()
	if !ok {
		t.state = StateNormal
		return
	}
	t.grid.DeleteRow(row)
	t.rows++
	t.sound.Play(SoundDeletedRow)
	t.AddScore(t.rules.ScoreRowDeleted)
	t.ticker.Restart()
}

// HandleInput applies one frame of input for the current state.
func (t *Tetrion) HandleInput(in core.InputFrame) {
	switch t.state {
	case StateGameOver:
		if in.Released(core.ActionConfirm) {
			t.Retry()
		}
	case StateNotStarted:
		if in.Released(core.ActionConfirm) {
			t.Start()
		}
	}

	if !t.Playing() {
		return
	}

	if in.Repeated(core.ActionMoveLeft) {
		t.TryMove(DirLeft)
	}
	if in.Repeated(core.ActionMoveRight) {
		t.TryMove(DirRight)
	}
	if in.Released(core.ActionRotateCW) {
		t.Rotate(SpinCW)
	}
	if in.Released(core.ActionRotateCCW) {
		t.Rotate(SpinCCW)
	}

	if in.Pressed(core.ActionFastFall) {
		t.FastFallOn()
	} else if in.Released(core.ActionFastFall) {
		t.FastFallOff()
	}

	if in.Pressed(core.ActionHardDrop) {
		t.HardDrop()
	}
}

// Playing reports whether the piece accepts movement input.
func (t *Tetrion) Playing() bool {
	return t.state == StateNormal || t.state == StateUpdatingRows
}

// State returns the state machine phase.
func (t *Tetrion) State() State { return t.state }

// Score returns the current score.
func (t *Tetrion) Score() int { return t.score }

// Level returns the current level, starting at 1.
func (t *Tetrion) Level() int { return t.level }

// RowsCleared returns the number of rows deleted since the last reset.
func (t *Tetrion) RowsCleared() int { return t.rows }

// Piece returns the active piece.
func (t *Tetrion) Piece() Piece { return t.piece }

// Next returns the preview piece.
func (t *Tetrion) Next() Piece { return t.next }

// Grid returns the playfield. Callers must not modify it.
func (t *Tetrion) Grid() *Grid { return t.grid }

// Interval returns the current fall interval in milliseconds.
func (t *Tetrion) Interval() int64 { return t.ticker.Interval }

// FastFalling reports whether fast fall is active.
func (t *Tetrion) FastFalling() bool { return t.fastFall }

// Ghost returns the active piece moved to its landing position.
func (t *Tetrion) Ghost() Piece {
	return t.grid.LandingPosition(t.piece)
}
