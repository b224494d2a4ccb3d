package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetrion/internal/core"
)

func TestResetState(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, StateNotStarted, f.t.State())
	assert.Equal(t, 0, f.t.Score())
	assert.Equal(t, 1, f.t.Level())
	assert.Equal(t, int64(350), f.t.Interval())
	assert.Equal(t, core.Point{X: 4, Y: 0}, f.t.Piece().Pos)
	assert.True(t, f.hud.Visible(OverlayPressSpace))
	assert.True(t, f.hud.HasNext)
	assert.Equal(t, f.t.Next(), f.hud.Next)
}

func TestNewTetrionInvalidSize(t *testing.T) {
	_, err := NewTetrion(Options{Width: 2, Height: 21})
	assert.ErrorIs(t, err, ErrInvalidGridSize)
}

func TestTryMove(t *testing.T) {
	f := newFixture(t)
	f.place(KindT, 4, 5)

	tests := []struct {
		dir  Direction
		want core.Point
	}{
		{DirLeft, core.Point{X: 3, Y: 5}},
		{DirRight, core.Point{X: 4, Y: 5}},
		{DirDown, core.Point{X: 4, Y: 6}},
	}
	for _, tc := range tests {
		require.True(t, f.t.TryMove(tc.dir))
		assert.Equal(t, tc.want, f.t.Piece().Pos)
		assert.Equal(t, SoundMove, f.sound.last())
	}
}

func TestTryMoveFailureLeavesPieceUnchanged(t *testing.T) {
	f := newFixture(t)
	// T rotation 0 occupies columns x..x+2; x=1 touches the left wall.
	f.place(KindT, 1, 3)
	before := f.t.Piece()
	played := len(f.sound.played)

	assert.False(t, f.t.TryMove(DirLeft))
	assert.Equal(t, before, f.t.Piece())
	assert.Len(t, f.sound.played, played, "failed move plays nothing")
}

func TestTryMoveInvalidDirectionPanics(t *testing.T) {
	f := newFixture(t)
	assert.Panics(t, func() { f.t.TryMove(Direction(9)) })
}

func TestRotateWithoutKick(t *testing.T) {
	f := newFixture(t)
	f.place(KindT, 4, 5)

	require.True(t, f.t.Rotate(SpinCW))
	assert.Equal(t, 1, f.t.Piece().Rotation)
	assert.Equal(t, core.Point{X: 4, Y: 5}, f.t.Piece().Pos)
	assert.Equal(t, SoundRotate, f.sound.last())
}

func TestRotateKicksAccumulate(t *testing.T) {
	f := newFixture(t)
	g := f.t.Grid()
	f.place(KindI, 4, 5)

	// I rotation 1 is column x+2. Block it in place, and block the column
	// the first kick lands on, so only the third candidate fits.
	g.Set(6, 7, TileRed)
	g.Set(4, 8, TileRed)

	require.True(t, f.t.Rotate(SpinCW))
	p := f.t.Piece()
	assert.Equal(t, 1, p.Rotation)
	// Candidates (0,0), (-2,0), (1,0) applied cumulatively: x = 4-2+1.
	assert.Equal(t, core.Point{X: 3, Y: 5}, p.Pos)
	assert.True(t, g.Fits(p))
}

func TestRotateFailureIsIdempotent(t *testing.T) {
	f := newFixture(t)
	g := f.t.Grid()
	f.place(KindI, 3, 8)

	// Wall the piece in: every interior cell except its own is a block.
	own := map[core.Point]bool{}
	for _, c := range f.t.Piece().Cells() {
		own[c] = true
	}
	for y := 0; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			if !own[core.Point{X: x, Y: y}] {
				g.Set(x, y, TileRed)
			}
		}
	}

	before := f.t.Piece()
	played := len(f.sound.played)

	for _, dir := range []Spin{SpinCW, SpinCCW} {
		assert.False(t, f.t.Rotate(dir))
		assert.Equal(t, before, f.t.Piece())
	}
	assert.Len(t, f.sound.played, played)
}

func TestAddScoreLevels(t *testing.T) {
	f := newFixture(t)

	f.t.AddScore(100)
	assert.Equal(t, 1, f.t.Level(), "no level-up while score was zero")
	assert.Equal(t, 100, f.t.Score())

	f.t.AddScore(50)
	assert.Equal(t, 1, f.t.Level())

	f.t.AddScore(50)
	assert.Equal(t, 2, f.t.Level())
	assert.Equal(t, int64(345), f.t.Interval())
	assert.Equal(t, SoundLevelUp, f.sound.last())

	f.t.AddScore(100)
	assert.Equal(t, 3, f.t.Level())
	assert.Equal(t, int64(340), f.t.Interval())

	assert.Equal(t, 300, f.hud.Score)
	assert.Equal(t, 3, f.hud.Level)
}

func TestAddScoreOneLevelPerCrossing(t *testing.T) {
	f := newFixture(t)
	f.t.AddScore(1)

	for i := 0; i < 120; i++ {
		prevLevel := f.t.Level()
		f.t.AddScore(100)
		assert.Equal(t, prevLevel+1, f.t.Level())

		iv := f.t.Interval()
		assert.GreaterOrEqual(t, iv, int64(50))
		assert.LessOrEqual(t, iv, int64(350))
	}
	assert.Equal(t, int64(50), f.t.Interval())
}

func TestFastFallRestoresInterval(t *testing.T) {
	f := newFixture(t)
	f.start()

	f.t.FastFallOn()
	assert.Equal(t, int64(70), f.t.Interval())
	f.t.FastFallOn()
	assert.Equal(t, int64(70), f.t.Interval(), "second press does not divide again")

	f.t.FastFallOff()
	assert.Equal(t, int64(350), f.t.Interval())
}

func TestFastFallAcrossLevelUp(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.t.AddScore(99)

	f.t.FastFallOn()
	f.t.AddScore(1)
	require.Equal(t, 2, f.t.Level())
	assert.Equal(t, int64(69), f.t.Interval(), "fast fall follows the new base")

	f.t.FastFallOff()
	assert.Equal(t, int64(345), f.t.Interval(), "release restores the levelled-up interval")
}

func TestStartPrompt(t *testing.T) {
	f := newFixture(t)

	f.t.HandleInput(frame(func(in *core.InputFrame) { in.Press(core.ActionConfirm) }))
	assert.Equal(t, StateNotStarted, f.t.State(), "start fires on release")

	f.t.HandleInput(frame(func(in *core.InputFrame) { in.Release(core.ActionConfirm) }))
	assert.Equal(t, StateNormal, f.t.State())
	assert.False(t, f.hud.Visible(OverlayPressSpace))
	assert.Equal(t, SoundLevelUp, f.sound.last())
}

func TestInputIgnoredBeforeStart(t *testing.T) {
	f := newFixture(t)
	before := f.t.Piece()

	f.t.HandleInput(frame(func(in *core.InputFrame) {
		in.Repeat(core.ActionMoveLeft)
		in.Press(core.ActionHardDrop)
	}))
	f.tick()

	assert.Equal(t, before, f.t.Piece())
	assert.Equal(t, 0, f.t.Score())
}

func TestHandleInputMovesAndRotates(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.place(KindT, 4, 5)

	f.t.HandleInput(frame(func(in *core.InputFrame) { in.Repeat(core.ActionMoveRight) }))
	assert.Equal(t, 5, f.t.Piece().Pos.X)

	f.t.HandleInput(frame(func(in *core.InputFrame) { in.Press(core.ActionRotateCW) }))
	assert.Equal(t, 0, f.t.Piece().Rotation, "rotation fires on release")

	f.t.HandleInput(frame(func(in *core.InputFrame) { in.Release(core.ActionRotateCW) }))
	assert.Equal(t, 1, f.t.Piece().Rotation)

	f.t.HandleInput(frame(func(in *core.InputFrame) { in.Release(core.ActionRotateCCW) }))
	assert.Equal(t, 0, f.t.Piece().Rotation)

	f.t.HandleInput(frame(func(in *core.InputFrame) { in.Press(core.ActionFastFall) }))
	assert.True(t, f.t.FastFalling())
	f.t.HandleInput(frame(func(in *core.InputFrame) { in.Release(core.ActionFastFall) }))
	assert.False(t, f.t.FastFalling())
}

func TestOPieceFallsToFloorAndLocks(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.place(KindO, (DefaultWidth-4)/2, 0)

	for i := 0; i < 18; i++ {
		require.True(t, f.t.TryMove(DirDown), "step %d", i)
	}
	assert.False(t, f.t.TryMove(DirDown))
	assert.Equal(t, 18, f.t.Piece().Pos.Y)

	next := f.t.Next()
	f.tick()

	g := f.t.Grid()
	for _, c := range []core.Point{{X: 5, Y: 18}, {X: 6, Y: 18}, {X: 5, Y: 19}, {X: 6, Y: 19}} {
		assert.Equal(t, TileYellow, g.At(c.X, c.Y), "%v", c)
	}
	assert.Equal(t, StateUpdatingRows, f.t.State())
	assert.Equal(t, next, f.t.Piece(), "next piece is promoted")
	assert.Equal(t, f.t.Next(), f.hud.Next)
	assert.Equal(t, SoundLanded, f.sound.last())
	assert.Equal(t, 2, f.t.Score())
}

func TestTickMovesDown(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.place(KindT, 4, 0)

	f.clock.Advance(349 * time.Millisecond)
	f.t.Update()
	assert.Equal(t, 0, f.t.Piece().Pos.Y, "not yet due")

	f.clock.Advance(time.Millisecond)
	f.t.Update()
	assert.Equal(t, 1, f.t.Piece().Pos.Y)
	assert.Equal(t, 1, f.t.Score())
}

func TestHardDrop(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.place(KindO, 4, 0)

	f.t.HandleInput(frame(func(in *core.InputFrame) { in.Press(core.ActionHardDrop) }))
	assert.Equal(t, 18, f.t.Piece().Pos.Y)
	assert.Equal(t, 18, f.t.Score())
	assert.Equal(t, StateNormal, f.t.State(), "locking waits for the next tick")

	f.tick()
	assert.Equal(t, StateUpdatingRows, f.t.State())
	assert.Equal(t, SoundDrop, f.sound.last())
	assert.Equal(t, 0, f.sound.count(SoundLanded))
	assert.False(t, f.t.dropped)
}

func TestRowClearOnePerUpdate(t *testing.T) {
	f := newFixture(t)
	g := f.t.Grid()

	fillRow(g, 19, TileBlue)
	fillRow(g, 18, TileRed)
	g.Set(3, 17, TileGreen)
	f.t.state = StateUpdatingRows
	f.t.ticker.Restart()

	f.tick()
	assert.Equal(t, 1, f.t.RowsCleared())
	assert.Equal(t, StateUpdatingRows, f.t.State())
	assert.Equal(t, TileGreen, g.At(3, 18), "rows above shift down by one")
	assert.Equal(t, TileBlue, g.At(1, 19), "lower full row waits for the next update")
	assert.Equal(t, SoundDeletedRow, f.sound.last())
	assert.Equal(t, 10, f.t.Score())

	f.tick()
	assert.Equal(t, 2, f.t.RowsCleared())
	assert.Equal(t, TileGreen, g.At(3, 19))

	f.tick()
	assert.Equal(t, 2, f.t.RowsCleared())
	assert.Equal(t, StateNormal, f.t.State())
}

func TestEmptyBoardClearsNothing(t *testing.T) {
	f := newFixture(t)
	before := f.t.Grid().String()

	for i := 0; i < 5; i++ {
		f.t.state = StateUpdatingRows
		f.tick()
		assert.Equal(t, StateNormal, f.t.State())
	}
	assert.Equal(t, 0, f.t.RowsCleared())
	assert.Equal(t, before, f.t.Grid().String())
	assert.Equal(t, 0, f.t.Score())
}

func TestGameOverWhenSpawnBlocked(t *testing.T) {
	f := newFixture(t)
	f.start()
	g := f.t.Grid()
	fillRow(g, 0, TileRed)
	fillRow(g, 1, TileRed)

	f.tick()
	require.Equal(t, StateGameOver, f.t.State())
	assert.Equal(t, SoundGameOver, f.sound.last())
	assert.True(t, f.hud.Visible(OverlayGameOver))
	assert.True(t, f.hud.Visible(OverlayRetryOrQuit))

	score, piece, board := f.t.Score(), f.t.Piece(), g.String()
	for i := 0; i < 5; i++ {
		f.t.HandleInput(frame(func(in *core.InputFrame) {
			in.Repeat(core.ActionMoveLeft)
			in.Press(core.ActionHardDrop)
			in.Release(core.ActionRotateCW)
		}))
		f.tick()
	}
	assert.Equal(t, score, f.t.Score())
	assert.Equal(t, piece, f.t.Piece())
	assert.Equal(t, board, g.String())
}

func TestRetryAfterGameOver(t *testing.T) {
	f := newFixture(t)
	f.start()
	fillRow(f.t.Grid(), 0, TileRed)
	fillRow(f.t.Grid(), 1, TileRed)
	f.t.AddScore(42)
	f.tick()
	require.Equal(t, StateGameOver, f.t.State())

	f.t.HandleInput(frame(func(in *core.InputFrame) { in.Release(core.ActionConfirm) }))

	assert.Equal(t, StateNormal, f.t.State())
	assert.Equal(t, 0, f.t.Score())
	assert.Equal(t, 1, f.t.Level())
	assert.False(t, f.hud.Visible(OverlayGameOver))
	assert.False(t, f.hud.Visible(OverlayRetryOrQuit))
	assert.False(t, f.hud.Visible(OverlayPressSpace))
	assert.Equal(t, TileBackground, f.t.Grid().At(3, 0))
}

func TestPauseRestoresNormalSpeed(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.t.FastFallOn()

	f.t.Pause()
	assert.False(t, f.t.FastFalling())
	assert.Equal(t, int64(350), f.t.Interval())
}

func TestGhostAtLandingPosition(t *testing.T) {
	f := newFixture(t)
	f.place(KindO, 4, 0)
	assert.Equal(t, 18, f.t.Ghost().Pos.Y)
	assert.Equal(t, 0, f.t.Piece().Pos.Y)
}
