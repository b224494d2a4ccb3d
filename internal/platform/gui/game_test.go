package gui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/core"
	"github.com/vovakirdan/tetrion/internal/games/tetris"
	"github.com/vovakirdan/tetrion/internal/storage"
)

type fakeKeys map[ebiten.Key]bool

func (f fakeKeys) pressed(k ebiten.Key) bool { return f[k] }

func newTestGame(t *testing.T, store *storage.Store) (*Game, *core.ManualClock, fakeKeys) {
	t.Helper()
	clock := core.NewManualClock(0)
	g, err := NewGame(Options{
		Config:  config.DefaultTetrisConfig(),
		Runtime: core.RuntimeConfig{TickRate: 60, Seed: 3, Clock: clock},
		Store:   store,
	})
	require.NoError(t, err)
	keys := fakeKeys{}
	g.pressed = keys.pressed
	return g, clock, keys
}

func TestKeyByName(t *testing.T) {
	k, ok := KeyByName("a")
	assert.True(t, ok)
	assert.Equal(t, ebiten.KeyA, k)

	k, ok = KeyByName("7")
	assert.True(t, ok)
	assert.Equal(t, ebiten.KeyDigit7, k)

	k, ok = KeyByName("esc")
	assert.True(t, ok)
	assert.Equal(t, ebiten.KeyEscape, k)

	_, ok = KeyByName("ctrl+c")
	assert.False(t, ok)
}

func TestResolveKeysDefaults(t *testing.T) {
	b, unknown, err := ResolveKeys(nil)
	require.NoError(t, err)
	assert.Empty(t, unknown)

	assert.ElementsMatch(t, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, b[core.ActionMoveLeft])
	assert.ElementsMatch(t, []ebiten.Key{ebiten.KeySpace}, b[core.ActionHardDrop])
	assert.ElementsMatch(t, []ebiten.Key{ebiten.KeySpace}, b[core.ActionConfirm])
	assert.ElementsMatch(t, []ebiten.Key{ebiten.KeyEscape}, b[core.ActionQuit])
}

func TestResolveKeysUnknown(t *testing.T) {
	b, unknown, err := ResolveKeys(config.KeymapConfig{"quit": {"esc", "ctrl+c", "pgup"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl+c", "pgup"}, unknown)
	assert.Equal(t, []ebiten.Key{ebiten.KeyEscape}, b[core.ActionQuit])

	_, _, err = ResolveKeys(config.KeymapConfig{"warp": {"w"}})
	assert.Error(t, err)
}

func TestKeyBindingsHeld(t *testing.T) {
	b := KeyBindings{core.ActionMoveLeft: {ebiten.KeyA, ebiten.KeyArrowLeft}}
	keys := fakeKeys{ebiten.KeyArrowLeft: true}

	assert.True(t, b.Held(core.ActionMoveLeft, keys.pressed))
	assert.False(t, b.Held(core.ActionMoveRight, keys.pressed))
}

func TestTileColor(t *testing.T) {
	assert.Equal(t, palette[core.ColorCyan], TileColor(tetris.TileCyan))
	assert.Equal(t, palette[core.ColorGray], TileColor(tetris.TileWall))
	assert.NotEqual(t, TileColor(tetris.TileRed), TileColor(tetris.TileGreen))
}

func TestNewGameLayout(t *testing.T) {
	g, _, _ := newTestGame(t, nil)
	ts := config.DefaultTetrisConfig().Display.TileSize

	w, h := g.Layout(1, 1)
	assert.Equal(t, (tetris.DefaultWidth+1+hudWidth)*ts, w)
	assert.Equal(t, tetris.DefaultHeight*ts, h)
	assert.Equal(t, (tetris.DefaultWidth+1)*ts, g.layout.PreviewX)
}

func TestGameStartsAndMoves(t *testing.T) {
	g, clock, keys := newTestGame(t, nil)

	keys[ebiten.KeySpace] = true
	require.NoError(t, g.Update())
	keys[ebiten.KeySpace] = false
	require.NoError(t, g.Update())
	require.True(t, g.Session().Tetrion().Playing())

	x := g.Session().Tetrion().Piece().Pos.X
	keys[ebiten.KeyArrowRight] = true
	require.NoError(t, g.Update())
	assert.Equal(t, x+1, g.Session().Tetrion().Piece().Pos.X)

	// Held keys auto-repeat after the delay.
	clock.Advance(200 * time.Millisecond)
	require.NoError(t, g.Update())
	assert.Equal(t, x+2, g.Session().Tetrion().Piece().Pos.X)
}

func TestGameQuitTerminates(t *testing.T) {
	g, _, keys := newTestGame(t, nil)

	keys[ebiten.KeyEscape] = true
	require.NoError(t, g.Update())
	keys[ebiten.KeyEscape] = false
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
}

func TestGameSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	g, _, _ := newTestGame(t, store)
	st := core.GameState{Score: 50, Level: 1, Rows: 2, GameOver: true}
	g.saveScore(st)
	g.saveScore(st)

	scores, err := store.TopScores("tetris", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 2, scores[0].Rows)
}

func TestHUDLines(t *testing.T) {
	g, _, _ := newTestGame(t, nil)
	lines := g.HUDLines()
	assert.Equal(t, "SCORE 0", lines[0])
	assert.Equal(t, "LEVEL 1", lines[1])
}
