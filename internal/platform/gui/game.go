// Package gui runs Tetrion in a desktop window with ebiten.
package gui

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/core"
	"github.com/vovakirdan/tetrion/internal/games/tetris"
	"github.com/vovakirdan/tetrion/internal/storage"
)

// Options configures the desktop game.
type Options struct {
	Config  config.TetrisConfig
	Runtime core.RuntimeConfig
	Sound   tetris.Sound
	Store   *storage.Store
	Logger  *log.Logger
}

// palette maps core colors to window colors.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault:  {0, 0, 0, 255},
	core.ColorRed:      {230, 60, 60, 255},
	core.ColorOrange:   {240, 150, 40, 255},
	core.ColorYellow:   {240, 220, 60, 255},
	core.ColorGreen:    {80, 200, 90, 255},
	core.ColorBlue:     {60, 100, 230, 255},
	core.ColorCyan:     {60, 210, 230, 255},
	core.ColorMagenta:  {170, 80, 210, 255},
	core.ColorWhite:    {235, 235, 235, 255},
	core.ColorGray:     {120, 120, 130, 255},
	core.ColorDarkGray: {30, 30, 38, 255},
}

// TileColor returns the fill color for a tile.
func TileColor(t tetris.Tile) color.RGBA {
	if c, ok := palette[t.Color()]; ok {
		return c
	}
	return palette[core.ColorDefault]
}

// imageSurface draws tiles as filled squares.
type imageSurface struct {
	dst  *ebiten.Image
	size float32
}

func (s imageSurface) DrawTile(t tetris.Tile, x, y int) {
	c := TileColor(t)
	if t == tetris.TileGhost {
		c.A = 110
	}
	vector.DrawFilledRect(s.dst, float32(x)+1, float32(y)+1, s.size-2, s.size-2, c, false)
}

// Game implements ebiten.Game.
type Game struct {
	session  *tetris.Session
	keyboard *core.Keyboard
	keys     KeyBindings
	layout   tetris.Layout
	width    int
	height   int
	store    *storage.Store
	logger   *log.Logger

	// pressed samples a key; tests replace it.
	pressed func(ebiten.Key) bool

	scoreSaved bool
}

// hudWidth is the number of tiles reserved right of the board for text.
const hudWidth = 7

// NewGame builds a session and the input and layout state around it.
func NewGame(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.Clock == nil {
		rt.Clock = core.NewSystemClock()
	}

	keys, unknown, err := ResolveKeys(opts.Config.Keymap)
	if err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		logger.Warn("ignoring keys with no desktop equivalent", "keys", unknown)
	}

	sound := opts.Sound
	if sound == nil {
		sound = tetris.NopSound{}
	}
	session, err := tetris.NewSession(tetris.DefaultWidth, tetris.DefaultHeight, opts.Config, sound, rt)
	if err != nil {
		return nil, fmt.Errorf("gui: %w", err)
	}

	tile := opts.Config.Display.TileSize
	if tile <= 0 {
		tile = config.DefaultTetrisConfig().Display.TileSize
	}
	in := opts.Config.Input
	if in.RepeatDelayMs <= 0 || in.RepeatIntervalMs <= 0 {
		in = config.DefaultTetrisConfig().Input
	}

	boardW := session.Tetrion().Grid().Width()
	boardH := session.Tetrion().Grid().Height()

	return &Game{
		session:  session,
		keyboard: core.NewKeyboard(rt.Clock, int64(in.RepeatDelayMs), int64(in.RepeatIntervalMs)),
		keys:     keys,
		layout:   tetris.NewLayout(tile, boardW),
		width:    (boardW + 1 + hudWidth) * tile,
		height:   boardH * tile,
		store:    opts.Store,
		logger:   logger,
		pressed:  ebiten.IsKeyPressed,
	}, nil
}

// Update advances one frame. It returns ebiten.Termination when the player quits.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	frame := g.keyboard.Update(func(a core.Action) bool {
		return g.keys.Held(a, g.pressed)
	})
	st := g.session.Step(frame).State

	if st.GameOver {
		g.saveScore(st)
	} else {
		g.scoreSaved = false
	}

	if st.Quit {
		g.saveScore(st)
		return ebiten.Termination
	}
	return nil
}

func (g *Game) saveScore(st core.GameState) {
	if g.scoreSaved || st.Score <= 0 {
		return
	}
	g.scoreSaved = true
	if g.store == nil {
		return
	}
	_, err := g.store.SaveScore(g.session.ID(), storage.Result{Score: st.Score, Level: st.Level, Rows: st.Rows})
	if err != nil {
		g.logger.Warn("could not save score", "error", err)
	}
}

// Draw renders the board, preview and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(palette[core.ColorDefault])
	g.session.Draw(imageSurface{dst: screen, size: float32(g.layout.TileSize)}, g.layout)

	ts := g.layout.TileSize
	x := g.layout.PreviewX
	y := g.layout.PreviewY + 5*ts
	for i, line := range g.HUDLines() {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*16)
	}

	overlayY := g.height / 2
	for i, o := range g.session.HUD().VisibleOverlays() {
		ebitenutil.DebugPrintAt(screen, o.Text(), ts*2, overlayY+i*20)
	}
}

// HUDLines returns the text panel drawn next to the board.
func (g *Game) HUDLines() []string {
	st := g.session.State()
	return []string{
		fmt.Sprintf("SCORE %d", st.Score),
		fmt.Sprintf("LEVEL %d", st.Level),
		fmt.Sprintf("ROWS  %d", st.Rows),
		"",
		"F11 fullscreen",
	}
}

// Layout reports the fixed logical screen size; ebiten scales the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Session returns the running session.
func (g *Game) Session() *tetris.Session {
	return g.session
}

// Run opens the window and blocks until it closes.
func Run(opts Options) error {
	g, err := NewGame(opts)
	if err != nil {
		return err
	}

	scale := opts.Config.Display.Scale
	if scale <= 0 {
		scale = 1
	}
	tps := opts.Runtime.TickRate
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}

	ebiten.SetWindowSize(g.width*scale, g.height*scale)
	ebiten.SetWindowTitle(g.session.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}
