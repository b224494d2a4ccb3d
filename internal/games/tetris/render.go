package tetris

import (
	"fmt"

	"github.com/vovakirdan/tetrion/internal/core"
)

// Surface draws fixed-size tiles at pixel coordinates.
type Surface interface {
	DrawTile(t Tile, x, y int)
}

// Layout places the playfield and preview on a pixel surface.
type Layout struct {
	TileSize int
	BoardX   int // pixel origin of the playfield
	BoardY   int
	PreviewX int // pixel origin of the next-piece box
	PreviewY int
}

// NewLayout puts the preview to the right of a board of the given width.
func NewLayout(tileSize, boardWidth int) Layout {
	return Layout{
		TileSize: tileSize,
		PreviewX: (boardWidth + 1) * tileSize,
		PreviewY: tileSize,
	}
}

// Draw renders the playfield, ghost, active piece and preview.
func (s *Session) Draw(dst Surface, l Layout) {
	t := s.tetrion
	g := t.grid
	ts := l.TileSize

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			dst.DrawTile(g.At(x, y), l.BoardX+x*ts, l.BoardY+y*ts)
		}
	}

	if t.Playing() {
		for _, c := range t.Ghost().Cells() {
			dst.DrawTile(TileGhost, l.BoardX+c.X*ts, l.BoardY+c.Y*ts)
		}
	}
	if t.State() != StateNotStarted {
		for _, c := range t.piece.Cells() {
			dst.DrawTile(t.piece.Tile, l.BoardX+c.X*ts, l.BoardY+c.Y*ts)
		}
	}

	if s.hud.HasNext {
		next := s.hud.Next
		next.Pos = core.Point{}
		for _, c := range next.Cells() {
			dst.DrawTile(next.Tile, l.PreviewX+c.X*ts, l.PreviewY+c.Y*ts)
		}
	}
}

// Terminal layout: every tile is two columns wide.
const (
	cellW      = 2
	panelW     = 16
	panelGap   = 2
	previewBox = pieceSize*cellW + 2
)

// Render draws the game into a character screen.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	g := s.tetrion.grid
	boardW := g.Width() * cellW
	totalW := boardW + panelGap + panelW
	totalH := g.Height()

	if dst.Width() < totalW || dst.Height() < totalH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorYellow)
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("need %dx%d", totalW, totalH), core.ColorGray)
		return
	}

	ox := (dst.Width() - totalW) / 2
	oy := (dst.Height() - totalH) / 2

	s.renderBoard(dst, ox, oy)
	s.renderPanel(dst, ox+boardW+panelGap, oy)
	s.renderOverlays(dst, ox, oy, boardW)
}

func drawTile(dst *core.Screen, t Tile, x, y int) {
	c := t.Color()
	i := 0
	for _, r := range t.Glyph() {
		dst.SetCell(x+i, y, r, c)
		i++
	}
}

func (s *Session) renderBoard(dst *core.Screen, ox, oy int) {
	t := s.tetrion
	g := t.grid

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			drawTile(dst, g.At(x, y), ox+x*cellW, oy+y)
		}
	}

	if t.Playing() {
		for _, c := range t.Ghost().Cells() {
			drawTile(dst, TileGhost, ox+c.X*cellW, oy+c.Y)
		}
	}
	if t.State() != StateNotStarted {
		for _, c := range t.piece.Cells() {
			drawTile(dst, t.piece.Tile, ox+c.X*cellW, oy+c.Y)
		}
	}
}

func (s *Session) renderPanel(dst *core.Screen, px, py int) {
	h := s.hud

	dst.DrawTextColor(px, py, "NEXT", core.ColorWhite)
	dst.DrawBox(core.NewRect(px, py+1, previewBox, pieceSize+2), core.ColorGray)
	if h.HasNext {
		next := h.Next
		next.Pos = core.Point{}
		for _, c := range next.Cells() {
			drawTile(dst, next.Tile, px+1+c.X*cellW, py+2+c.Y)
		}
	}

	y := py + pieceSize + 4
	dst.DrawTextColor(px, y, "SCORE", core.ColorWhite)
	dst.DrawTextColor(px, y+1, fmt.Sprintf("%d", h.Score), core.ColorYellow)
	dst.DrawTextColor(px, y+3, "LEVEL", core.ColorWhite)
	dst.DrawTextColor(px, y+4, fmt.Sprintf("%d", h.Level), core.ColorYellow)
	dst.DrawTextColor(px, y+6, "ROWS", core.ColorWhite)
	dst.DrawTextColor(px, y+7, fmt.Sprintf("%d", s.tetrion.RowsCleared()), core.ColorYellow)
}

func (s *Session) renderOverlays(dst *core.Screen, ox, oy, boardW int) {
	shown := s.hud.VisibleOverlays()
	if len(shown) == 0 {
		return
	}

	mid := oy + s.tetrion.grid.Height()/2 - len(shown)/2
	for i, o := range shown {
		text := " " + o.Text() + " "
		x := ox + (boardW-len([]rune(text)))/2
		color := core.ColorWhite
		if o == OverlayGameOver {
			color = core.ColorRed
		}
		dst.DrawTextColor(x, mid+i*2, text, color)
	}
}
