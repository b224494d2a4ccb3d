package tetris

import (
	"errors"
	"fmt"
)

// Playfield size including the border.
const (
	DefaultWidth  = 12
	DefaultHeight = 21
)

// ErrInvalidGridSize is returned when a grid cannot hold a border and an interior.
var ErrInvalidGridSize = errors.New("tetris: invalid grid size")

// Grid is the playfield. The left column, right column and bottom row are
// walls; every other cell is background or a locked block.
type Grid struct {
	width  int
	height int
	cells  []Tile
}

// NewGrid allocates a bordered grid.
func NewGrid(width, height int) (*Grid, error) {
	if width < 3 || height < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGridSize, width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Tile, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || x == width-1 || y == height-1 {
				g.cells[g.index(x, y)] = TileWall
			} else {
				g.cells[g.index(x, y)] = TileBackground
			}
		}
	}
	return g, nil
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// Width returns the grid width including walls.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height including the floor.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) is a grid cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the tile at (x, y). Out-of-bounds reads return TileEmpty.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileEmpty
	}
	return g.cells[g.index(x, y)]
}

// Set writes a tile. Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[g.index(x, y)] = t
}

// Fits reports whether every occupied cell of p lies inside the grid on a
// passable tile.
func (g *Grid) Fits(p Piece) bool {
	for y := 0; y < pieceSize; y++ {
		for x := 0; x < pieceSize; x++ {
			if !p.Mask[y][x] {
				continue
			}
			gx, gy := p.Pos.X+x, p.Pos.Y+y
			if !g.InBounds(gx, gy) || !g.cells[g.index(gx, gy)].Passable() {
				return false
			}
		}
	}
	return true
}

// Lock copies the piece's occupied cells into the grid.
func (g *Grid) Lock(p Piece) {
	for _, c := range p.Cells() {
		g.Set(c.X, c.Y, p.Tile)
	}
}

// FullRow returns the topmost row whose interior is entirely blocks.
func (g *Grid) FullRow() (int, bool) {
	for y := 0; y < g.height-1; y++ {
		blocks := 0
		for x := 1; x < g.width-1; x++ {
			if g.cells[g.index(x, y)].IsBlock() {
				blocks++
			}
		}
		if blocks >= g.width-2 {
			return y, true
		}
	}
	return 0, false
}

// DeleteRow removes interior row y, shifting every row above it down by one.
// Row 0 becomes background.
func (g *Grid) DeleteRow(row int) {
	for y := row; y > 0; y-- {
		for x := 1; x < g.width-1; x++ {
			g.cells[g.index(x, y)] = g.cells[g.index(x, y-1)]
		}
	}
	for x := 1; x < g.width-1; x++ {
		g.cells[g.index(x, 0)] = TileBackground
	}
}

// Clear resets the interior to background.
func (g *Grid) Clear() {
	for y := 0; y < g.height-1; y++ {
		for x := 1; x < g.width-1; x++ {
			g.cells[g.index(x, y)] = TileBackground
		}
	}
}

// LandingPosition returns where p would lock if dropped straight down.
func (g *Grid) LandingPosition(p Piece) Piece {
	if !g.Fits(p) {
		return p
	}
	for {
		next := p
		next.Pos.Y++
		if !g.Fits(next) {
			return p
		}
		p = next
	}
}
