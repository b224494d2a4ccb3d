package tetris

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetrion/internal/core"
)

func TestNewGridBorder(t *testing.T) {
	g, err := NewGrid(DefaultWidth, DefaultHeight)
	require.NoError(t, err)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			want := TileBackground
			if x == 0 || x == g.Width()-1 || y == g.Height()-1 {
				want = TileWall
			}
			assert.Equal(t, want, g.At(x, y), "(%d,%d)", x, y)
		}
	}
}

func TestNewGridInvalidSize(t *testing.T) {
	for _, sz := range [][2]int{{2, 21}, {12, 1}, {0, 0}, {-1, 5}} {
		_, err := NewGrid(sz[0], sz[1])
		assert.True(t, errors.Is(err, ErrInvalidGridSize), "%v", sz)
	}
}

// fitsReference checks the fit rule cell by cell without using Grid.Fits.
func fitsReference(g *Grid, p Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= g.Width() || c.Y < 0 || c.Y >= g.Height() {
			return false
		}
		if tile := g.At(c.X, c.Y); tile == TileWall || tile.IsBlock() {
			return false
		}
	}
	return true
}

func TestFitsMatchesRuleEverywhere(t *testing.T) {
	g, err := NewGrid(DefaultWidth, DefaultHeight)
	require.NoError(t, err)
	g.Set(5, 10, TileGreen)
	g.Set(3, 15, TileGhost)
	fillRow(g, 18, TileRed)
	g.Set(4, 18, TileBackground)

	before := g.String()

	for k := KindZ; k < kindCount; k++ {
		p := NewPiece(k)
		for r := 0; r < 4; r++ {
			for y := -4; y < g.Height()+2; y++ {
				for x := -4; x < g.Width()+2; x++ {
					p.Pos = core.Point{X: x, Y: y}
					require.Equal(t, fitsReference(g, p), g.Fits(p), "%s r%d at (%d,%d)", k, r, x, y)
				}
			}
			p.RotateCW()
		}
	}

	assert.Equal(t, before, g.String(), "Fits must not modify the grid")
}

func TestFitsGhostIsPassable(t *testing.T) {
	g, err := NewGrid(DefaultWidth, DefaultHeight)
	require.NoError(t, err)

	p := NewPiece(KindO)
	p.Pos = core.Point{X: 4, Y: 5}
	for _, c := range p.Cells() {
		g.Set(c.X, c.Y, TileGhost)
	}
	assert.True(t, g.Fits(p))
}

func TestLockAndDeleteRow(t *testing.T) {
	g, err := NewGrid(6, 5)
	require.NoError(t, err)

	fillRow(g, 3, TileBlue)
	g.Set(2, 2, TileRed)
	g.Set(3, 0, TileCyan)

	row, ok := g.FullRow()
	require.True(t, ok)
	assert.Equal(t, 3, row)

	g.DeleteRow(row)

	assert.Equal(t, TileRed, g.At(2, 3), "rows above shift down by one")
	assert.Equal(t, TileCyan, g.At(3, 1))
	for x := 1; x < 5; x++ {
		assert.Equal(t, TileBackground, g.At(x, 0), "row 0 becomes background")
	}
	assert.Equal(t, TileWall, g.At(0, 3), "walls stay")
	assert.Equal(t, TileWall, g.At(5, 3))

	_, ok = g.FullRow()
	assert.False(t, ok)
}

func TestFullRowIgnoresFloor(t *testing.T) {
	g, err := NewGrid(DefaultWidth, DefaultHeight)
	require.NoError(t, err)
	_, ok := g.FullRow()
	assert.False(t, ok)
}

func TestLandingPosition(t *testing.T) {
	g, err := NewGrid(DefaultWidth, DefaultHeight)
	require.NoError(t, err)

	p := NewPiece(KindO)
	p.Pos = core.Point{X: 4, Y: 0}
	assert.Equal(t, 18, g.LandingPosition(p).Pos.Y)

	g.Set(5, 10, TileRed)
	assert.Equal(t, 8, g.LandingPosition(p).Pos.Y)
}

func TestClearKeepsWalls(t *testing.T) {
	g, err := NewGrid(DefaultWidth, DefaultHeight)
	require.NoError(t, err)
	fresh := g.String()

	fillRow(g, 19, TileRed)
	g.Set(1, 0, TileRed)
	g.Clear()

	assert.Equal(t, fresh, g.String())
}
