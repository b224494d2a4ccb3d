package tetris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tetrion/internal/core"
)

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindZ Kind = iota
	KindL
	KindO
	KindS
	KindJ
	KindI
	KindT
	kindCount
)

const pieceSize = 4

// Mask is the occupancy of a piece's 4x4 box, indexed [y][x].
type Mask [pieceSize][pieceSize]bool

var kindNames = [kindCount]string{"Z", "L", "O", "S", "J", "I", "T"}

var kindTiles = [kindCount]Tile{TileRed, TileOrange, TileYellow, TileGreen, TileBlue, TileCyan, TilePurple}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "?"
	}
	return kindNames[k]
}

// Tile returns the block color of the kind.
func (k Kind) Tile() Tile {
	return kindTiles[k]
}

// Piece is a tetromino with its rotation and grid position.
// Mask always equals the shape table entry for (Kind, Rotation).
type Piece struct {
	Kind     Kind
	Rotation int
	Mask     Mask
	Tile     Tile
	Pos      core.Point

	kicks kickSet
}

// NewPiece returns a piece of the given kind at rotation 0 and position
// (0, 0). Placing it is the caller's job; SpawnPiece places it on a board.
func NewPiece(kind Kind) Piece {
	if kind < 0 || kind >= kindCount {
		panic(fmt.Sprintf("tetris: invalid piece kind %d", kind))
	}
	return Piece{
		Kind:  kind,
		Mask:  shapes[kind][0],
		Tile:  kind.Tile(),
	}
}

// SpawnPiece returns a piece at rotation 0, centred at the top of a board
// that is width cells wide including walls.
func SpawnPiece(kind Kind, width int) Piece {
	p := NewPiece(kind)
	p.Pos = spawnPoint(width)
	return p
}

// randomPiece picks a kind uniformly and spawns it.
func randomPiece(rng *rand.Rand, width int) Piece {
	return SpawnPiece(Kind(rng.Intn(int(kindCount))), width)
}

func spawnPoint(width int) core.Point {
	return core.Point{X: (width - pieceSize) / 2, Y: 0}
}

// RotateCW advances the rotation clockwise and selects the matching kick table.
// It does not check collision.
func (p *Piece) RotateCW() {
	p.rotate(SpinCW)
}

// RotateCCW advances the rotation counter-clockwise and selects the matching kick table.
// It does not check collision.
func (p *Piece) RotateCCW() {
	p.rotate(SpinCCW)
}

func (p *Piece) rotate(dir Spin) {
	from := p.Rotation
	switch dir {
	case SpinCW:
		p.Rotation = (from + 1) % 4
	case SpinCCW:
		p.Rotation = (from + 3) % 4
	default:
		panic(fmt.Sprintf("tetris: invalid spin %d", dir))
	}
	p.Mask = shapes[p.Kind][p.Rotation]
	p.kicks = kickTable(p.Kind, from, p.Rotation, dir)
}

// KickOffset returns the i-th (0..4) kick candidate of the current table.
func (p Piece) KickOffset(i int) core.Point {
	if i < 0 || i >= kickCount {
		panic(fmt.Sprintf("tetris: kick index %d out of range", i))
	}
	return p.kicks[i]
}

// Cells returns the absolute grid coordinates of every occupied cell.
func (p Piece) Cells() []core.Point {
	cells := make([]core.Point, 0, 4)
	for y := 0; y < pieceSize; y++ {
		for x := 0; x < pieceSize; x++ {
			if p.Mask[y][x] {
				cells = append(cells, core.Point{X: p.Pos.X + x, Y: p.Pos.Y + y})
			}
		}
	}
	return cells
}

// mask builds a Mask from up to four row strings where '1' marks a cell.
func mask(rows ...string) Mask {
	var m Mask
	for y, row := range rows {
		for x, c := range row {
			m[y][x] = c == '1'
		}
	}
	return m
}

var shapes = [kindCount][4]Mask{
	KindZ: {
		mask("11..", ".11."),
		mask("..1.", ".11.", ".1.."),
		mask("....", "11..", ".11."),
		mask(".1..", "11..", "1..."),
	},
	KindL: {
		mask("..1.", "111."),
		mask(".1..", ".1..", ".11."),
		mask("....", "111.", "1..."),
		mask("11..", ".1..", ".1.."),
	},
	KindO: {
		mask(".11.", ".11."),
		mask(".11.", ".11."),
		mask(".11.", ".11."),
		mask(".11.", ".11."),
	},
	KindS: {
		mask(".11.", "11.."),
		mask(".1..", ".11.", "..1."),
		mask("....", ".11.", "11.."),
		mask("1...", "11..", ".1.."),
	},
	KindJ: {
		mask("1...", "111."),
		mask(".11.", ".1..", ".1.."),
		mask("....", "111.", "..1."),
		mask(".1..", ".1..", "11.."),
	},
	KindI: {
		mask("....", "1111"),
		mask("..1.", "..1.", "..1.", "..1."),
		mask("....", "....", "1111"),
		mask(".1..", ".1..", ".1..", ".1.."),
	},
	KindT: {
		mask(".1..", "111."),
		mask(".1..", ".11.", ".1.."),
		mask("....", "111.", ".1.."),
		mask(".1..", "11..", ".1.."),
	},
}
