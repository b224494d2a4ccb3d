package tetris

import "github.com/vovakirdan/tetrion/internal/core"

// Tile is the content of one grid cell.
type Tile uint8

const (
	TileEmpty      Tile = iota
	TileWall            // border, never passable
	TileBackground      // empty interior cell
	TileGhost           // landing marker, render only
	TileRed
	TileOrange
	TileYellow
	TileGreen
	TileBlue
	TileCyan
	TilePurple
)

// Passable reports whether a piece may occupy a cell holding t.
func (t Tile) Passable() bool {
	return t == TileEmpty || t == TileBackground || t == TileGhost
}

// IsBlock reports whether t is a locked or falling block.
func (t Tile) IsBlock() bool {
	return t >= TileRed && t <= TilePurple
}

// Color returns the terminal color used for the tile.
func (t Tile) Color() core.Color {
	switch t {
	case TileWall:
		return core.ColorGray
	case TileBackground, TileEmpty:
		return core.ColorDarkGray
	case TileGhost:
		return core.ColorGray
	case TileRed:
		return core.ColorRed
	case TileOrange:
		return core.ColorOrange
	case TileYellow:
		return core.ColorYellow
	case TileGreen:
		return core.ColorGreen
	case TileBlue:
		return core.ColorBlue
	case TileCyan:
		return core.ColorCyan
	case TilePurple:
		return core.ColorMagenta
	default:
		return core.ColorDefault
	}
}

// Glyph returns the two-column terminal rendering of the tile.
func (t Tile) Glyph() string {
	switch {
	case t.IsBlock():
		return "██"
	case t == TileWall:
		return "▓▓"
	case t == TileGhost:
		return "░░"
	case t == TileBackground:
		return " ."
	default:
		return "  "
	}
}
