package tetris

import "strings"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	State    State
	Score    int
	Level    int
	Rows     int
	Kind     Kind
	Rotation int
	X, Y     int
	NextKind Kind
	Interval int64
	FastFall bool
	Paused   bool
	Quit     bool
	Board    string // one rune per cell, rows joined by '\n'
}

// Snapshot returns the current game snapshot for determinism verification.
func (s *Session) Snapshot() Snapshot {
	t := s.tetrion
	return Snapshot{
		Tick:     s.tick,
		State:    t.State(),
		Score:    t.Score(),
		Level:    t.Level(),
		Rows:     t.RowsCleared(),
		Kind:     t.piece.Kind,
		Rotation: t.piece.Rotation,
		X:        t.piece.Pos.X,
		Y:        t.piece.Pos.Y,
		NextKind: t.next.Kind,
		Interval: t.Interval(),
		FastFall: t.FastFalling(),
		Paused:   s.paused,
		Quit:     s.quit,
		Board:    t.grid.String(),
	}
}

var tileRunes = [...]rune{
	TileEmpty:      ' ',
	TileWall:       '#',
	TileBackground: '.',
	TileGhost:      ':',
	TileRed:        'Z',
	TileOrange:     'L',
	TileYellow:     'O',
	TileGreen:      'S',
	TileBlue:       'J',
	TileCyan:       'I',
	TilePurple:     'T',
}

// String renders the grid as text, one rune per cell.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.width; x++ {
			b.WriteRune(tileRunes[g.cells[g.index(x, y)]])
		}
	}
	return b.String()
}
