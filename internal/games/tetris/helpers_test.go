package tetris

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetrion/internal/core"
)

type soundRecorder struct {
	played []SoundEffect
}

func (r *soundRecorder) Play(e SoundEffect) {
	r.played = append(r.played, e)
}

func (r *soundRecorder) last() SoundEffect {
	if len(r.played) == 0 {
		return -1
	}
	return r.played[len(r.played)-1]
}

func (r *soundRecorder) count(e SoundEffect) int {
	n := 0
	for _, p := range r.played {
		if p == e {
			n++
		}
	}
	return n
}

type fixture struct {
	t     *Tetrion
	clock *core.ManualClock
	sound *soundRecorder
	hud   *HUD
}

func newFixture(tb testing.TB) *fixture {
	tb.Helper()
	f := &fixture{
		clock: core.NewManualClock(0),
		sound: &soundRecorder{},
		hud:   &HUD{},
	}
	tt, err := NewTetrion(Options{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Rand:     rand.New(rand.NewSource(7)),
		Clock:    f.clock,
		Sound:    f.sound,
		Notifier: f.hud,
		Rules:    DefaultRules(),
	})
	require.NoError(tb, err)
	f.t = tt
	return f
}

// start leaves the start prompt.
func (f *fixture) start() {
	f.t.Start()
}

// tick advances the clock past the current interval and updates once.
func (f *fixture) tick() {
	f.clock.Advance(time.Duration(f.t.Interval()) * time.Millisecond)
	f.t.Update()
}

// place sets the active piece.
func (f *fixture) place(kind Kind, x, y int) {
	p := NewPiece(kind)
	p.Pos = core.Point{X: x, Y: y}
	f.t.piece = p
}

func fillRow(g *Grid, y int, tile Tile) {
	for x := 1; x < g.Width()-1; x++ {
		g.Set(x, y, tile)
	}
}

func frame(setup func(f *core.InputFrame)) core.InputFrame {
	var in core.InputFrame
	setup(&in)
	return in
}
