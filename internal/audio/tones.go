package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tetrion/internal/games/tetris"
)

// Waveform selects the oscillator shape of a note.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveTriangle
)

// Note is a single pitch held for a duration. Freq 0 is a rest.
type Note struct {
	Freq float64
	Dur  time.Duration
}

// Melody is a short sequence of notes sharing one waveform and gain.
type Melody struct {
	Wave  Waveform
	Gain  float64
	Notes []Note
}

// Duration returns the total length of the melody.
func (m Melody) Duration() time.Duration {
	var d time.Duration
	for _, n := range m.Notes {
		d += n.Dur
	}
	return d
}

var melodies = map[tetris.SoundEffect]Melody{
	tetris.SoundMove: {Wave: WaveSine, Gain: 0.15, Notes: []Note{
		{440, 15 * time.Millisecond},
	}},
	tetris.SoundRotate: {Wave: WaveTriangle, Gain: 0.25, Notes: []Note{
		{660, 20 * time.Millisecond},
		{880, 15 * time.Millisecond},
	}},
	tetris.SoundDrop: {Wave: WaveSquare, Gain: 0.2, Notes: []Note{
		{520, 25 * time.Millisecond},
		{390, 25 * time.Millisecond},
		{260, 30 * time.Millisecond},
	}},
	tetris.SoundLanded: {Wave: WaveSquare, Gain: 0.2, Notes: []Note{
		{140, 40 * time.Millisecond},
		{90, 50 * time.Millisecond},
	}},
	tetris.SoundDeletedRow: {Wave: WaveSquare, Gain: 0.25, Notes: []Note{
		{880, 60 * time.Millisecond},
		{1175, 80 * time.Millisecond},
	}},
	tetris.SoundLevelUp: {Wave: WaveTriangle, Gain: 0.3, Notes: []Note{
		{523.25, 70 * time.Millisecond},
		{659.25, 70 * time.Millisecond},
		{783.99, 70 * time.Millisecond},
		{1046.5, 120 * time.Millisecond},
	}},
	tetris.SoundGameOver: {Wave: WaveSquare, Gain: 0.3, Notes: []Note{
		{392, 150 * time.Millisecond},
		{0, 30 * time.Millisecond},
		{329.63, 150 * time.Millisecond},
		{0, 30 * time.Millisecond},
		{261.63, 150 * time.Millisecond},
		{196, 300 * time.Millisecond},
	}},
}

// MelodyFor returns the melody bound to an effect.
func MelodyFor(e tetris.SoundEffect) (Melody, bool) {
	m, ok := melodies[e]
	return m, ok
}

// fadeSeconds is the attack/release ramp applied to every note to avoid clicks.
const fadeSeconds = 0.004

// MelodyGenerator streams a melody and then silence.
type MelodyGenerator struct {
	sr     beep.SampleRate
	melody Melody
	ends   []int // cumulative end sample of each note
	pos    int
}

// NewMelodyGenerator creates a generator for m at sample rate sr.
func NewMelodyGenerator(sr beep.SampleRate, m Melody) *MelodyGenerator {
	ends := make([]int, len(m.Notes))
	total := 0
	for i, n := range m.Notes {
		total += sr.N(n.Dur)
		ends[i] = total
	}
	return &MelodyGenerator{sr: sr, melody: m, ends: ends}
}

// Len returns the number of samples the melody occupies.
func (g *MelodyGenerator) Len() int {
	if len(g.ends) == 0 {
		return 0
	}
	return g.ends[len(g.ends)-1]
}

func (g *MelodyGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		sample := g.sampleAt(g.pos)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *MelodyGenerator) Err() error {
	return nil
}

func (g *MelodyGenerator) sampleAt(pos int) float64 {
	start := 0
	for i, end := range g.ends {
		if pos < end {
			note := g.melody.Notes[i]
			if note.Freq <= 0 {
				return 0
			}
			local := pos - start
			t := float64(local) / float64(g.sr)
			return g.melody.Gain * ramp(local, end-start, g.sr) * oscillate(g.melody.Wave, note.Freq, t)
		}
		start = end
	}
	return 0
}

func ramp(local, length int, sr beep.SampleRate) float64 {
	fade := float64(sr) * fadeSeconds
	if fade <= 0 {
		return 1
	}
	env := math.Min(float64(local)/fade, 1)
	return math.Min(env, float64(length-local)/fade)
}

func oscillate(w Waveform, freq, t float64) float64 {
	phase := math.Mod(freq*t, 1)
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 0.6
		}
		return -0.6
	case WaveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// newVolume wraps s at a linear volume. math.Log2(0) is -Inf, so 0 is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// EffectStreamer builds the finite streamer for e, or nil if e has no melody.
func EffectStreamer(sr beep.SampleRate, e tetris.SoundEffect, volume float64) beep.Streamer {
	m, ok := MelodyFor(e)
	if !ok {
		return nil
	}
	gen := NewMelodyGenerator(sr, m)
	return newVolume(beep.Take(gen.Len(), gen), volume)
}
