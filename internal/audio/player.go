// Package audio plays the engine's sound effects through the system speaker.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/games/tetris"
)

// maxVoices bounds simultaneous effects; older ones keep playing, new ones are dropped.
const maxVoices = 8

// Player implements tetris.Sound with synthesized effects.
// It is safe to use when the speaker could not be opened: Play becomes a no-op.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	sr          beep.SampleRate
	volume      float64
	enabled     bool
	initialized bool
	logger      *log.Logger
}

var _ tetris.Sound = (*Player)(nil)

// New creates a player from the audio config. Call Init before Play.
func New(cfg config.AudioConfig, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	sr := cfg.SampleRate
	if sr <= 0 {
		sr = config.DefaultTetrisConfig().Audio.SampleRate
	}
	return &Player{
		mixer:   &beep.Mixer{},
		sr:      beep.SampleRate(sr),
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
		logger:  logger,
	}
}

// Init opens the speaker. Disabled players never touch the device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.enabled {
		return nil
	}

	if err := speaker.Init(p.sr, p.sr.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Debug("speaker ready", "sample_rate", int(p.sr), "volume", p.volume)
	return nil
}

// Ready reports whether effects will be heard.
func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues e on the mixer without blocking the caller.
func (p *Player) Play(e tetris.SoundEffect) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := EffectStreamer(p.sr, e, p.volume)
	if s == nil {
		p.logger.Debug("no sound for effect", "effect", e)
		return
	}

	speaker.Lock()
	if p.mixer.Len() < maxVoices {
		p.mixer.Add(s)
	}
	speaker.Unlock()
}

// SetVolume changes the volume of subsequently played effects, clamped
// to [0, 1].
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = math.Max(0, math.Min(1, v))
}

// Close silences the mixer. beep cannot reopen the speaker, so the
// device stays claimed until exit.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
