package config

import "math"

// DifficultyManager derives ticker parameters from timing and difficulty settings.
type DifficultyManager struct {
	timing TetrisTiming
	cfg    DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(timing TetrisTiming, cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		timing: timing,
		cfg:    cfg,
	}
}

// StartInterval returns the fall interval at level 1. initial_level
// interpolates from the default interval down toward the minimum.
func (d *DifficultyManager) StartInterval() int64 {
	level := clampF(d.cfg.InitialLevel, 0, 1)
	span := float64(d.timing.DefaultIntervalMs - d.timing.MinIntervalMs)
	return int64(d.timing.DefaultIntervalMs) - int64(math.Round(level*span))
}

// SpeedUpStep returns the interval reduction applied on each level-up.
func (d *DifficultyManager) SpeedUpStep() int64 {
	if !d.cfg.Enabled {
		return 0
	}
	scale := d.cfg.SpeedUpScale
	if scale <= 0 {
		scale = 1
	}
	return int64(math.Round(float64(d.timing.SpeedUpMs) * scale))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
