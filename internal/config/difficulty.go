package config

import "math"

// DifficultyManager calculates enemy pressure from stage progress, score, or time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(stage, score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "stage":
		progress = float64(stage) / maxAt
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// SpawnInterval returns the enemy spawn interval in ticks.
// The base interval shrinks by up to SpawnReduction as the level rises,
// never dropping below MinSpawnSeconds.
func (d *DifficultyManager) SpawnInterval(baseSeconds float64, ticksPerSecond, stage, score, ticks int) int {
	level := d.Level(stage, score, ticks)
	seconds := baseSeconds * (1.0 - level*clampF(d.cfg.Scaling.SpawnReduction, 0.0, 1.0))
	if floor := d.cfg.Scaling.MinSpawnSeconds; seconds < floor {
		seconds = floor
	}
	n := int(math.Round(seconds * float64(ticksPerSecond)))
	if n < 1 {
		n = 1
	}
	return n
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
