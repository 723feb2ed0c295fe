// Package config provides YAML-based game configuration loading and
// difficulty management for the tanks platform.
package config

// TanksConfig contains all tuning for the tank game.
type TanksConfig struct {
	Timing     TimingConfig          `yaml:"timing"`
	Player     TankConfig            `yaml:"player"`
	Archetypes map[string]TankConfig `yaml:"archetypes"` // normal, high_health, high_attack, high_speed
	Tiles      TilesConfig           `yaml:"tiles"`
	Powerups   map[string]int        `yaml:"powerups"` // Intensity per kind: health, extra_ammo, shield, win
	AI         AIConfig              `yaml:"ai"`
	Scoring    ScoringConfig         `yaml:"scoring"`
	Spawns     SpawnsConfig          `yaml:"spawns"`
	Difficulty DifficultyConfig      `yaml:"difficulty"`
}

// TimingConfig defines the simulation clock and cadences.
type TimingConfig struct {
	TicksPerSecond      int `yaml:"ticks_per_second"`
	ProjectileInterval  int `yaml:"projectile_interval"` // Ticks between projectile advances
	EnemySpawnSeconds   int `yaml:"enemy_spawn_seconds"`
	PowerupSpawnSeconds int `yaml:"powerup_spawn_seconds"`
}

// TankConfig defines the stat profile of a tank.
type TankConfig struct {
	Health    int `yaml:"health"`
	Ammo      int `yaml:"ammo"`
	Attack    int `yaml:"attack"`
	MoveSpeed int `yaml:"move_speed"` // Moves per second for AI tanks
}

// TilesConfig defines destructible terrain.
type TilesConfig struct {
	BrickHealth int `yaml:"brick_health"`
	HomeHealth  int `yaml:"home_health"`
}

// AIConfig defines the enemy dice.
type AIConfig struct {
	RollRange int `yaml:"roll_range"` // Outcomes 0-3 move, 4 shoots, the rest idle
}

// ScoringConfig defines points awarded.
type ScoringConfig struct {
	Points          map[string]int `yaml:"points"` // Per archetype, player kills only
	StageClearBonus int            `yaml:"stage_clear_bonus"`
}

// SpawnsConfig defines enemy respawning.
type SpawnsConfig struct {
	EnemyBudget int `yaml:"enemy_budget"` // Respawns per spawner, negative for unlimited
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "stage", "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Stage/score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpawnReduction  float64 `yaml:"spawn_reduction"`   // Fraction of the enemy spawn interval removed at max difficulty
	MinSpawnSeconds float64 `yaml:"min_spawn_seconds"` // Floor for the enemy spawn interval
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
