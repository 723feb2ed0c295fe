package config

import (
	_ "embed"
)

//go:embed defaults/tanks.yaml
var defaultTanksYAML []byte

// DefaultTanksConfig returns the default tank game configuration.
func DefaultTanksConfig() TanksConfig {
	return TanksConfig{
		Timing: TimingConfig{
			TicksPerSecond:      60,
			ProjectileInterval:  4,
			EnemySpawnSeconds:   6,
			PowerupSpawnSeconds: 15,
		},
		Player: TankConfig{Health: 3, Ammo: 30, Attack: 1, MoveSpeed: 0},
		Archetypes: map[string]TankConfig{
			"normal":      {Health: 2, Ammo: 10, Attack: 1, MoveSpeed: 2},
			"high_health": {Health: 4, Ammo: 10, Attack: 1, MoveSpeed: 1},
			"high_attack": {Health: 2, Ammo: 10, Attack: 2, MoveSpeed: 2},
			"high_speed":  {Health: 1, Ammo: 10, Attack: 1, MoveSpeed: 4},
		},
		Tiles: TilesConfig{
			BrickHealth: 2,
			HomeHealth:  3,
		},
		Powerups: map[string]int{
			"health":     1,
			"extra_ammo": 10,
			"shield":     300,
			"win":        1,
		},
		AI: AIConfig{RollRange: 11},
		Scoring: ScoringConfig{
			Points: map[string]int{
				"normal":      100,
				"high_health": 200,
				"high_attack": 200,
				"high_speed":  150,
			},
			StageClearBonus: 500,
		},
		Spawns: SpawnsConfig{EnemyBudget: 2},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "stage",
				MaxAt: 5,
			},
			Scaling: ScalingConfig{
				SpawnReduction:  0.5,
				MinSpawnSeconds: 2,
			},
		},
	}
}
