package tanks

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/engine"
)

// RulesFromConfig converts the YAML tuning into simulation rules.
// Unknown archetype or powerup names are reported together; the
// remaining entries are still applied.
func RulesFromConfig(cfg config.TanksConfig) (engine.Rules, error) {
	r := engine.DefaultRules()
	var errs []error

	r.TicksPerSecond = cfg.Timing.TicksPerSecond
	r.ProjectileInterval = cfg.Timing.ProjectileInterval
	r.EnemySpawnSeconds = cfg.Timing.EnemySpawnSeconds
	r.PowerupSpawnSeconds = cfg.Timing.PowerupSpawnSeconds
	r.EnemySpawnBudget = cfg.Spawns.EnemyBudget

	r.Player = tankStats(cfg.Player)
	for name, tc := range cfg.Archetypes {
		a, ok := engine.ParseArchetype(name)
		if !ok {
			errs = append(errs, fmt.Errorf("archetypes: unknown archetype %q", name))
			continue
		}
		r.Archetypes[a] = tankStats(tc)
	}

	if cfg.Tiles.BrickHealth > 0 {
		r.BrickHealth = cfg.Tiles.BrickHealth
	} else {
		errs = append(errs, fmt.Errorf("tiles: brick_health must be positive, got %d", cfg.Tiles.BrickHealth))
	}
	if cfg.Tiles.HomeHealth > 0 {
		r.HomeHealth = cfg.Tiles.HomeHealth
	} else {
		errs = append(errs, fmt.Errorf("tiles: home_health must be positive, got %d", cfg.Tiles.HomeHealth))
	}

	for name, n := range cfg.Powerups {
		k, ok := engine.ParsePowerupKind(name)
		if !ok {
			errs = append(errs, fmt.Errorf("powerups: unknown powerup %q", name))
			continue
		}
		r.PowerupIntensity[k] = n
	}

	r.AIRollRange = cfg.AI.RollRange

	for name, pts := range cfg.Scoring.Points {
		a, ok := engine.ParseArchetype(name)
		if !ok {
			errs = append(errs, fmt.Errorf("scoring: unknown archetype %q", name))
			continue
		}
		r.EnemyPoints[a] = pts
	}
	r.StageClearBonus = cfg.Scoring.StageClearBonus

	return r, errors.Join(errs...)
}

func tankStats(tc config.TankConfig) engine.TankStats {
	return engine.TankStats{
		Health:       tc.Health,
		Ammo:         tc.Ammo,
		AttackDamage: tc.Attack,
		MoveSpeed:    tc.MoveSpeed,
	}
}

// retime moves tick-counted timings from the configured clock to tickRate so
// that seconds stay seconds when the driver runs faster or slower.
func retime(cfg *config.TanksConfig, tickRate int) {
	base := cfg.Timing.TicksPerSecond
	if tickRate <= 0 || base <= 0 || tickRate == base {
		return
	}
	scale := func(n int) int { return max(1, n*tickRate/base) }

	cfg.Timing.TicksPerSecond = tickRate
	cfg.Timing.ProjectileInterval = scale(cfg.Timing.ProjectileInterval)
	if n, ok := cfg.Powerups["shield"]; ok {
		cfg.Powerups["shield"] = scale(n)
	}
}
