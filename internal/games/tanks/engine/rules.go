package engine

// Rules holds every tunable constant of the simulation.
// Timers are frame counters compared against TicksPerSecond.
type Rules struct {
	TicksPerSecond      int
	ProjectileInterval  int // Ticks between projectile advances
	EnemySpawnSeconds   int
	PowerupSpawnSeconds int
	EnemySpawnBudget    int // Respawns per enemy spawner; negative means unlimited

	Player     TankStats
	Archetypes map[Archetype]TankStats

	BrickHealth int
	HomeHealth  int

	PowerupIntensity map[PowerupKind]int

	AIRollRange int // Enemy turns draw uniformly from [0, AIRollRange)

	EnemyPoints     map[Archetype]int
	StageClearBonus int
}

// DefaultRules returns the stock tuning at 60 ticks per second.
func DefaultRules() Rules {
	return Rules{
		TicksPerSecond:      60,
		ProjectileInterval:  4, // 15 cells per second
		EnemySpawnSeconds:   6,
		PowerupSpawnSeconds: 15,
		EnemySpawnBudget:    2,

		Player: TankStats{Health: 3, Ammo: 30, AttackDamage: 1, MoveSpeed: 0},
		Archetypes: map[Archetype]TankStats{
			ArchetypeNormal:     {Health: 2, Ammo: 10, AttackDamage: 1, MoveSpeed: 2},
			ArchetypeHighHealth: {Health: 4, Ammo: 10, AttackDamage: 1, MoveSpeed: 1},
			ArchetypeHighAttack: {Health: 2, Ammo: 10, AttackDamage: 2, MoveSpeed: 2},
			ArchetypeHighSpeed:  {Health: 1, Ammo: 10, AttackDamage: 1, MoveSpeed: 4},
		},

		BrickHealth: 2,
		HomeHealth:  3,

		PowerupIntensity: map[PowerupKind]int{
			PowerupHealth:    1,
			PowerupExtraAmmo: 10,
			PowerupShield:    300, // 5 seconds
			PowerupWin:       1,
		},

		AIRollRange: 11,

		EnemyPoints: map[Archetype]int{
			ArchetypeNormal:     100,
			ArchetypeHighHealth: 200,
			ArchetypeHighAttack: 200,
			ArchetypeHighSpeed:  150,
		},
		StageClearBonus: 500,
	}
}

// archetypeStats returns the profile for a, falling back to Normal.
func (r *Rules) archetypeStats(a Archetype) TankStats {
	if st, ok := r.Archetypes[a]; ok {
		return st
	}
	return DefaultRules().Archetypes[ArchetypeNormal]
}

// secondsToTicks converts a cadence in seconds to a positive tick count.
func (r *Rules) secondsToTicks(seconds int) int {
	return max(1, seconds*r.TicksPerSecond)
}
