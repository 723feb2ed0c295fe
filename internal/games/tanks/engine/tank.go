package engine

// Archetype selects the stat profile of an enemy tank.
type Archetype uint8

const (
	ArchetypeNormal Archetype = iota
	ArchetypeHighHealth
	ArchetypeHighAttack
	ArchetypeHighSpeed
)

// String returns the name of the archetype.
func (a Archetype) String() string {
	switch a {
	case ArchetypeNormal:
		return "normal"
	case ArchetypeHighHealth:
		return "high_health"
	case ArchetypeHighAttack:
		return "high_attack"
	case ArchetypeHighSpeed:
		return "high_speed"
	default:
		return "unknown"
	}
}

// ParseArchetype converts a config name back to an Archetype.
func ParseArchetype(s string) (Archetype, bool) {
	for _, a := range []Archetype{ArchetypeNormal, ArchetypeHighHealth, ArchetypeHighAttack, ArchetypeHighSpeed} {
		if a.String() == s {
			return a, true
		}
	}
	return ArchetypeNormal, false
}

// TankStats is the starting profile of a tank.
type TankStats struct {
	Health       int
	Ammo         int
	AttackDamage int
	MoveSpeed    int // Moves per second for AI-driven tanks
}

// Tank is a player- or AI-controlled unit.
type Tank struct {
	Entity
	Ammo         int
	AttackDamage int
	MoveSpeed    int
	Archetype    Archetype

	cooldown int // Ticks until the next AI turn
}

// newTank creates a live tank from a stat profile.
func newTank(id EntityID, kind Kind, pos Point, facing Direction, stats TankStats) *Tank {
	return &Tank{
		Entity: Entity{
			ID:     id,
			Kind:   kind,
			Pos:    pos,
			Facing: facing,
			Health: stats.Health,
			Alive:  stats.Health > 0,
		},
		Ammo:         stats.Ammo,
		AttackDamage: stats.AttackDamage,
		MoveSpeed:    stats.MoveSpeed,
	}
}

// turnInterval returns the number of ticks between AI turns.
func (t *Tank) turnInterval(ticksPerSecond int) int {
	if t.MoveSpeed <= 0 {
		return ticksPerSecond
	}
	return max(1, ticksPerSecond/t.MoveSpeed)
}
