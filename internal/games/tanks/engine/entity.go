package engine

// EntityID is a handle into the simulation's rosters.
// Cells store handles, never pointers; the zero value means "empty".
type EntityID uint32

// NoEntity is the empty handle.
const NoEntity EntityID = 0

// Kind tags the variant of an entity.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindProjectile
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// Entity is the movable, facing, damageable base shared by tanks and projectiles.
type Entity struct {
	ID           EntityID
	Kind         Kind
	Pos          Point
	Facing       Direction
	Health       int
	Alive        bool
	Invulnerable int // Ticks of damage immunity remaining
}

// Rotate changes the facing according to r.
func (e *Entity) Rotate(r Rotation) {
	e.Facing = r.Apply(e.Facing)
}

// Move shifts the entity by (dx, dy) and re-derives its facing.
// The row axis is inverted: a positive dx moves north (row - dx).
// Priority when deriving facing: dx>0 N, dx<0 S, dy>0 E, dy<0 W.
func (e *Entity) Move(dx, dy int) {
	e.Pos = Point{X: e.Pos.X - dx, Y: e.Pos.Y + dy}
	switch {
	case dx > 0:
		e.Facing = North
	case dx < 0:
		e.Facing = South
	case dy > 0:
		e.Facing = East
	case dy < 0:
		e.Facing = West
	}
}

// Front returns the adjacent point in the facing direction.
func (e *Entity) Front() Point {
	return e.Pos.Step(e.Facing)
}

// Behind returns the direction opposite to the facing.
func (e *Entity) Behind() Direction {
	return e.Facing.Opposite()
}

// Damage subtracts amount from health. It is a no-op while the entity is
// dead or invulnerable. Returns true if this call killed the entity.
func (e *Entity) Damage(amount int) bool {
	if !e.Alive || e.Invulnerable > 0 || amount <= 0 {
		return false
	}
	e.Health -= amount
	if e.Health < 1 {
		e.Health = 0
		e.Alive = false
		return true
	}
	return false
}

// tickInvulnerability counts down the immunity window by one tick.
func (e *Entity) tickInvulnerability() {
	if e.Invulnerable > 0 {
		e.Invulnerable--
	}
}
