package engine

// Owner tags who fired a projectile.
type Owner uint8

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// String returns the name of the owner.
func (o Owner) String() string {
	if o == OwnerPlayer {
		return "player"
	}
	return "enemy"
}

// Projectile is a shot travelling one cell per advance.
type Projectile struct {
	Entity
	Owner     Owner
	ShooterID EntityID
	Intensity int // Damage applied to whatever it hits

	sinceAdvance int // Ticks since the last advance
}
