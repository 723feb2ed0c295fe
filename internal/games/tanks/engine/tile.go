package engine

// TileType is the terrain of a grid cell.
type TileType uint8

const (
	TileNone TileType = iota
	TileForest
	TileHome
	TileWater
	TileStone
	TileBrick
	TileMirror
	TileEnemySpawner
	TilePowerupSpawner
)

// String returns the name of the tile type.
func (t TileType) String() string {
	switch t {
	case TileNone:
		return "none"
	case TileForest:
		return "forest"
	case TileHome:
		return "home"
	case TileWater:
		return "water"
	case TileStone:
		return "stone"
	case TileBrick:
		return "brick"
	case TileMirror:
		return "mirror"
	case TileEnemySpawner:
		return "enemy_spawner"
	case TilePowerupSpawner:
		return "powerup_spawner"
	default:
		return "unknown"
	}
}

// Movable reports whether tanks may drive onto this terrain.
func (t TileType) Movable() bool {
	switch t {
	case TileNone, TileForest, TileEnemySpawner, TilePowerupSpawner:
		return true
	default:
		return false
	}
}

// Mirror is the orientation of a mirror tile.
type Mirror uint8

const (
	MirrorNone     Mirror = iota
	MirrorForward         // "/"
	MirrorBackward        // "\"
)

// String returns the glyph of the mirror.
func (m Mirror) String() string {
	switch m {
	case MirrorForward:
		return "/"
	case MirrorBackward:
		return `\`
	default:
		return ""
	}
}

// Reflect returns the facing of a projectile leaving the mirror.
// On "\" north/south turn counter-clockwise and east/west turn clockwise;
// "/" applies the opposite turns.
func (m Mirror) Reflect(d Direction) Direction {
	vertical := d == North || d == South
	switch m {
	case MirrorBackward:
		if vertical {
			return d.CounterClockwise()
		}
		return d.Clockwise()
	case MirrorForward:
		if vertical {
			return d.Clockwise()
		}
		return d.CounterClockwise()
	default:
		return d
	}
}

// Tile is the static terrain state of one cell.
type Tile struct {
	Type   TileType
	Health int       // Only Brick and Home carry health
	Mirror Mirror    // Set only for TileMirror
	Broken Direction // Side a brick was last hit from, NoDirection if intact
}

// NewTile creates a tile of the given type with no health.
func NewTile(t TileType) Tile {
	return Tile{Type: t, Broken: NoDirection}
}

// NewBrick creates a brick with the given health.
func NewBrick(health int) Tile {
	return Tile{Type: TileBrick, Health: health, Broken: NoDirection}
}

// NewHome creates the home objective with the given health.
func NewHome(health int) Tile {
	return Tile{Type: TileHome, Health: health, Broken: NoDirection}
}

// NewMirror creates a mirror tile.
func NewMirror(m Mirror) Tile {
	return Tile{Type: TileMirror, Mirror: m, Broken: NoDirection}
}

// Damageable reports whether projectiles damage this tile.
func (t *Tile) Damageable() bool {
	return t.Health > 0
}

// Damage applies amount to a brick or home hit from direction from.
// A brick that drops below 1 health reverts to empty terrain.
// Returns true when a home tile was destroyed by this hit.
func (t *Tile) Damage(amount int, from Direction) (homeDestroyed bool) {
	if t.Health <= 0 || amount <= 0 {
		return false
	}
	t.Health -= amount
	switch t.Type {
	case TileBrick:
		if t.Health < 1 {
			*t = NewTile(TileNone)
			return false
		}
		t.Broken = from
	case TileHome:
		if t.Health < 1 {
			t.Health = 0
			return true
		}
	}
	return false
}
