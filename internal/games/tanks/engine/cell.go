package engine

// Cell is everything at one grid coordinate. Entity and Projectile are
// non-owning handles into the simulation's rosters.
type Cell struct {
	Tile       Tile
	Entity     EntityID
	Projectile EntityID
	Powerup    Powerup
}

// Occupied reports whether a tank stands on the cell.
func (c *Cell) Occupied() bool {
	return c.Entity != NoEntity
}

// Traversable reports whether a tank may move onto the cell.
func (c *Cell) Traversable() bool {
	return c.Tile.Type.Movable() && !c.Occupied()
}
