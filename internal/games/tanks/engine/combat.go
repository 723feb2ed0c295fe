package engine

import "fmt"

// Shoot fires a projectile from the tank with handle id, subject to the
// usual ammo and one-shot-in-flight rules.
func (s *Simulation) Shoot(id EntityID) {
	t, ok := s.tanks[id]
	if !ok || s.grid == nil {
		return
	}
	owner := OwnerEnemy
	if t.Kind == KindPlayer {
		owner = OwnerPlayer
	}
	s.shoot(t, owner)
}

// shoot consumes one ammo and spawns a projectile in front of t. Ammo is
// spent even when the front cell is off-grid and nothing is spawned.
func (s *Simulation) shoot(t *Tank, owner Owner) {
	if !t.Alive || t.Ammo <= 0 || s.hasShotInFlight(t.ID) {
		return
	}
	t.Ammo--

	front := t.Front()
	if !s.grid.InBounds(front) {
		return
	}

	cell := s.grid.at(front)
	if cell.Projectile != NoEntity {
		// Fired point-blank into another shot: both are gone.
		s.removeProjectile(cell.Projectile)
		return
	}

	p := &Projectile{
		Entity: Entity{
			ID:     s.newID(),
			Kind:   KindProjectile,
			Pos:    front,
			Facing: t.Facing,
			Health: 1,
			Alive:  true,
		},
		Owner:     owner,
		ShooterID: t.ID,
		Intensity: max(1, t.AttackDamage),
	}
	// Ready to advance on the tick it was fired so point-blank hits resolve at once.
	p.sinceAdvance = s.projectileInterval()

	s.projectiles = append(s.projectiles, p)
	s.shots[p.ID] = p
	cell.Projectile = p.ID
}

func (s *Simulation) hasShotInFlight(shooter EntityID) bool {
	for _, p := range s.projectiles {
		if p.ShooterID == shooter {
			return true
		}
	}
	return false
}

func (s *Simulation) projectileInterval() int {
	return max(1, s.rules.ProjectileInterval)
}

// advanceProjectiles moves every projectile whose throttle has elapsed.
// Head-on meetings are resolved first so neither shot reaches a tile or tank.
func (s *Simulation) advanceProjectiles() {
	interval := s.projectileInterval()

	var due []*Projectile
	for _, p := range s.projectiles {
		p.sinceAdvance++
		if p.sinceAdvance >= interval {
			due = append(due, p)
		}
	}
	if len(due) == 0 {
		return
	}

	// Projectile-meets-projectile, collected then applied.
	annihilated := make(map[EntityID]bool)
	for _, p := range due {
		if annihilated[p.ID] {
			continue
		}
		front := p.Front()
		if !s.grid.InBounds(front) {
			continue
		}
		other := s.grid.at(front).Projectile
		if other != NoEntity && other != p.ID && !annihilated[other] {
			annihilated[p.ID] = true
			annihilated[other] = true
		}
	}
	for id := range annihilated {
		s.removeProjectile(id)
	}

	for _, p := range due {
		if annihilated[p.ID] || !p.Alive {
			continue
		}
		p.sinceAdvance = 0
		s.stepProjectile(p)
	}
}

// stepProjectile performs one advance: tank hit, mirror reflection, tile
// damage, stone block, off-grid exit, or a move into the next cell.
func (s *Simulation) stepProjectile(p *Projectile) {
	cell := s.grid.at(p.Pos)

	if cell.Entity != NoEntity && cell.Entity != p.ShooterID {
		s.hitTank(s.tankByID(cell.Entity), p)
		return
	}

	if cell.Tile.Type == TileMirror {
		p.Facing = cell.Tile.Mirror.Reflect(p.Facing)
	}

	if cell.Tile.Damageable() {
		if cell.Tile.Damage(p.Intensity, p.Behind()) {
			s.homeActive = false
			s.logger.Info("home destroyed", "pos", p.Pos, "owner", p.Owner)
		}
		s.removeProjectile(p.ID)
		return
	}

	if cell.Tile.Type == TileStone {
		s.removeProjectile(p.ID)
		return
	}

	front := p.Front()
	if !s.grid.InBounds(front) {
		s.removeProjectile(p.ID)
		return
	}

	next := s.grid.at(front)
	if next.Projectile != NoEntity {
		// Another shot moved in earlier in this pass.
		s.removeProjectile(next.Projectile)
		s.removeProjectile(p.ID)
		return
	}
	cell.Projectile = NoEntity
	p.Move(p.Facing.MoveDelta())
	next.Projectile = p.ID
}

// resolveTankHits applies any projectile sharing a cell with a tank.
func (s *Simulation) resolveTankHits() {
	tanks := make([]*Tank, 0, len(s.enemies)+1)
	tanks = append(tanks, s.player)
	tanks = append(tanks, s.enemies...)

	for _, t := range tanks {
		if !t.Alive {
			continue
		}
		id := s.grid.at(t.Pos).Projectile
		if id == NoEntity {
			continue
		}
		p := s.projectileByID(id)
		if p.ShooterID == t.ID {
			continue
		}
		s.hitTank(t, p)
	}
}

// hitTank damages t with p and consumes p. Kills by the player score points.
func (s *Simulation) hitTank(t *Tank, p *Projectile) {
	killed := t.Damage(p.Intensity)
	s.removeProjectile(p.ID)
	if !killed {
		return
	}
	s.logger.Debug("tank destroyed", "id", t.ID, "kind", t.Kind, "archetype", t.Archetype, "by", p.Owner)
	if t.Kind == KindEnemy && p.Owner == OwnerPlayer {
		s.score += s.rules.EnemyPoints[t.Archetype]
		s.kills++
	}
}

// reapEnemies removes destroyed enemies after all passes of the tick.
func (s *Simulation) reapEnemies() {
	var dead []EntityID
	for _, e := range s.enemies {
		if !e.Alive {
			dead = append(dead, e.ID)
		}
	}
	for _, id := range dead {
		s.removeTank(id)
	}
}

func (s *Simulation) tankByID(id EntityID) *Tank {
	t, ok := s.tanks[id]
	if !ok {
		panic(fmt.Sprintf("tanks: cell references unknown tank %d", id))
	}
	return t
}

func (s *Simulation) projectileByID(id EntityID) *Projectile {
	p, ok := s.shots[id]
	if !ok {
		panic(fmt.Sprintf("tanks: cell references unknown projectile %d", id))
	}
	return p
}

// removeProjectile drops a projectile from the roster and clears its cell.
func (s *Simulation) removeProjectile(id EntityID) {
	p := s.projectileByID(id)
	p.Alive = false
	delete(s.shots, id)
	if c := s.grid.at(p.Pos); c.Projectile == id {
		c.Projectile = NoEntity
	}
	for i, q := range s.projectiles {
		if q.ID == id {
			s.projectiles = append(s.projectiles[:i], s.projectiles[i+1:]...)
			break
		}
	}
}

// removeTank drops an enemy from the roster and clears its cell.
// The player is never removed.
func (s *Simulation) removeTank(id EntityID) {
	t := s.tankByID(id)
	if t.Kind == KindPlayer {
		panic("tanks: attempted to remove the player tank")
	}
	delete(s.tanks, id)
	if c := s.grid.at(t.Pos); c.Entity == id {
		c.Entity = NoEntity
	}
	for i, e := range s.enemies {
		if e.ID == id {
			s.enemies = append(s.enemies[:i], s.enemies[i+1:]...)
			break
		}
	}
}
