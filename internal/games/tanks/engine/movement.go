package engine

import "fmt"

// AttemptMove moves the tank with handle id by (dx, dy) in Entity.Move
// convention. Exactly one of dx, dy should be non-zero. Illegal moves leave
// positions and the grid untouched but turn the tank toward the request.
// Returns true if the tank moved.
func (s *Simulation) AttemptMove(id EntityID, dx, dy int) bool {
	t, ok := s.tanks[id]
	if !ok || s.grid == nil {
		return false
	}
	d, ok := facingForDelta(dx, dy)
	if !ok {
		return false
	}
	return s.attemptMove(t, d)
}

// facingForDelta mirrors the facing priority of Entity.Move.
func facingForDelta(dx, dy int) (Direction, bool) {
	switch {
	case dx > 0:
		return North, true
	case dx < 0:
		return South, true
	case dy > 0:
		return East, true
	case dy < 0:
		return West, true
	default:
		return North, false
	}
}

func (s *Simulation) attemptMove(t *Tank, d Direction) bool {
	if !t.Alive {
		return false
	}
	target := t.Pos.Step(d)
	if !s.grid.InBounds(target) {
		t.Facing = d
		return false
	}
	dst := s.grid.at(target)
	if !dst.Traversable() {
		t.Facing = d
		return false
	}

	if t.Kind == KindPlayer && dst.Powerup.Present() {
		s.pickup(t, dst)
	}

	src := s.grid.at(t.Pos)
	if src.Entity != t.ID {
		panic(fmt.Sprintf("tanks: tank %d at %v not registered in its cell (found %d)", t.ID, t.Pos, src.Entity))
	}
	src.Entity = NoEntity
	t.Move(d.MoveDelta())
	dst.Entity = t.ID
	return true
}

// pickup applies and consumes the powerup in c.
func (s *Simulation) pickup(t *Tank, c *Cell) {
	p := c.Powerup
	c.Powerup = Powerup{}
	p.applyTo(t)
	s.logger.Debug("powerup collected", "kind", p.Kind, "intensity", p.Intensity, "tank", t.ID)

	if p.Kind == PowerupWin {
		s.won = true
		ids := make([]EntityID, 0, len(s.enemies))
		for _, e := range s.enemies {
			ids = append(ids, e.ID)
		}
		for _, id := range ids {
			s.removeTank(id)
		}
	}
}
