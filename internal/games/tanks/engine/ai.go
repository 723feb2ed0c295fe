package engine

// AI roll outcomes. Rolls at or above aiShoot+1 do nothing.
const (
	aiMoveUp = iota
	aiMoveDown
	aiMoveLeft
	aiMoveRight
	aiShoot
)

// updateEnemies gives each enemy whose cooldown elapsed one random action.
func (s *Simulation) updateEnemies() {
	tps := s.rules.TicksPerSecond
	for _, e := range s.enemies {
		if !e.Alive {
			continue
		}
		e.cooldown--
		if e.cooldown > 0 {
			continue
		}
		e.cooldown = e.turnInterval(tps)

		switch s.rng.Intn(s.rules.AIRollRange) {
		case aiMoveUp:
			s.attemptMove(e, North)
		case aiMoveDown:
			s.attemptMove(e, South)
		case aiMoveLeft:
			s.attemptMove(e, West)
		case aiMoveRight:
			s.attemptMove(e, East)
		case aiShoot:
			s.shoot(e, OwnerEnemy)
		}
	}
}
