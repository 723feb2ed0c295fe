package engine

// enemyInterval returns the enemy spawn cadence in ticks for the current stage.
func (s *Simulation) enemyInterval() int {
	if s.enemyCadence != nil {
		if n := s.enemyCadence(s.stageIndex); n > 0 {
			return n
		}
	}
	return s.rules.secondsToTicks(s.rules.EnemySpawnSeconds)
}

// spawnEnemies refills empty enemy spawners on the spawn cadence.
// The counter is compared against the current interval, so a shrinking
// interval fires early instead of waiting for a common multiple.
func (s *Simulation) spawnEnemies() {
	s.sinceEnemySpawn++
	if s.sinceEnemySpawn < s.enemyInterval() {
		return
	}
	s.sinceEnemySpawn = 0
	for i := range s.enemySpawns {
		sp := &s.enemySpawns[i]
		if sp.budget == 0 {
			continue
		}
		if s.grid.at(sp.pos).Occupied() {
			continue
		}
		s.spawnEnemy(sp.pos, sp.archetype)
		if sp.budget > 0 {
			sp.budget--
		}
	}
}

// spawnEnemy places a new enemy of archetype a at p, facing south.
func (s *Simulation) spawnEnemy(p Point, a Archetype) *Tank {
	e := newTank(s.newID(), KindEnemy, p, South, s.rules.archetypeStats(a))
	e.Archetype = a
	e.cooldown = e.turnInterval(s.rules.TicksPerSecond)

	s.enemies = append(s.enemies, e)
	s.tanks[e.ID] = e
	s.grid.at(p).Entity = e.ID
	s.logger.Debug("enemy spawned", "id", e.ID, "archetype", a, "pos", p)
	return e
}

// spawnPowerups refills empty powerup spawners on the spawn cadence.
func (s *Simulation) spawnPowerups() {
	if s.playTicks%s.rules.secondsToTicks(s.rules.PowerupSpawnSeconds) != 0 {
		return
	}
	for _, sp := range s.powerupSpawns {
		c := s.grid.at(sp.pos)
		if c.Powerup.Present() {
			continue
		}
		c.Powerup = sp.template
		s.logger.Debug("powerup spawned", "kind", sp.template.Kind, "pos", sp.pos)
	}
}
