package engine

import (
	"encoding/binary"
	"hash/fnv"
)

// EntityView is a read-only copy of a tank or projectile.
type EntityView struct {
	ID           EntityID
	Kind         Kind
	Pos          Point
	Facing       Direction
	Health       int
	Alive        bool
	Invulnerable int

	// Tanks only.
	Ammo      int
	Archetype Archetype

	// Projectiles only.
	Owner     Owner
	Intensity int
}

func (t *Tank) view() EntityView {
	return EntityView{
		ID:           t.ID,
		Kind:         t.Kind,
		Pos:          t.Pos,
		Facing:       t.Facing,
		Health:       t.Health,
		Alive:        t.Alive,
		Invulnerable: t.Invulnerable,
		Ammo:         t.Ammo,
		Archetype:    t.Archetype,
	}
}

func (p *Projectile) view() EntityView {
	return EntityView{
		ID:        p.ID,
		Kind:      KindProjectile,
		Pos:       p.Pos,
		Facing:    p.Facing,
		Health:    p.Health,
		Alive:     p.Alive,
		Owner:     p.Owner,
		Intensity: p.Intensity,
	}
}

// CellView is the read-only per-cell query result for presentation.
type CellView struct {
	Pos           Point
	Tile          Tile
	HasEntity     bool
	Entity        EntityView
	HasProjectile bool
	Projectile    EntityView
	Powerup       Powerup
}

// CellAt returns a snapshot of the cell at p.
// It fails with ErrOutOfBounds outside the grid and ErrStageNotLoaded before Play.
func (s *Simulation) CellAt(p Point) (CellView, error) {
	if s.grid == nil {
		return CellView{}, ErrStageNotLoaded
	}
	c, err := s.grid.Cell(p)
	if err != nil {
		return CellView{}, err
	}
	v := CellView{Pos: p, Tile: c.Tile, Powerup: c.Powerup}
	if c.Entity != NoEntity {
		v.HasEntity = true
		v.Entity = s.tankByID(c.Entity).view()
	}
	if c.Projectile != NoEntity {
		v.HasProjectile = true
		v.Projectile = s.projectileByID(c.Projectile).view()
	}
	return v, nil
}

// Size returns the grid dimensions, or zeros before a stage is loaded.
func (s *Simulation) Size() (rows, cols int) {
	if s.grid == nil {
		return 0, 0
	}
	return s.grid.Rows, s.grid.Cols
}

// Scene returns the current scene.
func (s *Simulation) Scene() Scene { return s.scene }

// Score returns the current score.
func (s *Simulation) Score() int { return s.score }

// StageIndex returns the zero-based index of the current stage.
func (s *Simulation) StageIndex() int { return s.stageIndex }

// StageName returns the name of the current stage.
func (s *Simulation) StageName() string { return s.currentStage().Name }

// StageCount returns the number of stages in the campaign.
func (s *Simulation) StageCount() int { return len(s.stages) }

// Ticks returns the number of ticks processed.
func (s *Simulation) Ticks() uint64 { return s.ticks }

// PlayTicks returns the unpaused Play ticks spent on the current stage.
func (s *Simulation) PlayTicks() int { return s.playTicks }

// Paused reports whether Play is paused.
func (s *Simulation) Paused() bool { return s.paused }

// HomeActive reports whether the home objective still stands.
func (s *Simulation) HomeActive() bool { return s.homeActive }

// Kills returns the number of enemies destroyed by the player this run.
func (s *Simulation) Kills() int { return s.kills }

// Player returns the player tank, if a stage has been loaded.
func (s *Simulation) Player() (EntityView, bool) {
	if s.player == nil {
		return EntityView{}, false
	}
	return s.player.view(), true
}

// Enemies returns the enemy roster.
func (s *Simulation) Enemies() []EntityView {
	out := make([]EntityView, 0, len(s.enemies))
	for _, e := range s.enemies {
		out = append(out, e.view())
	}
	return out
}

// Projectiles returns every projectile in flight.
func (s *Simulation) Projectiles() []EntityView {
	out := make([]EntityView, 0, len(s.projectiles))
	for _, p := range s.projectiles {
		out = append(out, p.view())
	}
	return out
}

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick        uint64
	Scene       Scene
	Stage       int
	Score       int
	HomeActive  bool
	PlayerX     int
	PlayerY     int
	PlayerDir   Direction
	PlayerHP    int
	PlayerAmmo  int
	Enemies     int
	Projectiles int
	CellData    []int // Flattened per cell: tile type, tile health, entity, projectile, powerup
}

// Snapshot returns the current game snapshot.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        s.ticks,
		Scene:       s.scene,
		Stage:       s.stageIndex,
		Score:       s.score,
		HomeActive:  s.homeActive,
		Enemies:     len(s.enemies),
		Projectiles: len(s.projectiles),
	}
	if s.player != nil {
		snap.PlayerX = s.player.Pos.X
		snap.PlayerY = s.player.Pos.Y
		snap.PlayerDir = s.player.Facing
		snap.PlayerHP = s.player.Health
		snap.PlayerAmmo = s.player.Ammo
	}
	if s.grid != nil {
		snap.CellData = make([]int, 0, s.grid.Rows*s.grid.Cols*5)
		s.grid.Each(func(_ Point, c *Cell) {
			snap.CellData = append(snap.CellData,
				int(c.Tile.Type), c.Tile.Health, int(c.Entity), int(c.Projectile), int(c.Powerup.Kind))
		})
	}
	return snap
}

// Hash returns an FNV-1a hash of the snapshot.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v)) //#nosec G115 -- hash computation
		h.Write(buf[:])
	}

	put(int64(snap.Tick)) //#nosec G115 -- hash computation
	put(int64(snap.Scene))
	put(int64(snap.Stage))
	put(int64(snap.Score))
	if snap.HomeActive {
		put(1)
	} else {
		put(0)
	}
	put(int64(snap.PlayerX))
	put(int64(snap.PlayerY))
	put(int64(snap.PlayerDir))
	put(int64(snap.PlayerHP))
	put(int64(snap.PlayerAmmo))
	put(int64(snap.Enemies))
	put(int64(snap.Projectiles))
	for _, v := range snap.CellData {
		put(int64(v))
	}
	return h.Sum64()
}
