package engine

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Scene is the stage lifecycle state.
type Scene uint8

const (
	SceneTitle Scene = iota
	ScenePlay
	SceneGameOver
	SceneStageClear
)

// String returns the name of the scene.
func (s Scene) String() string {
	switch s {
	case SceneTitle:
		return "title"
	case ScenePlay:
		return "play"
	case SceneGameOver:
		return "game_over"
	case SceneStageClear:
		return "stage_clear"
	default:
		return "unknown"
	}
}

// Commands is the set of discrete inputs for one tick.
type Commands uint8

const (
	CmdMoveUp Commands = 1 << iota
	CmdMoveDown
	CmdMoveLeft
	CmdMoveRight
	CmdShoot
	CmdConfirm // Advance from Title, GameOver or StageClear
	CmdPause
)

// Has reports whether every command in c is set.
func (cmds Commands) Has(c Commands) bool {
	return cmds&c == c
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithRules replaces the default tuning.
func WithRules(r Rules) Option {
	return func(s *Simulation) {
		s.rules = r
	}
}

// WithSeed seeds the enemy AI generator.
func WithSeed(seed int64) Option {
	return func(s *Simulation) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger routes simulation events to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStartStage begins the campaign at stage index i.
func WithStartStage(i int) Option {
	return func(s *Simulation) {
		if i > 0 {
			s.stageIndex = i
		}
	}
}

// WithEnemySpawnCadence overrides the enemy spawn interval per stage.
// fn receives the stage index and returns the interval in ticks.
func WithEnemySpawnCadence(fn func(stageIndex int) int) Option {
	return func(s *Simulation) {
		s.enemyCadence = fn
	}
}

// Simulation owns the grid, every entity, and the scene state machine.
// It is not safe for concurrent use; the driver calls Tick once per frame.
type Simulation struct {
	rules        Rules
	stages       []Stage
	rng          *rand.Rand
	logger       *log.Logger
	enemyCadence func(stageIndex int) int

	scene      Scene
	stageIndex int
	score      int
	ticks      uint64
	playTicks  int
	paused     bool
	homeActive bool
	won        bool // Win powerup collected; clears the stage on the next guard check
	kills      int

	sinceEnemySpawn int // Play ticks since the last enemy spawn check fired

	grid        *Grid
	nextID      EntityID
	player      *Tank
	carried     *TankStats
	enemies     []*Tank
	projectiles []*Projectile
	tanks       map[EntityID]*Tank
	shots       map[EntityID]*Projectile

	enemySpawns   []enemySpawn
	powerupSpawns []powerupSpawn
}

type enemySpawn struct {
	pos       Point
	archetype Archetype
	budget    int
}

type powerupSpawn struct {
	pos      Point
	template Powerup
}

// New creates a simulation in the Title scene. Every stage is validated up front.
func New(stages []Stage, opts ...Option) (*Simulation, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}
	for i, st := range stages {
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
	}

	s := &Simulation{
		rules:  DefaultRules(),
		stages: stages,
		rng:    rand.New(rand.NewSource(1)),
		logger: log.New(io.Discard),
		scene:  SceneTitle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rules.TicksPerSecond <= 0 {
		s.rules.TicksPerSecond = DefaultRules().TicksPerSecond
	}
	if s.rules.AIRollRange <= 0 {
		s.rules.AIRollRange = DefaultRules().AIRollRange
	}
	return s, nil
}

// Tick advances the simulation by one fixed step.
func (s *Simulation) Tick(cmds Commands) {
	s.ticks++

	switch s.scene {
	case SceneTitle:
		if cmds.Has(CmdConfirm) {
			s.enterPlay()
		}
	case SceneGameOver:
		if cmds.Has(CmdConfirm) {
			// Restart the same stage with a fresh player.
			s.carried = nil
			s.score = 0
			s.kills = 0
			s.setScene(SceneTitle)
		}
	case SceneStageClear:
		if cmds.Has(CmdConfirm) {
			s.stageIndex++
			s.enterPlay()
		}
	case ScenePlay:
		s.tickPlay(cmds)
	}
}

// tickPlay runs one Play step: guards first, then input, AI, spawns,
// projectile advancement and hit resolution.
func (s *Simulation) tickPlay(cmds Commands) {
	if cmds.Has(CmdPause) {
		s.paused = !s.paused
	}
	if s.paused {
		return
	}

	if !s.player.Alive || !s.homeActive {
		s.setScene(SceneGameOver)
		return
	}
	if s.won || len(s.enemies) == 0 {
		s.clearStage()
		return
	}

	s.playTicks++
	s.player.tickInvulnerability()
	for _, e := range s.enemies {
		e.tickInvulnerability()
	}

	s.handlePlayerInput(cmds)
	s.updateEnemies()
	s.spawnEnemies()
	s.spawnPowerups()
	s.advanceProjectiles()
	s.resolveTankHits()
	s.reapEnemies()
}

func (s *Simulation) handlePlayerInput(cmds Commands) {
	switch {
	case cmds.Has(CmdMoveUp):
		s.attemptMove(s.player, North)
	case cmds.Has(CmdMoveDown):
		s.attemptMove(s.player, South)
	case cmds.Has(CmdMoveLeft):
		s.attemptMove(s.player, West)
	case cmds.Has(CmdMoveRight):
		s.attemptMove(s.player, East)
	}
	if cmds.Has(CmdShoot) {
		s.shoot(s.player, OwnerPlayer)
	}
}

func (s *Simulation) setScene(next Scene) {
	if s.scene == next {
		return
	}
	s.logger.Info("scene changed", "from", s.scene, "to", next, "stage", s.stageIndex, "score", s.score)
	s.scene = next
}

// currentStage returns the stage for the current index, cycling past the end.
func (s *Simulation) currentStage() Stage {
	return s.stages[s.stageIndex%len(s.stages)]
}

// enterPlay rebuilds the grid and rosters from the current stage table.
func (s *Simulation) enterPlay() {
	stage := s.currentStage()
	rows, cols := stage.Size()

	s.grid = NewGrid(rows, cols)
	s.enemies = nil
	s.projectiles = nil
	s.tanks = make(map[EntityID]*Tank)
	s.shots = make(map[EntityID]*Projectile)
	s.enemySpawns = nil
	s.powerupSpawns = nil
	s.homeActive = true
	s.won = false
	s.playTicks = 0
	s.sinceEnemySpawn = 0
	s.paused = false

	stats := s.rules.Player
	if s.carried != nil {
		stats = *s.carried
	}

	for x, row := range stage.Tiles {
		for y, code := range row {
			p := Point{X: x, Y: y}
			s.grid.at(p).Tile = s.rules.terrainForCode(code)

			switch {
			case code == CodePlayer:
				s.player = newTank(s.newID(), KindPlayer, p, North, stats)
				s.tanks[s.player.ID] = s.player
				s.grid.at(p).Entity = s.player.ID
			default:
				if a, ok := enemyCodeArchetype(code); ok {
					s.enemySpawns = append(s.enemySpawns, enemySpawn{pos: p, archetype: a, budget: s.rules.EnemySpawnBudget})
					s.spawnEnemy(p, a)
				}
				if k, ok := powerupCodeKind(code); ok {
					s.powerupSpawns = append(s.powerupSpawns, powerupSpawn{
						pos:      p,
						template: Powerup{Kind: k, Intensity: s.rules.PowerupIntensity[k]},
					})
				}
			}
		}
	}

	s.carried = nil
	s.logger.Info("stage loaded",
		"stage", s.stageIndex,
		"name", stage.Name,
		"rows", rows,
		"cols", cols,
		"enemies", len(s.enemies),
	)
	s.setScene(ScenePlay)
}

// clearStage awards the bonus and stores the player's stats for the next stage.
func (s *Simulation) clearStage() {
	s.score += s.rules.StageClearBonus
	s.carried = &TankStats{
		Health:       s.player.Health,
		Ammo:         s.player.Ammo,
		AttackDamage: s.player.AttackDamage,
		MoveSpeed:    s.player.MoveSpeed,
	}
	s.setScene(SceneStageClear)
}

func (s *Simulation) newID() EntityID {
	s.nextID++
	return s.nextID
}
