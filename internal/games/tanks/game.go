// Package tanks adapts the tank battle simulation to the platform's game
// interface: it loads tuning and stages, maps input actions to commands,
// and draws the arena into the screen buffer.
package tanks

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/engine"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/stages"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

// Mode selects the ruleset a Game plays.
type Mode int

const (
	ModeCampaign Mode = iota // Limited respawns, stages end
	ModeSurvival             // Unlimited respawns, pressure grows with time
)

// survivalRampSeconds is how long survival takes to reach full difficulty.
const survivalRampSeconds = 300

// Options set from the CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	stagesDir        string
	startStage       int
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	if p, ok := config.ParsePreset(preset); ok && preset != "" {
		difficultyPreset = p
		return
	}
	difficultyPreset = ""
}

// SetStagesDir loads stages from dir instead of the built-in campaign.
func SetStagesDir(dir string) {
	stagesDir = dir
}

// SetStartStage begins every run at the given zero-based stage index.
func SetStartStage(i int) {
	startStage = max(0, i)
}

// SetLogger routes game and simulation logs to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements registry.Game on top of engine.Simulation.
type Game struct {
	mode       Mode
	runtime    core.RuntimeConfig
	cfg        config.TanksConfig
	rules      engine.Rules
	difficulty *config.DifficultyManager
	sim        *engine.Simulation
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewSurvival creates a survival game.
func NewSurvival() *Game {
	return &Game{mode: ModeSurvival}
}

func init() {
	registry.Register("tanks", func() registry.Game {
		return New()
	})
	registry.Register("tanks_survival", func() registry.Game {
		return NewSurvival()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeSurvival {
		return "tanks_survival"
	}
	return "tanks"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSurvival {
		return "Tanks (Survival)"
	}
	return "Tanks"
}

// Reset loads config and stages and starts a new run on the title scene.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadTanks(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultTanksConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTanksPreset(&cfg, difficultyPreset)
	}
	retime(&cfg, runtime.TickRate)
	if g.mode == ModeSurvival {
		cfg.Spawns.EnemyBudget = -1
		cfg.Difficulty.Progression = config.ProgressionConfig{
			Type:  "time",
			MaxAt: survivalRampSeconds * max(1, cfg.Timing.TicksPerSecond),
		}
	}
	g.cfg = cfg

	rules, err := RulesFromConfig(cfg)
	if err != nil {
		logger.Warn("ignoring config entries", "err", err)
	}
	g.rules = rules
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	sim, err := engine.New(loadCampaign(),
		engine.WithRules(rules),
		engine.WithSeed(runtime.Seed),
		engine.WithLogger(logger),
		engine.WithStartStage(startStage),
		engine.WithEnemySpawnCadence(g.enemyCadence),
	)
	if err != nil {
		// Built-in stages are validated by tests; reaching this is a packaging bug.
		panic("tanks: " + err.Error())
	}
	g.sim = sim
	logger.Info("run started", "mode", g.ID(), "seed", runtime.Seed, "stages", sim.StageCount())
}

// loadCampaign returns the configured stages, falling back to the built-in set.
func loadCampaign() []engine.Stage {
	list, err := stages.Resolve(stagesDir)
	if err != nil && stagesDir != "" {
		logger.Error("cannot load stages, using built-in campaign", "dir", stagesDir, "err", err)
		list, err = stages.Resolve("")
	}
	if err != nil {
		panic("tanks: built-in stages: " + err.Error())
	}
	return stages.Campaign(list)
}

// enemyCadence shortens the enemy spawn interval as difficulty rises.
func (g *Game) enemyCadence(stageIndex int) int {
	score, ticks := 0, 0
	if g.sim != nil {
		score, ticks = g.sim.Score(), g.sim.PlayTicks()
	}
	return g.difficulty.SpawnInterval(
		float64(g.rules.EnemySpawnSeconds),
		g.rules.TicksPerSecond,
		stageIndex, score, ticks,
	)
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sim == nil {
		return core.StepResult{State: g.State()}
	}
	g.sim.Tick(commandsFor(in))
	return core.StepResult{State: g.State()}
}

// commandsFor translates platform actions into simulation commands.
func commandsFor(in core.InputFrame) engine.Commands {
	var cmds engine.Commands
	bindings := []struct {
		action core.Action
		cmd    engine.Commands
	}{
		{core.ActionUp, engine.CmdMoveUp},
		{core.ActionDown, engine.CmdMoveDown},
		{core.ActionLeft, engine.CmdMoveLeft},
		{core.ActionRight, engine.CmdMoveRight},
		{core.ActionFire, engine.CmdShoot},
		{core.ActionConfirm, engine.CmdConfirm},
		{core.ActionPause, engine.CmdPause},
	}
	for _, b := range bindings {
		if in.Has(b.action) {
			cmds |= b.cmd
		}
	}
	return cmds
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	scene := g.sim.Scene()
	return core.GameState{
		Score:      g.sim.Score(),
		GameOver:   scene == engine.SceneGameOver,
		Paused:     g.sim.Paused(),
		Stage:      g.sim.StageIndex(),
		StageName:  g.sim.StageName(),
		StageClear: scene == engine.SceneStageClear,
	}
}

// Kills returns the enemies destroyed by the player this run.
func (g *Game) Kills() int {
	if g.sim == nil {
		return 0
	}
	return g.sim.Kills()
}

// StageTicks returns the play ticks spent on the current stage.
func (g *Game) StageTicks() int {
	if g.sim == nil {
		return 0
	}
	return g.sim.PlayTicks()
}

// Simulation exposes the underlying engine for snapshots and debugging.
func (g *Game) Simulation() *engine.Simulation {
	return g.sim
}
