package tanks

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/engine"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

// newTestGame resets a game with HOME pointed at an empty directory so no
// user config leaks into the run.
func newTestGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	tests := []struct {
		id    string
		title string
	}{
		{"tanks", "Tanks"},
		{"tanks_survival", "Tanks (Survival)"},
	}

	for _, tt := range tests {
		g, err := registry.Create(tt.id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", tt.id, err)
		}
		if g.ID() != tt.id {
			t.Errorf("ID() = %q, expected %q", g.ID(), tt.id)
		}
		if g.Title() != tt.title {
			t.Errorf("Title() = %q, expected %q", g.Title(), tt.title)
		}
	}
}

func TestRulesFromDefaultConfig(t *testing.T) {
	rules, err := RulesFromConfig(config.DefaultTanksConfig())
	if err != nil {
		t.Fatalf("RulesFromConfig() failed: %v", err)
	}
	if !reflect.DeepEqual(rules, engine.DefaultRules()) {
		t.Errorf("RulesFromConfig(defaults) = %+v, expected %+v", rules, engine.DefaultRules())
	}
}

func TestRulesFromConfigUnknownNames(t *testing.T) {
	cfg := config.DefaultTanksConfig()
	cfg.Archetypes["boss"] = config.TankConfig{Health: 9}
	cfg.Archetypes["high_speed"] = config.TankConfig{Health: 7, Ammo: 1, Attack: 1, MoveSpeed: 6}
	cfg.Powerups["nuke"] = 3
	cfg.Scoring.Points["boss"] = 1000

	rules, err := RulesFromConfig(cfg)
	if err == nil {
		t.Fatal("RulesFromConfig() should report unknown names")
	}
	for _, name := range []string{"boss", "nuke"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q should mention %q", err, name)
		}
	}
	if got := rules.Archetypes[engine.ArchetypeHighSpeed].Health; got != 7 {
		t.Errorf("high_speed health = %d, expected 7", got)
	}
}

func TestRulesFromConfigRejectsNonPositiveTiles(t *testing.T) {
	defaults := engine.DefaultRules()
	tests := []struct {
		name        string
		brick, home int
		mention     string
	}{
		{"zero brick", 0, 3, "brick_health"},
		{"negative brick", -1, 3, "brick_health"},
		{"zero home", 2, 0, "home_health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultTanksConfig()
			cfg.Tiles = config.TilesConfig{BrickHealth: tt.brick, HomeHealth: tt.home}

			rules, err := RulesFromConfig(cfg)
			if err == nil || !strings.Contains(err.Error(), tt.mention) {
				t.Fatalf("RulesFromConfig() error = %v, expected one mentioning %s", err, tt.mention)
			}
			if rules.BrickHealth < 1 || rules.HomeHealth < 1 {
				t.Errorf("tile health = brick %d home %d, expected both positive", rules.BrickHealth, rules.HomeHealth)
			}
			if tt.brick < 1 && rules.BrickHealth != defaults.BrickHealth {
				t.Errorf("BrickHealth = %d, expected default %d", rules.BrickHealth, defaults.BrickHealth)
			}
			if tt.home < 1 && rules.HomeHealth != defaults.HomeHealth {
				t.Errorf("HomeHealth = %d, expected default %d", rules.HomeHealth, defaults.HomeHealth)
			}
		})
	}
}

func TestCommandsFor(t *testing.T) {
	tests := []struct {
		name     string
		in       core.InputFrame
		expected engine.Commands
	}{
		{"empty", frame(), 0},
		{"up", frame(core.ActionUp), engine.CmdMoveUp},
		{"fire and move", frame(core.ActionLeft, core.ActionFire), engine.CmdMoveLeft | engine.CmdShoot},
		{"confirm", frame(core.ActionConfirm), engine.CmdConfirm},
		{"pause", frame(core.ActionPause), engine.CmdPause},
		{"quit is platform only", frame(core.ActionQuit), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := commandsFor(tt.in); got != tt.expected {
				t.Errorf("commandsFor() = %b, expected %b", got, tt.expected)
			}
		})
	}
}

func TestResetStartsOnTitle(t *testing.T) {
	g := newTestGame(t, New(), 1)

	if g.Simulation().Scene() != engine.SceneTitle {
		t.Fatalf("scene = %v, expected title", g.Simulation().Scene())
	}

	res := g.Step(frame(core.ActionConfirm))
	if g.Simulation().Scene() != engine.ScenePlay {
		t.Fatalf("scene after confirm = %v, expected play", g.Simulation().Scene())
	}
	if res.State.StageName != "Outpost" || res.State.Stage != 0 {
		t.Errorf("State = %+v, expected stage 0 Outpost", res.State)
	}
	if res.State.GameOver || res.State.StageClear || res.State.Paused {
		t.Errorf("State flags = %+v, expected all false", res.State)
	}

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Error("State().Paused should be true after pause")
	}
}

func TestRenderTitle(t *testing.T) {
	g := newTestGame(t, New(), 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Tanks", "Stage 1: Outpost", "Press ENTER to start"} {
		if !strings.Contains(out, want) {
			t.Errorf("title screen missing %q", want)
		}
	}
}

func TestRenderArena(t *testing.T) {
	g := newTestGame(t, New(), 1)
	g.Step(frame(core.ActionConfirm))

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if row := screen.Row(0); !strings.Contains(row, "Stage 1/3 Outpost") || !strings.Contains(row, "Score: 0") {
		t.Errorf("HUD row 0 = %q", row)
	}
	if row := screen.Row(1); !strings.Contains(row, "HP 3  Ammo 30") || !strings.Contains(row, "Home OK") {
		t.Errorf("HUD row 1 = %q", row)
	}

	// 13x13 arena, two columns per cell, centered below the HUD.
	originX, originY := (80-26)/2, 2+(22-13)/2
	cellText := func(x, y int) string {
		return string([]rune(screen.Row(originY + x))[originX+y*cellWidth : originX+y*cellWidth+cellWidth])
	}

	tests := []struct {
		name     string
		x, y     int
		expected string
	}{
		{"player", 12, 4, "/\\"},
		{"enemy", 0, 0, "\\/"},
		{"brick", 12, 5, "▓▓"},
		{"home", 11, 6, "<>"},
		{"stone", 3, 6, "██"},
		{"powerup spawner", 6, 6, ".."},
		{"empty", 12, 0, "  "},
	}
	for _, tt := range tests {
		if got := cellText(tt.x, tt.y); got != tt.expected {
			t.Errorf("%s at (%d,%d) = %q, expected %q", tt.name, tt.x, tt.y, got, tt.expected)
		}
	}

	if c := screen.GetCell(originX+4*cellWidth, originY+12); c.Color != core.ColorBrightGreen {
		t.Errorf("player color = %v, expected bright green", c.Color)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, New(), 1)
	g.Step(frame(core.ActionConfirm))

	screen := core.NewScreen(20, 8)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected size warning, got:\n%s", screen.String())
	}
}

func TestRenderPaused(t *testing.T) {
	g := newTestGame(t, New(), 1)
	g.Step(frame(core.ActionConfirm))
	g.Step(frame(core.ActionPause))

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused frame should show PAUSED")
	}
}

func TestSurvivalUnlimitedRespawns(t *testing.T) {
	g := newTestGame(t, NewSurvival(), 1)

	if g.rules.EnemySpawnBudget >= 0 {
		t.Errorf("EnemySpawnBudget = %d, expected unlimited", g.rules.EnemySpawnBudget)
	}
	if g.cfg.Difficulty.Progression.Type != "time" {
		t.Errorf("progression = %q, expected time", g.cfg.Difficulty.Progression.Type)
	}
}

func TestEnemyCadence(t *testing.T) {
	g := newTestGame(t, New(), 1)

	// Defaults: 6s base, halved at stage 5, floor of 2s.
	tests := []struct {
		stage    int
		expected int
	}{
		{0, 360},
		{5, 180},
		{50, 180},
	}
	for _, tt := range tests {
		if got := g.enemyCadence(tt.stage); got != tt.expected {
			t.Errorf("enemyCadence(%d) = %d, expected %d", tt.stage, got, tt.expected)
		}
	}
}

func TestTickRateRescalesTimers(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	defaults := engine.DefaultRules()

	tests := []struct {
		rate       int
		projectile int
		shield     int
		cadence    int
	}{
		{60, defaults.ProjectileInterval, defaults.PowerupIntensity[engine.PowerupShield], 360},
		{30, 2, 150, 180},
		{120, 8, 600, 720},
	}

	for _, tt := range tests {
		g := New()
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: tt.rate, Seed: 1})
		if g.rules.TicksPerSecond != tt.rate {
			t.Errorf("rate %d: TicksPerSecond = %d, expected %d", tt.rate, g.rules.TicksPerSecond, tt.rate)
		}
		if g.rules.ProjectileInterval != tt.projectile {
			t.Errorf("rate %d: ProjectileInterval = %d, expected %d", tt.rate, g.rules.ProjectileInterval, tt.projectile)
		}
		if got := g.rules.PowerupIntensity[engine.PowerupShield]; got != tt.shield {
			t.Errorf("rate %d: shield = %d, expected %d", tt.rate, got, tt.shield)
		}
		if got := g.enemyCadence(0); got != tt.cadence {
			t.Errorf("rate %d: enemyCadence(0) = %d, expected %d", tt.rate, got, tt.cadence)
		}
	}
}

func TestDifficultyPreset(t *testing.T) {
	SetDifficultyPreset("easy")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g := newTestGame(t, New(), 1)
	if g.rules.Player.Health != 5 || g.rules.Player.Ammo != 50 {
		t.Errorf("easy player = %+v, expected health 5 ammo 50", g.rules.Player)
	}
	if g.rules.HomeHealth != 5 {
		t.Errorf("easy HomeHealth = %d, expected 5", g.rules.HomeHealth)
	}
}

func TestCustomStagesDir(t *testing.T) {
	dir := t.TempDir()
	stage := "id: arena\nname: Tiny Arena\ntiles:\n  - [10, 0, 0]\n  - [0, 0, 0]\n  - [0, 1, 6]\n"
	if err := os.WriteFile(filepath.Join(dir, "arena.yaml"), []byte(stage), 0o644); err != nil {
		t.Fatal(err)
	}

	SetStagesDir(dir)
	t.Cleanup(func() { SetStagesDir("") })

	g := newTestGame(t, New(), 1)
	if g.Simulation().StageCount() != 1 || g.Simulation().StageName() != "Tiny Arena" {
		t.Errorf("campaign = %d stages starting %q, expected Tiny Arena only",
			g.Simulation().StageCount(), g.Simulation().StageName())
	}
}

func TestBadStagesDirFallsBack(t *testing.T) {
	SetStagesDir(filepath.Join(t.TempDir(), "missing"))
	t.Cleanup(func() { SetStagesDir("") })

	g := newTestGame(t, New(), 1)
	if g.Simulation().StageCount() != 3 {
		t.Errorf("StageCount() = %d, expected the 3 built-in stages", g.Simulation().StageCount())
	}
}

func TestDeterminism(t *testing.T) {
	script := []core.InputFrame{
		frame(core.ActionConfirm),
		frame(core.ActionRight),
		frame(core.ActionUp, core.ActionFire),
		frame(),
		frame(core.ActionLeft),
	}

	run := func() uint64 {
		g := newTestGame(t, New(), 42)
		for i := range 1200 {
			g.Step(script[i%len(script)])
		}
		snap := g.Simulation().Snapshot()
		return snap.Hash()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed produced different hashes: %x vs %x", a, b)
	}
}
