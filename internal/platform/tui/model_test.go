package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
	_ "github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// scriptedGame replays a fixed sequence of states, one per Step.
type scriptedGame struct {
	states []core.GameState
	step   int
	inputs []core.InputFrame
}

func (g *scriptedGame) ID() string               { return "scripted" }
func (g *scriptedGame) Title() string            { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) { g.step = 0 }
func (g *scriptedGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) Kills() int               { return 4 }
func (g *scriptedGame) StageTicks() int          { return 900 }
func (g *scriptedGame) State() core.GameState    { return g.states[min(g.step, len(g.states)-1)] }
func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	g.step++
	return core.StepResult{State: g.State()}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	next, _ := m.Update(TickMsg(time.Now()))
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, expected GameModel", next)
	}
	return gm
}

func TestGameModelRecordsRun(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{states: []core.GameState{
		{},
		{Score: 100, Stage: 0, StageName: "Outpost"},
		{Score: 600, Stage: 0, StageName: "Outpost", StageClear: true},
		{Score: 600, Stage: 0, StageName: "Outpost", StageClear: true},
		{Score: 600, Stage: 1, StageName: "River"},
		{Score: 700, Stage: 1, StageName: "River", GameOver: true},
		{Score: 700, Stage: 1, StageName: "River", GameOver: true},
	}}

	m := NewGameModel(game, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, Options{
		Store:  store,
		Player: "ann",
	})
	for range len(game.states) {
		m = tick(t, m)
	}

	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(scores))
	}
	if s := scores[0]; s.Score != 700 || s.Stage != 1 || s.Kills != 4 || s.Player != "ann" {
		t.Errorf("saved run = %+v, expected score 700 stage 1 kills 4 by ann", s)
	}

	clears, err := store.FastestClears("scripted")
	if err != nil {
		t.Fatalf("FastestClears() failed: %v", err)
	}
	if len(clears) != 1 {
		t.Fatalf("recorded %d clears, expected 1", len(clears))
	}
	if c := clears[0]; c.StageName != "Outpost" || c.Ticks != 900 || c.Score != 600 {
		t.Errorf("clear = %+v, expected Outpost in 900 ticks with 600 points", c)
	}
}

func TestGameModelZeroScoreNotSaved(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{states: []core.GameState{{}, {GameOver: true}}}

	m := NewGameModel(game, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}, Options{Store: store})
	m = tick(t, m)
	tick(t, m)

	if high, _ := store.HighScore("scripted"); high != 0 {
		t.Errorf("HighScore() = %d, expected nothing saved", high)
	}
}

func TestGameModelForwardsInput(t *testing.T) {
	game := &scriptedGame{states: []core.GameState{{}}}
	m := NewGameModel(game, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}, Options{})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = next.(GameModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(GameModel)
	m = tick(t, m)
	tick(t, m)

	if len(game.inputs) != 2 {
		t.Fatalf("game stepped %d times, expected 2", len(game.inputs))
	}
	if !game.inputs[0].Has(core.ActionLeft) || !game.inputs[0].Has(core.ActionFire) {
		t.Error("first step should see left and fire")
	}
	if !game.inputs[1].Empty() {
		t.Error("input should be cleared after each tick")
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	tests := []struct {
		name     string
		state    core.GameState
		expected bool
	}{
		{"playing", core.GameState{}, false},
		{"paused", core.GameState{Paused: true}, true},
		{"game over", core.GameState{GameOver: true}, true},
		{"stage clear", core.GameState{StageClear: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &scriptedGame{states: []core.GameState{tt.state}}
			m := NewGameModel(game, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}, Options{})
			m = tick(t, m)

			next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
			if got := next.(GameModel).BackToMenu(); got != tt.expected {
				t.Errorf("BackToMenu() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestGameModelQuit(t *testing.T) {
	game := &scriptedGame{states: []core.GameState{{}}}
	m := NewGameModel(game, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}, Options{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !next.(GameModel).IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("q should return tea.Quit")
	}
	if next.(GameModel).View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestSessionMenuStartsGame(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	var m tea.Model = NewSessionModel(cfg, Options{Store: openStore(t)})

	if view := m.View(); !strings.Contains(view, "Tanks") || !strings.Contains(view, "Tanks (Survival)") {
		t.Fatalf("menu view missing modes:\n%s", view)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s := m.(SessionModel)
	if s.screen != screenGame || s.gameModel == nil {
		t.Fatal("enter should start the selected game")
	}
	if s.gameModel.game.ID() != "tanks" {
		t.Errorf("started %q, expected tanks", s.gameModel.game.ID())
	}
}

func TestSessionScoreboardAndBack(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveRun(storage.ScoreEntry{GameID: "tanks", Player: "bob", Score: 4321, Stage: 2, Kills: 7}); err != nil {
		t.Fatal(err)
	}

	var m tea.Model = NewSessionModel(core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}, Options{Store: store})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.(SessionModel).screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	if view := m.View(); !strings.Contains(view, "4321") || !strings.Contains(view, "bob") {
		t.Errorf("scoreboard should list the saved run:\n%s", view)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).screen != screenMenu {
		t.Error("esc should return to the menu")
	}
	if view := m.View(); !strings.Contains(view, "best 4321") {
		t.Errorf("menu should show the best score:\n%s", view)
	}
}
