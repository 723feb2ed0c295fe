package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/storage"
)

func TestFormatTicks(t *testing.T) {
	tests := []struct {
		ticks, rate int
		expected    string
	}{
		{0, 60, "0:00.0"},
		{90, 60, "0:01.5"},
		{3600, 60, "1:00.0"},
		{4530, 60, "1:15.5"},
		{300, 30, "0:10.0"},
		{60, 0, "0:01.0"},
	}

	for _, tt := range tests {
		if got := formatTicks(tt.ticks, tt.rate); got != tt.expected {
			t.Errorf("formatTicks(%d, %d) = %q, expected %q", tt.ticks, tt.rate, got, tt.expected)
		}
	}
}

func TestScoreboardViews(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveRun(storage.ScoreEntry{GameID: "tanks", Player: "ann", Score: 700, Stage: 1, Kills: 9}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.RecordStageClear(storage.StageClear{GameID: "tanks", Player: "ann", StageName: "Outpost", Score: 500, Ticks: 1830}); err != nil {
		t.Fatalf("RecordStageClear() failed: %v", err)
	}

	var m tea.Model = NewScoreboardModel(store, 100, 30)
	view := m.View()
	for _, want := range []string{"High scores", "700", "ann", "Most kills"} {
		if !strings.Contains(view, want) {
			t.Errorf("scores view missing %q", want)
		}
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	view = m.View()
	for _, want := range []string{"Fastest clears", "Outpost", "0:30.5"} {
		if !strings.Contains(view, want) {
			t.Errorf("clears view missing %q", want)
		}
	}

	// The survival mode has no records.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if view := m.View(); !strings.Contains(view, "No stages cleared yet") {
		t.Errorf("survival clears view should be empty, got:\n%s", view)
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	tests := []struct {
		name      string
		msg       tea.KeyMsg
		goingBack bool
		quitting  bool
	}{
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, true, false},
		{"b", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")}, true, false},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := NewScoreboardModel(nil, 80, 24).Update(tt.msg)
			m := next.(ScoreboardModel)
			if m.IsGoingBack() != tt.goingBack {
				t.Errorf("IsGoingBack() = %v, expected %v", m.IsGoingBack(), tt.goingBack)
			}
			if m.IsQuitting() != tt.quitting {
				t.Errorf("IsQuitting() = %v, expected %v", m.IsQuitting(), tt.quitting)
			}
		})
	}
}
