package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

const (
	minWidthForSummary = 84  // Below this the summary panel is hidden
	summaryWidth       = 24  // Summary panel width including padding
	maxScores          = 100 // Runs loaded per mode
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// boardView selects which records the table shows.
type boardView int

const (
	viewScores boardView = iota
	viewClears
)

func (v boardView) String() string {
	if v == viewClears {
		return "Fastest clears"
	}
	return "High scores"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Toggle   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "scores/clears"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel lists finished runs and stage clear times per mode.
type ScoreboardModel struct {
	modes    []registry.GameInfo
	mode     int
	view     boardView
	store    *storage.Store
	tickRate int // Converts recorded clear ticks to time

	scores []storage.ScoreEntry
	clears []storage.StageClear

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard showing the first registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:    registry.List(),
		store:    store,
		tickRate: 60,
		help:     help.New(),
		keys:     DefaultScoreboardKeyMap(),
		width:    width,
		height:   height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) showSummary() bool {
	return m.width >= minWidthForSummary
}

func (m ScoreboardModel) columns() []table.Column {
	var cols []table.Column
	if m.view == viewClears {
		cols = []table.Column{
			{Title: "Stage", Width: 18},
			{Title: "Time", Width: 8},
			{Title: "Player", Width: 12},
			{Title: "Date", Width: 14},
		}
	} else {
		cols = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 8},
			{Title: "Stage", Width: 6},
			{Title: "Kills", Width: 6},
			{Title: "Player", Width: 12},
			{Title: "Date", Width: 14},
		}
	}

	avail := m.width - 4
	if m.showSummary() {
		avail -= summaryWidth + 2
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	if over := used - avail; over > 0 {
		for i := range cols {
			if cols[i].Title == "Player" {
				cols[i].Width = max(4, cols[i].Width-over)
			}
		}
	}
	return cols
}

func (m ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load fetches records for the current mode and view and refills the table.
func (m *ScoreboardModel) load() {
	m.scores, m.clears = nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.mode].ID
		var err error
		if m.view == viewClears {
			m.clears, err = m.store.FastestClears(id)
		} else {
			m.scores, err = m.store.TopScores(id, maxScores)
		}
		if err != nil {
			m.scores, m.clears = nil, nil
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	var rows []table.Row
	switch m.view {
	case viewClears:
		for _, c := range m.clears {
			rows = append(rows, table.Row{
				c.StageName,
				formatTicks(c.Ticks, m.tickRate),
				playerName(c.Player),
				c.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	default:
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprint(s.Score),
				fmt.Sprint(s.Stage + 1),
				fmt.Sprint(s.Kills),
				playerName(s.Player),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatTicks renders play ticks as m:ss.s at the given tick rate.
func formatTicks(ticks, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	tenths := ticks * 10 / tickRate
	return fmt.Sprintf("%d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}

func playerName(p string) string {
	if p == "" {
		return "-"
	}
	return p
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.cycleMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.cycleMode(-1)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.table = m.newTable()
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) cycleMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + delta + len(m.modes)) % len(m.modes)
	m.load()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText("S C O R E B O A R D", m.width)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.tabBar()))
	b.WriteString("\n\n")

	body := boardPanelStyle.Render(m.tableContent())
	if m.showSummary() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", boardPanelStyle.Width(summaryWidth).Render(m.summary()))
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabBar shows every mode followed by the active view.
func (m ScoreboardModel) tabBar() string {
	tabs := make([]string, 0, len(m.modes)+1)
	for i, g := range m.modes {
		if i == m.mode {
			tabs = append(tabs, boardActiveTab.Render(g.Title))
		} else {
			tabs = append(tabs, boardTabStyle.Render(g.Title))
		}
	}
	tabs = append(tabs, boardDimStyle.Render("| "+m.view.String()))
	return lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
}

// summary aggregates the loaded records for the side panel.
func (m ScoreboardModel) summary() string {
	var lines []string
	if m.view == viewClears {
		total := 0
		for _, c := range m.clears {
			total += c.Ticks
		}
		lines = append(lines,
			"Stages cleared",
			fmt.Sprintf("  %d", len(m.clears)),
			"Sum of best times",
			"  "+formatTicks(total, m.tickRate),
		)
	} else {
		best, kills := 0, 0
		for _, s := range m.scores {
			best = max(best, s.Score)
			kills = max(kills, s.Kills)
		}
		lines = append(lines,
			"Runs",
			fmt.Sprintf("  %d", len(m.scores)),
			"Best score",
			fmt.Sprintf("  %d", best),
			"Most kills",
			fmt.Sprintf("  %d", kills),
		)
	}
	return strings.Join(lines, "\n")
}

func (m ScoreboardModel) tableContent() string {
	empty := boardDimStyle.Italic(true).Padding(2, 4)
	switch {
	case m.view == viewClears && len(m.clears) == 0:
		return empty.Render("No stages cleared yet.\nClear a stage to set a time!")
	case m.view == viewScores && len(m.scores) == 0:
		return empty.Render("No scores recorded yet.\nPlay a run to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
