package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// Options carries per-session collaborators.
type Options struct {
	Store  *storage.Store // Nil disables score recording
	Player string         // Name stored with scores
	Logger *log.Logger    // Nil discards
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// GameModel is the Bubble Tea model that drives one game at a fixed tick rate.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	status     string // One-line notice such as "copied"
	statusTTL  int    // Ticks left to show status
}

// NewGameModel creates a model for game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The arena has a fixed size, so resizing only moves it.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "ctrl+y":
		m.copyScreen()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused || m.gameState.StageClear) {
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleTick runs one simulation step and records results.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.record(prev, m.gameState)

	if m.statusTTL > 0 {
		m.statusTTL--
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// record stores stage clears and finished runs on the tick they happen.
func (m GameModel) record(prev, cur core.GameState) {
	logger := m.opts.logger()

	if cur.StageClear && !prev.StageClear {
		logger.Info("stage cleared", "game", m.game.ID(), "stage", cur.Stage, "name", cur.StageName, "score", cur.Score)
		if m.opts.Store != nil {
			sc := storage.StageClear{
				GameID:     m.game.ID(),
				Player:     m.opts.Player,
				StageIndex: cur.Stage,
				StageName:  cur.StageName,
				Score:      cur.Score,
			}
			if st, ok := m.game.(registry.Stats); ok {
				sc.Ticks = st.StageTicks()
			}
			if _, err := m.opts.Store.RecordStageClear(sc); err != nil {
				logger.Warn("cannot record stage clear", "err", err)
			}
		}
	}

	if cur.GameOver && !prev.GameOver {
		logger.Info("game over", "game", m.game.ID(), "stage", cur.Stage, "score", cur.Score)
		if m.opts.Store != nil && cur.Score > 0 {
			run := storage.ScoreEntry{
				GameID: m.game.ID(),
				Player: m.opts.Player,
				Score:  cur.Score,
				Stage:  cur.Stage,
			}
			if st, ok := m.game.(registry.Stats); ok {
				run.Kills = st.Kills()
			}
			if _, err := m.opts.Store.SaveRun(run); err != nil {
				logger.Warn("cannot save score", "err", err)
			}
		}
	}
}

// saveScreenshot writes the current frame to ~/.tanks/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.setStatus("screenshot failed")
		return
	}
	dir := filepath.Join(home, ".tanks", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.setStatus("screenshot failed")
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.logger().Warn("cannot save screenshot", "path", path, "err", err)
		m.setStatus("screenshot failed")
		return
	}
	m.setStatus("saved " + path)
}

// copyScreen puts the current frame on the system clipboard as plain text.
func (m *GameModel) copyScreen() {
	m.game.Render(m.screen)
	if err := clipboard.WriteAll(m.screen.String()); err != nil {
		m.opts.logger().Debug("clipboard unavailable", "err", err)
		m.setStatus("clipboard unavailable")
		return
	}
	m.setStatus("frame copied")
}

func (m *GameModel) setStatus(s string) {
	m.status = s
	m.statusTTL = 2 * m.config.TickRate
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.statusTTL > 0 && m.screen.Height() > 0 {
		m.screen.DrawTextColored(1, m.screen.Height()-1, m.status, core.ColorGray)
	}
	return RenderScreen(m.screen)
}

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the terminal until the user quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
