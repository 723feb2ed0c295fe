// Package registry keeps the table of playable modes.
// Modes register themselves in init() functions, so the platform can list
// and start them by ID without importing each one directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Game is the contract between a game mode and the platform.
// Implementations hold pure logic and never touch the terminal;
// the platform owns input mapping, timing, and drawing.
type Game interface {
	// ID is the stable key used by the CLI and the score tables (e.g. "tanks").
	ID() string

	// Title is the human-readable name shown in menus.
	Title() string

	// Reset starts a fresh run. Called once at start and after every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the run by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into a pre-cleared screen.
	Render(dst *core.Screen)

	// State reports score, stage and scene flags.
	State() core.GameState
}

// Stats is an optional interface for games that track more than a score.
type Stats interface {
	Kills() int
	StageTicks() int
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a mode.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory under id.
// Panics if id is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered mode, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates the mode registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
