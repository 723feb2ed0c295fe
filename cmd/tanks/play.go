package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var flagStartStage int

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: tanks).

Modes:
  tanks           - Stage campaign with a limited enemy budget per stage
  tanks_survival  - The same campaign with endless enemy respawns; spawns
                    speed up with play time

Controls:
  WASD/Arrows  - Move or turn
  Space/F      - Shoot
  Enter        - Start / continue
  P            - Pause
  B/Esc        - Back (when paused or over)
  Ctrl+S       - Save screenshot
  Ctrl+Y       - Copy screen to clipboard
  Q/Ctrl+C     - Quit

Difficulty options (without --difficulty the config's initial level is used,
0% for the defaults, progressing by stage):
  easy   - More health, ammo and home health, start at 0%, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Less health and ammo, start at 70% difficulty
  fixed  - No progression, stays at config's initial level

Examples:
  tanks play
  tanks play tanks_survival
  tanks play --difficulty hard --start-stage 3
  tanks play --stages ./my-stages
  tanks play --config ./my-tanks.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartStage, "start-stage", 1, "Stage number to start the campaign on")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "tanks"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tanks list' to see available modes.")
		os.Exit(1)
	}
	if flagStartStage < 1 {
		fmt.Fprintf(os.Stderr, "Error: --start-stage must be at least 1, got %d\n", flagStartStage)
		os.Exit(1)
	}
	tanks.SetStartStage(flagStartStage - 1)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting game", "mode", gameID, "stage", flagStartStage, "seed", flagSeed)
	if err := tui.Run(game, runtimeConfig(), tui.Options{
		Store:  store,
		Player: playerName(),
		Logger: logger,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// runtimeConfig sizes the screen to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
