// tanks is a terminal tank battle: defend the home base, destroy every enemy
// tank, and clear the stage campaign.
//
// Usage:
//
//	tanks                      - Start the mode picker menu
//	tanks list                 - List available modes
//	tanks play [mode]          - Play a mode directly (default: tanks)
//	tanks stages               - List the stage campaign
//	tanks stages validate <d>  - Check every stage file in a directory
//	tanks scores [mode]        - Show high scores and fastest clears
//	tanks serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.tanks/scores.db)
//	--config <path>     - Custom tank config YAML
//	--difficulty <p>    - Difficulty preset: easy, normal, hard, fixed
//	--stages <dir>      - Load stages from a directory
//	--log-file <path>   - Write logs to a file
//	--log-level <lvl>   - Log level: debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagStagesDir  string
	flagLogFile    string
	flagLogLevel   string
)

// logger is configured in the root pre-run hook.
var logger = log.New(io.Discard)

// logFile is closed when the command finishes.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tanks",
	Short: "Tanks - a grid tank battle in your terminal",
	Long: `Tanks is a terminal tank battle. Drive your tank around a walled arena,
shoot enemy tanks, collect powerups, and keep the home base alive.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker (default)
  stages   - List or validate stage files
  scores   - View high scores and fastest clears
  serve    - Start SSH server for remote play

Examples:
  tanks
  tanks play
  tanks play tanks_survival --difficulty hard
  tanks stages validate ./my-stages
  tanks serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	Run:               runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second); game timers are rescaled so seconds stay real")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tanks/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tank config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagStagesDir, "stages", "", "Directory of stage YAML files (default: built-in campaign)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup validates global flags, opens the log file, and passes game options on.
func setup(cmd *cobra.Command, _ []string) error {
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Level:           level,
			Prefix:          "tanks",
		})
	} else if cmd.Name() == "serve" {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           level,
			Prefix:          "tanks-ssh",
		})
	}

	tanks.SetConfigPath(flagConfig)
	tanks.SetDifficultyPreset(flagDifficulty)
	tanks.SetStagesDir(flagStagesDir)
	tanks.SetLogger(logger)
	return nil
}

// playerName is the name stored with local scores.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
