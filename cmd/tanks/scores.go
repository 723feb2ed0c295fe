package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var (
	flagScoresBoard bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and fastest clears",
	Long: `Display the top 10 runs and the fastest clear of each stage for a mode
(default: tanks).

Examples:
  tanks scores
  tanks scores tanks_survival
  tanks scores --board
  tanks scores tanks --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresBoard, "board", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded score for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "tanks"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tanks list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		logger.Info("scores cleared", "mode", gameID)
		fmt.Printf("Cleared scores for %s.\n", title)
		return
	case flagScoresBoard:
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tanks play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-12s  %s\n", "Rank", "Score", "Stage", "Kills", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-12s  %s\n", "----", "-----", "-----", "-----", "------", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8d  %-5d  %-5d  %-12s  %s\n",
			i+1, e.Score, e.Stage+1, e.Kills, displayPlayer(e.Player), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	clears, err := store.FastestClears(gameID)
	if err != nil || len(clears) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Fastest Clears")
	fmt.Println()
	for _, c := range clears {
		secs := float64(c.Ticks) / float64(flagFPS)
		fmt.Printf("  %-20s  %7.1fs  %s\n", c.StageName, secs, displayPlayer(c.Player))
	}
}

func displayPlayer(p string) string {
	if p == "" {
		return "-"
	}
	return p
}
