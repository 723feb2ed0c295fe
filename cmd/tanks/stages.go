package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/stages"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the stage campaign",
	Long: `Show the stages in campaign order. Uses the built-in campaign unless
--stages points at a directory of YAML stage files.

Examples:
  tanks stages
  tanks stages list --stages ./my-stages
  tanks stages validate ./my-stages`,
	Args: cobra.NoArgs,
	Run:  runStagesList,
}

var stagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stage campaign",
	Args:  cobra.NoArgs,
	Run:   runStagesList,
}

var stagesValidateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "Check every stage file in a directory",
	Long: `Parse every .yaml/.yml file under the directory and report the files
that fail. Exits non-zero when any file is invalid or none are found.`,
	Args: cobra.ExactArgs(1),
	Run:  runStagesValidate,
}

func init() {
	stagesCmd.AddCommand(stagesListCmd)
	stagesCmd.AddCommand(stagesValidateCmd)
}

func runStagesList(_ *cobra.Command, _ []string) {
	list, err := stages.Resolve(flagStagesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	source := "built-in"
	if flagStagesDir != "" {
		source = flagStagesDir
	}
	fmt.Printf("Stages (%s):\n", source)
	fmt.Println()

	maxIDLen := 2
	for _, st := range list {
		maxIDLen = max(maxIDLen, len(st.ID))
	}

	fmt.Printf("  %-3s  %-*s  %-7s  %s\n", "#", maxIDLen, "ID", "Size", "Name")
	fmt.Printf("  %-3s  %-*s  %-7s  %s\n", "-", maxIDLen, "--", "----", "----")
	for i, st := range list {
		rows, cols := st.Size()
		fmt.Printf("  %-3d  %-*s  %-7s  %s\n", i+1, maxIDLen, st.ID, fmt.Sprintf("%dx%d", cols, rows), st.Engine().Name)
	}
}

func runStagesValidate(_ *cobra.Command, args []string) {
	dir := args[0]
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is not a directory\n", dir)
		os.Exit(1)
	}

	list, err := stages.NewLoader(dir).LoadAll()
	for _, st := range list {
		fmt.Printf("  ok    %s\n", st.FilePath)
	}

	failed := unwrapAll(err)
	for _, e := range failed {
		fmt.Printf("  FAIL  %v\n", e)
	}

	fmt.Println()
	fmt.Printf("%d valid, %d invalid\n", len(list), len(failed))
	if len(failed) > 0 || len(list) == 0 {
		os.Exit(1)
	}
}

// unwrapAll flattens an errors.Join result into its parts.
func unwrapAll(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
