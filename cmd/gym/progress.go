// ABOUTME: CLI command for viewing progress on one exercise.
// ABOUTME: Lists every logged occurrence oldest first; names match ignoring case.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:     "progress <exercise>",
	Aliases: []string{"p"},
	Short:   "Show progress for an exercise",
	Long: `Show every logged occurrence of an exercise, oldest first.

The exercise name is matched ignoring case, so "bench press" also finds
"Bench Press". Multi-word names may be given unquoted.

Examples:
  gym progress squat
  gym progress bench press`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(strings.Join(args, " "))
		if name == "" {
			return fmt.Errorf("exercise name cannot be empty")
		}
		printProgress(cmd.OutOrStdout(), name)
		return nil
	},
}

func printProgress(out io.Writer, name string) {
	heading.Fprintf(out, "\n=== Progress for: %s ===\n\n", name)

	entries, found := tr.Progress(name)
	if !found {
		fmt.Fprintf(out, "No history found for '%s'\n", name)
		return
	}

	for entry := range entries {
		fmt.Fprintf(out, "📅 %s\n", entry.Date.Format(dateLayout))
		for i, set := range entry.Sets {
			fmt.Fprintf(out, "  Set %d: %d reps @ %s\n", i+1, set.Reps, weightLabel(set.Weight, "BW"))
		}
		fmt.Fprintln(out)
	}
}

func init() {
	rootCmd.AddCommand(progressCmd)
}
