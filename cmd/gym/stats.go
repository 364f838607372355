// ABOUTME: CLI command for overall workout statistics.
// ABOUTME: Prints totals and the most frequently logged exercises.
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workout statistics",
	Long: `Show total workouts, exercises, sets and routines, plus the five most
frequently logged exercises. Exercise names are counted exactly as logged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printStats(cmd.OutOrStdout())
		return nil
	},
}

func printStats(out io.Writer) {
	stats, ok := tr.Stats()
	if !ok {
		fmt.Fprintln(out, "No workout data available yet.")
		return
	}

	heading.Fprintln(out, "\n=== Your Gym Stats ===")
	fmt.Fprintf(out, "Total Workouts: %d\n", stats.TotalWorkouts)
	fmt.Fprintf(out, "Total Exercises Logged: %d\n", stats.TotalExercises)
	fmt.Fprintf(out, "Total Sets Completed: %d\n", stats.TotalSets)
	fmt.Fprintf(out, "Total Routines: %d\n", stats.TotalRoutines)

	if len(stats.Top) > 0 {
		fmt.Fprintln(out, "\nMost Frequent Exercises:")
		for _, c := range stats.Top {
			fmt.Fprintf(out, "  • %s: %d times\n", c.Name, c.Count)
		}
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
