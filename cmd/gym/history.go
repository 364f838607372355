// ABOUTME: CLI command for viewing recent workouts.
// ABOUTME: Prints workouts newest first with every set.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 10

var historyLimit int

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "Show recent workouts",
	Long: `Show recent workouts, most recent first.

Each set prints as: Set N: REPS reps @ WEIGHTlbs - NOTES
A weight of 0 prints as bodyweight.

Examples:
  gym history          # Last 10 workouts
  gym history -n 3     # Last 3 workouts`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printHistory(cmd.OutOrStdout(), historyLimit)
		return nil
	},
}

func printHistory(out io.Writer, limit int) {
	if !tr.HasWorkouts() {
		fmt.Fprintln(out, "No workouts logged yet. Start with 'log-workout'")
		return
	}

	heading.Fprintln(out, "\n=== Workout History ===")
	for w := range tr.History(limit) {
		fmt.Fprintf(out, "\n📅 %s\n", w.Date.Format(dateTimeLayout))
		fmt.Fprintln(out, strings.Repeat("-", 40))

		for _, e := range w.Exercises {
			fmt.Fprintf(out, "\n%s:\n", e.Name)
			for i, set := range e.Sets {
				notes := ""
				if set.Notes != "" {
					notes = " - " + set.Notes
				}
				fmt.Fprintf(out, "  Set %d: %d reps @ %s%s\n", i+1, set.Reps, weightLabel(set.Weight, "bodyweight"), notes)
			}
		}
	}
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", defaultHistoryLimit, "max number of workouts")
	rootCmd.AddCommand(historyCmd)
}
