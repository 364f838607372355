// ABOUTME: CLI command listing every exercise name that has been logged.
// ABOUTME: Names print once each, in the order they were first logged.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List logged exercise names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		names := tr.ExerciseNames()
		if len(names) == 0 {
			fmt.Fprintln(out, "No exercises logged yet.")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exercisesCmd)
}
