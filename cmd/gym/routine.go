// ABOUTME: CLI commands for managing routines.
// ABOUTME: Supports add and list subcommands; adding an existing name replaces it.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var routineCmd = &cobra.Command{
	Use:     "routine",
	Aliases: []string{"r"},
	Short:   "Manage routines",
	Long: `A routine is a named, ordered list of exercises you can pick from when
logging a workout with 'gym log --routine NAME'.

COMMANDS:

  add      Create a routine (replaces one with the same name)
  list     List routines in the order they were created`,
}

var routineAddCmd = &cobra.Command{
	Use:   "add <name> <exercise>...",
	Short: "Create a routine",
	Long: `Create a routine from a name and one or more exercises.

Examples:
  gym routine add "Push Day" "Bench Press" Dips "Overhead Press"
  gym routine add Legs Squat "Romanian Deadlift" Lunge`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("routine name cannot be empty")
		}

		var exercises []string
		for _, ex := range args[1:] {
			if ex = strings.TrimSpace(ex); ex != "" {
				exercises = append(exercises, ex)
			}
		}
		if len(exercises) == 0 {
			return fmt.Errorf("no exercises given")
		}

		return createRoutine(cmd.OutOrStdout(), name, exercises)
	},
}

var routineListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List routines",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printRoutines(cmd.OutOrStdout())
		return nil
	},
}

func createRoutine(out io.Writer, name string, exercises []string) error {
	n, err := tr.CreateRoutine(name, exercises)
	if err != nil {
		return fmt.Errorf("failed to create routine: %w", err)
	}
	success.Fprintf(out, "✓ Routine '%s' created with %d exercises\n", name, n)
	return nil
}

func printRoutines(out io.Writer) {
	if tr.RoutineCount() == 0 {
		fmt.Fprintln(out, "No routines found. Create one with 'add-routine'")
		return
	}

	heading.Fprintln(out, "\n=== Your Workout Routines ===")
	for name, exercises := range tr.Routines() {
		fmt.Fprintf(out, "\n%s:\n", name)
		for i, ex := range exercises {
			fmt.Fprintf(out, "  %d. %s\n", i+1, ex)
		}
	}
}

func init() {
	routineCmd.AddCommand(routineAddCmd)
	routineCmd.AddCommand(routineListCmd)
	rootCmd.AddCommand(routineCmd)
}
