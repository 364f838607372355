// ABOUTME: CLI command for logging a workout interactively.
// ABOUTME: Drives a session state machine with prompted input, optionally seeded from a routine.
package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/harperreed/gym/internal/session"
	"github.com/spf13/cobra"
)

var logRoutine string

var logCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"l"},
	Short:   "Log a workout",
	Long: `Log a workout interactively, one set at a time.

For each exercise enter reps, weight (empty for bodyweight) and optional notes.
Type 'done' at the reps prompt to finish an exercise, and 'done' at the
exercise prompt to save the workout.

With --routine, pick exercises from the routine by number, 'c' for a custom
exercise, or 'd' when done. Exercises without sets are not saved.

Examples:
  gym log
  gym log --routine "Push Day"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		return runLogSession(p, logRoutine)
	},
}

// runLogSession collects one workout. Running out of input saves whatever
// complete sets were entered.
func runLogSession(p *prompter, routine string) error {
	out := p.out
	fmt.Fprintln(out, "\n=== Log New Workout ===")
	fmt.Fprintf(out, "Date: %s\n", time.Now().Format(dateTimeLayout))

	s := tr.StartSession(routine)
	if s.Routine() != "" {
		fmt.Fprintf(out, "Using routine: %s\n\n", s.Routine())
	}

	for s.State() != session.Done {
		if s.Choosing() {
			if s.Routine() != "" {
				fmt.Fprintln(out, "\nExercises in routine:")
				for i, ex := range s.Options() {
					fmt.Fprintf(out, "  %d. %s\n", i+1, ex)
				}
			}
			fmt.Fprintln(out)
		}

		line, err := p.ask(s.Prompt())
		if errors.Is(err, io.EOF) {
			s.End()
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		before := s.State()
		if err := s.Feed(line); err != nil {
			var inputErr *session.InputError
			if !errors.As(err, &inputErr) {
				return err
			}
			if s.State() == session.SelectingExercise {
				fmt.Fprintln(out, "Invalid choice")
			} else {
				fmt.Fprintln(out, "Invalid input. Please enter numbers for reps and weight.")
			}
			continue
		}
		if before != session.CollectingSets && s.State() == session.CollectingSets {
			fmt.Fprintf(out, "\nLogging sets for: %s\n", s.Current())
		}
	}

	w, err := tr.FinishSession(s)
	if err != nil {
		return fmt.Errorf("failed to save workout: %w", err)
	}
	if w == nil {
		fmt.Fprintln(out, "\nNo exercises logged.")
		return nil
	}
	success.Fprintf(out, "\n✓ Workout logged successfully! (%d exercises)\n", len(w.Exercises))
	return nil
}

func init() {
	logCmd.Flags().StringVarP(&logRoutine, "routine", "r", "", "routine to pick exercises from")
	rootCmd.AddCommand(logCmd)
}
