// ABOUTME: Interactive numbered menu shown when gym runs without a subcommand.
// ABOUTME: Options 1-7 map to log, history, create routine, list routines, progress, stats and exit.
package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

func printMenu(out io.Writer) {
	fmt.Fprintln(out, "\n"+strings.Repeat("=", 50))
	heading.Fprintln(out, "🏋️  GYM ROUTINE TRACKER")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out, "\n1. Log Workout")
	fmt.Fprintln(out, "2. View History")
	fmt.Fprintln(out, "3. Create Routine")
	fmt.Fprintln(out, "4. List Routines")
	fmt.Fprintln(out, "5. View Progress (by exercise)")
	fmt.Fprintln(out, "6. View Stats")
	fmt.Fprintln(out, "7. Exit")
	fmt.Fprintln(out)
}

// runMenu loops until the user exits or input runs out.
func runMenu(in io.Reader, out io.Writer) error {
	p := newPrompter(in, out)
	fmt.Fprintln(out, "\n🏋️  Welcome to Gym Routine Tracker!")

	for {
		printMenu(out)
		choice, err := p.ask("Select an option (1-7): ")
		if err == nil {
			var done bool
			done, err = menuAction(p, choice)
			if done {
				break
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\n💪 Keep up the good work! Goodbye!")
	fmt.Fprintln(out)
	return nil
}

// menuAction runs one menu option and reports whether the menu should exit.
func menuAction(p *prompter, choice string) (bool, error) {
	out := p.out
	switch choice {
	case "1":
		routine := ""
		if tr.RoutineCount() > 0 {
			fmt.Fprintln(out, "\nAvailable routines:")
			for name := range tr.Routines() {
				fmt.Fprintf(out, "  • %s\n", name)
			}
			var err error
			routine, err = p.ask("\nEnter routine name (or press Enter for custom workout): ")
			if err != nil {
				return false, err
			}
		}
		return false, runLogSession(p, routine)

	case "2":
		answer, err := p.ask("How many recent workouts to show? (default 10): ")
		if err != nil {
			return false, err
		}
		printHistory(out, parseLimit(answer))

	case "3":
		return false, promptRoutine(p)

	case "4":
		printRoutines(out)

	case "5":
		name, err := p.ask("\nEnter exercise name: ")
		if err != nil {
			return false, err
		}
		if name != "" {
			printProgress(out, name)
		}

	case "6":
		printStats(out)

	case "7":
		return true, nil

	default:
		fmt.Fprintln(out, "Invalid option. Please select 1-7.")
	}
	return false, nil
}

// parseLimit accepts only plain digits; anything else means the default.
func parseLimit(s string) int {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return defaultHistoryLimit
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return defaultHistoryLimit
	}
	return n
}

// promptRoutine reads a routine name and then exercises until an empty line.
func promptRoutine(p *prompter) error {
	out := p.out
	name, err := p.ask("\nRoutine name: ")
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(out, "Routine name cannot be empty")
		return nil
	}

	fmt.Fprintln(out, "Enter exercises (one per line, empty line to finish):")
	var exercises []string
	for {
		ex, err := p.ask(fmt.Sprintf("  Exercise %d: ", len(exercises)+1))
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if ex == "" {
			break
		}
		exercises = append(exercises, ex)
	}

	if len(exercises) == 0 {
		fmt.Fprintln(out, "No exercises added.")
		return nil
	}
	return createRoutine(out, name, exercises)
}
