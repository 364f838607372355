// ABOUTME: Workout logging session modeled as an explicit state machine.
// ABOUTME: Consumes one input line at a time: exercise selection, then reps/weight/notes per set.
package session

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/harperreed/gym/internal/models"
)

// State is the coarse position of a session.
type State int

const (
	// SelectingExercise waits for the next exercise (or the finish sentinel).
	SelectingExercise State = iota
	// CollectingSets records sets for the current exercise.
	CollectingSets
	// Done means no more input is accepted.
	Done
)

func (s State) String() string {
	switch s {
	case SelectingExercise:
		return "selecting-exercise"
	case CollectingSets:
		return "collecting-sets"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Sentinels recognized at each stage.
const (
	FinishSession  = "done" // free-form exercise prompt
	FinishExercise = "done" // reps prompt
	RoutineDone    = "d"
	RoutineCustom  = "c"
)

// ErrDone is returned when input is fed to a finished session.
var ErrDone = errors.New("session is finished")

// InputError describes input that was rejected. The session stays on the same prompt.
type InputError struct {
	Input  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

type step int

const (
	stepChoose step = iota
	stepCustomName
	stepReps
	stepWeight
	stepNotes
)

// Session collects the exercises and sets of one workout.
type Session struct {
	routine string
	options []string

	state State
	step  step

	current   *models.ExerciseLog
	reps      int
	weight    models.Weight
	exercises []models.ExerciseLog
}

// New starts a session. With a non-empty routine, options are offered as
// numbered choices; otherwise exercise names are typed directly.
func New(routine string, options []string) *Session {
	if routine == "" || len(options) == 0 {
		return &Session{}
	}
	return &Session{routine: routine, options: slices.Clone(options)}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Routine returns the seeding routine name, empty in free-form mode.
func (s *Session) Routine() string {
	return s.routine
}

// Options returns the routine exercises offered for selection.
func (s *Session) Options() []string {
	return slices.Clone(s.options)
}

// Current returns the exercise whose sets are being collected.
func (s *Session) Current() string {
	if s.current == nil {
		return ""
	}
	return s.current.Name
}

// SetNumber returns the 1-based number of the set being entered.
func (s *Session) SetNumber() int {
	if s.current == nil {
		return 0
	}
	return len(s.current.Sets) + 1
}

// Prompt returns the text to show before reading the next input.
func (s *Session) Prompt() string {
	switch s.step {
	case stepChoose:
		if s.routine != "" {
			return "Select exercise number (or 'c' for custom, 'd' for done): "
		}
		return "Exercise name (or 'done' to finish): "
	case stepCustomName:
		return "Exercise name: "
	case stepReps:
		return fmt.Sprintf("  Set %d - Reps (or 'done'): ", s.SetNumber())
	case stepWeight:
		return fmt.Sprintf("  Set %d - Weight (lbs/kg): ", s.SetNumber())
	case stepNotes:
		return fmt.Sprintf("  Set %d - Notes (optional): ", s.SetNumber())
	}
	return ""
}

// Feed advances the session with one line of input.
// A returned *InputError leaves the session on the same prompt with nothing lost.
func (s *Session) Feed(input string) error {
	if s.state == Done {
		return ErrDone
	}
	input = strings.TrimSpace(input)

	switch s.step {
	case stepChoose:
		if s.routine != "" {
			return s.chooseFromRoutine(input)
		}
		return s.chooseFreeForm(input)
	case stepCustomName:
		if input == "" {
			s.step = stepChoose
			return nil
		}
		s.startExercise(input)
	case stepReps:
		if strings.EqualFold(input, FinishExercise) {
			s.finishExercise()
			return nil
		}
		reps, err := strconv.Atoi(input)
		if err != nil {
			return &InputError{Input: input, Reason: "reps must be a whole number"}
		}
		if reps < 0 {
			return &InputError{Input: input, Reason: "reps cannot be negative"}
		}
		s.reps = reps
		s.step = stepWeight
	case stepWeight:
		w, err := models.ParseWeight(input)
		if err != nil {
			return &InputError{Input: input, Reason: "weight must be a non-negative number"}
		}
		s.weight = w
		s.step = stepNotes
	case stepNotes:
		s.current.WithSet(models.NewSetLog(s.reps, s.weight, input))
		s.reps, s.weight = 0, models.Bodyweight
		s.step = stepReps
	}
	return nil
}

func (s *Session) chooseFromRoutine(input string) error {
	switch strings.ToLower(input) {
	case RoutineDone:
		s.state = Done
		return nil
	case RoutineCustom:
		s.step = stepCustomName
		return nil
	}

	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(s.options) || strings.ContainsAny(input, "+-") {
		return &InputError{Input: input, Reason: fmt.Sprintf("choose 1-%d, 'c' or 'd'", len(s.options))}
	}
	s.startExercise(s.options[n-1])
	return nil
}

func (s *Session) chooseFreeForm(input string) error {
	if strings.EqualFold(input, FinishSession) {
		s.state = Done
		return nil
	}
	if input == "" {
		return nil
	}
	s.startExercise(input)
	return nil
}

func (s *Session) startExercise(name string) {
	s.current = models.NewExerciseLog(name)
	s.state = CollectingSets
	s.step = stepReps
}

// finishExercise keeps the current exercise only if it has sets.
func (s *Session) finishExercise() {
	if s.current != nil && len(s.current.Sets) > 0 {
		s.exercises = append(s.exercises, *s.current)
	}
	s.current = nil
	s.state = SelectingExercise
	s.step = stepChoose
}

// End closes the session, as when input runs out. A set that is only
// partially entered is dropped; completed sets are kept.
func (s *Session) End() {
	if s.state == Done {
		return
	}
	s.finishExercise()
	s.state = Done
}

// Exercises returns the completed exercises, each with at least one set.
func (s *Session) Exercises() []models.ExerciseLog {
	out := make([]models.ExerciseLog, len(s.exercises))
	for i, e := range s.exercises {
		out[i] = models.ExerciseLog{Name: e.Name, Sets: slices.Clone(e.Sets)}
	}
	return out
}

// Choosing reports whether the next input picks an exercise (as opposed to
// naming a custom one or entering a set).
func (s *Session) Choosing() bool {
	return s.state == SelectingExercise && s.step == stepChoose
}
