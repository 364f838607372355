// ABOUTME: Workout, ExerciseLog and SetLog models for session logging.
// ABOUTME: A workout holds exercises in performed order, each with ordered sets.
package models

import (
	"slices"
	"strings"
	"time"
)

// Workout represents one logged gym session.
type Workout struct {
	Date      Timestamp     `json:"date"`
	Exercises []ExerciseLog `json:"exercises"`
}

// NewWorkout creates an empty Workout stamped with the given time.
func NewWorkout(at time.Time) *Workout {
	return &Workout{
		Date:      NewTimestamp(at),
		Exercises: []ExerciseLog{},
	}
}

// WithExercise appends an exercise to the workout.
func (w *Workout) WithExercise(e ExerciseLog) *Workout {
	w.Exercises = append(w.Exercises, e)
	return w
}

// SetCount returns the number of sets across all exercises.
func (w *Workout) SetCount() int {
	n := 0
	for _, e := range w.Exercises {
		n += len(e.Sets)
	}
	return n
}

// Prune drops exercises that have no sets.
func (w *Workout) Prune() {
	kept := w.Exercises[:0]
	for _, e := range w.Exercises {
		if len(e.Sets) > 0 {
			kept = append(kept, e)
		}
	}
	w.Exercises = kept
}

// ExerciseLog is one exercise performed during a workout.
type ExerciseLog struct {
	Name string   `json:"name"`
	Sets []SetLog `json:"sets"`
}

// NewExerciseLog creates an ExerciseLog with no sets.
func NewExerciseLog(name string) *ExerciseLog {
	return &ExerciseLog{Name: name, Sets: []SetLog{}}
}

// WithSet appends a set.
func (e *ExerciseLog) WithSet(s SetLog) *ExerciseLog {
	e.Sets = append(e.Sets, s)
	return e
}

// Matches reports whether the exercise name equals name, ignoring case.
func (e *ExerciseLog) Matches(name string) bool {
	return strings.EqualFold(e.Name, name)
}

// SetLog is a single set of an exercise.
type SetLog struct {
	Reps   int    `json:"reps"`
	Weight Weight `json:"weight"`
	Notes  string `json:"notes"`
}

// NewSetLog creates a SetLog.
func NewSetLog(reps int, weight Weight, notes string) SetLog {
	return SetLog{Reps: reps, Weight: weight, Notes: notes}
}

// Clone returns a deep copy of the workout.
func (w Workout) Clone() Workout {
	out := Workout{Date: w.Date, Exercises: make([]ExerciseLog, len(w.Exercises))}
	for i, e := range w.Exercises {
		out.Exercises[i] = ExerciseLog{Name: e.Name, Sets: slices.Clone(e.Sets)}
		if out.Exercises[i].Sets == nil {
			out.Exercises[i].Sets = []SetLog{}
		}
	}
	return out
}
