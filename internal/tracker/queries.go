// ABOUTME: Read-only queries over the workout log: history, progress and stats.
// ABOUTME: Queries never persist and yield copies so callers cannot alter stored data.
package tracker

import (
	"cmp"
	"iter"
	"slices"

	"github.com/harperreed/gym/internal/models"
)

// TopExerciseLimit is the number of exercises reported by Stats.
const TopExerciseLimit = 5

// ProgressEntry is one occurrence of an exercise in the log.
type ProgressEntry struct {
	Date models.Timestamp
	Name string
	Sets []models.SetLog
}

// ExerciseCount is how many workouts entries name an exercise.
type ExerciseCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats aggregates the whole log.
type Stats struct {
	TotalWorkouts  int             `json:"total_workouts"`
	TotalExercises int             `json:"total_exercises"`
	TotalSets      int             `json:"total_sets"`
	TotalRoutines  int             `json:"total_routines"`
	Top            []ExerciseCount `json:"top_exercises"`
}

// HasWorkouts reports whether anything has been logged.
func (t *Tracker) HasWorkouts() bool {
	return len(t.doc.Workouts) > 0
}

// History yields up to limit workouts, most recent first. Workouts with equal
// dates keep their logged order.
func (t *Tracker) History(limit int) iter.Seq[models.Workout] {
	order := t.sortedByDate(true)
	if limit < 0 {
		limit = 0
	}
	if limit < len(order) {
		order = order[:limit]
	}

	return func(yield func(models.Workout) bool) {
		for _, i := range order {
			if !yield(t.doc.Workouts[i].Clone()) {
				return
			}
		}
	}
}

// Progress yields every logged occurrence of the named exercise, oldest first.
// Names match ignoring case. The boolean is false when there is no match.
func (t *Tracker) Progress(name string) (iter.Seq[ProgressEntry], bool) {
	var entries []ProgressEntry
	for _, i := range t.sortedByDate(false) {
		w := t.doc.Workouts[i]
		for _, e := range w.Exercises {
			if !e.Matches(name) {
				continue
			}
			entries = append(entries, ProgressEntry{
				Date: w.Date,
				Name: e.Name,
				Sets: slices.Clone(e.Sets),
			})
		}
	}
	if len(entries) == 0 {
		return func(func(ProgressEntry) bool) {}, false
	}

	return func(yield func(ProgressEntry) bool) {
		for _, entry := range entries {
			entry.Sets = slices.Clone(entry.Sets)
			if !yield(entry) {
				return
			}
		}
	}, true
}

// Stats summarizes the log. The boolean is false when no workouts exist.
func (t *Tracker) Stats() (Stats, bool) {
	if !t.HasWorkouts() {
		return Stats{}, false
	}

	s := Stats{
		TotalWorkouts: len(t.doc.Workouts),
		TotalRoutines: t.doc.Routines.Len(),
	}
	var counts []ExerciseCount
	index := make(map[string]int)
	for _, w := range t.doc.Workouts {
		s.TotalExercises += len(w.Exercises)
		s.TotalSets += w.SetCount()
		for _, e := range w.Exercises {
			i, ok := index[e.Name]
			if !ok {
				i = len(counts)
				index[e.Name] = i
				counts = append(counts, ExerciseCount{Name: e.Name})
			}
			counts[i].Count++
		}
	}

	slices.SortStableFunc(counts, func(a, b ExerciseCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(counts) > TopExerciseLimit {
		counts = counts[:TopExerciseLimit]
	}
	s.Top = counts
	return s, true
}

// ExerciseNames lists distinct exercise names in the order they were first logged.
func (t *Tracker) ExerciseNames() []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, w := range t.doc.Workouts {
		for _, e := range w.Exercises {
			if !seen[e.Name] {
				seen[e.Name] = true
				names = append(names, e.Name)
			}
		}
	}
	return names
}

// sortedByDate returns workout indexes ordered by date, ties in logged order.
func (t *Tracker) sortedByDate(descending bool) []int {
	order := make([]int, len(t.doc.Workouts))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		c := t.doc.Workouts[a].Date.Compare(t.doc.Workouts[b].Date.Time)
		if descending {
			return -c
		}
		return c
	})
	return order
}
