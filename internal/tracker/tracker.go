// ABOUTME: Tracker owns the in-memory gym document and persists every mutation.
// ABOUTME: Provides routine creation, workout logging, session wiring and import.
package tracker

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/session"
	"github.com/harperreed/gym/internal/storage"
	"go.uber.org/zap"
)

// Tracker is the single owner of the loaded document. It is not safe for concurrent use.
type Tracker struct {
	store storage.Store
	doc   *models.Document
	log   *zap.Logger
	now   func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for mutation events.
func WithLogger(log *zap.Logger) Option {
	return func(t *Tracker) {
		if log != nil {
			t.log = log
		}
	}
}

// WithClock overrides the time source used to stamp workouts.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// New loads the document from store and returns a Tracker over it.
func New(store storage.Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store: store,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	doc, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load data: %w", err)
	}
	t.doc = doc
	return t, nil
}

// Path reports where the data is persisted.
func (t *Tracker) Path() string {
	return t.store.Path()
}

// Close releases the underlying store.
func (t *Tracker) Close() error {
	return t.store.Close()
}

// CreateRoutine stores a routine, replacing any routine with the same name,
// and returns the number of exercises stored.
func (t *Tracker) CreateRoutine(name string, exercises []string) (int, error) {
	prev, existed := t.doc.Routine(name)
	t.doc.SetRoutine(name, exercises)

	if err := t.store.Save(t.doc); err != nil {
		if existed {
			t.doc.SetRoutine(name, prev)
		} else {
			t.doc.Routines.Delete(name)
		}
		return 0, fmt.Errorf("save routine: %w", err)
	}

	t.log.Info("routine saved",
		zap.String("name", name),
		zap.Int("exercises", len(exercises)),
		zap.Bool("replaced", existed))
	return len(exercises), nil
}

// Routines yields routine names and exercises in insertion order.
func (t *Tracker) Routines() iter.Seq2[string, []string] {
	return t.doc.AllRoutines()
}

// Routine returns the exercises of the named routine.
func (t *Tracker) Routine(name string) ([]string, bool) {
	return t.doc.Routine(name)
}

// RoutineCount returns the number of stored routines.
func (t *Tracker) RoutineCount() int {
	return t.doc.Routines.Len()
}

// StartSession begins a logging session, seeded with the routine's exercises
// when routineName names a stored routine.
func (t *Tracker) StartSession(routineName string) *session.Session {
	if exercises, ok := t.doc.Routine(routineName); ok {
		return session.New(routineName, exercises)
	}
	return session.New("", nil)
}

// FinishSession logs whatever the session collected.
func (t *Tracker) FinishSession(s *session.Session) (*models.Workout, error) {
	s.End()
	return t.LogWorkout(s.Exercises())
}

// LogWorkout records a workout stamped with the current time. Exercises without
// sets are dropped; if none remain nothing is saved and the result is nil.
func (t *Tracker) LogWorkout(exercises []models.ExerciseLog) (*models.Workout, error) {
	w := models.NewWorkout(t.now())
	for _, e := range exercises {
		w.WithExercise(e)
	}
	*w = w.Clone()
	w.Prune()

	if len(w.Exercises) == 0 {
		t.log.Debug("nothing to log")
		return nil, nil
	}

	t.doc.AddWorkout(*w)
	if err := t.store.Save(t.doc); err != nil {
		t.doc.Workouts = t.doc.Workouts[:len(t.doc.Workouts)-1]
		return nil, fmt.Errorf("save workout: %w", err)
	}

	t.log.Info("workout logged",
		zap.Stringer("date", w.Date),
		zap.Int("exercises", len(w.Exercises)),
		zap.Int("sets", w.SetCount()))
	out := w.Clone()
	return &out, nil
}

// ImportResult counts what an import added.
type ImportResult struct {
	Routines int
	Workouts int
	// Skipped counts empty routines and workouts that were not imported.
	Skipped int
}

// Import merges another document: routines overwrite by name and workouts are
// appended. Routines without exercises and workouts left with no exercises
// after pruning are skipped.
func (t *Tracker) Import(src *models.Document) (ImportResult, error) {
	var res ImportResult
	if src == nil {
		return res, nil
	}

	type saved struct {
		name      string
		exercises []string
		existed   bool
	}
	var replaced []saved
	workoutCount := len(t.doc.Workouts)

	for name, exercises := range src.AllRoutines() {
		if len(exercises) == 0 {
			res.Skipped++
			continue
		}
		prev, existed := t.doc.Routine(name)
		replaced = append(replaced, saved{name, prev, existed})
		t.doc.SetRoutine(name, exercises)
		res.Routines++
	}
	for _, w := range src.Workouts {
		c := w.Clone()
		c.Prune()
		if len(c.Exercises) == 0 {
			res.Skipped++
			continue
		}
		t.doc.AddWorkout(c)
		res.Workouts++
	}

	if res.Routines == 0 && res.Workouts == 0 {
		return res, nil
	}
	if err := t.store.Save(t.doc); err != nil {
		t.doc.Workouts = t.doc.Workouts[:workoutCount]
		for _, r := range slices.Backward(replaced) {
			if r.existed {
				t.doc.SetRoutine(r.name, r.exercises)
			} else {
				t.doc.Routines.Delete(r.name)
			}
		}
		return ImportResult{}, fmt.Errorf("save import: %w", err)
	}

	t.log.Info("import complete",
		zap.Int("routines", res.Routines),
		zap.Int("workouts", res.Workouts),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

// Snapshot returns a deep copy of the current document.
func (t *Tracker) Snapshot() (*models.Document, error) {
	data, err := storage.EncodeDocument(t.doc)
	if err != nil {
		return nil, err
	}
	doc, err := storage.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("copy document: %w", err)
	}
	return doc, nil
}
