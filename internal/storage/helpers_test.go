// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides sample documents and a cmp-based document diff.
package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/harperreed/gym/internal/models"
)

type routineEntry struct {
	Name      string
	Exercises []string
}

// docDiff compares documents field by field, including routine order.
func docDiff(want, got *models.Document) string {
	return cmp.Diff(want, got, cmp.Transformer("Routines", func(r *models.Routines) []routineEntry {
		var out []routineEntry
		for pair := r.Oldest(); pair != nil; pair = pair.Next() {
			out = append(out, routineEntry{Name: pair.Key, Exercises: pair.Value})
		}
		return out
	}))
}

// sampleDocument builds a document with every field populated.
func sampleDocument() *models.Document {
	doc := models.NewDocument()
	doc.SetRoutine("Push Day", []string{"Bench", "Dips", "Bench"})
	doc.SetRoutine("Leg Day", []string{"Squat"})

	first := models.NewWorkout(time.Date(2025, 1, 10, 18, 0, 0, 0, time.Local)).
		WithExercise(*models.NewExerciseLog("Bench").
			WithSet(models.NewSetLog(5, models.RealWeight(100), "")).
			WithSet(models.NewSetLog(5, models.RealWeight(102.5), "grinder"))).
		WithExercise(*models.NewExerciseLog("Dips").
			WithSet(models.NewSetLog(12, models.Bodyweight, "")))
	second := models.NewWorkout(time.Date(2025, 1, 12, 7, 45, 30, 250000000, time.Local)).
		WithExercise(*models.NewExerciseLog("Squat").
			WithSet(models.NewSetLog(5, models.IntWeight(140), "belt")))

	doc.AddWorkout(*first)
	doc.AddWorkout(*second)
	return doc
}

func setupTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "gym.db"), nil)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
