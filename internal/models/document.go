// ABOUTME: Document model: the root object persisted to the data file.
// ABOUTME: Holds routines in insertion order and the append-only workout log.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Routines maps routine names to their exercise lists, in insertion order.
type Routines = orderedmap.OrderedMap[string, []string]

// NewRoutines creates an empty routine map.
func NewRoutines() *Routines {
	return orderedmap.New[string, []string]()
}

// Document is the full persisted state.
type Document struct {
	Routines *Routines `json:"routines"`
	Workouts []Workout `json:"workouts"`
}

// NewDocument creates an empty Document with both collections present.
func NewDocument() *Document {
	return &Document{
		Routines: NewRoutines(),
		Workouts: []Workout{},
	}
}

// SetRoutine inserts or replaces a routine. A replaced routine keeps its position.
func (d *Document) SetRoutine(name string, exercises []string) {
	if exercises == nil {
		exercises = []string{}
	}
	d.Routines.Set(name, slices.Clone(exercises))
}

// Routine returns the exercises of the named routine.
func (d *Document) Routine(name string) ([]string, bool) {
	exercises, ok := d.Routines.Get(name)
	if !ok {
		return nil, false
	}
	return slices.Clone(exercises), true
}

// AllRoutines yields routines in insertion order.
func (d *Document) AllRoutines() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for pair := d.Routines.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, slices.Clone(pair.Value)) {
				return
			}
		}
	}
}

// AddWorkout appends a workout to the log.
func (d *Document) AddWorkout(w Workout) {
	d.Workouts = append(d.Workouts, w)
}

// normalize fills in collections that were absent or null in the source.
func (d *Document) normalize() {
	if d.Routines == nil {
		d.Routines = NewRoutines()
	}
	if d.Workouts == nil {
		d.Workouts = []Workout{}
	}
	for i := range d.Workouts {
		if d.Workouts[i].Exercises == nil {
			d.Workouts[i].Exercises = []ExerciseLog{}
		}
		for j := range d.Workouts[i].Exercises {
			if d.Workouts[i].Exercises[j].Sets == nil {
				d.Workouts[i].Exercises[j].Sets = []SetLog{}
			}
		}
	}
	for pair := d.Routines.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			pair.Value = []string{}
		}
	}
}

// UnmarshalJSON decodes a Document and guarantees both collections exist.
func (d *Document) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return errors.New("document must be an object, got null")
	}
	type plain Document
	aux := plain{Routines: NewRoutines()}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = Document(aux)
	d.normalize()
	return nil
}

// MarshalJSON encodes the Document, writing empty collections rather than null.
func (d *Document) MarshalJSON() ([]byte, error) {
	type plain Document
	aux := plain(*d)
	if aux.Routines == nil {
		aux.Routines = NewRoutines()
	}
	if aux.Workouts == nil {
		aux.Workouts = []Workout{}
	}
	data, err := json.Marshal(aux)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}
