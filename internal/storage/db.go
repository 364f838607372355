// ABOUTME: SQLite store, an alternative backend for the gym document.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/harperreed/gym/internal/models"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the document in normalized tables.
// Save rewrites every table in one transaction, so the database mirrors the
// in-memory document exactly like the JSON file does.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	log    *zap.Logger
}

// Compile-time check that SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// Open opens or creates a SQLite database at the given path.
func Open(dbPath string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}

	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection keeps the pragmas below in effect for every query.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, dbPath: dbPath, log: log}

	if err := s.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	// Set file permissions once the file exists
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// configurePragmas sets up SQLite for a single local writer.
func (s *SQLiteStore) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// Load reads all tables back into a Document.
func (s *SQLiteStore) Load() (*models.Document, error) {
	doc := models.NewDocument()

	if err := s.loadRoutines(doc); err != nil {
		return nil, err
	}

	sets, err := s.loadSets()
	if err != nil {
		return nil, err
	}
	exercises, err := s.loadExercises(sets)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT id, date FROM workouts ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, date string
		if err := rows.Scan(&id, &date); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		ts, err := models.ParseTimestamp(date)
		if err != nil {
			return nil, &ParseError{Path: s.dbPath, Err: fmt.Errorf("workout %s: %w", id, err)}
		}
		w := models.Workout{Date: ts, Exercises: exercises[id]}
		if w.Exercises == nil {
			w.Exercises = []models.ExerciseLog{}
		}
		doc.AddWorkout(w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	s.log.Debug("loaded database",
		zap.String("path", s.dbPath),
		zap.Int("routines", doc.Routines.Len()),
		zap.Int("workouts", len(doc.Workouts)))
	return doc, nil
}

func (s *SQLiteStore) loadRoutines(doc *models.Document) error {
	rows, err := s.db.Query(`
		SELECT r.name, e.exercise
		FROM routines r
		LEFT JOIN routine_exercises e ON e.routine_name = r.name
		ORDER BY r.position ASC, e.position ASC
	`)
	if err != nil {
		return fmt.Errorf("list routines: %w", err)
	}
	defer rows.Close()

	var order []string
	lists := make(map[string][]string)
	for rows.Next() {
		var name string
		var exercise sql.NullString
		if err := rows.Scan(&name, &exercise); err != nil {
			return fmt.Errorf("scan routine: %w", err)
		}
		if _, seen := lists[name]; !seen {
			order = append(order, name)
			lists[name] = []string{}
		}
		if exercise.Valid {
			lists[name] = append(lists[name], exercise.String)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list routines: %w", err)
	}

	for _, name := range order {
		doc.SetRoutine(name, lists[name])
	}
	return nil
}

func (s *SQLiteStore) loadSets() (map[string][]models.SetLog, error) {
	rows, err := s.db.Query(`
		SELECT exercise_id, reps, weight, weight_is_real, notes
		FROM set_logs
		ORDER BY exercise_id, position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	sets := make(map[string][]models.SetLog)
	for rows.Next() {
		var exerciseID, notes string
		var reps int
		var weight float64
		var isReal bool
		if err := rows.Scan(&exerciseID, &reps, &weight, &isReal, &notes); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		w := models.IntWeight(int64(weight))
		if isReal {
			w = models.RealWeight(weight)
		}
		sets[exerciseID] = append(sets[exerciseID], models.NewSetLog(reps, w, notes))
	}
	return sets, rows.Err()
}

func (s *SQLiteStore) loadExercises(sets map[string][]models.SetLog) (map[string][]models.ExerciseLog, error) {
	rows, err := s.db.Query(`
		SELECT id, workout_id, name
		FROM exercise_logs
		ORDER BY workout_id, position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	exercises := make(map[string][]models.ExerciseLog)
	for rows.Next() {
		var id, workoutID, name string
		if err := rows.Scan(&id, &workoutID, &name); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		e := models.ExerciseLog{Name: name, Sets: sets[id]}
		if e.Sets == nil {
			e.Sets = []models.SetLog{}
		}
		exercises[workoutID] = append(exercises[workoutID], e)
	}
	return exercises, rows.Err()
}

// Save replaces the database contents with doc in a single transaction.
func (s *SQLiteStore) Save(doc *models.Document) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{
		"DELETE FROM set_logs",
		"DELETE FROM exercise_logs",
		"DELETE FROM workouts",
		"DELETE FROM routine_exercises",
		"DELETE FROM routines",
	} {
		if _, err = tx.Exec(stmt); err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}
	}

	position := 0
	for name, exercises := range doc.AllRoutines() {
		if _, err = tx.Exec(`INSERT INTO routines (name, position) VALUES (?, ?)`, name, position); err != nil {
			return fmt.Errorf("insert routine %q: %w", name, err)
		}
		for i, exercise := range exercises {
			if _, err = tx.Exec(`
				INSERT INTO routine_exercises (routine_name, position, exercise)
				VALUES (?, ?, ?)
			`, name, i, exercise); err != nil {
				return fmt.Errorf("insert routine exercise: %w", err)
			}
		}
		position++
	}

	for i, w := range doc.Workouts {
		if err = insertWorkout(tx, i, w); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.log.Debug("saved database",
		zap.String("path", s.dbPath),
		zap.Int("routines", doc.Routines.Len()),
		zap.Int("workouts", len(doc.Workouts)))
	return nil
}

func insertWorkout(tx *sql.Tx, position int, w models.Workout) error {
	workoutID := uuid.New().String()
	if _, err := tx.Exec(`
		INSERT INTO workouts (id, position, date) VALUES (?, ?, ?)
	`, workoutID, position, w.Date.String()); err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}

	for i, e := range w.Exercises {
		exerciseID := uuid.New().String()
		if _, err := tx.Exec(`
			INSERT INTO exercise_logs (id, workout_id, position, name) VALUES (?, ?, ?, ?)
		`, exerciseID, workoutID, i, e.Name); err != nil {
			return fmt.Errorf("insert exercise: %w", err)
		}
		for j, set := range e.Sets {
			if _, err := tx.Exec(`
				INSERT INTO set_logs (exercise_id, position, reps, weight, weight_is_real, notes)
				VALUES (?, ?, ?, ?, ?, ?)
			`, exerciseID, j, set.Reps, set.Weight.Float(), set.Weight.IsReal(), set.Notes); err != nil {
				return fmt.Errorf("insert set: %w", err)
			}
		}
	}
	return nil
}
