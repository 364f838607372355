// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for routines, workouts, exercise logs and set logs.
package storage

// initSchema creates or updates the database schema.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS routines (
		name TEXT PRIMARY KEY,
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS routine_exercises (
		routine_name TEXT NOT NULL,
		position INTEGER NOT NULL,
		exercise TEXT NOT NULL,
		PRIMARY KEY (routine_name, position),
		FOREIGN KEY (routine_name) REFERENCES routines(name) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercise_logs (
		id TEXT PRIMARY KEY,
		workout_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS set_logs (
		exercise_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		reps INTEGER NOT NULL,
		weight REAL NOT NULL,
		weight_is_real INTEGER NOT NULL DEFAULT 1,
		notes TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (exercise_id, position),
		FOREIGN KEY (exercise_id) REFERENCES exercise_logs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_position ON workouts(position);
	CREATE INDEX IF NOT EXISTS idx_exercise_logs_workout ON exercise_logs(workout_id, position);
	CREATE INDEX IF NOT EXISTS idx_exercise_logs_name ON exercise_logs(name COLLATE NOCASE);
	`

	_, err := s.db.Exec(schema)
	return err
}
