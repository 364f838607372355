// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands against temp data files with scripted stdin and captured stdout.
package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/storage"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

const fixtureJSON = `{
  "routines": {
    "Legs": ["Squat", "Lunge"]
  },
  "workouts": [
    {
      "date": "2025-01-10T18:00:00",
      "exercises": [
        {"name": "Squat", "sets": [{"reps": 5, "weight": 135, "notes": ""}, {"reps": 5, "weight": 140.0, "notes": "belt"}]}
      ]
    },
    {
      "date": "2025-01-12T07:45:30.250000",
      "exercises": [
        {"name": "squat", "sets": [{"reps": 3, "weight": 150.5, "notes": ""}]},
        {"name": "Pull-up", "sets": [{"reps": 8, "weight": 0, "notes": ""}]}
      ]
    }
  ]
}
`

// setupTestCLI isolates config discovery and returns a data file path in a temp dir.
func setupTestCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("GYM_DATA_FILE", "")
	t.Setenv("GYM_BACKEND", "")
	t.Setenv("GYM_LOG_LEVEL", "")
	return filepath.Join(dir, "gym_data.json")
}

func writeFixture(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(fixtureJSON), 0600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
}

// runCLI executes the root command with stdin and returns stdout.
func runCLI(t *testing.T, dataPath, stdin string, args ...string) (string, error) {
	t.Helper()

	// Reset global flags
	historyLimit = defaultHistoryLimit
	logRoutine = ""
	exportOutput = ""
	exportSince = ""
	skillSkipConfirm = false
	verbose = false

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	// Later flags win, so a test can still pass --backend sqlite.
	rootCmd.SetArgs(append([]string{"--data=" + dataPath, "--backend=json"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func loadData(t *testing.T, path string) *models.Document {
	t.Helper()
	doc, err := storage.NewFileStore(path, nil).Load()
	if err != nil {
		t.Fatalf("Failed to load data: %v", err)
	}
	return doc
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("Expected output to contain %q, got:\n%s", w, out)
		}
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 10},
		{"3", 3},
		{"0", 0},
		{"25", 25},
		{"-1", 10},
		{"abc", 10},
		{"3x", 10},
		{"+3", 10},
	}

	for _, tt := range tests {
		if got := parseLimit(tt.input); got != tt.want {
			t.Errorf("parseLimit(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestWeightLabel(t *testing.T) {
	tests := []struct {
		name   string
		weight models.Weight
		zero   string
		want   string
	}{
		{"real", models.RealWeight(100), "bodyweight", "100.0lbs"},
		{"fraction", models.RealWeight(62.5), "BW", "62.5lbs"},
		{"integer", models.IntWeight(135), "BW", "135lbs"},
		{"bodyweight", models.Bodyweight, "bodyweight", "bodyweight"},
		{"real zero", models.RealWeight(0), "BW", "BW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := weightLabel(tt.weight, tt.zero); got != tt.want {
				t.Errorf("weightLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "gym" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "gym")
	}
	for _, name := range []string{"data", "backend", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, path := range [][]string{
		{"log"}, {"history"}, {"routine", "add"}, {"routine", "list"},
		{"progress"}, {"stats"}, {"exercises"}, {"export"}, {"import"},
		{"mcp"}, {"install-skill"},
	} {
		cmd, _, err := rootCmd.Find(path)
		if err != nil || cmd == rootCmd {
			t.Errorf("Expected command %v to be registered", path)
		}
	}
}

func TestCommandFlags(t *testing.T) {
	limit := historyCmd.Flags().Lookup("limit")
	if limit == nil || limit.Shorthand != "n" || limit.DefValue != "10" {
		t.Errorf("Expected --limit/-n defaulting to 10, got %+v", limit)
	}
	if logCmd.Flags().Lookup("routine") == nil {
		t.Error("Expected --routine flag on log command")
	}
	if exportCmd.Flags().Lookup("output") == nil || exportCmd.Flags().Lookup("since") == nil {
		t.Error("Expected --output and --since flags on export command")
	}
	if installSkillCmd.Flags().Lookup("yes") == nil {
		t.Error("Expected --yes flag on install-skill command")
	}
}

func TestRoutineAddAndList(t *testing.T) {
	data := setupTestCLI(t)

	out, err := runCLI(t, data, "", "routine", "list")
	if err != nil {
		t.Fatalf("routine list failed: %v", err)
	}
	assertContains(t, out, "No routines found. Create one with 'add-routine'")

	out, err = runCLI(t, data, "", "routine", "add", "Push Day", "Bench", "Dips")
	if err != nil {
		t.Fatalf("routine add failed: %v", err)
	}
	assertContains(t, out, "✓ Routine 'Push Day' created with 2 exercises")

	if _, err := runCLI(t, data, "", "routine", "add", "Legs", "Squat"); err != nil {
		t.Fatalf("routine add failed: %v", err)
	}
	if _, err := runCLI(t, data, "", "routine", "add", "Push Day", "Press"); err != nil {
		t.Fatalf("routine overwrite failed: %v", err)
	}

	out, err = runCLI(t, data, "", "routine", "list")
	if err != nil {
		t.Fatalf("routine list failed: %v", err)
	}
	want := "\nPush Day:\n  1. Press\n\nLegs:\n  1. Squat\n"
	assertContains(t, out, "=== Your Workout Routines ===", want)
}

func TestRoutineAddRejectsBlank(t *testing.T) {
	data := setupTestCLI(t)

	if _, err := runCLI(t, data, "", "routine", "add", " ", "Squat"); err == nil {
		t.Error("Expected error for blank routine name")
	}
	if _, err := runCLI(t, data, "", "routine", "add", "Legs", " "); err == nil {
		t.Error("Expected error for blank exercises")
	}
	if _, err := os.Stat(data); !os.IsNotExist(err) {
		t.Error("Expected no data file to be written")
	}
}

func TestLogCmdFreeForm(t *testing.T) {
	data := setupTestCLI(t)

	stdin := "Squat\n5\n140\nbelt\n5\n\n\ndone\ndone\n"
	out, err := runCLI(t, data, stdin, "log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	assertContains(t, out,
		"=== Log New Workout ===",
		"Logging sets for: Squat",
		"✓ Workout logged successfully! (1 exercises)")

	doc := loadData(t, data)
	if len(doc.Workouts) != 1 {
		t.Fatalf("Expected 1 workout, got %d", len(doc.Workouts))
	}
	sets := doc.Workouts[0].Exercises[0].Sets
	if len(sets) != 2 {
		t.Fatalf("Expected 2 sets, got %d", len(sets))
	}
	if !sets[0].Weight.Equal(models.RealWeight(140)) || sets[0].Notes != "belt" {
		t.Errorf("Unexpected first set: %+v", sets[0])
	}
	if !sets[1].Weight.Equal(models.Bodyweight) {
		t.Errorf("Expected bodyweight second set, got %+v", sets[1])
	}

	raw, _ := os.ReadFile(data)
	assertContains(t, string(raw), `"weight": 140.0`, `"weight": 0`)
}

func TestLogCmdWithRoutineAndInvalidInput(t *testing.T) {
	data := setupTestCLI(t)
	writeFixture(t, data)

	stdin := "9\n1\nabc\n5\n-3\n100\n\ndone\nd\n"
	out, err := runCLI(t, data, stdin, "log", "--routine", "Legs")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	assertContains(t, out,
		"Using routine: Legs",
		"Exercises in routine:\n  1. Squat\n  2. Lunge",
		"Invalid choice",
		"Invalid input. Please enter numbers for reps and weight.",
		"✓ Workout logged successfully! (1 exercises)")

	doc := loadData(t, data)
	if len(doc.Workouts) != 3 {
		t.Fatalf("Expected 3 workouts, got %d", len(doc.Workouts))
	}
	last := doc.Workouts[2]
	if last.Exercises[0].Name != "Squat" || len(last.Exercises[0].Sets) != 1 {
		t.Errorf("Unexpected logged workout: %+v", last)
	}
	if set := last.Exercises[0].Sets[0]; set.Reps != 5 || !set.Weight.Equal(models.RealWeight(100)) {
		t.Errorf("Unexpected set: %+v", set)
	}
}

func TestLogCmdNothingLogged(t *testing.T) {
	data := setupTestCLI(t)

	out, err := runCLI(t, data, "Plank\ndone\ndone\n", "log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	assertContains(t, out, "No exercises logged.")

	if _, err := os.Stat(data); !os.IsNotExist(err) {
		t.Error("Expected no data file to be written")
	}
}

func TestLogCmdEOFKeepsCompletedSets(t *testing.T) {
	data := setupTestCLI(t)

	out, err := runCLI(t, data, "Row\n8\n50\n\n8\n", "log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	assertContains(t, out, "✓ Workout logged successfully! (1 exercises)")

	doc := loadData(t, data)
	if got := doc.Workouts[0].Exercises[0].Sets; len(got) != 1 {
		t.Errorf("Expected only the completed set, got %+v", got)
	}
}

func TestHistoryCmd(t *testing.T) {
	data := setupTestCLI(t)

	out, err := runCLI(t, data, "", "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	assertContains(t, out, "No workouts logged yet. Start with 'log-workout'")

	writeFixture(t, data)
	out, err = runCLI(t, data, "", "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	assertContains(t, out,
		"📅 2025-01-12 07:45",
		"📅 2025-01-10 18:00",
		"  Set 1: 5 reps @ 135lbs\n",
		"  Set 2: 5 reps @ 140.0lbs - belt\n",
		"  Set 1: 8 reps @ bodyweight\n")
	if strings.Index(out, "2025-01-12") > strings.Index(out, "2025-01-10") {
		t.Error("Expected most recent workout first")
	}

	out, err = runCLI(t, data, "", "history", "-n", "1")
	if err != nil {
		t.Fatalf("history -n 1 failed: %v", err)
	}
	if strings.Contains(out, "2025-01-10") {
		t.Errorf("Expected only one workout, got:\n%s", out)
	}
}

func TestProgressCmd(t *testing.T) {
	data := setupTestCLI(t)
	writeFixture(t, data)

	out, err := runCLI(t, data, "", "progress", "SQUAT")
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	assertContains(t, out,
		"=== Progress for: SQUAT ===",
		"📅 2025-01-10\n  Set 1: 5 reps @ 135lbs\n  Set 2: 5 reps @ 140.0lbs\n",
		"📅 2025-01-12\n  Set 1: 3 reps @ 150.5lbs\n")

	out, err = runCLI(t, data, "", "progress", "pull-up")
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	assertContains(t, out, "Set 1: 8 reps @ BW")

	out, err = runCLI(t, data, "", "progress", "dead", "lift")
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	assertContains(t, out, "No history found for 'dead lift'")
}

func TestStatsCmd(t *testing.T) {
	data := setupTestCLI(t)

	out, err := runCLI(t, data, "", "stats")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	assertContains(t, out, "No workout data available yet.")

	writeFixture(t, data)
	out, err = runCLI(t, data, "", "stats")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	assertContains(t, out,
		"Total Workouts: 2",
		"Total Exercises Logged: 3",
		"Total Sets Completed: 4",
		"Total Routines: 1",
		"  • Squat: 1 times\n  • squat: 1 times\n  • Pull-up: 1 times\n")
}

func TestExercisesCmd(t *testing.T) {
	data := setupTestCLI(t)

	out, err := runCLI(t, data, "", "exercises")
	if err != nil {
		t.Fatalf("exercises failed: %v", err)
	}
	assertContains(t, out, "No exercises logged yet.")

	writeFixture(t, data)
	out, err = runCLI(t, data, "", "exercises")
	if err != nil {
		t.Fatalf("exercises failed: %v", err)
	}
	if out != "Squat\nsquat\nPull-up\n" {
		t.Errorf("Unexpected exercises output: %q", out)
	}
}

func TestExportJSONCmd(t *testing.T) {
	data := setupTestCLI(t)
	if _, err := runCLI(t, data, "", "routine", "add", "Legs", "Squat"); err != nil {
		t.Fatalf("routine add failed: %v", err)
	}

	out, err := runCLI(t, data, "", "export", "json")
	if err != nil {
		t.Fatalf("export json failed: %v", err)
	}
	raw, _ := os.ReadFile(data)
	if out != string(raw) {
		t.Errorf("Expected export to match data file.\nexport:\n%s\nfile:\n%s", out, raw)
	}
}

func TestExportYAMLCmd(t *testing.T) {
	data := setupTestCLI(t)
	writeFixture(t, data)

	out, err := runCLI(t, data, "", "export", "yaml")
	if err != nil {
		t.Fatalf("export yaml failed: %v", err)
	}
	assertContains(t, out, "routines:", "Legs:", "workouts:", "weight: 140.0")
}

func TestExportMarkdownCmd(t *testing.T) {
	data := setupTestCLI(t)
	writeFixture(t, data)

	out, err := runCLI(t, data, "", "export", "markdown", "--since", "2025-01-11")
	if err != nil {
		t.Fatalf("export markdown failed: %v", err)
	}
	assertContains(t, out, "# Gym Export", "### Legs", "### 2025-01-12 07:45", "| Pull-up | 1 | 8 | bodyweight |  |")
	if strings.Contains(out, "2025-01-10") {
		t.Error("Expected workouts before --since to be dropped")
	}
}

func TestExportErrors(t *testing.T) {
	data := setupTestCLI(t)

	if _, err := runCLI(t, data, "", "export", "csv"); err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("Expected unknown format error, got %v", err)
	}
	if _, err := runCLI(t, data, "", "export", "markdown", "--since", "01/02/2025"); err == nil {
		t.Error("Expected error for invalid --since")
	}
}

func TestExportToFile(t *testing.T) {
	data := setupTestCLI(t)
	writeFixture(t, data)
	target := filepath.Join(t.TempDir(), "backup.json")

	out, err := runCLI(t, data, "", "export", "json", "-o", target)
	if err != nil {
		t.Fatalf("export to file failed: %v", err)
	}
	assertContains(t, out, "✓ Exported to "+target)

	doc, err := storage.NewFileStore(target, nil).Load()
	if err != nil {
		t.Fatalf("exported file does not load: %v", err)
	}
	if len(doc.Workouts) != 2 {
		t.Errorf("Expected 2 workouts in export, got %d", len(doc.Workouts))
	}
}

func TestImportCmd(t *testing.T) {
	data := setupTestCLI(t)
	if _, err := runCLI(t, data, "", "routine", "add", "Legs", "Deadlift"); err != nil {
		t.Fatalf("routine add failed: %v", err)
	}

	src := filepath.Join(t.TempDir(), "import.json")
	body := `{"routines": {"Legs": ["Squat"], "Arms": ["Curl"]},
	"workouts": [
	  {"date": "2025-02-01T10:00:00", "exercises": [{"name": "Curl", "sets": [{"reps": 10, "weight": 25, "notes": ""}]}]},
	  {"date": "2025-02-02T10:00:00", "exercises": [{"name": "Plank", "sets": []}]}
	]}`
	if err := os.WriteFile(src, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, data, "", "import", src)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	assertContains(t, out, "✓ Imported 2 routines and 1 workouts from", "skipped 1 empty routines or workouts")

	doc := loadData(t, data)
	legs, _ := doc.Routine("Legs")
	if len(legs) != 1 || legs[0] != "Squat" {
		t.Errorf("Expected Legs to be replaced, got %v", legs)
	}
	if len(doc.Workouts) != 1 {
		t.Errorf("Expected 1 imported workout, got %d", len(doc.Workouts))
	}
}

func TestImportMalformed(t *testing.T) {
	data := setupTestCLI(t)
	src := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(src, []byte("[1, 2"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, data, "", "import", src)
	var parseErr *storage.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
}

func TestMalformedDataFileFailsFast(t *testing.T) {
	data := setupTestCLI(t)
	if err := os.WriteFile(data, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, data, "", "stats")
	var parseErr *storage.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, got %v", err)
	}

	raw, _ := os.ReadFile(data)
	if string(raw) != "{not json" {
		t.Error("Malformed data file must not be rewritten")
	}
}

func TestMenu(t *testing.T) {
	data := setupTestCLI(t)

	stdin := "4\n3\nPush\nBench\nDips\n\n4\n2\nabc\n6\n9\n3\n\n7\n"
	out, err := runCLI(t, data, stdin)
	if err != nil {
		t.Fatalf("menu failed: %v", err)
	}
	assertContains(t, out,
		"Welcome to Gym Routine Tracker!",
		"1. Log Workout",
		"7. Exit",
		"No routines found.",
		"✓ Routine 'Push' created with 2 exercises",
		"Push:\n  1. Bench\n  2. Dips",
		"No workouts logged yet.",
		"No workout data available yet.",
		"Invalid option. Please select 1-7.",
		"Routine name cannot be empty",
		"Keep up the good work! Goodbye!")
}

func TestMenuLogWorkout(t *testing.T) {
	data := setupTestCLI(t)
	writeFixture(t, data)

	stdin := "1\nLegs\n2\n12\n\nwalking\ndone\nd\n2\n1\n7\n"
	out, err := runCLI(t, data, stdin)
	if err != nil {
		t.Fatalf("menu failed: %v", err)
	}
	assertContains(t, out,
		"Available routines:\n  • Legs",
		"Logging sets for: Lunge",
		"✓ Workout logged successfully! (1 exercises)",
		"Set 1: 12 reps @ bodyweight - walking")
}

func TestMenuEOF(t *testing.T) {
	data := setupTestCLI(t)

	out, err := runCLI(t, data, "")
	if err != nil {
		t.Fatalf("menu failed on EOF: %v", err)
	}
	assertContains(t, out, "Goodbye!")
}

func TestMenuEOFDuringLog(t *testing.T) {
	data := setupTestCLI(t)

	out, err := runCLI(t, data, "1\nBench\n5\n100\n\n")
	if err != nil {
		t.Fatalf("menu failed: %v", err)
	}
	assertContains(t, out, "✓ Workout logged successfully! (1 exercises)", "Goodbye!")
}

func TestSQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	setupTestCLI(t)
	db := filepath.Join(dir, "gym.db")

	if _, err := runCLI(t, db, "", "routine", "add", "Legs", "Squat", "--backend", "sqlite"); err != nil {
		t.Fatalf("routine add failed: %v", err)
	}
	if _, err := runCLI(t, db, "Squat\n5\n100\n\ndone\ndone\n", "log", "--backend", "sqlite"); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	out, err := runCLI(t, db, "", "stats", "--backend", "sqlite")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	assertContains(t, out, "Total Workouts: 1", "Total Routines: 1")
}
