// ABOUTME: MCP tool implementations for the gym tracker.
// ABOUTME: Provides routine creation and listing, workout logging, history, progress and stats.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/harperreed/gym/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 10

// models.Weight marshals to a bare number (100 or 100.0), which struct
// inference cannot see.
var schemaOptions = &jsonschema.ForOptions{
	TypeSchemas: map[reflect.Type]*jsonschema.Schema{
		reflect.TypeFor[models.Weight](): {Type: "number", Minimum: jsonschema.Ptr(0.0)},
	},
}

// outputSchema infers the schema of a tool result type.
func outputSchema[T any]() *jsonschema.Schema {
	s, err := jsonschema.For[T](schemaOptions)
	if err != nil {
		panic(fmt.Sprintf("infer output schema: %v", err))
	}
	return s
}

func (s *Server) registerTools() {
	// create_routine
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_routine",
		Description: "Create or replace a named routine (an ordered list of exercises)",
	}, s.handleCreateRoutine)

	// list_routines
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_routines",
		Description: "List saved routines in the order they were created",
	}, s.handleListRoutines)

	// log_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:         "log_workout",
		Description:  "Log a workout: exercises with sets of reps, weight and notes",
		OutputSchema: outputSchema[workoutOutput](),
	}, s.handleLogWorkout)

	// view_history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:         "view_history",
		Description:  "Show recent workouts, most recent first",
		OutputSchema: outputSchema[historyOutput](),
	}, s.handleViewHistory)

	// view_progress
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:         "view_progress",
		Description:  "Show every logged occurrence of an exercise, oldest first (name match ignores case)",
		OutputSchema: outputSchema[progressOutput](),
	}, s.handleViewProgress)

	// get_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Totals across all workouts plus the most frequently logged exercises",
	}, s.handleGetStats)
}

// Tool input/output types

type createRoutineInput struct {
	Name      string   `json:"name" jsonschema:"Routine name; an existing routine with this name is replaced"`
	Exercises []string `json:"exercises" jsonschema:"Exercise names in order"`
}

type routineOutput struct {
	Name      string `json:"name"`
	Exercises int    `json:"exercises"`
	Message   string `json:"message"`
}

type listRoutinesInput struct{}

type routineView struct {
	Name      string   `json:"name"`
	Exercises []string `json:"exercises"`
}

type listRoutinesOutput struct {
	Routines []routineView `json:"routines"`
	Message  string        `json:"message,omitempty"`
}

type setInput struct {
	Reps   int      `json:"reps" jsonschema:"Repetitions performed"`
	Weight *float64 `json:"weight,omitempty" jsonschema:"Weight in lbs/kg; omit or 0 for bodyweight"`
	Notes  string   `json:"notes,omitempty" jsonschema:"Optional notes for the set"`
}

type exerciseInput struct {
	Name string     `json:"name" jsonschema:"Exercise name"`
	Sets []setInput `json:"sets" jsonschema:"Sets in the order performed"`
}

type logWorkoutInput struct {
	Exercises []exerciseInput `json:"exercises" jsonschema:"Exercises in the order performed; exercises without sets are ignored"`
}

type setView struct {
	Reps   int           `json:"reps"`
	Weight models.Weight `json:"weight" jsonschema:"Weight as stored: an integer or a real, 0 for bodyweight"`
	Notes  string        `json:"notes,omitempty"`
}

type exerciseView struct {
	Name string    `json:"name"`
	Sets []setView `json:"sets"`
}

type workoutView struct {
	Date      string         `json:"date"`
	Exercises []exerciseView `json:"exercises"`
}

type workoutOutput struct {
	Logged  bool         `json:"logged"`
	Workout *workoutView `json:"workout,omitempty"`
	Message string       `json:"message"`
}

type viewHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max workouts to return (default 10)"`
}

type historyOutput struct {
	Workouts []workoutView `json:"workouts"`
	Message  string        `json:"message,omitempty"`
}

type viewProgressInput struct {
	Exercise string `json:"exercise" jsonschema:"Exercise name (case-insensitive)"`
}

type progressView struct {
	Date string    `json:"date"`
	Name string    `json:"name"`
	Sets []setView `json:"sets"`
}

type progressOutput struct {
	Exercise string         `json:"exercise"`
	Found    bool           `json:"found"`
	Entries  []progressView `json:"entries"`
	Message  string         `json:"message,omitempty"`
}

type getStatsInput struct{}

type exerciseCountView struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type statsOutput struct {
	HasData        bool                `json:"has_data"`
	TotalWorkouts  int                 `json:"total_workouts"`
	TotalExercises int                 `json:"total_exercises"`
	TotalSets      int                 `json:"total_sets"`
	TotalRoutines  int                 `json:"total_routines"`
	TopExercises   []exerciseCountView `json:"top_exercises"`
	Message        string              `json:"message,omitempty"`
}

// Views

func toSetViews(sets []models.SetLog) []setView {
	out := make([]setView, 0, len(sets))
	for _, set := range sets {
		out = append(out, setView{Reps: set.Reps, Weight: set.Weight, Notes: set.Notes})
	}
	return out
}

func toWorkoutView(w models.Workout) workoutView {
	v := workoutView{Date: w.Date.String(), Exercises: make([]exerciseView, 0, len(w.Exercises))}
	for _, e := range w.Exercises {
		v.Exercises = append(v.Exercises, exerciseView{Name: e.Name, Sets: toSetViews(e.Sets)})
	}
	return v
}

// toExerciseLogs validates tool input and converts it to models.
func toExerciseLogs(in []exerciseInput) ([]models.ExerciseLog, error) {
	var out []models.ExerciseLog
	for _, e := range in {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, errors.New("exercise name is required")
		}
		el := models.NewExerciseLog(name)
		for i, set := range e.Sets {
			if set.Reps < 0 {
				return nil, fmt.Errorf("%s set %d: reps cannot be negative", name, i+1)
			}
			weight := models.Bodyweight
			if set.Weight != nil {
				if *set.Weight < 0 {
					return nil, fmt.Errorf("%s set %d: weight cannot be negative", name, i+1)
				}
				weight = models.RealWeight(*set.Weight)
			}
			el.WithSet(models.NewSetLog(set.Reps, weight, strings.TrimSpace(set.Notes)))
		}
		out = append(out, *el)
	}
	return out, nil
}

// Tool handlers

func (s *Server) handleCreateRoutine(ctx context.Context, req *mcp.CallToolRequest, input createRoutineInput) (*mcp.CallToolResult, routineOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, routineOutput{}, errors.New("routine name is required")
	}
	var exercises []string
	for _, e := range input.Exercises {
		if e = strings.TrimSpace(e); e != "" {
			exercises = append(exercises, e)
		}
	}
	if len(exercises) == 0 {
		return nil, routineOutput{}, errors.New("at least one exercise is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.tracker.CreateRoutine(name, exercises)
	if err != nil {
		return nil, routineOutput{}, fmt.Errorf("failed to create routine: %w", err)
	}

	return nil, routineOutput{
		Name:      name,
		Exercises: n,
		Message:   fmt.Sprintf("Routine '%s' created with %d exercises!", name, n),
	}, nil
}

func (s *Server) handleListRoutines(ctx context.Context, req *mcp.CallToolRequest, input listRoutinesInput) (*mcp.CallToolResult, listRoutinesOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := listRoutinesOutput{Routines: []routineView{}}
	for name, exercises := range s.tracker.Routines() {
		out.Routines = append(out.Routines, routineView{Name: name, Exercises: exercises})
	}
	if len(out.Routines) == 0 {
		out.Message = "No routines found."
	}
	return nil, out, nil
}

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	exercises, err := toExerciseLogs(input.Exercises)
	if err != nil {
		return nil, workoutOutput{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.tracker.LogWorkout(exercises)
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to log workout: %w", err)
	}
	if w == nil {
		return nil, workoutOutput{Message: "No exercises logged."}, nil
	}

	s.log.Debug("workout logged via mcp", zap.Int("exercises", len(w.Exercises)))
	view := toWorkoutView(*w)
	return nil, workoutOutput{
		Logged:  true,
		Workout: &view,
		Message: fmt.Sprintf("Workout saved! %d exercises logged.", len(w.Exercises)),
	}, nil
}

func (s *Server) handleViewHistory(ctx context.Context, req *mcp.CallToolRequest, input viewHistoryInput) (*mcp.CallToolResult, historyOutput, error) {
	if input.Limit <= 0 {
		input.Limit = defaultHistoryLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := historyOutput{Workouts: []workoutView{}}
	for w := range s.tracker.History(input.Limit) {
		out.Workouts = append(out.Workouts, toWorkoutView(w))
	}
	if len(out.Workouts) == 0 {
		out.Message = "No workouts logged yet."
	}
	return nil, out, nil
}

func (s *Server) handleViewProgress(ctx context.Context, req *mcp.CallToolRequest, input viewProgressInput) (*mcp.CallToolResult, progressOutput, error) {
	name := strings.TrimSpace(input.Exercise)
	if name == "" {
		return nil, progressOutput{}, errors.New("exercise is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := progressOutput{Exercise: name, Entries: []progressView{}}
	seq, found := s.tracker.Progress(name)
	if !found {
		out.Message = fmt.Sprintf("No history found for '%s'", name)
		return nil, out, nil
	}
	out.Found = true
	for entry := range seq {
		out.Entries = append(out.Entries, progressView{
			Date: entry.Date.String(),
			Name: entry.Name,
			Sets: toSetViews(entry.Sets),
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input getStatsInput) (*mcp.CallToolResult, statsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, ok := s.tracker.Stats()
	if !ok {
		return nil, statsOutput{TopExercises: []exerciseCountView{}, Message: "No workout data available yet."}, nil
	}

	out := statsOutput{
		HasData:        true,
		TotalWorkouts:  stats.TotalWorkouts,
		TotalExercises: stats.TotalExercises,
		TotalSets:      stats.TotalSets,
		TotalRoutines:  stats.TotalRoutines,
		TopExercises:   make([]exerciseCountView, 0, len(stats.Top)),
	}
	for _, c := range stats.Top {
		out.TopExercises = append(out.TopExercises, exerciseCountView(c))
	}
	return nil, out, nil
}
