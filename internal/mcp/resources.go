// ABOUTME: MCP resource implementations for the gym tracker.
// ABOUTME: Provides gym://stats, gym://recent and gym://routines resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const recentWorkoutLimit = 5

func (s *Server) registerResources() {
	// gym://stats - totals and top exercises
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "gym://stats",
		Name:        "Workout Statistics",
		Description: "Total workouts, exercises, sets and routines plus the top exercises",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	// gym://recent - the last few workouts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "gym://recent",
		Name:        "Recent Workouts",
		Description: "The most recent workouts, newest first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// gym://routines - saved routines
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "gym://routines",
		Name:        "Routines",
		Description: "Saved routines with their exercises",
		MIMEType:    "application/json",
	}, s.handleRoutinesResource)
}

// jsonResource renders v as the single content of a resource read.
func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	_, out, err := s.handleGetStats(ctx, nil, getStatsInput{})
	if err != nil {
		return nil, err
	}
	return jsonResource("gym://stats", out)
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	_, out, err := s.handleViewHistory(ctx, nil, viewHistoryInput{Limit: recentWorkoutLimit})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	names := s.tracker.ExerciseNames()
	s.mu.Unlock()

	result := map[string]any{
		"workouts":  out.Workouts,
		"exercises": names,
		"count":     len(out.Workouts),
	}
	return jsonResource("gym://recent", result)
}

func (s *Server) handleRoutinesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	_, out, err := s.handleListRoutines(ctx, nil, listRoutinesInput{})
	if err != nil {
		return nil, err
	}
	return jsonResource("gym://routines", out.Routines)
}
