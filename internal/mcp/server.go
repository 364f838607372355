// ABOUTME: MCP server setup for the gym tracker.
// ABOUTME: Wraps the MCP server around a Tracker and serializes calls onto it.
package mcp

import (
	"context"
	"sync"

	"github.com/harperreed/gym/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	log       *zap.Logger

	// mu guards tracker, which is not safe for concurrent use.
	mu      sync.Mutex
	tracker *tracker.Tracker
}

// NewServer creates a new MCP server over the given tracker.
func NewServer(t *tracker.Tracker, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "gym",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		log:       log,
		tracker:   t,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("mcp server starting", zap.String("data", s.tracker.Path()))
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
