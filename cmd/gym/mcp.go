// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/gym/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read and log your workouts through
a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "gym": {
        "command": "gym",
        "args": ["mcp", "--data", "/path/to/gym_data.json"]
      }
    }
  }

AVAILABLE TOOLS:

  create_routine   Create or replace a routine
  list_routines    List routines
  log_workout      Log exercises with sets
  view_history     Recent workouts, newest first
  view_progress    Every occurrence of one exercise
  get_stats        Totals and most frequent exercises

AVAILABLE RESOURCES:

  gym://stats      Workout statistics
  gym://recent     Recent workouts and logged exercise names
  gym://routines   Saved routines`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(tr, logger)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
