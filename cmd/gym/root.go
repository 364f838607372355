// ABOUTME: Root Cobra command for gym CLI.
// ABOUTME: Loads config, builds the logger and opens the tracker via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/gym/internal/config"
	"github.com/harperreed/gym/internal/tracker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	settings = config.NewViper()
	logger   = zap.NewNop()
	tr       *tracker.Tracker
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "gym",
	Short: "Gym routine and workout tracker",
	Long: `Gym is a CLI tool for tracking gym routines and workouts.

Run without arguments to start the interactive menu.

QUICK START:

  $ gym routine add "Push Day" Bench Dips "Overhead Press"
  $ gym log --routine "Push Day"     # Log sets interactively
  $ gym history -n 5                 # Last five workouts
  $ gym progress "bench"             # Every bench entry, oldest first
  $ gym stats                        # Totals and most frequent exercises

DATA STORAGE:

  Everything lives in one JSON file, gym_data.json in the current directory
  by default. Override with --data, GYM_DATA_FILE, or data_file in
  ~/.config/gym/config.yaml. Set backend: sqlite to keep the same data in a
  SQLite database instead.

MCP INTEGRATION:

  Run 'gym mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip tracker init for commands that don't touch data
		if cmd.Name() == "help" || cmd.Name() == "install-skill" {
			return nil
		}

		cfg, err := config.Load(settings)
		if err != nil {
			return err
		}
		if verbose {
			cfg.LogLevel = "debug"
		}

		logger, err = cfg.NewLogger()
		if err != nil {
			return err
		}

		store, err := cfg.OpenStorage(logger)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		tr, err = tracker.New(store, tracker.WithLogger(logger))
		if err != nil {
			_ = store.Close()
			return err
		}
		logger.Debug("tracker ready",
			zap.String("path", store.Path()),
			zap.String("backend", cfg.GetBackend()))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = logger.Sync()
		if tr != nil {
			err := tr.Close()
			tr = nil
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("data", "", "data file path (default gym_data.json)")
	flags.String("backend", "", "storage backend: json or sqlite")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	_ = settings.BindPFlag(config.KeyDataFile, flags.Lookup("data"))
	_ = settings.BindPFlag(config.KeyBackend, flags.Lookup("backend"))
}
