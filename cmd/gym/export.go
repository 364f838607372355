// ABOUTME: CLI commands for exporting and importing gym data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats; imports merge a JSON document.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/harperreed/gym/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export gym data",
	Long: `Export gym data in various formats.

FORMATS:

  json       The data file document (suitable for backup/import)
  yaml       YAML export (human-readable)
  markdown   Routines plus one table per workout

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include workouts since this date (markdown only, YYYY-MM-DD)

EXAMPLES:

  gym export json -o backup.json
  gym export yaml
  gym export markdown --since 2025-01-01`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		doc, err := tr.Snapshot()
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		var data []byte
		switch format {
		case "json":
			data, err = storage.ExportJSON(doc)
		case "yaml":
			data, err = storage.ExportYAML(doc)
		case "markdown", "md":
			var since *time.Time
			if exportSince != "" {
				t, perr := time.ParseInLocation(dateLayout, exportSince, time.Local)
				if perr != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			var md string
			md, err = storage.ExportMarkdown(doc, since)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			success.Fprintf(out, "✓ Exported to %s\n", exportOutput)
			return nil
		}
		_, err = out.Write(data)
		return err
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import gym data from JSON",
	Long: `Import routines and workouts from a JSON document in the data file format
(for example one written by 'gym export json').

Routines replace existing routines with the same name. Workouts are appended;
routines without exercises, exercises without sets and workouts without
exercises are skipped.

EXAMPLES:

  gym import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		doc, err := storage.DecodeDocument(data)
		if err != nil {
			return &storage.ParseError{Path: filename, Err: err}
		}

		res, err := tr.Import(doc)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		out := cmd.OutOrStdout()
		success.Fprintf(out, "✓ Imported %d routines and %d workouts from %s\n", res.Routines, res.Workouts, filename)
		if res.Skipped > 0 {
			faint.Fprintf(out, "  skipped %d empty routines or workouts\n", res.Skipped)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include workouts since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
