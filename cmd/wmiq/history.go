package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mscrnt/wmiq/pkg/db"
	"github.com/mscrnt/wmiq/pkg/wmi"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var (
		limit   int
		command string
		failed  bool
		since   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previously executed operations",
		Long: `Show the history of executed operations, newest first.

Examples:
  # Last 50 operations
  wmiq history

  # Failed queries from the last day
  wmiq history --command query --failed --since 24h`,
		RunE: func(_ *cobra.Command, _ []string) error {
			database, err := db.Open(getDBPath())
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer func() { _ = database.Close() }()

			filter := db.Filter{
				Command:    command,
				FailedOnly: failed,
				Limit:      limit,
			}
			if since > 0 {
				t := time.Now().Add(-since)
				filter.Since = &t
			}

			entries, err := database.List(filter)
			if err != nil {
				return fmt.Errorf("failed to list history: %w", err)
			}

			if flagFormat == formatJSON {
				return printJSON(entries)
			}
			if len(entries) == 0 {
				fmt.Println("No history")
				return nil
			}

			rows := make([]wmi.Record, len(entries))
			for i, e := range entries {
				status := "ok"
				if !e.Success {
					status = "failed"
				}
				rows[i] = wmi.Record{
					"ID":       fmt.Sprintf("%d", e.ID),
					"When":     humanize.Time(e.StartedAt),
					"Command":  e.Command,
					"Detail":   truncate(e.Detail, 40),
					"Duration": e.Duration().String(),
					"Rows":     fmt.Sprintf("%d", e.RowCount),
					"Status":   status,
				}
			}
			return printTable(os.Stdout, rows,
				[]string{"ID", "When", "Command", "Detail", "Duration", "Rows", "Status"})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to show")
	cmd.Flags().StringVar(&command, "command", "", "Filter by command name")
	cmd.Flags().BoolVar(&failed, "failed", false, "Show only failed operations")
	cmd.Flags().DurationVar(&since, "since", 0, "Only entries newer than this age (e.g. 24h)")

	cmd.AddCommand(historyExportCmd())
	cmd.AddCommand(historyPruneCmd())

	return cmd
}

func historyExportCmd() *cobra.Command {
	var (
		format  string
		output  string
		command string
		failed  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export history as CSV or JSON",
		Long: `Export history entries.

Examples:
  # All history as CSV to stdout
  wmiq history export

  # Failed operations to a file
  wmiq history export --format json --failed --output failures.json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			database, err := db.Open(getDBPath())
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer func() { _ = database.Close() }()

			out := os.Stdout
			if output != "" {
				out, err = os.Create(output) // #nosec G304 -- user-specified output path
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer func() { _ = out.Close() }()
			}

			filter := db.Filter{Command: command, FailedOnly: failed}
			switch format {
			case "csv":
				err = database.ExportCSV(out, filter)
			case "json":
				err = database.ExportJSON(out, filter)
			default:
				return fmt.Errorf("unknown export format %q (want csv or json)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to export history: %w", err)
			}

			if output != "" {
				fmt.Printf("Exported history to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Export format: csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&command, "command", "", "Filter by command name")
	cmd.Flags().BoolVar(&failed, "failed", false, "Export only failed operations")

	return cmd
}

func historyPruneCmd() *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest history entries",
		RunE: func(_ *cobra.Command, _ []string) error {
			if keep < 0 {
				return fmt.Errorf("--keep must not be negative")
			}

			database, err := db.Open(getDBPath())
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer func() { _ = database.Close() }()

			deleted, err := database.Prune(keep)
			if err != nil {
				return fmt.Errorf("failed to prune history: %w", err)
			}

			fmt.Printf("Removed %d entries, kept the newest %d\n", deleted, keep)
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 100, "Number of newest entries to keep")

	return cmd
}
