package main

import (
	"time"

	"github.com/spf13/cobra"
)

func queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <wql>",
		Short: "Execute a raw WQL query",
		Long: `Execute a WQL query and render the results.

Tables show the first 10 properties (sorted); use --format json for full
records.

Examples:
  # All running services
  wmiq query "SELECT * FROM Win32_Service WHERE State = 'Running'"

  # Full records as JSON
  wmiq query "SELECT * FROM Win32_LogicalDisk" --format json

  # Against another namespace
  wmiq query "SELECT * FROM MSFT_Volume" -n root\microsoft\windows\storage`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			wql := args[0]
			started := time.Now()

			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("query", wql, started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			recs, err := client.Query(wql)
			recordHistory(historyEntry("query", wql, started, len(recs), err))
			if err != nil {
				return err
			}

			return renderRecords(recs, nil, nil)
		},
	}
}
