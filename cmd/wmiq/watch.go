package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mscrnt/wmiq/pkg/watch"
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	var schedule string

	cmd := &cobra.Command{
		Use:   "watch <wql>",
		Short: "Re-run a query on a schedule",
		Long: `Re-run a WQL query on a cron schedule and print a timestamped
summary per run. Stops on interrupt.

Examples:
  # Every 30 seconds
  wmiq watch "SELECT * FROM Win32_Process WHERE Name = 'chrome.exe'"

  # Every five minutes
  wmiq watch "SELECT * FROM Win32_Service WHERE State = 'Stopped'" \
    --schedule "*/5 * * * *"`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			wql := args[0]

			sched, err := watch.Parse(schedule)
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Watching: %s\n", wql)
			fmt.Printf("Schedule: %s\n", schedule)
			fmt.Println("Press Ctrl+C to stop...")
			fmt.Println()

			runner := &watch.Runner{
				Schedule: sched,
				Job: func(context.Context) error {
					started := time.Now()
					recs, err := client.Query(wql)
					recordHistory(historyEntry("watch", wql, started, len(recs), err))
					if err != nil {
						return err
					}
					fmt.Printf("%s  %d records\n", time.Now().Format("2006-01-02 15:04:05"), len(recs))
					return nil
				},
			}

			if err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Println("\nStopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "@every 30s", "Cron expression or @every duration")

	return cmd
}
