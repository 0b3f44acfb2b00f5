package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mscrnt/wmiq/pkg/wmi"
	"github.com/mscrnt/wmiq/pkg/wmiops"
	"github.com/spf13/cobra"
)

// eventTypeNames maps Win32_NTLogEvent.EventType values.
var eventTypeNames = map[int64]string{
	1: "Error",
	2: "Warning",
	3: "Information",
	4: "Audit Success",
	5: "Audit Failure",
}

func eventTypeName(t int64) string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type %d", t)
}

func eventLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event-log",
		Short: "Read Windows event logs",
	}

	cmd.AddCommand(eventLogListCmd())
	cmd.AddCommand(eventLogReadCmd())

	return cmd
}

func eventLogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the event log files",
		RunE: func(_ *cobra.Command, _ []string) error {
			started := time.Now()
			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("event-log list", "", started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			recs, err := wmiops.NewEventLogReader(client).LogFiles()
			recordHistory(historyEntry("event-log list", "", started, len(recs), err))
			if err != nil {
				return err
			}

			if flagFormat != formatTable {
				return renderRecords(recs, nil, nil)
			}

			rows := make([]wmi.Record, len(recs))
			for i, lf := range recs {
				rows[i] = wmi.Record{
					"Log":      lf.Str("LogfileName"),
					"Records":  lf.Str("NumberOfRecords"),
					"Size":     wmiops.FormatBytes(lf.Uint64("FileSize")),
					"Max Size": wmiops.FormatBytes(lf.Uint64("MaxFileSize")),
				}
			}
			return printTable(os.Stdout, rows, []string{"Log", "Records", "Size", "Max Size"})
		},
	}
}

func eventLogReadCmd() *cobra.Command {
	var (
		eventType int
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "read <logfile>",
		Short: "Read recent events from a log",
		Long: `Read recent events from an event log.

Event types: 1 Error, 2 Warning, 3 Information, 4 Audit Success,
5 Audit Failure. Type 0 reads all.

Examples:
  # Last 20 System events
  wmiq event-log read System

  # Last 50 Application errors
  wmiq event-log read Application --type 1 --limit 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			logName := args[0]
			started := time.Now()

			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("event-log read", logName, started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			recs, err := wmiops.NewEventLogReader(client).Read(logName, eventType, limit)
			recordHistory(historyEntry("event-log read", logName, started, len(recs), err))
			if err != nil {
				return err
			}

			if flagFormat != formatTable {
				return renderRecords(recs, nil, nil)
			}

			rows := make([]wmi.Record, len(recs))
			for i, ev := range recs {
				when := ev.Str("TimeGenerated")
				if t, err := wmiops.ParseWMITime(when); err == nil {
					when = t.Format("2006-01-02 15:04:05")
				}
				rows[i] = wmi.Record{
					"Time":    when,
					"Type":    eventTypeName(ev.Int64("EventType")),
					"Source":  ev.Str("SourceName"),
					"Event":   ev.Str("EventCode"),
					"Message": truncate(ev.Str("Message"), 60),
				}
			}
			return printTable(os.Stdout, rows, []string{"Time", "Type", "Source", "Event", "Message"})
		},
	}

	cmd.Flags().IntVar(&eventType, "type", 0, "Event type filter (0 = all)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum events to return")

	return cmd
}
