package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mscrnt/wmiq/pkg/wmi"
	"github.com/mscrnt/wmiq/pkg/wmiops"
	"github.com/spf13/cobra"
)

var processColumns = []string{"PID", "Name", "Threads", "Memory"}

// processRows reshapes raw process records for table display.
func processRows(recs []wmi.Record) []wmi.Record {
	rows := make([]wmi.Record, len(recs))
	for i, p := range recs {
		rows[i] = wmi.Record{
			"PID":     p.Str("ProcessId"),
			"Name":    p.Str("Name"),
			"Threads": p.Str("ThreadCount"),
			"Memory":  wmiops.FormatBytes(p.Uint64("WorkingSetSize")),
		}
	}
	return rows
}

func renderProcesses(recs []wmi.Record) error {
	if flagFormat == formatTable {
		return printTable(os.Stdout, processRows(recs), processColumns)
	}
	return renderRecords(recs, nil, wmiops.ProcessProperties)
}

func processesCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "processes",
		Short: "List running processes",
		Long: `List running processes with PID, thread count, and working set.

Examples:
  # All processes
  wmiq processes

  # Every chrome instance
  wmiq processes --name chrome.exe`,
		RunE: func(_ *cobra.Command, _ []string) error {
			started := time.Now()
			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("processes", name, started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			manager := wmiops.NewProcessManager(client)
			var recs []wmi.Record
			if name != "" {
				recs, err = manager.ByName(name)
			} else {
				recs, err = manager.List(nil)
			}
			recordHistory(historyEntry("processes", name, started, len(recs), err))
			if err != nil {
				return err
			}

			return renderProcesses(recs)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Filter by executable name")

	return cmd
}

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Inspect or terminate a single process",
	}

	cmd.AddCommand(processInfoCmd())
	cmd.AddCommand(processTerminateCmd())
	cmd.AddCommand(processHighMemoryCmd())

	return cmd
}

func parsePID(arg string) (uint32, error) {
	pid, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid process ID %q", arg)
	}
	return uint32(pid), nil
}

func processInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <pid>",
		Short: "Show one process's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			pid, err := parsePID(args[0])
			if err != nil {
				return err
			}

			started := time.Now()
			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("process info", args[0], started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			rec, err := wmiops.NewProcessManager(client).Info(pid)
			rows := 0
			if rec != nil {
				rows = 1
			}
			recordHistory(historyEntry("process info", args[0], started, rows, err))
			if err != nil {
				return err
			}

			if flagFormat == formatTable {
				return printDetail(os.Stdout, rec, wmiops.ProcessProperties)
			}
			return renderRecords([]wmi.Record{rec}, nil, nil)
		},
	}
}

func processTerminateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "terminate <pid>",
		Short: "Terminate a process",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			pid, err := parsePID(args[0])
			if err != nil {
				return err
			}

			started := time.Now()
			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("process terminate", args[0], started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			err = wmiops.NewProcessManager(client).Terminate(pid)
			recordHistory(historyEntry("process terminate", args[0], started, 0, err))
			if err != nil {
				return err
			}

			fmt.Printf("Process %d terminated\n", pid)
			return nil
		},
	}
}

func processHighMemoryCmd() *cobra.Command {
	var minMB uint64

	cmd := &cobra.Command{
		Use:   "high-memory",
		Short: "List processes above a working set threshold",
		RunE: func(_ *cobra.Command, _ []string) error {
			started := time.Now()
			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("process high-memory", "", started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			recs, err := wmiops.NewProcessManager(client).HighMemory(minMB)
			recordHistory(historyEntry("process high-memory", fmt.Sprintf("min %d MB", minMB), started, len(recs), err))
			if err != nil {
				return err
			}

			return renderProcesses(recs)
		},
	}

	cmd.Flags().Uint64Var(&minMB, "min-mb", 100, "Minimum working set in MB")

	return cmd
}
