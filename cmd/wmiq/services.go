package main

import (
	"fmt"
	"time"

	"github.com/mscrnt/wmiq/pkg/wmi"
	"github.com/mscrnt/wmiq/pkg/wmiops"
	"github.com/spf13/cobra"
)

func servicesCmd() *cobra.Command {
	var (
		name      string
		state     string
		startMode string
	)

	cmd := &cobra.Command{
		Use:   "services",
		Short: "List Windows services",
		Long: `List Windows services, optionally narrowed by exact-match filters.

Examples:
  # All services
  wmiq services

  # Running services only
  wmiq services --state Running

  # Automatic services that are stopped
  wmiq services --state Stopped --start-mode Auto`,
		RunE: func(_ *cobra.Command, _ []string) error {
			filters := map[string]interface{}{}
			if name != "" {
				filters["Name"] = name
			}
			if state != "" {
				filters["State"] = state
			}
			if startMode != "" {
				filters["StartMode"] = startMode
			}
			if len(filters) == 0 {
				filters = nil
			}

			started := time.Now()
			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("services", "", started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			recs, err := wmiops.NewServiceManager(client).List(filters)
			recordHistory(historyEntry("services", "", started, len(recs), err))
			if err != nil {
				return err
			}

			return renderRecords(recs, wmiops.ServiceProperties, wmiops.ServiceProperties)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Filter by service name")
	cmd.Flags().StringVar(&state, "state", "", "Filter by state (Running, Stopped)")
	cmd.Flags().StringVar(&startMode, "start-mode", "", "Filter by start mode (Auto, Manual, Disabled)")

	return cmd
}

func serviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Inspect or control a single service",
		Long:  "Query the status of a Windows service or start, stop, and restart it.",
	}

	cmd.AddCommand(serviceStatusCmd())
	cmd.AddCommand(serviceControlCmd("start", "Start a stopped service", (*wmiops.ServiceManager).Start, "started"))
	cmd.AddCommand(serviceControlCmd("stop", "Stop a running service", (*wmiops.ServiceManager).Stop, "stopped"))
	cmd.AddCommand(serviceControlCmd("restart", "Stop and start a service", (*wmiops.ServiceManager).Restart, "restarted"))

	return cmd
}

func serviceStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <name>",
		Short: "Show one service's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]
			started := time.Now()

			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("service status", name, started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			rec, err := wmiops.NewServiceManager(client).Status(name)
			rows := 0
			if rec != nil {
				rows = 1
			}
			recordHistory(historyEntry("service status", name, started, rows, err))
			if err != nil {
				return err
			}

			return renderRecords([]wmi.Record{rec}, wmiops.ServiceProperties, wmiops.ServiceProperties)
		},
	}
}

// serviceControlCmd builds the start/stop/restart subcommands, which differ
// only in the manager method they invoke.
func serviceControlCmd(verb, short string, control func(*wmiops.ServiceManager, string) error, done string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]
			started := time.Now()

			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("service "+verb, name, started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			err = control(wmiops.NewServiceManager(client), name)
			recordHistory(historyEntry("service "+verb, name, started, 0, err))
			if err != nil {
				return err
			}

			fmt.Printf("Service %q %s\n", name, done)
			return nil
		},
	}
}
