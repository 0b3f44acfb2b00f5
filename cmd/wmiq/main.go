package main

import (
	"fmt"
	"os"

	"github.com/mscrnt/wmiq/internal/version"
	"github.com/mscrnt/wmiq/pkg/wmi"
	"github.com/spf13/cobra"
)

var (
	// Build variables set by ldflags
	buildVersion string
	buildCommit  string
	buildTime    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wmiq",
		Short: "WMI query tool and agent",
		Long: `wmiq reads Windows Management Instrumentation from the command line
and through a natural-language agent: raw WQL, services, processes,
disks, network adapters, event logs, hardware inventory, and security
configuration.`,
		Version: version.GetVersion(buildVersion, buildCommit, buildTime),
	}

	rootCmd.PersistentFlags().StringVarP(&flagComputer, "computer", "c", wmi.LocalHost, "Target computer name")
	rootCmd.PersistentFlags().StringVarP(&flagNamespace, "namespace", "n", wmi.DefaultNamespace, "WMI namespace")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", formatTable, "Output format: table, json, or raw")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false, "Skip recording this invocation in history")

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(queryCmd())
	rootCmd.AddCommand(listClassesCmd())
	rootCmd.AddCommand(classInfoCmd())
	rootCmd.AddCommand(servicesCmd())
	rootCmd.AddCommand(serviceCmd())
	rootCmd.AddCommand(processesCmd())
	rootCmd.AddCommand(processCmd())
	rootCmd.AddCommand(systemInfoCmd())
	rootCmd.AddCommand(disksCmd())
	rootCmd.AddCommand(networkCmd())
	rootCmd.AddCommand(adminCheckCmd())
	rootCmd.AddCommand(eventLogCmd())
	rootCmd.AddCommand(hardwareCmd())
	rootCmd.AddCommand(securityCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(agentCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			if detailed {
				fmt.Println(version.GetDetailedVersion(buildVersion, buildCommit, buildTime))
				return
			}
			fmt.Println(version.GetVersion(buildVersion, buildCommit, buildTime))
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "Include Go version and platform")

	return cmd
}
