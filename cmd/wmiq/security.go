package main

import (
	"time"

	"github.com/mscrnt/wmiq/pkg/wmi"
	"github.com/mscrnt/wmiq/pkg/wmiops"
	"github.com/spf13/cobra"
)

func securityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "security",
		Short: "Show accounts, sessions, shares, and startup programs",
	}

	cmd.AddCommand(securitySubCmd("users", "List local user accounts",
		[]string{"Name", "FullName", "Disabled", "Lockout", "PasswordRequired"},
		(*wmiops.SecurityInfo).LocalUsers))
	cmd.AddCommand(securitySubCmd("groups", "List local groups",
		[]string{"Name", "Description", "SID"},
		(*wmiops.SecurityInfo).Groups))
	cmd.AddCommand(securitySubCmd("sessions", "List active logon sessions",
		[]string{"Antecedent", "Dependent"},
		(*wmiops.SecurityInfo).LoggedOnUsers))
	cmd.AddCommand(securitySubCmd("shares", "List network shares",
		[]string{"Name", "Path", "Description", "Type"},
		(*wmiops.SecurityInfo).Shares))
	cmd.AddCommand(securitySubCmd("startup", "List startup programs",
		[]string{"Name", "Command", "Location", "User"},
		(*wmiops.SecurityInfo).StartupCommands))

	return cmd
}

func securitySubCmd(use, short string, columns []string, fetch func(*wmiops.SecurityInfo) ([]wmi.Record, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(_ *cobra.Command, _ []string) error {
			started := time.Now()
			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("security "+use, "", started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			recs, err := fetch(wmiops.NewSecurityInfo(client))
			recordHistory(historyEntry("security "+use, "", started, len(recs), err))
			if err != nil {
				return err
			}

			return renderRecords(recs, columns, columns)
		},
	}
}
