package main

import (
	"fmt"

	"github.com/mscrnt/wmiq/pkg/sysinfo"
	"github.com/spf13/cobra"
)

func adminCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "admin-check",
		Short: "Check for administrator privileges",
		Long: `Report whether this process runs with administrator privileges.
Exits zero either way; the answer is the output, not the exit code.`,
		Run: func(_ *cobra.Command, _ []string) {
			if sysinfo.IsAdmin() {
				fmt.Println("Running with Administrator privileges")
				return
			}
			fmt.Println("NOT running with Administrator privileges. Some operations may be restricted.")
		},
	}
}
