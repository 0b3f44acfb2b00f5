package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func listClassesCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list-classes",
		Short: "List WMI classes in the namespace",
		Long: `List the class names available in the selected namespace.

Examples:
  # Every class in root\cimv2
  wmiq list-classes

  # Only network-related classes
  wmiq list-classes --filter network`,
		RunE: func(_ *cobra.Command, _ []string) error {
			started := time.Now()

			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("list-classes", filter, started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			classes, err := client.ListClasses()
			if err != nil {
				recordHistory(historyEntry("list-classes", filter, started, 0, err))
				return err
			}

			if filter != "" {
				needle := strings.ToLower(filter)
				matched := classes[:0]
				for _, class := range classes {
					if strings.Contains(strings.ToLower(class), needle) {
						matched = append(matched, class)
					}
				}
				classes = matched
			}
			recordHistory(historyEntry("list-classes", filter, started, len(classes), nil))

			if flagFormat == formatJSON {
				return printJSON(classes)
			}
			for _, class := range classes {
				fmt.Println(class)
			}
			fmt.Printf("\n%d classes\n", len(classes))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Only classes containing this substring")

	return cmd
}

func classInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "class-info <class>",
		Short: "Show a class's properties and a sample instance",
		Long: `Show the property names of a WMI class and its first instance.

Examples:
  wmiq class-info Win32_Service
  wmiq class-info Win32_BIOS --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			class := args[0]
			started := time.Now()

			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("class-info", class, started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			props, err := client.ClassProperties(class)
			if err != nil {
				recordHistory(historyEntry("class-info", class, started, 0, err))
				return err
			}

			recs, err := client.FetchClass(class, nil)
			recordHistory(historyEntry("class-info", class, started, len(recs), err))
			if err != nil {
				return err
			}

			if flagFormat == formatJSON {
				out := map[string]interface{}{
					"class":      class,
					"properties": props,
				}
				if len(recs) > 0 {
					out["instance"] = recs[0]
				}
				return printJSON(out)
			}

			fmt.Printf("Class: %s\n", class)
			fmt.Printf("Properties (%d):\n", len(props))
			for _, prop := range props {
				fmt.Printf("  %s\n", prop)
			}
			if len(recs) == 0 {
				fmt.Println("\nNo instances")
				return nil
			}
			fmt.Println("\nFirst instance:")
			return printJSON(recs[0])
		},
	}
}
