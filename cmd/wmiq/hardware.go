package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mscrnt/wmiq/pkg/wmi"
	"github.com/mscrnt/wmiq/pkg/wmiops"
	"github.com/spf13/cobra"
)

// hardwareSection binds a --component name to its class fetch and table
// layout.
type hardwareSection struct {
	name    string
	title   string
	columns []string
	fetch   func(*wmiops.HardwareInfo) ([]wmi.Record, error)
	rows    func([]wmi.Record) []wmi.Record
}

var hardwareSections = []hardwareSection{
	{
		name:    "baseboard",
		title:   "Baseboard",
		columns: []string{"Manufacturer", "Product", "SerialNumber", "Version"},
		fetch: func(h *wmiops.HardwareInfo) ([]wmi.Record, error) {
			rec, err := h.Baseboard()
			if err != nil || rec == nil {
				return nil, err
			}
			return []wmi.Record{rec}, nil
		},
	},
	{
		name:    "video",
		title:   "Video Controllers",
		columns: []string{"Name", "VRAM", "DriverVersion", "VideoProcessor"},
		fetch:   (*wmiops.HardwareInfo).VideoControllers,
		rows: func(recs []wmi.Record) []wmi.Record {
			rows := make([]wmi.Record, len(recs))
			for i, r := range recs {
				rows[i] = wmi.Record{
					"Name":           r.Str("Name"),
					"VRAM":           wmiops.FormatBytes(r.Uint64("AdapterRAM")),
					"DriverVersion":  r.Str("DriverVersion"),
					"VideoProcessor": r.Str("VideoProcessor"),
				}
			}
			return rows
		},
	},
	{
		name:    "sound",
		title:   "Sound Devices",
		columns: []string{"Name", "Manufacturer", "Status"},
		fetch:   (*wmiops.HardwareInfo).SoundDevices,
	},
	{
		name:    "usb",
		title:   "USB Controllers",
		columns: []string{"Name", "Manufacturer"},
		fetch:   (*wmiops.HardwareInfo).USBControllers,
	},
	{
		name:    "printer",
		title:   "Printers",
		columns: []string{"Name", "PortName", "Default", "Network"},
		fetch:   (*wmiops.HardwareInfo).Printers,
	},
	{
		name:    "battery",
		title:   "Batteries",
		columns: []string{"Name", "EstimatedChargeRemaining", "Status"},
		fetch:   (*wmiops.HardwareInfo).Batteries,
	},
	{
		name:    "memory",
		title:   "Memory Modules",
		columns: []string{"BankLabel", "Capacity", "Speed", "Manufacturer", "PartNumber"},
		fetch:   (*wmiops.HardwareInfo).PhysicalMemory,
		rows: func(recs []wmi.Record) []wmi.Record {
			rows := make([]wmi.Record, len(recs))
			for i, r := range recs {
				rows[i] = wmi.Record{
					"BankLabel":    r.Str("BankLabel"),
					"Capacity":     wmiops.FormatBytes(r.Uint64("Capacity")),
					"Speed":        r.Str("Speed"),
					"Manufacturer": r.Str("Manufacturer"),
					"PartNumber":   strings.TrimSpace(r.Str("PartNumber")),
				}
			}
			return rows
		},
	},
}

func hardwareComponentNames() []string {
	names := make([]string, len(hardwareSections))
	for i, s := range hardwareSections {
		names[i] = s.name
	}
	return names
}

func hardwareCmd() *cobra.Command {
	var component string

	cmd := &cobra.Command{
		Use:   "hardware",
		Short: "Show hardware inventory",
		Long: fmt.Sprintf(`Show hardware inventory from WMI.

Components: %s. Without --component every section is shown.

Examples:
  wmiq hardware
  wmiq hardware --component memory
  wmiq hardware --component video --format json`, strings.Join(hardwareComponentNames(), ", ")),
		RunE: func(_ *cobra.Command, _ []string) error {
			sections := hardwareSections
			if component != "" {
				sections = nil
				for _, s := range hardwareSections {
					if s.name == component {
						sections = []hardwareSection{s}
						break
					}
				}
				if sections == nil {
					return fmt.Errorf("unknown component %q (want one of %s)",
						component, strings.Join(hardwareComponentNames(), ", "))
				}
			}

			started := time.Now()
			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("hardware", component, started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			hw := wmiops.NewHardwareInfo(client)

			total := 0
			jsonOut := map[string][]wmi.Record{}
			printed := false
			for _, section := range sections {
				recs, err := section.fetch(hw)
				if err != nil {
					recordHistory(historyEntry("hardware", component, started, total, err))
					return err
				}
				total += len(recs)

				if flagFormat != formatTable {
					jsonOut[section.name] = recs
					continue
				}
				if len(recs) == 0 {
					continue
				}
				if printed {
					fmt.Println()
				}
				fmt.Printf("%s:\n", section.title)
				rows := recs
				if section.rows != nil {
					rows = section.rows(recs)
				}
				if err := printTable(os.Stdout, rows, section.columns); err != nil {
					return err
				}
				printed = true
			}
			recordHistory(historyEntry("hardware", component, started, total, nil))

			switch flagFormat {
			case formatTable:
				if !printed {
					fmt.Println("No hardware information available")
				}
				return nil
			case formatJSON:
				return printJSON(jsonOut)
			case formatRaw:
				for _, section := range sections {
					for _, rec := range jsonOut[section.name] {
						fmt.Printf("%s: %v\n", section.name, rec)
					}
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q (want table, json, or raw)", flagFormat)
			}
		},
	}

	cmd.Flags().StringVar(&component, "component", "", "Single component to show")

	return cmd
}
