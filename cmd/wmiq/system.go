package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mscrnt/wmiq/pkg/sysinfo"
	"github.com/mscrnt/wmiq/pkg/wmiops"
	"github.com/spf13/cobra"
)

func systemInfoCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "system-info",
		Short: "Show OS, hardware, and BIOS details",
		Long: `Show system identity: operating system, computer, manufacturer,
model, memory, and BIOS.

--local skips WMI and reads the local host directly, which also works on
non-Windows machines.

Examples:
  wmiq system-info
  wmiq system-info --local
  wmiq system-info -c fileserver01 --format json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if local {
				return runLocalSystemInfo()
			}
			return runSystemInfo()
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Read the local host without WMI")

	return cmd
}

func runSystemInfo() error {
	started := time.Now()
	client, err := newClient()
	if err != nil {
		recordHistory(historyEntry("system-info", "", started, 0, err))
		return err
	}
	defer func() { _ = client.Close() }()

	mon := wmiops.NewSystemMonitor(client)

	osRec, err := mon.OperatingSystem()
	if err != nil {
		recordHistory(historyEntry("system-info", "", started, 0, err))
		return err
	}
	cs, err := mon.ComputerSystem()
	if err != nil {
		recordHistory(historyEntry("system-info", "", started, 0, err))
		return err
	}
	bios, err := mon.BIOS()
	if err != nil {
		recordHistory(historyEntry("system-info", "", started, 0, err))
		return err
	}
	recordHistory(historyEntry("system-info", "", started, 1, nil))

	biosVersion, biosSerial := "", ""
	if bios != nil {
		biosVersion = bios.Str("SMBIOSBIOSVersion")
		if biosVersion == "" {
			biosVersion = bios.Str("Version")
		}
		biosSerial = bios.Str("SerialNumber")
	}

	if flagFormat == formatJSON {
		return printJSON(map[string]interface{}{
			"os":                 osRec.Str("Caption"),
			"version":            osRec.Str("Version"),
			"architecture":       osRec.Str("OSArchitecture"),
			"computer":           cs.Str("Name"),
			"manufacturer":       cs.Str("Manufacturer"),
			"model":              cs.Str("Model"),
			"system_type":        cs.Str("SystemType"),
			"total_memory_bytes": cs.Uint64("TotalPhysicalMemory"),
			"bios_version":       biosVersion,
			"bios_serial":        biosSerial,
		})
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "OS:\t%s\n", displayValue(osRec.Str("Caption")))
	fmt.Fprintf(tw, "Version:\t%s\n", displayValue(osRec.Str("Version")))
	fmt.Fprintf(tw, "Architecture:\t%s\n", displayValue(osRec.Str("OSArchitecture")))
	fmt.Fprintf(tw, "Computer:\t%s\n", displayValue(cs.Str("Name")))
	fmt.Fprintf(tw, "Manufacturer:\t%s\n", displayValue(cs.Str("Manufacturer")))
	fmt.Fprintf(tw, "Model:\t%s\n", displayValue(cs.Str("Model")))
	fmt.Fprintf(tw, "System Type:\t%s\n", displayValue(cs.Str("SystemType")))
	fmt.Fprintf(tw, "Total Memory:\t%s\n", wmiops.FormatBytes(cs.Uint64("TotalPhysicalMemory")))
	fmt.Fprintf(tw, "BIOS Version:\t%s\n", displayValue(biosVersion))
	fmt.Fprintf(tw, "BIOS Serial:\t%s\n", displayValue(biosSerial))
	return tw.Flush()
}

func runLocalSystemInfo() error {
	started := time.Now()
	snap := sysinfo.Collect()
	recordHistory(historyEntry("system-info", "local", started, 1, nil))

	if flagFormat == formatJSON {
		return printJSON(snap)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Hostname:\t%s\n", displayValue(snap.Host.Hostname))
	fmt.Fprintf(tw, "OS:\t%s/%s\n", snap.Host.OS, snap.Host.Architecture)
	fmt.Fprintf(tw, "Platform:\t%s %s\n", snap.Host.Platform, snap.Host.PlatformVersion)
	fmt.Fprintf(tw, "Kernel:\t%s\n", displayValue(snap.Host.KernelVersion))
	if !snap.Host.BootTime.IsZero() {
		fmt.Fprintf(tw, "Boot Time:\t%s\n", snap.Host.BootTime.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(tw, "Uptime:\t%s\n", (time.Duration(snap.Host.UptimeSeconds) * time.Second).String())
	}
	fmt.Fprintf(tw, "CPU:\t%s\n", displayValue(snap.CPU.Model))
	fmt.Fprintf(tw, "Cores:\t%d physical, %d logical\n", snap.CPU.PhysicalCores, snap.CPU.LogicalCores)
	fmt.Fprintf(tw, "Memory:\t%s total, %s used (%.1f%%)\n",
		wmiops.FormatBytes(snap.Memory.TotalBytes),
		wmiops.FormatBytes(snap.Memory.UsedBytes),
		snap.Memory.UsedPercent)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(snap.Disks) > 0 {
		fmt.Println("\nDisks:")
		dtw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(dtw, "Mount\tFS\tSize\tFree\tUsed%")
		for _, d := range snap.Disks {
			fmt.Fprintf(dtw, "%s\t%s\t%s\t%s\t%.1f%%\n",
				d.Mount, d.FileSystem,
				wmiops.FormatBytes(d.TotalBytes),
				wmiops.FormatBytes(d.FreeBytes),
				d.UsedPercent)
		}
		if err := dtw.Flush(); err != nil {
			return err
		}
	}

	if len(snap.MemoryModules) > 0 {
		fmt.Println("\nMemory Modules:")
		mtw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(mtw, "Slot\tSize\tType\tSpeed\tManufacturer\tPart Number")
		for _, m := range snap.MemoryModules {
			fmt.Fprintf(mtw, "%s\t%.0f GB\t%s\t%d MT/s\t%s\t%s\n",
				m.Locator, m.CapacityGB, m.Type, m.SpeedMTs,
				m.Manufacturer, m.PartNumber)
		}
		if err := mtw.Flush(); err != nil {
			return err
		}
	}

	return nil
}
