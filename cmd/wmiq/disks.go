package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mscrnt/wmiq/pkg/sysinfo"
	"github.com/mscrnt/wmiq/pkg/wmi"
	"github.com/mscrnt/wmiq/pkg/wmiops"
	"github.com/spf13/cobra"
)

// driveTypeNames maps Win32_LogicalDisk.DriveType values.
var driveTypeNames = map[int]string{
	0: "Unknown",
	1: "No Root",
	2: "Removable",
	3: "Local",
	4: "Network",
	5: "CD-ROM",
	6: "RAM Disk",
}

func driveTypeName(t int) string {
	if name, ok := driveTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type %d", t)
}

func disksCmd() *cobra.Command {
	var (
		driveType int
		local     bool
	)

	cmd := &cobra.Command{
		Use:   "disks",
		Short: "Show logical disks and their usage",
		Long: `Show logical disks with size, free space, and used percentage.

Drive types: 0 Unknown, 1 No Root, 2 Removable, 3 Local, 4 Network,
5 CD-ROM, 6 RAM Disk.

Examples:
  # Local fixed disks
  wmiq disks

  # Network drives
  wmiq disks --drive-type 4

  # Local host without WMI
  wmiq disks --local`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if local {
				return runLocalDisks()
			}

			started := time.Now()
			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("disks", "", started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			recs, err := client.FetchClass("Win32_LogicalDisk",
				map[string]interface{}{"DriveType": driveType})
			recordHistory(historyEntry("disks", driveTypeName(driveType), started, len(recs), err))
			if err != nil {
				return err
			}

			if flagFormat != formatTable {
				return renderRecords(recs, nil, wmiops.DiskProperties)
			}

			rows := make([]wmi.Record, len(recs))
			for i, d := range recs {
				row := wmi.Record{
					"Drive": d.Str("DeviceID"),
					"Label": d.Str("VolumeName"),
					"Type":  driveTypeName(int(d.Int64("DriveType"))),
					"FS":    d.Str("FileSystem"),
				}
				if size := d.Uint64("Size"); size > 0 {
					free := d.Uint64("FreeSpace")
					row["Size"] = wmiops.FormatBytes(size)
					row["Free"] = wmiops.FormatBytes(free)
					row["Used%"] = fmt.Sprintf("%.1f%%", wmiops.UsedPercent(size, free))
				}
				rows[i] = row
			}
			return printTable(os.Stdout, rows, []string{"Drive", "Label", "Type", "FS", "Size", "Free", "Used%"})
		},
	}

	cmd.Flags().IntVar(&driveType, "drive-type", 3, "Drive type to list (see legend)")
	cmd.Flags().BoolVar(&local, "local", false, "Read the local host without WMI")

	return cmd
}

func runLocalDisks() error {
	started := time.Now()
	snap := sysinfo.Collect()
	recordHistory(historyEntry("disks", "local", started, len(snap.Disks), nil))

	if flagFormat == formatJSON {
		return printJSON(snap.Disks)
	}

	rows := make([]wmi.Record, len(snap.Disks))
	for i, d := range snap.Disks {
		rows[i] = wmi.Record{
			"Drive": d.Mount,
			"Label": d.Device,
			"Type":  "Local",
			"FS":    d.FileSystem,
			"Size":  wmiops.FormatBytes(d.TotalBytes),
			"Free":  wmiops.FormatBytes(d.FreeBytes),
			"Used%": fmt.Sprintf("%.1f%%", d.UsedPercent),
		}
	}
	return printTable(os.Stdout, rows, []string{"Drive", "Label", "Type", "FS", "Size", "Free", "Used%"})
}
