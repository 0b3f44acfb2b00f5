package wmiops

import (
	"fmt"
	"time"

	"github.com/mscrnt/wmiq/pkg/wmi"
)

// SystemMonitor reads operating system, memory, disk, and uptime data.
type SystemMonitor struct {
	q wmi.Querier
}

// NewSystemMonitor returns a monitor over the given querier.
func NewSystemMonitor(q wmi.Querier) *SystemMonitor {
	return &SystemMonitor{q: q}
}

// MemoryInfo is a snapshot of physical memory usage.
type MemoryInfo struct {
	TotalBytes  uint64  `json:"total_bytes"`
	UsedBytes   uint64  `json:"used_bytes"`
	FreeBytes   uint64  `json:"free_bytes"`
	UsedPercent float64 `json:"used_percentage"`
}

// DiskUsage is a snapshot of one local disk.
type DiskUsage struct {
	DeviceID    string  `json:"device_id"`
	Label       string  `json:"label"`
	FileSystem  string  `json:"file_system"`
	SizeBytes   uint64  `json:"size_bytes"`
	UsedBytes   uint64  `json:"used_bytes"`
	FreeBytes   uint64  `json:"free_bytes"`
	UsedPercent float64 `json:"used_percentage"`
}

// Uptime describes time since the last boot.
type Uptime struct {
	BootTime    time.Time `json:"boot_time"`
	CurrentTime time.Time `json:"current_time"`
	Seconds     float64   `json:"uptime_seconds"`
	Days        int       `json:"uptime_days"`
	Hours       int       `json:"uptime_hours"`
	Minutes     int       `json:"uptime_minutes"`
}

// String renders the uptime the way the agent tools report it.
func (u Uptime) String() string {
	return fmt.Sprintf("%d days, %d hours, %d minutes", u.Days, u.Hours, u.Minutes)
}

// OperatingSystem returns the Win32_OperatingSystem singleton.
func (m *SystemMonitor) OperatingSystem() (wmi.Record, error) {
	return m.single("Win32_OperatingSystem")
}

// ComputerSystem returns the Win32_ComputerSystem singleton.
func (m *SystemMonitor) ComputerSystem() (wmi.Record, error) {
	return m.single("Win32_ComputerSystem")
}

// BIOS returns the BIOS record, or nil when the host exposes none.
func (m *SystemMonitor) BIOS() (wmi.Record, error) {
	recs, err := m.q.FetchClass("Win32_BIOS", nil)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0], nil
}

// CPUInfo returns one record per processor package.
func (m *SystemMonitor) CPUInfo() ([]wmi.Record, error) {
	return m.q.FetchClass("Win32_Processor", nil)
}

// MemoryInfo combines total physical memory with the OS free counter.
// FreePhysicalMemory is reported in kilobytes.
func (m *SystemMonitor) MemoryInfo() (MemoryInfo, error) {
	cs, err := m.ComputerSystem()
	if err != nil {
		return MemoryInfo{}, err
	}
	osRec, err := m.OperatingSystem()
	if err != nil {
		return MemoryInfo{}, err
	}

	total := cs.Uint64("TotalPhysicalMemory")
	free := osRec.Uint64("FreePhysicalMemory") * 1024
	used := uint64(0)
	if total > free {
		used = total - free
	}
	return MemoryInfo{
		TotalBytes:  total,
		UsedBytes:   used,
		FreeBytes:   free,
		UsedPercent: UsedPercent(total, free),
	}, nil
}

// DiskUsage reports usage for local disks (DriveType 3). Disks without a
// size are skipped.
func (m *SystemMonitor) DiskUsage() ([]DiskUsage, error) {
	disks, err := m.q.FetchClass("Win32_LogicalDisk", map[string]interface{}{"DriveType": 3})
	if err != nil {
		return nil, err
	}
	var out []DiskUsage
	for _, disk := range disks {
		size := disk.Uint64("Size")
		if size == 0 {
			continue
		}
		free := disk.Uint64("FreeSpace")
		out = append(out, DiskUsage{
			DeviceID:    disk.Str("DeviceID"),
			Label:       disk.Str("VolumeName"),
			FileSystem:  disk.Str("FileSystem"),
			SizeBytes:   size,
			UsedBytes:   size - free,
			FreeBytes:   free,
			UsedPercent: UsedPercent(size, free),
		})
	}
	return out, nil
}

// Uptime parses LastBootUpTime and derives the elapsed time.
func (m *SystemMonitor) Uptime() (Uptime, error) {
	osRec, err := m.OperatingSystem()
	if err != nil {
		return Uptime{}, err
	}
	boot, err := ParseWMITime(osRec.Str("LastBootUpTime"))
	if err != nil {
		return Uptime{}, err
	}
	now := time.Now()
	elapsed := now.Sub(boot)
	return Uptime{
		BootTime:    boot,
		CurrentTime: now,
		Seconds:     elapsed.Seconds(),
		Days:        int(elapsed.Hours()) / 24,
		Hours:       int(elapsed.Hours()) % 24,
		Minutes:     int(elapsed.Minutes()) % 60,
	}, nil
}

func (m *SystemMonitor) single(class string) (wmi.Record, error) {
	recs, err := m.q.FetchClass(class, nil)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("no %s instance returned", class)
	}
	return recs[0], nil
}
