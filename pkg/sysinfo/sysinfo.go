// Package sysinfo collects a local host snapshot without touching WMI.
// gopsutil covers the portable data; on Windows the snapshot can be
// enriched with typed WMI reads (memory modules, processor identity).
package sysinfo

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// Snapshot is a point-in-time view of the local host.
type Snapshot struct {
	Host          HostInfo       `json:"host"`
	CPU           CPUStat        `json:"cpu"`
	Memory        MemoryStat     `json:"memory"`
	Disks         []DiskStat     `json:"disks"`
	Nets          []NetInterface `json:"network_interfaces"`
	Processors    []Processor    `json:"processors,omitempty"`
	MemoryModules []MemoryModule `json:"memory_modules,omitempty"`
}

// HostInfo contains host and OS identity.
type HostInfo struct {
	Hostname        string    `json:"hostname"`
	OS              string    `json:"os"`
	Platform        string    `json:"platform"`
	PlatformVersion string    `json:"platform_version"`
	KernelVersion   string    `json:"kernel_version"`
	Architecture    string    `json:"architecture"`
	BootTime        time.Time `json:"boot_time"`
	UptimeSeconds   uint64    `json:"uptime_seconds"`
}

// CPUStat describes the processor.
type CPUStat struct {
	Model         string  `json:"model"`
	Vendor        string  `json:"vendor"`
	PhysicalCores int     `json:"physical_cores"`
	LogicalCores  int     `json:"logical_cores"`
	MaxFreqMHz    float64 `json:"max_freq_mhz"`
}

// MemoryStat describes physical memory usage.
type MemoryStat struct {
	TotalBytes     uint64  `json:"total_bytes"`
	AvailableBytes uint64  `json:"available_bytes"`
	UsedBytes      uint64  `json:"used_bytes"`
	UsedPercent    float64 `json:"used_percentage"`
}

// DiskStat describes one mounted filesystem.
type DiskStat struct {
	Device      string  `json:"device"`
	Mount       string  `json:"mount"`
	FileSystem  string  `json:"file_system"`
	TotalBytes  uint64  `json:"total_bytes"`
	UsedBytes   uint64  `json:"used_bytes"`
	FreeBytes   uint64  `json:"free_bytes"`
	UsedPercent float64 `json:"used_percentage"`
}

// NetInterface describes one network interface.
type NetInterface struct {
	Name      string   `json:"name"`
	MAC       string   `json:"mac"`
	MTU       int      `json:"mtu"`
	Addresses []string `json:"addresses"`
	Up        bool     `json:"up"`
}

// Collect gathers the snapshot. Collection is best effort: sections the
// platform cannot provide are left zero rather than failing the whole
// snapshot.
func Collect() *Snapshot {
	snap := &Snapshot{}

	snap.Host.OS = runtime.GOOS
	snap.Host.Architecture = runtime.GOARCH
	if hi, err := host.Info(); err == nil {
		snap.Host.Hostname = hi.Hostname
		snap.Host.Platform = hi.Platform
		snap.Host.PlatformVersion = hi.PlatformVersion
		snap.Host.KernelVersion = hi.KernelVersion
		snap.Host.BootTime = time.Unix(int64(hi.BootTime), 0)
		snap.Host.UptimeSeconds = hi.Uptime
	}

	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) > 0 {
		snap.CPU.Model = cpuInfo[0].ModelName
		snap.CPU.Vendor = cpuInfo[0].VendorID
		snap.CPU.MaxFreqMHz = cpuInfo[0].Mhz
	}
	physical, _ := cpu.Counts(false)
	logical, _ := cpu.Counts(true)
	snap.CPU.PhysicalCores = physical
	snap.CPU.LogicalCores = logical

	// Typed WMI enrichment; no-ops off Windows.
	if procs, err := Processors(); err == nil && len(procs) > 0 {
		snap.Processors = procs
		if snap.CPU.Model == "" {
			snap.CPU.Model = procs[0].Name
		}
	}
	if mods, err := MemoryModules(); err == nil {
		snap.MemoryModules = mods
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		snap.Memory.TotalBytes = vm.Total
		snap.Memory.AvailableBytes = vm.Available
		snap.Memory.UsedBytes = vm.Used
		snap.Memory.UsedPercent = vm.UsedPercent
	}

	if parts, err := disk.Partitions(false); err == nil {
		for _, p := range parts {
			usage, err := disk.Usage(p.Mountpoint)
			if err != nil || usage.Total == 0 {
				continue
			}
			snap.Disks = append(snap.Disks, DiskStat{
				Device:      p.Device,
				Mount:       p.Mountpoint,
				FileSystem:  p.Fstype,
				TotalBytes:  usage.Total,
				UsedBytes:   usage.Used,
				FreeBytes:   usage.Free,
				UsedPercent: usage.UsedPercent,
			})
		}
	}

	if ifaces, err := net.Interfaces(); err == nil {
		for _, iface := range ifaces {
			ni := NetInterface{
				Name: iface.Name,
				MAC:  iface.HardwareAddr,
				MTU:  iface.MTU,
			}
			for _, addr := range iface.Addrs {
				ni.Addresses = append(ni.Addresses, addr.Addr)
			}
			for _, flag := range iface.Flags {
				if flag == "up" {
					ni.Up = true
				}
			}
			snap.Nets = append(snap.Nets, ni)
		}
	}

	return snap
}
