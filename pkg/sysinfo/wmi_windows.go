//go:build windows
// +build windows

package sysinfo

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"
)

// Win32_PhysicalMemory mirrors the WMI class fields the snapshot reads.
type Win32_PhysicalMemory struct {
	BankLabel            string
	Capacity             uint64
	ConfiguredClockSpeed uint32
	DeviceLocator        string
	Manufacturer         string
	PartNumber           string
	SerialNumber         string
	SMBIOSMemoryType     uint32
	Speed                uint32
}

// Win32_Processor mirrors the WMI class fields the snapshot reads.
type Win32_Processor struct {
	Name                      string
	Manufacturer              string
	NumberOfCores             uint32
	NumberOfLogicalProcessors uint32
	MaxClockSpeed             uint32
}

// MemoryModules reads the populated memory slots via WMI.
func MemoryModules() ([]MemoryModule, error) {
	var results []Win32_PhysicalMemory
	if err := wmi.Query("SELECT * FROM Win32_PhysicalMemory", &results); err != nil {
		return nil, fmt.Errorf("physical memory query failed: %w", err)
	}

	modules := make([]MemoryModule, 0, len(results))
	for i, m := range results {
		// Skip empty slots
		if m.Capacity == 0 {
			continue
		}
		mod := MemoryModule{
			Slot:         i,
			BankLabel:    cleanString(m.BankLabel),
			Locator:      cleanString(m.DeviceLocator),
			CapacityGB:   float64(m.Capacity) / (1024 * 1024 * 1024),
			Type:         memoryTypeName(m.SMBIOSMemoryType),
			Manufacturer: cleanString(m.Manufacturer),
			PartNumber:   cleanString(m.PartNumber),
			Serial:       cleanString(m.SerialNumber),
		}
		if m.Speed > 0 {
			mod.SpeedMTs = int(m.Speed)
		} else if m.ConfiguredClockSpeed > 0 {
			mod.SpeedMTs = int(m.ConfiguredClockSpeed)
		}
		if mod.Manufacturer == "" {
			mod.Manufacturer = "Unknown"
		}
		modules = append(modules, mod)
	}
	return modules, nil
}

// Processors reads CPU package identity via WMI.
func Processors() ([]Processor, error) {
	var results []Win32_Processor
	if err := wmi.Query("SELECT * FROM Win32_Processor", &results); err != nil {
		return nil, fmt.Errorf("processor query failed: %w", err)
	}

	procs := make([]Processor, 0, len(results))
	for _, p := range results {
		procs = append(procs, Processor{
			Name:         cleanString(p.Name),
			Manufacturer: cleanString(p.Manufacturer),
			Cores:        int(p.NumberOfCores),
			Threads:      int(p.NumberOfLogicalProcessors),
			MaxClockMHz:  int(p.MaxClockSpeed),
		})
	}
	return procs, nil
}
