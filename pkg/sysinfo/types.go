package sysinfo

import (
	"fmt"
	"strings"
)

// MemoryModule is one populated physical memory slot.
type MemoryModule struct {
	Slot         int     `json:"slot"`
	BankLabel    string  `json:"bank_label"`
	Locator      string  `json:"locator"`
	CapacityGB   float64 `json:"capacity_gb"`
	Type         string  `json:"type"`
	SpeedMTs     int     `json:"speed_mts"`
	Manufacturer string  `json:"manufacturer"`
	PartNumber   string  `json:"part_number"`
	Serial       string  `json:"serial"`
}

// Processor identifies one CPU package.
type Processor struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Cores        int    `json:"cores"`
	Threads      int    `json:"threads"`
	MaxClockMHz  int    `json:"max_clock_mhz"`
}

// Memory type constants from SMBIOS.
const (
	smbiosMemoryTypeDDR2   = 19
	smbiosMemoryTypeDDR3   = 24
	smbiosMemoryTypeDDR4   = 26
	smbiosMemoryTypeLPDDR  = 28
	smbiosMemoryTypeLPDDR2 = 29
	smbiosMemoryTypeLPDDR3 = 30
	smbiosMemoryTypeLPDDR4 = 31
	smbiosMemoryTypeDDR5   = 34
	smbiosMemoryTypeLPDDR5 = 35
)

// memoryTypeName converts an SMBIOS memory type code to its name.
func memoryTypeName(smbiosType uint32) string {
	switch smbiosType {
	case smbiosMemoryTypeDDR2:
		return "DDR2"
	case smbiosMemoryTypeDDR3:
		return "DDR3"
	case smbiosMemoryTypeDDR4:
		return "DDR4"
	case smbiosMemoryTypeDDR5:
		return "DDR5"
	case smbiosMemoryTypeLPDDR:
		return "LPDDR"
	case smbiosMemoryTypeLPDDR2:
		return "LPDDR2"
	case smbiosMemoryTypeLPDDR3:
		return "LPDDR3"
	case smbiosMemoryTypeLPDDR4:
		return "LPDDR4"
	case smbiosMemoryTypeLPDDR5:
		return "LPDDR5"
	default:
		return fmt.Sprintf("Unknown (%d)", smbiosType)
	}
}

// cleanString removes null bytes and trims whitespace. SPD-sourced strings
// arrive padded.
func cleanString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\x00")
	return strings.TrimSpace(s)
}
