package sysinfo

import (
	"runtime"
	"testing"
)

func TestCollect(t *testing.T) {
	snap := Collect()
	if snap == nil {
		t.Fatal("Collect() returned nil")
	}
	if snap.Host.OS != runtime.GOOS {
		t.Errorf("Host.OS = %q, want %q", snap.Host.OS, runtime.GOOS)
	}
	if snap.Host.Architecture != runtime.GOARCH {
		t.Errorf("Host.Architecture = %q, want %q", snap.Host.Architecture, runtime.GOARCH)
	}
	if snap.Memory.TotalBytes == 0 {
		t.Error("Memory.TotalBytes = 0, want the machine's physical memory")
	}
}

func TestCleanString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Kingston", "Kingston"},
		{"  Kingston  ", "Kingston"},
		{"Kingston\x00\x00", "Kingston"},
		{"\x00 \x00", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cleanString(tt.in); got != tt.want {
			t.Errorf("cleanString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMemoryTypeName(t *testing.T) {
	tests := []struct {
		code uint32
		want string
	}{
		{24, "DDR3"},
		{26, "DDR4"},
		{34, "DDR5"},
		{31, "LPDDR4"},
		{99, "Unknown (99)"},
	}
	for _, tt := range tests {
		if got := memoryTypeName(tt.code); got != tt.want {
			t.Errorf("memoryTypeName(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
