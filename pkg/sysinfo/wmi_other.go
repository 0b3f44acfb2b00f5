//go:build !windows
// +build !windows

package sysinfo

// MemoryModules reads the populated memory slots via WMI (stub).
func MemoryModules() ([]MemoryModule, error) {
	return nil, nil
}

// Processors reads CPU package identity via WMI (stub).
func Processors() ([]Processor, error) {
	return nil, nil
}
