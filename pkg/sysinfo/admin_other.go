//go:build !windows
// +build !windows

package sysinfo

import "os"

// IsAdmin reports whether the current process runs with root privileges.
// Elevation is a Windows concept; elsewhere effective uid 0 is the closest
// equivalent.
func IsAdmin() bool {
	return os.Geteuid() == 0
}
