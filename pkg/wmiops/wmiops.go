// Package wmiops contains the per-domain query helpers built on the wmi
// shim: services, processes, system monitoring, network, event logs,
// hardware, and security. Each helper is a stateless facade issuing one or
// two fixed queries and reshaping the results.
package wmiops

import "github.com/mscrnt/wmiq/pkg/wmi"

// Session is the client surface control operations need: queries plus COM
// method invocation. *wmi.Client implements it.
type Session interface {
	wmi.Querier
	InvokeMethod(class string, filters map[string]interface{}, method string) (int32, error)
}

// Property allow-lists used by the CLI and agent tools when reducing
// records for display.
var (
	ServiceProperties = []string{"Name", "DisplayName", "State", "StartMode", "Status"}
	ProcessProperties = []string{"Name", "ProcessId", "ThreadCount", "WorkingSetSize", "CommandLine"}
	DiskProperties    = []string{"DeviceID", "VolumeName", "DriveType", "FileSystem", "Size", "FreeSpace"}
)
