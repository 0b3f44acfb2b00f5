// Package wmi is a thin shim over Windows Management Instrumentation.
// It connects to a WMI namespace on a target host, issues WQL queries or
// named-class fetches, and converts returned objects into plain key/value
// records. Every call is a synchronous blocking round trip to the OS
// instrumentation layer; there is no retry, caching, or pooling.
package wmi

import "errors"

// DefaultNamespace is the namespace used when none is given.
const DefaultNamespace = `root\cimv2`

// LocalHost selects the local machine.
const LocalHost = "."

var (
	// ErrUnsupported is returned on platforms without WMI.
	ErrUnsupported = errors.New("wmi: only supported on windows")

	// ErrClosed is returned when a client is used after Close.
	ErrClosed = errors.New("wmi: client is closed")
)

// Options configures a Client.
type Options struct {
	// Host is a computer name, or "." for the local machine.
	Host string

	// Namespace is the WMI namespace, e.g. root\cimv2.
	Namespace string
}

func (o Options) withDefaults() Options {
	if o.Host == "" {
		o.Host = LocalHost
	}
	if o.Namespace == "" {
		o.Namespace = DefaultNamespace
	}
	return o
}

// Querier is the query surface domain modules depend on. *Client implements
// it; tests substitute fakes.
type Querier interface {
	Query(wql string) ([]Record, error)
	FetchClass(class string, filters map[string]interface{}) ([]Record, error)
}

// commonClasses is returned by ListClasses when the meta_class query fails.
// Some locked-down hosts reject schema queries but still answer instance
// queries against these.
var commonClasses = []string{
	"Win32_Service", "Win32_Process", "Win32_OperatingSystem",
	"Win32_ComputerSystem", "Win32_LogicalDisk", "Win32_NetworkAdapter",
	"Win32_NetworkAdapterConfiguration", "Win32_Processor", "Win32_BIOS",
	"Win32_PhysicalMemory", "Win32_BaseBoard", "Win32_VideoController",
	"Win32_SoundDevice", "Win32_Printer", "Win32_Battery",
	"Win32_UserAccount", "Win32_Group", "Win32_Share",
	"Win32_StartupCommand", "Win32_USBController", "Win32_DiskDrive",
	"Win32_NTEventlogFile", "Win32_PerfRawData_Tcpip_NetworkInterface",
}

// FetchClass returns instances of a WMI class, optionally narrowed by
// exact-match filters. Filter semantics are equality only; no ranges or
// wildcards.
func (c *Client) FetchClass(class string, filters map[string]interface{}) ([]Record, error) {
	wql, err := BuildSelect(class, filters)
	if err != nil {
		return nil, err
	}
	return c.Query(wql)
}
