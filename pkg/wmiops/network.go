package wmiops

import (
	"fmt"

	"github.com/mscrnt/wmiq/pkg/wmi"
)

// NetworkManager reads network adapter configuration and statistics.
type NetworkManager struct {
	q wmi.Querier
}

// NewNetworkManager returns a network manager over the given querier.
func NewNetworkManager(q wmi.Querier) *NetworkManager {
	return &NetworkManager{q: q}
}

// Adapters returns adapters with IP bound.
func (m *NetworkManager) Adapters() ([]wmi.Record, error) {
	return m.q.FetchClass("Win32_NetworkAdapterConfiguration", map[string]interface{}{"IPEnabled": true})
}

// AdapterByDescription returns the IP-enabled adapter with the given
// description.
func (m *NetworkManager) AdapterByDescription(description string) (wmi.Record, error) {
	recs, err := m.q.FetchClass("Win32_NetworkAdapterConfiguration", map[string]interface{}{
		"Description": description,
		"IPEnabled":   true,
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("no adapter with description %q", description)
	}
	return recs[0], nil
}

// InterfaceStats returns raw TCP/IP performance counters per interface.
func (m *NetworkManager) InterfaceStats() ([]wmi.Record, error) {
	return m.q.Query("SELECT * FROM Win32_PerfRawData_Tcpip_NetworkInterface")
}
