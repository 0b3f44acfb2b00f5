package wmiops

import (
	"fmt"

	"github.com/mscrnt/wmiq/pkg/wmi"
)

// ProcessManager queries and controls processes.
type ProcessManager struct {
	s Session
}

// NewProcessManager returns a process manager over the given session.
func NewProcessManager(s Session) *ProcessManager {
	return &ProcessManager{s: s}
}

// List returns processes matching the exact-match filters.
func (m *ProcessManager) List(filters map[string]interface{}) ([]wmi.Record, error) {
	return m.s.FetchClass("Win32_Process", filters)
}

// ByName returns every process with the given executable name.
func (m *ProcessManager) ByName(name string) ([]wmi.Record, error) {
	return m.s.FetchClass("Win32_Process", map[string]interface{}{"Name": name})
}

// Info returns the full record of a single process.
func (m *ProcessManager) Info(pid uint32) (wmi.Record, error) {
	recs, err := m.s.FetchClass("Win32_Process", map[string]interface{}{"ProcessId": pid})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("process with ID %d not found", pid)
	}
	return recs[0], nil
}

// HighMemory returns processes whose working set exceeds minMB megabytes.
// The size compare happens client-side; WorkingSetSize arrives as a string.
func (m *ProcessManager) HighMemory(minMB uint64) ([]wmi.Record, error) {
	all, err := m.s.FetchClass("Win32_Process", nil)
	if err != nil {
		return nil, err
	}
	minBytes := minMB * 1024 * 1024
	var out []wmi.Record
	for _, p := range all {
		if p.Uint64("WorkingSetSize") > minBytes {
			out = append(out, p)
		}
	}
	return out, nil
}

// Terminate kills a process by ID.
func (m *ProcessManager) Terminate(pid uint32) error {
	code, err := m.s.InvokeMethod("Win32_Process", map[string]interface{}{"ProcessId": pid}, "Terminate")
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("terminate of process %d failed with code %d: %s", pid, code, terminateReturnText(code))
	}
	return nil
}

func terminateReturnText(code int32) string {
	switch code {
	case 0:
		return "success"
	case 2:
		return "access denied"
	case 3:
		return "insufficient privilege"
	case 8:
		return "unknown failure"
	case 9:
		return "path not found"
	case 21:
		return "invalid parameter"
	default:
		return "unrecognized return code"
	}
}
