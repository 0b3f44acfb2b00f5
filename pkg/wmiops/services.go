package wmiops

import (
	"fmt"

	"github.com/mscrnt/wmiq/pkg/wmi"
)

// ServiceManager queries and controls Windows services.
type ServiceManager struct {
	s Session
}

// NewServiceManager returns a service manager over the given session.
func NewServiceManager(s Session) *ServiceManager {
	return &ServiceManager{s: s}
}

// List returns services matching the exact-match filters (Name, State,
// StartMode). Nil filters list everything.
func (m *ServiceManager) List(filters map[string]interface{}) ([]wmi.Record, error) {
	return m.s.FetchClass("Win32_Service", filters)
}

// Status returns the full record of a single service.
func (m *ServiceManager) Status(name string) (wmi.Record, error) {
	recs, err := m.s.FetchClass("Win32_Service", map[string]interface{}{"Name": name})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("service %q not found", name)
	}
	return recs[0], nil
}

// StoppedAutoStart returns services set to start automatically that are not
// running.
func (m *ServiceManager) StoppedAutoStart() ([]wmi.Record, error) {
	return m.s.FetchClass("Win32_Service", map[string]interface{}{
		"StartMode": "Auto",
		"State":     "Stopped",
	})
}

// Start starts a service.
func (m *ServiceManager) Start(name string) error {
	return m.control(name, "StartService")
}

// Stop stops a service.
func (m *ServiceManager) Stop(name string) error {
	return m.control(name, "StopService")
}

// Restart stops then starts a service.
func (m *ServiceManager) Restart(name string) error {
	if err := m.Stop(name); err != nil {
		return err
	}
	return m.Start(name)
}

func (m *ServiceManager) control(name, method string) error {
	code, err := m.s.InvokeMethod("Win32_Service", map[string]interface{}{"Name": name}, method)
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("%s on %q failed with code %d: %s", method, name, code, serviceReturnText(code))
	}
	return nil
}

// serviceReturnText maps Win32_Service method return codes to their
// documented meanings.
func serviceReturnText(code int32) string {
	switch code {
	case 0:
		return "success"
	case 1:
		return "not supported"
	case 2:
		return "access denied"
	case 3:
		return "dependent services running"
	case 4:
		return "invalid service control"
	case 5:
		return "service cannot accept control"
	case 6:
		return "service not active"
	case 7:
		return "service request timeout"
	case 8:
		return "unknown failure"
	case 9:
		return "path not found"
	case 10:
		return "service already running"
	case 11:
		return "service database locked"
	case 12:
		return "service dependency deleted"
	case 13:
		return "service dependency failure"
	case 14:
		return "service disabled"
	case 15:
		return "service logon failed"
	case 16:
		return "service marked for deletion"
	case 17:
		return "service no thread"
	case 18:
		return "status circular dependency"
	case 19:
		return "status duplicate name"
	case 20:
		return "status invalid name"
	case 21:
		return "status invalid parameter"
	case 22:
		return "status invalid service account"
	case 23:
		return "status service exists"
	case 24:
		return "service already paused"
	default:
		return "unrecognized return code"
	}
}
