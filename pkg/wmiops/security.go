package wmiops

import "github.com/mscrnt/wmiq/pkg/wmi"

// SecurityInfo reads account, session, share, and startup configuration.
type SecurityInfo struct {
	q wmi.Querier
}

// NewSecurityInfo returns a security reader over the given querier.
func NewSecurityInfo(q wmi.Querier) *SecurityInfo {
	return &SecurityInfo{q: q}
}

// LocalUsers returns local user accounts. Domain accounts are excluded;
// enumerating them can take minutes on large domains.
func (s *SecurityInfo) LocalUsers() ([]wmi.Record, error) {
	return s.q.FetchClass("Win32_UserAccount", map[string]interface{}{"LocalAccount": true})
}

// Groups returns local groups.
func (s *SecurityInfo) Groups() ([]wmi.Record, error) {
	return s.q.FetchClass("Win32_Group", map[string]interface{}{"LocalAccount": true})
}

// LoggedOnUsers returns the active logon sessions.
func (s *SecurityInfo) LoggedOnUsers() ([]wmi.Record, error) {
	return s.q.FetchClass("Win32_LoggedOnUser", nil)
}

// Shares returns the network shares.
func (s *SecurityInfo) Shares() ([]wmi.Record, error) {
	return s.q.FetchClass("Win32_Share", nil)
}

// StartupCommands returns programs registered to run at startup.
func (s *SecurityInfo) StartupCommands() ([]wmi.Record, error) {
	return s.q.FetchClass("Win32_StartupCommand", nil)
}
