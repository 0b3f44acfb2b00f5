package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mscrnt/wmiq/pkg/wmi"
)

// stubSession backs the builtin tools with canned records. FetchClass
// applies the same exact-match semantics a WHERE equality predicate gives.
type stubSession struct {
	classes map[string][]wmi.Record
	queries map[string][]wmi.Record
	err     error
}

func (s *stubSession) Query(wql string) ([]wmi.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.queries[wql], nil
}

func (s *stubSession) FetchClass(class string, filters map[string]interface{}) ([]wmi.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []wmi.Record
	for _, rec := range s.classes[class] {
		match := true
		for k, want := range filters {
			got, ok := rec[k]
			if !ok || fmt.Sprintf("%v", got) != fmt.Sprintf("%v", want) {
				match = false
				break
			}
		}
		if match {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *stubSession) InvokeMethod(class string, filters map[string]interface{}, method string) (int32, error) {
	return 0, nil
}

func builtinsRegistry(t *testing.T, s *stubSession, isAdmin func() bool) *Registry {
	t.Helper()
	registry := NewRegistry()
	RegisterBuiltins(registry, s, isAdmin)
	return registry
}

func TestBuiltinsRegistered(t *testing.T) {
	registry := builtinsRegistry(t, &stubSession{}, nil)

	want := []string{
		"check_admin_privileges",
		"execute_wql_query",
		"get_cpu_info",
		"get_disk_info",
		"get_memory_info",
		"get_network_info",
		"get_process_performance",
		"get_service_status",
		"get_system_info",
		"get_uptime",
		"list_processes",
		"list_services",
	}
	got := registry.List()
	if len(got) != len(want) {
		t.Fatalf("Expected %d builtin tools, got %d: %v", len(want), len(got), got)
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("Tool[%d] = %q, want %q", i, got[i], name)
		}
	}
}

func TestListServicesStateFilter(t *testing.T) {
	session := &stubSession{
		classes: map[string][]wmi.Record{
			"Win32_Service": {
				{"Name": "Spooler", "DisplayName": "Print Spooler", "State": "Running", "StartMode": "Auto"},
				{"Name": "Fax", "DisplayName": "Fax", "State": "Stopped", "StartMode": "Manual"},
			},
		},
	}
	registry := builtinsRegistry(t, session, nil)

	out := registry.Execute(context.Background(), "list_services", `{"state": "Running"}`)

	if !strings.Contains(out, "Windows Services (1):") {
		t.Errorf("Expected exactly one running service in header, got:\n%s", out)
	}
	if !strings.Contains(out, "Spooler - Running") {
		t.Errorf("Expected Spooler in output, got:\n%s", out)
	}
	if strings.Contains(out, "Fax") {
		t.Errorf("Stopped service leaked through the state filter:\n%s", out)
	}
}

func TestListServicesNoFilter(t *testing.T) {
	session := &stubSession{
		classes: map[string][]wmi.Record{
			"Win32_Service": {
				{"Name": "Spooler", "DisplayName": "Print Spooler", "State": "Running"},
				{"Name": "Fax", "DisplayName": "Fax", "State": "Stopped"},
			},
		},
	}
	registry := builtinsRegistry(t, session, nil)

	out := registry.Execute(context.Background(), "list_services", "{}")
	if !strings.Contains(out, "Windows Services (2):") {
		t.Errorf("Expected both services without a filter, got:\n%s", out)
	}
}

func TestListServicesTruncation(t *testing.T) {
	var recs []wmi.Record
	for i := 0; i < 25; i++ {
		recs = append(recs, wmi.Record{
			"Name":        fmt.Sprintf("svc%02d", i),
			"DisplayName": fmt.Sprintf("Service %02d", i),
			"State":       "Running",
		})
	}
	session := &stubSession{classes: map[string][]wmi.Record{"Win32_Service": recs}}
	registry := builtinsRegistry(t, session, nil)

	out := registry.Execute(context.Background(), "list_services", "{}")
	if !strings.Contains(out, "Windows Services (25):") {
		t.Errorf("Header should carry the full count, got:\n%s", out)
	}
	if !strings.Contains(out, "... and 5 more services") {
		t.Errorf("Expected truncation note for 5 hidden services, got:\n%s", out)
	}
	if strings.Contains(out, "svc20") {
		t.Errorf("Services past the display cap should be hidden:\n%s", out)
	}
}

func TestGetServiceStatus(t *testing.T) {
	session := &stubSession{
		classes: map[string][]wmi.Record{
			"Win32_Service": {
				{"Name": "Spooler", "DisplayName": "Print Spooler", "State": "Running", "StartMode": "Auto", "Status": "OK"},
			},
		},
	}
	registry := builtinsRegistry(t, session, nil)
	ctx := context.Background()

	out := registry.Execute(ctx, "get_service_status", `{"service_name": "Spooler"}`)
	if !strings.Contains(out, "Service: Spooler") || !strings.Contains(out, "State: Running") {
		t.Errorf("Unexpected status output:\n%s", out)
	}

	out = registry.Execute(ctx, "get_service_status", `{"service_name": "NoSuchService"}`)
	if out != "Service 'NoSuchService' not found" {
		t.Errorf("Missing service text = %q", out)
	}
}

func TestCheckAdminPrivileges(t *testing.T) {
	registry := builtinsRegistry(t, &stubSession{}, func() bool { return true })
	out := registry.Execute(context.Background(), "check_admin_privileges", "{}")
	if out != "Running with Administrator privileges" {
		t.Errorf("Admin text = %q", out)
	}

	registry = builtinsRegistry(t, &stubSession{}, func() bool { return false })
	out = registry.Execute(context.Background(), "check_admin_privileges", "{}")
	if !strings.HasPrefix(out, "NOT running with Administrator privileges") {
		t.Errorf("Non-admin text = %q", out)
	}
}

func TestGetMemoryInfo(t *testing.T) {
	session := &stubSession{
		classes: map[string][]wmi.Record{
			"Win32_ComputerSystem": {
				{"TotalPhysicalMemory": "17179869184"},
			},
			"Win32_OperatingSystem": {
				{"FreePhysicalMemory": "4194304"},
			},
		},
	}
	registry := builtinsRegistry(t, session, nil)

	out := registry.Execute(context.Background(), "get_memory_info", "{}")
	if !strings.Contains(out, "Total: 16.00 GB") {
		t.Errorf("Expected total of 16.00 GB, got:\n%s", out)
	}
	if !strings.Contains(out, "Usage: 75.0%") {
		t.Errorf("Expected 75.0%% usage, got:\n%s", out)
	}
}

func TestGetMemoryInfoError(t *testing.T) {
	session := &stubSession{err: fmt.Errorf("RPC server unavailable")}
	registry := builtinsRegistry(t, session, nil)

	out := registry.Execute(context.Background(), "get_memory_info", "{}")
	if !strings.HasPrefix(out, "Error getting memory info:") {
		t.Errorf("Backend failures must come back as text, got %q", out)
	}
}

func TestListProcessesOrder(t *testing.T) {
	session := &stubSession{
		classes: map[string][]wmi.Record{
			"Win32_Process": {
				{"Name": "notepad.exe", "ProcessId": "4120", "WorkingSetSize": "8388608"},
				{"Name": "chrome.exe", "ProcessId": "2200", "WorkingSetSize": "734003200"},
				{"Name": "svchost.exe", "ProcessId": "812", "WorkingSetSize": "52428800"},
			},
		},
	}
	registry := builtinsRegistry(t, session, nil)

	out := registry.Execute(context.Background(), "list_processes", "{}")
	chrome := strings.Index(out, "chrome.exe")
	svchost := strings.Index(out, "svchost.exe")
	notepad := strings.Index(out, "notepad.exe")
	if chrome == -1 || svchost == -1 || notepad == -1 {
		t.Fatalf("Expected all three processes in output:\n%s", out)
	}
	if !(chrome < svchost && svchost < notepad) {
		t.Errorf("Processes should be sorted by memory descending:\n%s", out)
	}
	if !strings.Contains(out, "Memory: 700.0 MB") {
		t.Errorf("Expected chrome's working set in MB, got:\n%s", out)
	}
}

func TestExecuteWQLQuery(t *testing.T) {
	session := &stubSession{
		queries: map[string][]wmi.Record{
			"SELECT Name FROM Win32_Service": {
				{"Name": "Spooler", "Comment": nil},
				{"Name": "Fax"},
			},
		},
	}
	registry := builtinsRegistry(t, session, nil)

	out := registry.Execute(context.Background(), "execute_wql_query",
		`{"query": "SELECT Name FROM Win32_Service"}`)
	if !strings.Contains(out, "Query Results (2 total, showing first 5):") {
		t.Errorf("Unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "Result 1:") || !strings.Contains(out, "Name: Spooler") {
		t.Errorf("Expected first result with Name property:\n%s", out)
	}
	if strings.Contains(out, "Comment") {
		t.Errorf("Nil properties should be skipped:\n%s", out)
	}
}

func TestExecuteWQLQueryEmpty(t *testing.T) {
	registry := builtinsRegistry(t, &stubSession{}, nil)
	out := registry.Execute(context.Background(), "execute_wql_query",
		`{"query": "SELECT * FROM Win32_Nothing"}`)
	if out != "Query returned no results" {
		t.Errorf("Empty result text = %q", out)
	}
}

func TestGetUptime(t *testing.T) {
	session := &stubSession{
		classes: map[string][]wmi.Record{
			"Win32_OperatingSystem": {
				{"LastBootUpTime": "20250810120000.000000+000"},
			},
		},
	}
	registry := builtinsRegistry(t, session, nil)

	out := registry.Execute(context.Background(), "get_uptime", "{}")
	if !strings.Contains(out, "Last Boot: 2025-08-10 12:00:00") {
		t.Errorf("Expected formatted boot time, got:\n%s", out)
	}
	if !strings.Contains(out, "Uptime: ") {
		t.Errorf("Expected uptime line, got:\n%s", out)
	}
}
