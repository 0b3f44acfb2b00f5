package wmiops

import (
	"strings"
	"testing"

	"github.com/mscrnt/wmiq/pkg/wmi"
)

func serviceFixtures() *fakeSession {
	return &fakeSession{
		classes: map[string][]wmi.Record{
			"Win32_Service": {
				{"Name": "Spooler", "DisplayName": "Print Spooler", "State": "Running", "StartMode": "Auto", "Status": "OK"},
				{"Name": "Fax", "DisplayName": "Fax", "State": "Stopped", "StartMode": "Manual", "Status": "OK"},
			},
		},
	}
}

func TestServiceManagerListStateFilter(t *testing.T) {
	fake := serviceFixtures()
	m := NewServiceManager(fake)

	got, err := m.List(map[string]interface{}{"State": "Running"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List(State=Running) returned %d records, want 1", len(got))
	}
	if name := got[0].Str("Name"); name != "Spooler" {
		t.Errorf("List(State=Running)[0].Name = %q, want %q", name, "Spooler")
	}
}

func TestServiceManagerListNoFilter(t *testing.T) {
	fake := serviceFixtures()
	m := NewServiceManager(fake)

	got, err := m.List(nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("List(nil) returned %d records, want 2", len(got))
	}
}

func TestServiceManagerStatus(t *testing.T) {
	fake := serviceFixtures()
	m := NewServiceManager(fake)

	rec, err := m.Status("Spooler")
	if err != nil {
		t.Fatalf("Status(Spooler) error = %v", err)
	}
	if rec.Str("State") != "Running" {
		t.Errorf("Status(Spooler).State = %q, want Running", rec.Str("State"))
	}

	if _, err := m.Status("NoSuchService"); err == nil {
		t.Error("Status(NoSuchService) expected error, got nil")
	}
}

func TestServiceManagerStart(t *testing.T) {
	fake := serviceFixtures()
	m := NewServiceManager(fake)

	if err := m.Start("Spooler"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if len(fake.invocations) != 1 {
		t.Fatalf("Start() made %d invocations, want 1", len(fake.invocations))
	}
	inv := fake.invocations[0]
	if inv.class != "Win32_Service" || inv.method != "StartService" {
		t.Errorf("Start() invoked %s.%s, want Win32_Service.StartService", inv.class, inv.method)
	}
	if inv.filters["Name"] != "Spooler" {
		t.Errorf("Start() filter Name = %v, want Spooler", inv.filters["Name"])
	}
}

func TestServiceManagerStartFailureCode(t *testing.T) {
	fake := serviceFixtures()
	fake.invokeCode = 2
	m := NewServiceManager(fake)

	err := m.Start("Spooler")
	if err == nil {
		t.Fatal("Start() with return code 2 expected error, got nil")
	}
	if !strings.Contains(err.Error(), "access denied") {
		t.Errorf("Start() error = %q, want it to mention access denied", err)
	}
}

func TestServiceManagerRestartOrder(t *testing.T) {
	fake := serviceFixtures()
	m := NewServiceManager(fake)

	if err := m.Restart("Spooler"); err != nil {
		t.Fatalf("Restart() error = %v", err)
	}
	if len(fake.invocations) != 2 {
		t.Fatalf("Restart() made %d invocations, want 2", len(fake.invocations))
	}
	if fake.invocations[0].method != "StopService" || fake.invocations[1].method != "StartService" {
		t.Errorf("Restart() order = %s, %s; want StopService, StartService",
			fake.invocations[0].method, fake.invocations[1].method)
	}
}

func TestStoppedAutoStart(t *testing.T) {
	fake := &fakeSession{
		classes: map[string][]wmi.Record{
			"Win32_Service": {
				{"Name": "Spooler", "State": "Running", "StartMode": "Auto"},
				{"Name": "BITS", "State": "Stopped", "StartMode": "Auto"},
				{"Name": "Fax", "State": "Stopped", "StartMode": "Manual"},
			},
		},
	}
	m := NewServiceManager(fake)

	got, err := m.StoppedAutoStart()
	if err != nil {
		t.Fatalf("StoppedAutoStart() error = %v", err)
	}
	if len(got) != 1 || got[0].Str("Name") != "BITS" {
		t.Errorf("StoppedAutoStart() = %v, want just BITS", got)
	}
}
