package wmiops

import (
	"strings"
	"testing"

	"github.com/mscrnt/wmiq/pkg/wmi"
)

func processFixtures() *fakeSession {
	return &fakeSession{
		classes: map[string][]wmi.Record{
			"Win32_Process": {
				{"Name": "svchost.exe", "ProcessId": "812", "WorkingSetSize": "52428800", "ThreadCount": "14"},
				{"Name": "notepad.exe", "ProcessId": "4120", "WorkingSetSize": "8388608", "ThreadCount": "3"},
				{"Name": "chrome.exe", "ProcessId": "2200", "WorkingSetSize": "734003200", "ThreadCount": "41"},
			},
		},
	}
}

func TestProcessManagerByName(t *testing.T) {
	m := NewProcessManager(processFixtures())

	got, err := m.ByName("notepad.exe")
	if err != nil {
		t.Fatalf("ByName() error = %v", err)
	}
	if len(got) != 1 || got[0].Str("ProcessId") != "4120" {
		t.Errorf("ByName(notepad.exe) = %v, want the single pid 4120 record", got)
	}
}

func TestProcessManagerInfo(t *testing.T) {
	m := NewProcessManager(processFixtures())

	rec, err := m.Info(2200)
	if err != nil {
		t.Fatalf("Info(2200) error = %v", err)
	}
	if rec.Str("Name") != "chrome.exe" {
		t.Errorf("Info(2200).Name = %q, want chrome.exe", rec.Str("Name"))
	}

	_, err = m.Info(99999)
	if err == nil {
		t.Fatal("Info(99999) expected error, got nil")
	}
	if !strings.Contains(err.Error(), "99999") {
		t.Errorf("Info(99999) error = %q, want the pid in the message", err)
	}
}

func TestProcessManagerHighMemory(t *testing.T) {
	m := NewProcessManager(processFixtures())

	// 100 MB threshold keeps only chrome (700 MB); svchost is 50 MB.
	got, err := m.HighMemory(100)
	if err != nil {
		t.Fatalf("HighMemory() error = %v", err)
	}
	if len(got) != 1 || got[0].Str("Name") != "chrome.exe" {
		t.Errorf("HighMemory(100) = %v, want just chrome.exe", got)
	}
}

func TestProcessManagerTerminate(t *testing.T) {
	fake := processFixtures()
	m := NewProcessManager(fake)

	if err := m.Terminate(4120); err != nil {
		t.Fatalf("Terminate() error = %v", err)
	}
	if len(fake.invocations) != 1 {
		t.Fatalf("Terminate() made %d invocations, want 1", len(fake.invocations))
	}
	inv := fake.invocations[0]
	if inv.class != "Win32_Process" || inv.method != "Terminate" {
		t.Errorf("Terminate() invoked %s.%s, want Win32_Process.Terminate", inv.class, inv.method)
	}

	fake.invokeCode = 2
	err := m.Terminate(4120)
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Errorf("Terminate() with code 2 error = %v, want access denied", err)
	}
}
