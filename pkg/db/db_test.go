package db

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "wmiq.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func seedEntries(t *testing.T, database *DB) {
	t.Helper()
	base := time.Now()
	entries := []*Entry{
		{Command: "query", Detail: "SELECT * FROM Win32_Service", Namespace: `root\cimv2`, Computer: ".",
			StartedAt: base.Add(-3 * time.Minute), RowCount: 120, Success: true},
		{Command: "services", Namespace: `root\cimv2`, Computer: ".",
			StartedAt: base.Add(-2 * time.Minute), RowCount: 68, Success: true},
		{Command: "query", Detail: "SELECT * FROM Bad_Class", Namespace: `root\cimv2`, Computer: ".",
			StartedAt: base.Add(-1 * time.Minute), Success: false, Error: "invalid class"},
	}
	for _, e := range entries {
		if err := database.Log(e); err != nil {
			t.Fatalf("Log() error = %v", err)
		}
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "wmiq.db")
	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = database.Close() }()

	if database.Path() != path {
		t.Errorf("Path() = %q, want %q", database.Path(), path)
	}
}

func TestLogAssignsID(t *testing.T) {
	database := testDB(t)

	e := &Entry{Command: "query", Success: true}
	if err := database.Log(e); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if e.ID == 0 {
		t.Error("Log() left ID zero, want assigned row id")
	}
	if e.StartedAt.IsZero() {
		t.Error("Log() left StartedAt zero, want defaulted to now")
	}
}

func TestListNewestFirst(t *testing.T) {
	database := testDB(t)
	seedEntries(t, database)

	entries, err := database.List(Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(entries))
	}
	if entries[0].Command != "query" || entries[0].Success {
		t.Errorf("List()[0] = %+v, want the newest (failed query) entry", entries[0])
	}
	if !entries[0].StartedAt.After(entries[2].StartedAt) {
		t.Error("List() not ordered newest first")
	}
}

func TestListFilters(t *testing.T) {
	database := testDB(t)
	seedEntries(t, database)

	byCommand, err := database.List(Filter{Command: "services"})
	if err != nil {
		t.Fatalf("List(Command) error = %v", err)
	}
	if len(byCommand) != 1 || byCommand[0].Command != "services" {
		t.Errorf("List(Command=services) = %d entries, want 1", len(byCommand))
	}

	failed, err := database.List(Filter{FailedOnly: true})
	if err != nil {
		t.Fatalf("List(FailedOnly) error = %v", err)
	}
	if len(failed) != 1 || failed[0].Error != "invalid class" {
		t.Errorf("List(FailedOnly) = %+v, want the single failed entry", failed)
	}

	since := time.Now().Add(-90 * time.Second)
	recent, err := database.List(Filter{Since: &since})
	if err != nil {
		t.Fatalf("List(Since) error = %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("List(Since=-90s) = %d entries, want 1", len(recent))
	}

	limited, err := database.List(Filter{Limit: 2})
	if err != nil {
		t.Fatalf("List(Limit) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List(Limit=2) = %d entries, want 2", len(limited))
	}
}

func TestPrune(t *testing.T) {
	database := testDB(t)
	seedEntries(t, database)

	deleted, err := database.Prune(1)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("Prune(1) deleted %d, want 2", deleted)
	}

	entries, err := database.List(Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Detail != "SELECT * FROM Bad_Class" {
		t.Errorf("Prune(1) kept %+v, want only the newest entry", entries)
	}
}

func TestExportCSV(t *testing.T) {
	database := testDB(t)
	seedEntries(t, database)

	var buf bytes.Buffer
	if err := database.ExportCSV(&buf, Filter{}); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("ExportCSV() wrote %d lines, want header + 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID,Session,Command") {
		t.Errorf("ExportCSV() header = %q", lines[0])
	}
	if !strings.Contains(out, "SELECT * FROM Win32_Service") {
		t.Error("ExportCSV() missing entry detail")
	}
}

func TestExportJSON(t *testing.T) {
	database := testDB(t)
	seedEntries(t, database)

	var buf bytes.Buffer
	if err := database.ExportJSON(&buf, Filter{FailedOnly: true}); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	var decoded []Entry
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("ExportJSON() produced invalid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Command != "query" {
		t.Errorf("ExportJSON(FailedOnly) = %+v, want the single failed entry", decoded)
	}
}
