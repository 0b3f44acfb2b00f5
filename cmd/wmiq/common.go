package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mscrnt/wmiq/pkg/db"
	"github.com/mscrnt/wmiq/pkg/wmi"
)

// Persistent flags shared by every command.
var (
	flagComputer  string
	flagNamespace string
	flagFormat    string
	flagNoHistory bool
)

// newClient opens a WMI session for the target selected by the persistent
// flags. The caller owns the lifecycle and must Close it.
func newClient() (*wmi.Client, error) {
	client, err := wmi.NewClient(wmi.Options{Host: flagComputer, Namespace: flagNamespace})
	if err != nil {
		return nil, err
	}
	if err := client.Connect(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// getDBPath returns the path to the history database file.
func getDBPath() string {
	if dbPath := os.Getenv("WMIQ_DB_PATH"); dbPath != "" {
		return dbPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "wmiq.db"
	}
	return filepath.Join(homeDir, ".wmiq", "wmiq.db")
}

// historyEntry captures one executed operation for the history store.
func historyEntry(command, detail string, started time.Time, rows int, runErr error) db.Entry {
	e := db.Entry{
		Command:    command,
		Detail:     detail,
		Namespace:  flagNamespace,
		Computer:   flagComputer,
		StartedAt:  started,
		DurationMS: time.Since(started).Milliseconds(),
		RowCount:   rows,
		Success:    runErr == nil,
	}
	if runErr != nil {
		e.Error = runErr.Error()
	}
	return e
}

// recordHistory logs an executed operation. History is best-effort: a
// failed write warns on stderr and never fails the command.
func recordHistory(entry db.Entry) {
	if flagNoHistory {
		return
	}

	database, err := db.Open(getDBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history unavailable: %v\n", err)
		return
	}
	defer func() { _ = database.Close() }()

	if err := database.Log(&entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record history: %v\n", err)
	}
}
