// Package db persists a history of executed operations in SQLite.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// DB wraps the SQL database connection
type DB struct {
	conn *sql.DB
	path string
}

// Open creates or opens the history database
func Open(path string) (*DB, error) {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database connection
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		conn: conn,
		path: path,
	}

	// Run migrations
	if err := db.Migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying database connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// Migrate creates or updates the database schema
func (db *DB) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		command TEXT NOT NULL,
		detail TEXT,
		namespace TEXT,
		computer TEXT,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER DEFAULT 0,
		row_count INTEGER DEFAULT 0,
		success BOOLEAN DEFAULT 1,
		error TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_entries_command ON entries(command);
	CREATE INDEX IF NOT EXISTS idx_entries_started_at ON entries(started_at);
	CREATE INDEX IF NOT EXISTS idx_entries_success ON entries(success);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// Log records one executed operation
func (db *DB) Log(e *Entry) error {
	if e.StartedAt.IsZero() {
		e.StartedAt = time.Now()
	}

	result, err := db.conn.Exec(
		`INSERT INTO entries (session_id, command, detail, namespace, computer,
		 started_at, duration_ms, row_count, success, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Command, e.Detail, e.Namespace, e.Computer,
		e.StartedAt, e.DurationMS, e.RowCount, e.Success, e.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	e.ID = id
	return nil
}

// List retrieves entries based on filters, newest first
func (db *DB) List(filter Filter) ([]*Entry, error) {
	query := `SELECT id, session_id, command, detail, namespace, computer,
	          started_at, duration_ms, row_count, success, error, created_at
	          FROM entries WHERE 1=1`
	args := []interface{}{}

	if filter.Command != "" {
		query += " AND command = ?"
		args = append(args, filter.Command)
	}

	if filter.Since != nil {
		query += " AND started_at >= ?"
		args = append(args, filter.Since)
	}

	if filter.FailedOnly {
		query += " AND success = 0"
	}

	query += " ORDER BY started_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)

		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		err := rows.Scan(
			&e.ID, &e.SessionID, &e.Command, &e.Detail, &e.Namespace,
			&e.Computer, &e.StartedAt, &e.DurationMS, &e.RowCount,
			&e.Success, &e.Error, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// Prune deletes all but the newest keep entries and reports how many
// were removed
func (db *DB) Prune(keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	result, err := db.conn.Exec(
		`DELETE FROM entries WHERE id NOT IN (
		   SELECT id FROM entries ORDER BY started_at DESC LIMIT ?)`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune entries: %w", err)
	}

	return result.RowsAffected()
}
