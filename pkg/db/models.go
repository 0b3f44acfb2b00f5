package db

import "time"

// Entry represents one executed operation
type Entry struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id,omitempty"`
	Command    string    `json:"command"`
	Detail     string    `json:"detail,omitempty"`
	Namespace  string    `json:"namespace"`
	Computer   string    `json:"computer"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
	RowCount   int       `json:"row_count"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Duration returns the recorded execution time
func (e *Entry) Duration() time.Duration {
	return time.Duration(e.DurationMS) * time.Millisecond
}

// Filter represents filters for querying entries
type Filter struct {
	Command    string
	Since      *time.Time
	FailedOnly bool
	Limit      int
	Offset     int
}

// ExportFormat represents the format for exporting history
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatJSON ExportFormat = "json"
)
