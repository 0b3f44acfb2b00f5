package db

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// ExportCSV exports matching entries to CSV format
func (db *DB) ExportCSV(w io.Writer, filter Filter) error {
	entries, err := db.List(filter)
	if err != nil {
		return err
	}

	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	headers := []string{
		"ID", "Session", "Command", "Detail", "Namespace", "Computer",
		"Started At", "Duration (ms)", "Rows", "Success", "Error",
	}
	if err := csvWriter.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, e := range entries {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.SessionID,
			e.Command,
			e.Detail,
			e.Namespace,
			e.Computer,
			e.StartedAt.Format("2006-01-02 15:04:05"),
			strconv.FormatInt(e.DurationMS, 10),
			strconv.Itoa(e.RowCount),
			strconv.FormatBool(e.Success),
			e.Error,
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}

// ExportJSON exports matching entries to JSON format
func (db *DB) ExportJSON(w io.Writer, filter Filter) error {
	entries, err := db.List(filter)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*Entry{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
