package wmiops

import "github.com/mscrnt/wmiq/pkg/wmi"

// EventLogReader reads Windows event logs.
type EventLogReader struct {
	q wmi.Querier
}

// NewEventLogReader returns a reader over the given querier.
func NewEventLogReader(q wmi.Querier) *EventLogReader {
	return &EventLogReader{q: q}
}

// LogFiles lists the event log files on the host.
func (r *EventLogReader) LogFiles() ([]wmi.Record, error) {
	return r.q.Query("SELECT * FROM Win32_NTEventlogFile")
}

// Read returns up to limit events from a log. eventType narrows by severity
// (1=Error, 2=Warning, 3=Information); 0 means all. The limit is applied
// client-side; WQL has no LIMIT clause.
func (r *EventLogReader) Read(logName string, eventType int, limit int) ([]wmi.Record, error) {
	filters := map[string]interface{}{"Logfile": logName}
	if eventType > 0 {
		filters["EventType"] = eventType
	}
	events, err := r.q.FetchClass("Win32_NTLogEvent", filters)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}
