package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/mscrnt/wmiq/pkg/wmi"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatRaw   = "raw"
)

// maxTableColumns caps auto-derived table layouts; WMI classes can carry
// 50+ properties.
const maxTableColumns = 10

// renderRecords writes records in the selected output format. columns
// drives the table layout; nil derives it from the first record.
// jsonProps, when non-nil, reduces JSON output to that allow-list.
func renderRecords(recs []wmi.Record, columns, jsonProps []string) error {
	switch flagFormat {
	case formatTable:
		return printTable(os.Stdout, recs, columns)
	case formatJSON:
		out := recs
		if jsonProps != nil {
			out = make([]wmi.Record, len(recs))
			for i, rec := range recs {
				out[i] = wmi.ToDict(rec, jsonProps)
			}
		}
		return printJSON(out)
	case formatRaw:
		for _, rec := range recs {
			fmt.Printf("%v\n", rec)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table, json, or raw)", flagFormat)
	}
}

// printTable renders records as a tab-aligned table with a header row.
func printTable(w io.Writer, recs []wmi.Record, columns []string) error {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No results")
		return nil
	}
	if len(columns) == 0 {
		columns = tableColumns(recs[0])
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, rec := range recs {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = displayValue(rec[col])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// tableColumns derives a layout from a record: sorted property names,
// capped at maxTableColumns.
func tableColumns(rec wmi.Record) []string {
	columns := make([]string, 0, len(rec))
	for name := range rec {
		columns = append(columns, name)
	}
	sort.Strings(columns)
	if len(columns) > maxTableColumns {
		columns = columns[:maxTableColumns]
	}
	return columns
}

// displayValue renders one table cell. Nil prints as N/A, lists join with
// commas.
func displayValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "N/A"
	case string:
		if val == "" {
			return "N/A"
		}
		return val
	case []string:
		return strings.Join(val, ", ")
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprintf("%v", item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// printDetail renders one record vertically as aligned name/value lines.
// props nil lists every property sorted.
func printDetail(w io.Writer, rec wmi.Record, props []string) error {
	if len(props) == 0 {
		props = make([]string, 0, len(rec))
		for name := range rec {
			props = append(props, name)
		}
		sort.Strings(props)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, prop := range props {
		fmt.Fprintf(tw, "%s:\t%s\n", prop, displayValue(rec[prop]))
	}
	return tw.Flush()
}

// printJSON writes indented JSON to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens a string for table display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
