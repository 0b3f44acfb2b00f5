package wmi

import (
	"fmt"
	"strconv"
)

// Record is one instrumentation object as plain data. Values are strings,
// integers, bools, floats, nil, or []interface{} for list-valued properties.
// WMI transports 64-bit integers as strings; the accessors below coerce.
type Record map[string]interface{}

// Str returns the named property as a string, or "" when absent or nil.
func (r Record) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Uint64 returns the named property as a uint64, or 0 when absent or not
// convertible.
func (r Record) Uint64(key string) uint64 {
	switch v := r[key].(type) {
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case uint64:
		return v
	case uint32:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint:
		return uint64(v)
	case int64:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case int32:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case int16:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case int8:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case int:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case float64:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case float32:
		if v < 0 {
			return 0
		}
		return uint64(v)
	default:
		return 0
	}
}

// Int64 returns the named property as an int64, or 0 when absent or not
// convertible.
func (r Record) Int64(key string) int64 {
	switch v := r[key].(type) {
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case int64:
		return v
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	case int8:
		return int64(v)
	case int:
		return int64(v)
	case uint64:
		return int64(v)
	case uint32:
		return int64(v)
	case uint16:
		return int64(v)
	case uint8:
		return int64(v)
	case uint:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	default:
		return 0
	}
}

// Bool returns the named property as a bool. Absent, nil, and non-bool
// values are false.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Strings returns a list-valued property as []string, or nil when absent.
func (r Record) Strings(key string) []string {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return list
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if item == nil {
				continue
			}
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprintf("%v", item))
			}
		}
		return out
	default:
		return []string{r.Str(key)}
	}
}

// ToDict reduces a record to the given properties. Properties the record
// does not carry map to nil rather than failing. A nil allow-list copies
// the whole record. Records hold data only, so method-valued entries can
// never appear.
func ToDict(rec Record, properties []string) Record {
	if properties == nil {
		out := make(Record, len(rec))
		for k, v := range rec {
			out[k] = v
		}
		return out
	}
	out := make(Record, len(properties))
	for _, p := range properties {
		v, ok := rec[p]
		if !ok {
			out[p] = nil
			continue
		}
		out[p] = v
	}
	return out
}
