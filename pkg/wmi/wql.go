package wmi

import (
	"fmt"
	"sort"
	"strings"
)

// BuildSelect builds a SELECT * query for a class with exact-match WHERE
// predicates. Filter keys are emitted in sorted order so the same filters
// always produce the same query text. String values are single-quoted with
// backslash escaping per WQL.
func BuildSelect(class string, filters map[string]interface{}) (string, error) {
	if !validIdent(class) {
		return "", fmt.Errorf("wmi: invalid class name %q", class)
	}
	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(class)

	if len(filters) == 0 {
		return sb.String(), nil
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteString(" WHERE ")
	for i, k := range keys {
		if !validIdent(k) {
			return "", fmt.Errorf("wmi: invalid property name %q", k)
		}
		literal, err := wqlLiteral(filters[k])
		if err != nil {
			return "", fmt.Errorf("wmi: filter %s: %w", k, err)
		}
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(k)
		sb.WriteString(" = ")
		sb.WriteString(literal)
	}
	return sb.String(), nil
}

// wqlLiteral renders a filter value as a WQL literal.
func wqlLiteral(v interface{}) (string, error) {
	switch val := v.(type) {
	case string:
		return "'" + escapeString(val) + "'", nil
	case bool:
		if val {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val), nil
	case float32, float64:
		return fmt.Sprintf("%v", val), nil
	case nil:
		return "", fmt.Errorf("nil filter value")
	default:
		return "", fmt.Errorf("unsupported filter value type %T", v)
	}
}

// escapeString escapes backslashes and single quotes inside a WQL string
// literal.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}

// validIdent reports whether s is usable as a WQL class or property name:
// letters, digits, and underscores, not starting with a digit.
func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
