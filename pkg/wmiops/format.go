package wmiops

import (
	"fmt"
	"strings"
	"time"
)

// FormatBytes renders a byte count in the smallest unit that keeps the
// mantissa below 1024, always with two decimals: 1536 -> "1.50 KB".
func FormatBytes(n uint64) string {
	value := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.2f PB", value)
}

// UsedPercent computes (total-free)/total*100. A zero total yields 0 rather
// than a division fault.
func UsedPercent(total, free uint64) float64 {
	if total == 0 {
		return 0
	}
	used := float64(total) - float64(free)
	return used / float64(total) * 100
}

// ParseWMITime parses the fixed-width prefix YYYYMMDDHHMMSS of a CIM
// datetime, ignoring everything from the first '.' on (fractional seconds
// and the UTC offset). The result is in local time, which is how WMI
// reports LastBootUpTime.
func ParseWMITime(s string) (time.Time, error) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	t, err := time.ParseInLocation("20060102150405", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid WMI timestamp %q: %w", s, err)
	}
	return t, nil
}
