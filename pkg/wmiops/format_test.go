package wmiops

import (
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0.00 B"},
		{1, "1.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{1572864, "1.50 MB"},
		{1073741824, "1.00 GB"},
		{1099511627776, "1.00 TB"},
		{1125899906842624, "1.00 PB"},
		{2251799813685248, "2.00 PB"},
		// Beyond PB the unit ladder stops; the mantissa keeps growing.
		{1152921504606846976, "1024.00 PB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUsedPercent(t *testing.T) {
	tests := []struct {
		name  string
		total uint64
		free  uint64
		want  float64
	}{
		{"zero total", 0, 0, 0},
		{"zero total with free", 0, 100, 0},
		{"three quarters used", 100, 25, 75},
		{"all used", 100, 0, 100},
		{"nothing used", 1000, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UsedPercent(tt.total, tt.free); got != tt.want {
				t.Errorf("UsedPercent(%d, %d) = %v, want %v", tt.total, tt.free, got, tt.want)
			}
		})
	}
}

func TestParseWMITime(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{
			name: "full CIM datetime",
			in:   "20240115103000.123456+060",
			want: time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local),
		},
		{
			name: "zero offset",
			in:   "20231106120000.000000+000",
			want: time.Date(2023, 11, 6, 12, 0, 0, 0, time.Local),
		},
		{
			name: "bare timestamp without fraction",
			in:   "20240115103000",
			want: time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local),
		},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "not a time", wantErr: true},
		{name: "truncated", in: "2024011", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWMITime(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseWMITime(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWMITime(%q) error = %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseWMITime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestUptimeString(t *testing.T) {
	u := Uptime{Days: 2, Hours: 3, Minutes: 4}
	want := "2 days, 3 hours, 4 minutes"
	if got := u.String(); got != want {
		t.Errorf("Uptime.String() = %q, want %q", got, want)
	}
}
