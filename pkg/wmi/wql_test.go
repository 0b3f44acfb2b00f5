package wmi

import (
	"strings"
	"testing"
)

func TestBuildSelect(t *testing.T) {
	tests := []struct {
		name    string
		class   string
		filters map[string]interface{}
		want    string
		wantErr bool
	}{
		{
			name:  "no filters",
			class: "Win32_Service",
			want:  "SELECT * FROM Win32_Service",
		},
		{
			name:    "single string filter",
			class:   "Win32_Service",
			filters: map[string]interface{}{"Name": "X"},
			want:    "SELECT * FROM Win32_Service WHERE Name = 'X'",
		},
		{
			name:  "filters in sorted key order",
			class: "Win32_Service",
			filters: map[string]interface{}{
				"State": "Running",
				"Name":  "Spooler",
			},
			want: "SELECT * FROM Win32_Service WHERE Name = 'Spooler' AND State = 'Running'",
		},
		{
			name:    "integer filter",
			class:   "Win32_LogicalDisk",
			filters: map[string]interface{}{"DriveType": 3},
			want:    "SELECT * FROM Win32_LogicalDisk WHERE DriveType = 3",
		},
		{
			name:    "bool filter",
			class:   "Win32_NetworkAdapterConfiguration",
			filters: map[string]interface{}{"IPEnabled": true},
			want:    "SELECT * FROM Win32_NetworkAdapterConfiguration WHERE IPEnabled = TRUE",
		},
		{
			name:    "quote escaped",
			class:   "Win32_UserAccount",
			filters: map[string]interface{}{"FullName": "O'Brien"},
			want:    `SELECT * FROM Win32_UserAccount WHERE FullName = 'O\'Brien'`,
		},
		{
			name:    "backslash escaped",
			class:   "Win32_Share",
			filters: map[string]interface{}{"Path": `C:\Users`},
			want:    `SELECT * FROM Win32_Share WHERE Path = 'C:\\Users'`,
		},
		{
			name:    "empty class rejected",
			class:   "",
			wantErr: true,
		},
		{
			name:    "class with spaces rejected",
			class:   "Win32_Service; DELETE",
			wantErr: true,
		},
		{
			name:    "class starting with digit rejected",
			class:   "3Win32_Service",
			wantErr: true,
		},
		{
			name:    "invalid property name rejected",
			class:   "Win32_Service",
			filters: map[string]interface{}{"Name = 'x' OR 1": "y"},
			wantErr: true,
		},
		{
			name:    "nil filter value rejected",
			class:   "Win32_Service",
			filters: map[string]interface{}{"Name": nil},
			wantErr: true,
		},
		{
			name:    "unsupported filter type rejected",
			class:   "Win32_Service",
			filters: map[string]interface{}{"Name": []string{"a"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildSelect(tt.class, tt.filters)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("BuildSelect() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildSelect() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BuildSelect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildSelectExactMatchOnly(t *testing.T) {
	// A filter value containing wildcard characters must stay a literal.
	got, err := BuildSelect("Win32_Service", map[string]interface{}{"Name": "Spo%"})
	if err != nil {
		t.Fatalf("BuildSelect() error = %v", err)
	}
	if !strings.Contains(got, "Name = 'Spo%'") {
		t.Errorf("BuildSelect() = %q, want literal equality predicate", got)
	}
	if strings.Contains(got, "LIKE") {
		t.Errorf("BuildSelect() = %q, must not emit LIKE", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	if opts.Host != "." {
		t.Errorf("default host = %q, want %q", opts.Host, ".")
	}
	if opts.Namespace != `root\cimv2` {
		t.Errorf("default namespace = %q, want %q", opts.Namespace, `root\cimv2`)
	}

	opts = Options{Host: "server01", Namespace: `root\wmi`}.withDefaults()
	if opts.Host != "server01" || opts.Namespace != `root\wmi` {
		t.Errorf("withDefaults() overwrote explicit values: %+v", opts)
	}
}
