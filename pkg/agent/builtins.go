package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mscrnt/wmiq/pkg/sysinfo"
	"github.com/mscrnt/wmiq/pkg/wmi"
	"github.com/mscrnt/wmiq/pkg/wmiops"
)

// Caps on how much a single tool result shows.
const (
	maxServicesShown  = 20
	maxProcessesShown = 15
	maxQueryResults   = 5
	maxQueryProps     = 10
)

// RegisterBuiltins installs the WMI tools over the given session. A nil
// isAdmin falls back to the local privilege check.
func RegisterBuiltins(r *Registry, s wmiops.Session, isAdmin func() bool) {
	if isAdmin == nil {
		isAdmin = sysinfo.IsAdmin
	}

	mon := wmiops.NewSystemMonitor(s)
	services := wmiops.NewServiceManager(s)
	processes := wmiops.NewProcessManager(s)
	network := wmiops.NewNetworkManager(s)

	register := func(tool Tool) {
		// Builtins are installed once on a fresh registry.
		_ = r.Register(tool)
	}

	register(Tool{
		Name:        "get_system_info",
		Description: "Get detailed system information including OS, hardware, and BIOS details",
		Parameters:  noParams(),
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			osRec, err := mon.OperatingSystem()
			if err != nil {
				return fmt.Sprintf("Error getting system info: %v", err), nil
			}
			cs, err := mon.ComputerSystem()
			if err != nil {
				return fmt.Sprintf("Error getting system info: %v", err), nil
			}
			bios, err := mon.BIOS()
			if err != nil {
				return fmt.Sprintf("Error getting system info: %v", err), nil
			}

			biosVersion, biosSerial := "N/A", "N/A"
			if bios != nil {
				biosVersion = bios.Str("Version")
				biosSerial = bios.Str("SerialNumber")
			}

			var b strings.Builder
			b.WriteString("System Information:\n")
			fmt.Fprintf(&b, "  OS: %s %s\n", osRec.Str("Caption"), osRec.Str("Version"))
			fmt.Fprintf(&b, "  Computer: %s\n", cs.Str("Name"))
			fmt.Fprintf(&b, "  Manufacturer: %s\n", cs.Str("Manufacturer"))
			fmt.Fprintf(&b, "  Model: %s\n", cs.Str("Model"))
			fmt.Fprintf(&b, "  Architecture: %s\n", osRec.Str("OSArchitecture"))
			fmt.Fprintf(&b, "  Memory: %s\n", wmiops.FormatBytes(cs.Uint64("TotalPhysicalMemory")))
			fmt.Fprintf(&b, "  BIOS: %s\n", biosVersion)
			fmt.Fprintf(&b, "  Serial Number: %s\n", biosSerial)
			return b.String(), nil
		},
	})

	register(Tool{
		Name:        "get_memory_info",
		Description: "Get memory usage information including total, used, and available memory",
		Parameters:  noParams(),
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			info, err := mon.MemoryInfo()
			if err != nil {
				return fmt.Sprintf("Error getting memory info: %v", err), nil
			}

			var b strings.Builder
			b.WriteString("Memory Information:\n")
			fmt.Fprintf(&b, "  Total: %s\n", wmiops.FormatBytes(info.TotalBytes))
			fmt.Fprintf(&b, "  Used: %s\n", wmiops.FormatBytes(info.UsedBytes))
			fmt.Fprintf(&b, "  Free: %s\n", wmiops.FormatBytes(info.FreeBytes))
			fmt.Fprintf(&b, "  Usage: %.1f%%\n", info.UsedPercent)
			return b.String(), nil
		},
	})

	register(Tool{
		Name:        "get_cpu_info",
		Description: "Get CPU usage and processor information",
		Parameters:  noParams(),
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			cpus, err := s.Query("SELECT * FROM Win32_Processor")
			if err != nil {
				return fmt.Sprintf("Error getting CPU info: %v", err), nil
			}
			if len(cpus) == 0 {
				return "No CPU information available", nil
			}
			cpu := cpus[0]

			var b strings.Builder
			b.WriteString("CPU Information:\n")
			fmt.Fprintf(&b, "  Processor: %s\n", cpu.Str("Name"))
			fmt.Fprintf(&b, "  Manufacturer: %s\n", cpu.Str("Manufacturer"))
			fmt.Fprintf(&b, "  Cores: %d\n", cpu.Int64("NumberOfCores"))
			fmt.Fprintf(&b, "  Logical Processors: %d\n", cpu.Int64("NumberOfLogicalProcessors"))
			fmt.Fprintf(&b, "  Max Speed: %d MHz\n", cpu.Int64("MaxClockSpeed"))
			fmt.Fprintf(&b, "  Current Speed: %d MHz\n", cpu.Int64("CurrentClockSpeed"))
			if v, ok := cpu["LoadPercentage"]; ok && v != nil {
				fmt.Fprintf(&b, "  Load: %d%%\n", cpu.Int64("LoadPercentage"))
			}
			return b.String(), nil
		},
	})

	register(Tool{
		Name:        "get_disk_info",
		Description: "Get disk drive information including size, free space, and usage",
		Parameters:  noParams(),
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			disks, err := mon.DiskUsage()
			if err != nil {
				return fmt.Sprintf("Error getting disk info: %v", err), nil
			}
			if len(disks) == 0 {
				return "No disk information available", nil
			}

			var b strings.Builder
			b.WriteString("Disk Drives:\n")
			for _, d := range disks {
				fmt.Fprintf(&b, "  %s:\n", d.DeviceID)
				fmt.Fprintf(&b, "    Size: %s\n", wmiops.FormatBytes(d.SizeBytes))
				fmt.Fprintf(&b, "    Free: %s\n", wmiops.FormatBytes(d.FreeBytes))
				fmt.Fprintf(&b, "    Used: %.1f%%\n", d.UsedPercent)
				fs := d.FileSystem
				if fs == "" {
					fs = "N/A"
				}
				fmt.Fprintf(&b, "    File System: %s\n", fs)
			}
			return b.String(), nil
		},
	})

	register(Tool{
		Name:        "get_network_info",
		Description: "Get network adapter configuration and IP addresses",
		Parameters:  noParams(),
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			adapters, err := network.Adapters()
			if err != nil {
				return fmt.Sprintf("Error getting network info: %v", err), nil
			}
			if len(adapters) == 0 {
				return "No active network adapters found", nil
			}

			var b strings.Builder
			b.WriteString("Network Adapters:\n")
			for _, a := range adapters {
				fmt.Fprintf(&b, "  %s:\n", a.Str("Description"))
				mac := a.Str("MACAddress")
				if mac == "" {
					mac = "N/A"
				}
				fmt.Fprintf(&b, "    MAC: %s\n", mac)
				if ips := a.Strings("IPAddress"); len(ips) > 0 {
					fmt.Fprintf(&b, "    IP: %s\n", strings.Join(ips, ", "))
				}
				if gws := a.Strings("DefaultIPGateway"); len(gws) > 0 {
					fmt.Fprintf(&b, "    Gateway: %s\n", strings.Join(gws, ", "))
				}
				dhcp := "No"
				if a.Bool("DHCPEnabled") {
					dhcp = "Yes"
				}
				fmt.Fprintf(&b, "    DHCP Enabled: %s\n", dhcp)
			}
			return b.String(), nil
		},
	})

	register(Tool{
		Name:        "get_uptime",
		Description: "Get system uptime since last boot",
		Parameters:  noParams(),
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			up, err := mon.Uptime()
			if err != nil {
				return fmt.Sprintf("Error getting uptime: %v", err), nil
			}

			var b strings.Builder
			b.WriteString("System Uptime:\n")
			fmt.Fprintf(&b, "  Last Boot: %s\n", up.BootTime.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(&b, "  Uptime: %s\n", up.String())
			return b.String(), nil
		},
	})

	register(Tool{
		Name:        "check_admin_privileges",
		Description: "Check if running with administrator privileges",
		Parameters:  noParams(),
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			if isAdmin() {
				return "Running with Administrator privileges", nil
			}
			return "NOT running with Administrator privileges. Some operations may be restricted.", nil
		},
	})

	register(Tool{
		Name:        "list_services",
		Description: "List Windows services with optional filtering",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"state": map[string]interface{}{
					"type":        "string",
					"description": "Filter by state: 'Running' or 'Stopped'",
				},
			},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			var filters map[string]interface{}
			if state, _ := args["state"].(string); state != "" {
				filters = map[string]interface{}{"State": state}
			}

			recs, err := services.List(filters)
			if err != nil {
				return fmt.Sprintf("Error listing services: %v", err), nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Windows Services (%d):\n", len(recs))
			for i, svc := range recs {
				if i == maxServicesShown {
					break
				}
				fmt.Fprintf(&b, "  %d. %s - %s\n", i+1, svc.Str("Name"), svc.Str("State"))
				fmt.Fprintf(&b, "     Display: %s\n", svc.Str("DisplayName"))
			}
			if len(recs) > maxServicesShown {
				fmt.Fprintf(&b, "\n  ... and %d more services\n", len(recs)-maxServicesShown)
			}
			return b.String(), nil
		},
	})

	register(Tool{
		Name:        "get_service_status",
		Description: "Get status of a specific Windows service",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"service_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the service to query",
				},
			},
			"required": []string{"service_name"},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			name, _ := args["service_name"].(string)
			recs, err := services.List(map[string]interface{}{"Name": name})
			if err != nil {
				return fmt.Sprintf("Error getting service status: %v", err), nil
			}
			if len(recs) == 0 {
				return fmt.Sprintf("Service '%s' not found", name), nil
			}

			svc := recs[0]
			var b strings.Builder
			fmt.Fprintf(&b, "Service: %s\n", svc.Str("Name"))
			fmt.Fprintf(&b, "  Display Name: %s\n", svc.Str("DisplayName"))
			fmt.Fprintf(&b, "  State: %s\n", svc.Str("State"))
			fmt.Fprintf(&b, "  Start Mode: %s\n", svc.Str("StartMode"))
			fmt.Fprintf(&b, "  Status: %s\n", svc.Str("Status"))
			return b.String(), nil
		},
	})

	register(Tool{
		Name:        "list_processes",
		Description: "List running processes",
		Parameters:  noParams(),
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			procs, err := processes.HighMemory(0)
			if err != nil {
				return fmt.Sprintf("Error listing processes: %v", err), nil
			}
			if len(procs) == 0 {
				return "No processes found", nil
			}

			sort.Slice(procs, func(i, j int) bool {
				return procs[i].Uint64("WorkingSetSize") > procs[j].Uint64("WorkingSetSize")
			})
			if len(procs) > maxProcessesShown {
				procs = procs[:maxProcessesShown]
			}

			var b strings.Builder
			b.WriteString("Running Processes (Top 15 by Memory):\n")
			for i, p := range procs {
				memMB := float64(p.Uint64("WorkingSetSize")) / (1024 * 1024)
				fmt.Fprintf(&b, "  %d. %s (PID: %s)\n", i+1, p.Str("Name"), p.Str("ProcessId"))
				fmt.Fprintf(&b, "     Memory: %.1f MB\n", memMB)
			}
			return b.String(), nil
		},
	})

	register(Tool{
		Name:        "get_process_performance",
		Description: "Get process CPU and memory usage with performance metrics",
		Parameters:  noParams(),
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			recs, err := s.Query("SELECT Name, IDProcess, PercentProcessorTime, WorkingSet " +
				"FROM Win32_PerfFormattedData_PerfProc_Process " +
				"WHERE Name != '_Total' AND Name != 'Idle'")
			if err != nil {
				return fmt.Sprintf("Error getting process performance: %v\n\n"+
					"Note: Performance counters may not be available. "+
					"Try using 'list_processes' for memory-based process listing instead.", err), nil
			}
			if len(recs) == 0 {
				return "No performance data available. This can happen if performance " +
					"counters are disabled or need to be rebuilt.", nil
			}

			var valid []wmi.Record
			for _, p := range recs {
				if v, ok := p["PercentProcessorTime"]; ok && v != nil && p.Uint64("IDProcess") != 0 {
					valid = append(valid, p)
				}
			}
			sort.Slice(valid, func(i, j int) bool {
				return valid[i].Int64("PercentProcessorTime") > valid[j].Int64("PercentProcessorTime")
			})
			if len(valid) > maxProcessesShown {
				valid = valid[:maxProcessesShown]
			}

			var b strings.Builder
			b.WriteString("Process Performance (Top 15 by CPU Usage):\n\n")
			for i, p := range valid {
				memMB := float64(p.Uint64("WorkingSet")) / (1024 * 1024)
				fmt.Fprintf(&b, "  %d. %s (PID: %d)\n", i+1, p.Str("Name"), p.Uint64("IDProcess"))
				fmt.Fprintf(&b, "     CPU: %d%%\n", p.Int64("PercentProcessorTime"))
				fmt.Fprintf(&b, "     Memory: %.1f MB\n\n", memMB)
			}
			return b.String(), nil
		},
	})

	register(Tool{
		Name:        "execute_wql_query",
		Description: "Execute a custom WQL query",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "WQL query to execute (e.g., 'SELECT * FROM Win32_Service')",
				},
			},
			"required": []string{"query"},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			query, _ := args["query"].(string)
			recs, err := s.Query(query)
			if err != nil {
				return fmt.Sprintf("Error executing query: %v", err), nil
			}
			if len(recs) == 0 {
				return "Query returned no results", nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Query Results (%d total, showing first %d):\n", len(recs), maxQueryResults)
			for i, rec := range recs {
				if i == maxQueryResults {
					break
				}
				fmt.Fprintf(&b, "\n  Result %d:\n", i+1)
				props := make([]string, 0, len(rec))
				for name := range rec {
					props = append(props, name)
				}
				sort.Strings(props)
				if len(props) > maxQueryProps {
					props = props[:maxQueryProps]
				}
				for _, prop := range props {
					if rec[prop] == nil {
						continue
					}
					fmt.Fprintf(&b, "    %s: %v\n", prop, rec[prop])
				}
			}
			return b.String(), nil
		},
	})
}

func noParams() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}
