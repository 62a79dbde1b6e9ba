package domain

// SysInfo is one sample of server statistics, served by /api/sysinfo/cpu
// and rendered by the live polling session. Every section is optional:
// samplers run on heterogeneous hosts and consumers must tolerate missing
// fields (render "N/A" rather than fail).
type SysInfo struct {
	Success   bool        `json:"success"`
	Timestamp int64       `json:"timestamp"` // Unix milliseconds
	CPU       *CPUInfo    `json:"cpu,omitempty"`
	Load      *LoadInfo   `json:"load,omitempty"`
	Memory    *MemoryInfo `json:"memory,omitempty"`
	Uptime    uint64      `json:"uptime"` // seconds
	Temp      *TempInfo   `json:"temperature,omitempty"`
}

// CPUInfo identifies the processor.
type CPUInfo struct {
	Manufacturer  string `json:"manufacturer,omitempty"`
	Brand         string `json:"brand,omitempty"`
	Cores         int    `json:"cores,omitempty"`
	PhysicalCores int    `json:"physicalCores,omitempty"`
}

// LoadInfo carries current CPU load, overall and per core.
type LoadInfo struct {
	CurrentLoad float64    `json:"currentLoad"`
	CPUs        []CoreLoad `json:"cpus,omitempty"`
}

// CoreLoad is the load of a single core, in percent.
type CoreLoad struct {
	Load float64 `json:"load"`
}

// MemoryInfo carries total and used physical memory in bytes.
type MemoryInfo struct {
	Total uint64 `json:"total"`
	Used  uint64 `json:"used"`
}

// TempInfo carries the main package temperature in Celsius.
type TempInfo struct {
	Main float64 `json:"main"`
}
