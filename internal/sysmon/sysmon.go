// Package sysmon provides system-wide CPU and memory usage sampling.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 `json:"cpu_percent" yaml:"cpu_percent"` // 0.0 .. 100.0
	MemPercent float64 `json:"mem_percent" yaml:"mem_percent"` // 0.0 .. 100.0
}

// Host describes the machine a sweep ran on.
type Host struct {
	CPUModel    string `json:"cpu_model,omitempty" yaml:"cpu_model,omitempty"`
	LogicalCPUs int    `json:"logical_cpus" yaml:"logical_cpus"`
	GOMAXPROCS  int    `json:"gomaxprocs" yaml:"gomaxprocs"`
	TotalMemory uint64 `json:"total_memory" yaml:"total_memory"`
	Load        Stats  `json:"load" yaml:"load"`
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Describe gathers static host facts plus a load sample. Fields that
// cannot be read are left zero.
func Describe() Host {
	h := Host{
		LogicalCPUs: runtime.NumCPU(),
		GOMAXPROCS:  runtime.GOMAXPROCS(0),
		Load:        Sample(),
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		h.TotalMemory = vmem.Total
	}
	return h
}
