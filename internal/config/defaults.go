package config

import "runtime"

// Default resolution chain (highest priority first):
//   1. CLI flags (--size, --workers)
//   2. Environment variables (REDUCEBENCH_SIZE, REDUCEBENCH_WORKERS)
//   3. Config file
//   4. Hardware and workload defaults (this file)

// Default element counts per workload.
const (
	DefaultSqrtSize  = 1000
	DefaultLargeSize = 1_000_000
)

// ApplyAdaptiveDefaults fills the fields left at zero with values derived
// from the workload and the host. User-specified values are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Size == 0 {
		cfg.Size = DefaultSize(cfg.Workload)
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers()
	}
	return cfg
}

// DefaultSize returns the element count used when --size is not given.
func DefaultSize(workloadName string) int {
	if workloadName == "sqrt" {
		return DefaultSqrtSize
	}
	return DefaultLargeSize
}

// DefaultWorkers returns the number of OS threads available to Go code.
func DefaultWorkers() int {
	return max(1, runtime.GOMAXPROCS(0))
}
