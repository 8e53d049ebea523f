package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of the Go heap.
type MemorySnapshot struct {
	HeapAlloc    uint64 `json:"heap_alloc" yaml:"heap_alloc"`
	TotalAlloc   uint64 `json:"total_alloc" yaml:"total_alloc"`
	Sys          uint64 `json:"sys" yaml:"sys"`
	NumGC        uint32 `json:"num_gc" yaml:"num_gc"`
	PauseTotalNs uint64 `json:"pause_total_ns" yaml:"pause_total_ns"`
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Since returns the allocation and GC activity between before and s. Heap
// and Sys keep the later absolute values.
func (s MemorySnapshot) Since(before MemorySnapshot) MemorySnapshot {
	return MemorySnapshot{
		HeapAlloc:    s.HeapAlloc,
		TotalAlloc:   s.TotalAlloc - before.TotalAlloc,
		Sys:          s.Sys,
		NumGC:        s.NumGC - before.NumGC,
		PauseTotalNs: s.PauseTotalNs - before.PauseTotalNs,
	}
}
