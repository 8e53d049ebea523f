package tui

import (
	"time"

	"github.com/agbru/reducebench/internal/harness"
	"github.com/agbru/reducebench/internal/orchestration"
	"github.com/agbru/reducebench/internal/reduce"
)

// SweepStartedMsg announces the number of combinations.
type SweepStartedMsg struct{ Total int }

// RunStartedMsg marks a combination as running.
type RunStartedMsg struct {
	Index    int
	Strategy reduce.Strategy
	Backend  harness.Backend
}

// RunFinishedMsg carries the record of a finished combination.
type RunFinishedMsg struct {
	Index  int
	Record orchestration.BenchmarkRecord
}

// SweepDoneMsg is sent when the sweep function returns.
type SweepDoneMsg struct {
	Report *orchestration.Report
	Err    error
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// SysStatsMsg carries a host CPU/memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// MemStatsMsg carries Go runtime memory statistics.
type MemStatsMsg struct {
	HeapAlloc    uint64
	NumGC        uint32
	NumGoroutine int
}
