package cli

import (
	"errors"
	"time"

	"github.com/agbru/reducebench/internal/harness"
	"github.com/agbru/reducebench/internal/orchestration"
	"github.com/agbru/reducebench/internal/reduce"
	"github.com/agbru/reducebench/internal/sysmon"
)

func sampleReport() *orchestration.Report {
	return &orchestration.Report{
		ID:              "01JABCDEF0123456789XYZABCD",
		Workload:        "sqrt",
		Elements:        1000,
		Transport:       "local",
		Options:         orchestration.Options{Workers: 4, Timeout: 30 * time.Second, Tolerance: 1e-9, Repeat: 3},
		Host:            &sysmon.Host{CPUModel: "Test CPU", LogicalCPUs: 8, GOMAXPROCS: 8, TotalMemory: 16 << 30},
		StartedAt:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:        42 * time.Millisecond,
		Reference:       21097.455887480734,
		ReferenceSource: orchestration.ReferenceFromSweep,
		Agreement:       true,
		Records: []orchestration.BenchmarkRecord{
			{
				Strategy: reduce.Serial, Backend: harness.None, Workers: 1,
				Status: orchestration.StatusOK, Elapsed: 1500 * time.Microsecond,
				Result: 21097.455887480734, Verdict: orchestration.VerdictAgrees,
				Stats: &orchestration.Stats{Samples: 3, Min: time.Millisecond, Median: 1500 * time.Microsecond,
					Mean: 1500 * time.Microsecond, Max: 2 * time.Millisecond, P90: 2 * time.Millisecond, P99: 2 * time.Millisecond},
			},
			{
				Strategy: reduce.Racy, Backend: harness.Threads, Workers: 4,
				Status: orchestration.StatusOK, Elapsed: 700 * time.Microsecond,
				Result: 20000.5, Verdict: orchestration.VerdictDeviated,
			},
			{
				Strategy: reduce.Atomic, Backend: harness.Processes, Workers: 4,
				Status: orchestration.StatusSkipped, Error: "shared-state strategies cannot run across processes",
			},
			{
				Strategy: reduce.Partitioned, Backend: harness.Threads, Workers: 4,
				Status: orchestration.StatusTimedOut, Error: "run timed out after 30s",
				Err: errors.New("run timed out after 30s"),
			},
		},
	}
}
