package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRunMetrics_ObserveRun(t *testing.T) {
	t.Parallel()
	m := NewRunMetrics()
	m.ObserveRun("partitioned", "threads", "ok", 3*time.Millisecond, time.Millisecond)
	m.ObserveRun("partitioned", "threads", "ok", 5*time.Millisecond, time.Millisecond)
	m.ObserveRun("racy", "processes", "skipped", 0, 0)

	if got := testutil.ToFloat64(m.runs.WithLabelValues("partitioned", "threads", "ok")); got != 2 {
		t.Errorf("ok runs = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.runs.WithLabelValues("racy", "processes", "skipped")); got != 1 {
		t.Errorf("skipped runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cpu.WithLabelValues("partitioned", "threads")); got != 0.002 {
		t.Errorf("cpu seconds = %v, want 0.002", got)
	}
	if n := testutil.CollectAndCount(m.duration); n != 1 {
		t.Errorf("duration series = %d, want 1 (skipped runs are not timed)", n)
	}
}

func TestRunMetrics_Agreement(t *testing.T) {
	t.Parallel()
	m := NewRunMetrics()
	m.SetAgreement(true)
	if got := testutil.ToFloat64(m.agreement); got != 1 {
		t.Errorf("agreement = %v, want 1", got)
	}
	m.SetAgreement(false)
	if got := testutil.ToFloat64(m.agreement); got != 0 {
		t.Errorf("agreement = %v, want 0", got)
	}
}

func TestRunMetrics_WriteTextfile(t *testing.T) {
	t.Parallel()
	m := NewRunMetrics()
	m.ObserveRun("serial", "none", "ok", time.Millisecond, 0)
	m.SetAgreement(true)

	path := filepath.Join(t.TempDir(), "reducebench.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	for _, want := range []string{"reducebench_runs_total", "reducebench_run_duration_seconds", "reducebench_agreement 1", "go_goroutines"} {
		if !strings.Contains(body, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}

func TestProcessCPU(t *testing.T) {
	t.Parallel()
	first, ok := ProcessCPU()
	if !ok {
		t.Skip("CPU accounting unsupported on this platform")
	}
	sink := 0.0
	for i := range 5_000_000 {
		sink += float64(i)
	}
	_ = sink
	second, _ := ProcessCPU()
	if second < first {
		t.Errorf("CPU time went backwards: %v -> %v", first, second)
	}
}
