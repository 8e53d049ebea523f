package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/reducebench/internal/harness"
	"github.com/agbru/reducebench/internal/metrics"
	"github.com/agbru/reducebench/internal/orchestration"
	"github.com/agbru/reducebench/internal/reduce"
	"github.com/agbru/reducebench/internal/sysmon"
	"github.com/agbru/reducebench/internal/ui"
)

func noColor(t *testing.T) {
	t.Helper()
	saved := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(saved) })
}

func TestTablePresenter_PresentReport(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	TablePresenter{}.PresentReport(sampleReport(), &buf)
	out := buf.String()

	for _, want := range append(Columns,
		"01JABCDEF0123456789XYZABCD", "sqrt (1,000 elements)", "Test CPU", "16.0 GiB",
		"21097.455887", "deviated", "timed_out", "skipped", "1.500",
		"shared-state strategies cannot run across processes",
	) {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Repeat statistics") {
		t.Error("statistics must only appear in verbose mode")
	}
}

func TestTablePresenter_Verbose(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	TablePresenter{Verbose: true}.PresentReport(sampleReport(), &buf)
	if !strings.Contains(buf.String(), "Repeat statistics") || !strings.Contains(buf.String(), "median") {
		t.Errorf("verbose output lacks statistics:\n%s", buf.String())
	}
}

func TestTablePresenter_ReferenceUnavailable(t *testing.T) {
	noColor(t)
	report := sampleReport()
	report.ReferenceError = "serial/none failed"
	var buf bytes.Buffer
	DisplayReportHeader(report, &buf)
	if !strings.Contains(buf.String(), "unavailable: serial/none failed") {
		t.Errorf("header = %s", buf.String())
	}
}

func TestRecordRow(t *testing.T) {
	t.Parallel()
	report := sampleReport()
	tests := []struct {
		rec  orchestration.BenchmarkRecord
		want []string
	}{
		{report.Records[0], []string{"serial", "none", "1", "1.500", "21097.455887", "yes", "ok"}},
		{report.Records[1], []string{"racy", "threads", "4", "0.700", "20000.500000", "deviated", "ok"}},
		{report.Records[2], []string{"atomic", "processes", "4", "-", "-", "-", "skipped"}},
		{report.Records[3], []string{"partitioned", "threads", "4", "-", "-", "-", "timed_out"}},
	}
	for _, tt := range tests {
		got := RecordRow(tt.rec)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("RecordRow = %v, want %v", got, tt.want)
		}
	}
}

func TestRenderRecordTable_RowOrder(t *testing.T) {
	noColor(t)
	out := RenderRecordTable(sampleReport())
	order := []string{"serial", "racy", "atomic", "partitioned"}
	last := -1
	for _, name := range order {
		idx := strings.Index(out, name)
		if idx <= last {
			t.Fatalf("%s out of sweep order in\n%s", name, out)
		}
		last = idx
	}
}

func TestRenderStatsTable_Empty(t *testing.T) {
	t.Parallel()
	report := sampleReport()
	for i := range report.Records {
		report.Records[i].Stats = nil
	}
	if got := RenderStatsTable(report); got != "" {
		t.Errorf("RenderStatsTable without stats = %q, want empty", got)
	}
}

func TestFormatHost(t *testing.T) {
	t.Parallel()
	got := FormatHost(sysmon.Host{LogicalCPUs: 2, GOMAXPROCS: 2})
	if !strings.Contains(got, "unknown CPU") || strings.Contains(got, "RAM") {
		t.Errorf("FormatHost = %q", got)
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemorySnapshot{HeapAlloc: 2048, TotalAlloc: 1 << 20, NumGC: 3, PauseTotalNs: 1_500_000}, &buf)
	for _, want := range []string{"2.0 KiB", "1.0 MiB", "GC cycles:       3", "1.50ms"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("memory stats missing %q:\n%s", want, buf.String())
		}
	}
}

func TestTablePresenter_FormatDuration(t *testing.T) {
	t.Parallel()
	if got := (TablePresenter{}).FormatDuration(1500 * time.Microsecond); got != "1ms" {
		t.Errorf("FormatDuration = %q", got)
	}
}

func TestDisplayNotes_OverlappedAndInterrupted(t *testing.T) {
	noColor(t)
	report := sampleReport()
	report.Records[1].Overlapped = true
	report.Records = append(report.Records, orchestration.BenchmarkRecord{
		Strategy: reduce.Serial, Backend: harness.Threads, Workers: 1,
		Status: orchestration.StatusInterrupted, Error: "context canceled",
	})
	var buf bytes.Buffer
	DisplayNotes(report, &buf)
	out := buf.String()
	for _, want := range []string{
		"racy/threads overlapped: measured while a timed-out run was still executing",
		"serial/threads interrupted: context canceled",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("notes missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "local transport") {
		t.Error("no processes run completed, so no transport note is expected")
	}
}

func TestDisplayNotes_LocalTransportForProcesses(t *testing.T) {
	noColor(t)
	processesRun := orchestration.BenchmarkRecord{
		Strategy: reduce.Partitioned, Backend: harness.Processes, Workers: 4,
		Status: orchestration.StatusOK, Result: 21097.455887480734, Verdict: orchestration.VerdictAgrees,
	}

	tests := []struct {
		transport string
		wantNote  bool
	}{
		{"local", true},
		{"exec", false},
	}
	for _, tt := range tests {
		t.Run(tt.transport, func(t *testing.T) {
			report := sampleReport()
			report.Transport = tt.transport
			report.Records = append(report.Records, processesRun)
			var buf bytes.Buffer
			DisplayNotes(report, &buf)
			got := strings.Contains(buf.String(), "--transport exec")
			if got != tt.wantNote {
				t.Errorf("transport %s: note shown = %v, want %v\n%s", tt.transport, got, tt.wantNote, buf.String())
			}
		})
	}
}
