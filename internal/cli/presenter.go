package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/reducebench/internal/format"
	"github.com/agbru/reducebench/internal/harness"
	"github.com/agbru/reducebench/internal/metrics"
	"github.com/agbru/reducebench/internal/orchestration"
	"github.com/agbru/reducebench/internal/sysmon"
	"github.com/agbru/reducebench/internal/transport"
	"github.com/agbru/reducebench/internal/ui"
)

// Columns are the report table headers, in order.
var Columns = []string{"strategy", "backend", "workers", "elapsed_ms", "result", "agrees_with_serial", "status"}

const (
	colVerdict = 5
	colStatus  = 6
)

// TablePresenter renders a report as a header block and a lipgloss table.
// With Verbose set it adds per-combination repeat statistics.
type TablePresenter struct {
	Verbose bool
}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter   = TablePresenter{}
	_ orchestration.DurationFormatter = TablePresenter{}
)

// PresentReport writes the full table report to out.
func (p TablePresenter) PresentReport(report *orchestration.Report, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	DisplayReportHeader(report, out)
	fmt.Fprintln(out, RenderRecordTable(report))
	if p.Verbose {
		if stats := RenderStatsTable(report); stats != "" {
			fmt.Fprintf(out, "\nRepeat statistics (ms):\n%s\n", stats)
		}
	}
	DisplayNotes(report, out)
}

// FormatDuration formats a duration with the CLI's standard formatting.
func (TablePresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// DisplayReportHeader writes the run identity, workload, options and host.
func DisplayReportHeader(report *orchestration.Report, out io.Writer) {
	label := func(s string) string { return ui.Colorize(ui.ColorBold(), fmt.Sprintf("%-10s", s)) }

	fmt.Fprintf(out, "%s %s\n", label("Run ID:"), report.ID)
	workload := fmt.Sprintf("%s (%s elements)", report.Workload, format.FormatNumberString(strconv.Itoa(report.Elements)))
	if report.Stochastic {
		workload += ", stochastic"
	}
	fmt.Fprintf(out, "%s %s\n", label("Workload:"), workload)
	o := report.Options
	fmt.Fprintf(out, "%s workers=%d timeout=%s tolerance=%g repeat=%d transport=%s\n",
		label("Options:"), o.Workers, o.Timeout, o.Tolerance, o.Repeat, report.Transport)
	if report.Host != nil {
		fmt.Fprintf(out, "%s %s\n", label("Host:"), FormatHost(*report.Host))
	}
	switch {
	case report.ReferenceError != "":
		fmt.Fprintf(out, "%s %s\n", label("Reference:"), ui.Colorize(ui.ColorRed(), "unavailable: "+report.ReferenceError))
	default:
		fmt.Fprintf(out, "%s %s (%s)\n", label("Reference:"), formatResult(report.Reference), report.ReferenceSource)
	}
	fmt.Fprintf(out, "%s %s\n", label("Duration:"), format.FormatExecutionDuration(report.Duration))
}

// FormatHost summarizes a host snapshot on one line.
func FormatHost(h sysmon.Host) string {
	model := h.CPUModel
	if model == "" {
		model = "unknown CPU"
	}
	s := fmt.Sprintf("%s, %d logical CPUs, GOMAXPROCS %d", model, h.LogicalCPUs, h.GOMAXPROCS)
	if h.TotalMemory > 0 {
		s += ", " + format.FormatBytes(h.TotalMemory) + " RAM"
	}
	return s + fmt.Sprintf(", load cpu %.1f%% mem %.1f%%", h.Load.CPUPercent, h.Load.MemPercent)
}

// RecordRow returns the table cells of one record.
func RecordRow(rec orchestration.BenchmarkRecord) []string {
	elapsed, result := "-", "-"
	if rec.Status == orchestration.StatusOK {
		elapsed = format.FormatMillis(rec.Elapsed)
		result = formatResult(rec.Result)
	}
	return []string{
		rec.Strategy.String(),
		rec.Backend.String(),
		strconv.Itoa(rec.Workers),
		elapsed,
		result,
		rec.Verdict.Label(),
		string(rec.Status),
	}
}

// RenderRecordTable renders one row per record in sweep order.
func RenderRecordTable(report *orchestration.Report) string {
	pal := ui.CurrentPalette()
	header := lipgloss.NewStyle().Bold(true).Foreground(pal.Accent).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, len(report.Records))
	for i, rec := range report.Records {
		rows[i] = RecordRow(rec)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(pal.Border)).
		Headers(Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row < 0 || row >= len(report.Records) {
				return cell
			}
			rec := report.Records[row]
			switch col {
			case colStatus:
				return cell.Foreground(statusColor(pal, rec.Status))
			case colVerdict:
				return cell.Foreground(verdictColor(pal, rec.Verdict))
			}
			return cell
		})
	return t.Render()
}

// RenderStatsTable renders repeat statistics for records that have them.
// It returns "" when no record was repeated.
func RenderStatsTable(report *orchestration.Report) string {
	var rows [][]string
	for _, rec := range report.Records {
		s := rec.Stats
		if s == nil {
			continue
		}
		rows = append(rows, []string{
			rec.Strategy.String(), rec.Backend.String(), strconv.Itoa(s.Samples),
			format.FormatMillis(s.Min), format.FormatMillis(s.Median), format.FormatMillis(s.Mean),
			format.FormatMillis(s.StdDev), format.FormatMillis(s.P90), format.FormatMillis(s.P99),
			format.FormatMillis(s.Max),
		})
	}
	if len(rows) == 0 {
		return ""
	}
	pal := ui.CurrentPalette()
	header := lipgloss.NewStyle().Bold(true).Foreground(pal.Accent).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(pal.Dim)).
		Headers("strategy", "backend", "n", "min", "median", "mean", "stddev", "p90", "p99", "max").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Render()
}

// DisplayNotes lists why records were skipped, failed or timed out, which
// timings were taken next to an abandoned run, and whether the processes
// backend used real OS processes.
func DisplayNotes(report *orchestration.Report, out io.Writer) {
	var notes []string
	for _, rec := range report.Records {
		if rec.Error != "" {
			notes = append(notes, fmt.Sprintf("%s/%s %s: %s", rec.Strategy, rec.Backend,
				ui.Colorize(noteColor(rec.Status), string(rec.Status)), rec.Error))
		}
		if rec.Overlapped {
			notes = append(notes, fmt.Sprintf("%s/%s %s: measured while a timed-out run was still executing; elapsed and CPU include its work",
				rec.Strategy, rec.Backend, ui.Colorize(ui.ColorYellow(), "overlapped")))
		}
	}
	if note := transportNote(report); note != "" {
		notes = append(notes, note)
	}
	if len(notes) == 0 {
		return
	}
	fmt.Fprintf(out, "\nNotes:\n")
	for _, n := range notes {
		fmt.Fprintf(out, "  %s\n", n)
	}
}

// transportNote explains that processes timings came from the in-process
// transport, which isolates workers by frame copies but not by OS process.
func transportNote(report *orchestration.Report) string {
	if report.Transport != transport.LocalName {
		return ""
	}
	for _, rec := range report.Records {
		if rec.Backend == harness.Processes && rec.Status == orchestration.StatusOK {
			return "processes backend ran on the local transport (isolated goroutines over encoded frames, one OS process); use --transport exec for separate worker processes"
		}
	}
	return ""
}

func noteColor(s orchestration.Status) string {
	switch s {
	case orchestration.StatusFailed, orchestration.StatusTimedOut:
		return ui.ColorRed()
	case orchestration.StatusInterrupted:
		return ui.ColorYellow()
	}
	return ui.ColorGrey()
}

// DisplayMemoryStats shows Go heap activity over the sweep.
func DisplayMemoryStats(m metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(m.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(m.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", m.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(m.PauseTotalNs)/1e6)
}

func formatResult(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func statusColor(pal ui.Palette, s orchestration.Status) lipgloss.TerminalColor {
	switch s {
	case orchestration.StatusOK:
		return pal.Success
	case orchestration.StatusFailed:
		return pal.Error
	case orchestration.StatusTimedOut, orchestration.StatusInterrupted:
		return pal.Warning
	default:
		return pal.Dim
	}
}

func verdictColor(pal ui.Palette, v orchestration.Verdict) lipgloss.TerminalColor {
	switch v {
	case orchestration.VerdictAgrees, orchestration.VerdictExact:
		return pal.Success
	case orchestration.VerdictDisagrees:
		return pal.Error
	case orchestration.VerdictDeviated:
		return pal.Warning
	default:
		return pal.Dim
	}
}
