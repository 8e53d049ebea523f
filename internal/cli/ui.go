//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/reducebench/internal/format"
	"github.com/agbru/reducebench/internal/harness"
	"github.com/agbru/reducebench/internal/orchestration"
	"github.com/agbru/reducebench/internal/reduce"
	"github.com/agbru/reducebench/internal/ui"
)

const (
	// ProgressRefreshRate is the spinner frame interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts the terminal spinner so the observer can be tested
// without a terminal.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// SpinnerObserver shows sweep progress as a spinner with a progress bar and
// ETA. It implements orchestration.Observer.
type SpinnerObserver struct {
	out     io.Writer
	spinner Spinner
	agg     *orchestration.ProgressAggregator
	last    orchestration.AggregatedProgress
}

var _ orchestration.Observer = (*SpinnerObserver)(nil)

// NewSpinnerObserver creates an observer drawing on out.
func NewSpinnerObserver(out io.Writer) *SpinnerObserver {
	return &SpinnerObserver{out: out, spinner: newSpinner(out)}
}

// SweepStarted starts the spinner.
func (o *SpinnerObserver) SweepStarted(total int) {
	o.agg = orchestration.NewProgressAggregator(total)
	o.spinner.UpdateSuffix(" " + format.FormatProgressBarWithETA(0, 0, ProgressBarWidth))
	o.spinner.Start()
}

// RunStarted names the combination being run.
func (o *SpinnerObserver) RunStarted(index int, s reduce.Strategy, b harness.Backend) {
	if o.agg == nil {
		return
	}
	o.spinner.UpdateSuffix(fmt.Sprintf(" %s %s/%s",
		format.FormatProgressBarWithETA(o.agg.Fraction(), o.agg.ETA(), ProgressBarWidth), s, b))
}

// RunFinished advances the progress bar.
func (o *SpinnerObserver) RunFinished(index int, rec orchestration.BenchmarkRecord) {
	if o.agg == nil {
		return
	}
	o.last = o.agg.Update(index, rec)
	o.spinner.UpdateSuffix(" " + FormatProgressLine(o.last))
}

// SweepFinished stops the spinner and prints a completion line.
func (o *SpinnerObserver) SweepFinished(report *orchestration.Report) {
	o.spinner.Stop()
	fmt.Fprintf(o.out, "%s %d combinations in %s\n",
		ui.Colorize(ui.ColorGreen(), "Sweep complete:"), len(report.Records),
		format.FormatExecutionDuration(report.Duration))
}

// FormatProgressLine renders the bar followed by the last finished
// combination and its status.
func FormatProgressLine(p orchestration.AggregatedProgress) string {
	return fmt.Sprintf("%s %s %s", format.FormatProgressBarWithETA(p.Fraction, p.ETA, ProgressBarWidth), p.Label, p.Status)
}
