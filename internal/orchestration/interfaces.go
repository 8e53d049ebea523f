//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"context"
	"io"
	"time"

	"github.com/agbru/reducebench/internal/harness"
	"github.com/agbru/reducebench/internal/reduce"
	"github.com/agbru/reducebench/internal/workload"
)

// Executor runs a single (strategy, backend) combination. *harness.Harness
// is the production implementation.
type Executor interface {
	Run(ctx context.Context, s reduce.Strategy, b harness.Backend, w *workload.Workload, workers int) (harness.Outcome, error)
}

// Observer follows a sweep as it progresses. Calls arrive sequentially from
// the goroutine running Compare.
type Observer interface {
	// SweepStarted is called once with the number of combinations.
	SweepStarted(total int)
	// RunStarted is called before combination index is attempted.
	RunStarted(index int, s reduce.Strategy, b harness.Backend)
	// RunFinished is called with the record of combination index. The
	// verdict is not yet known at this point.
	RunFinished(index int, rec BenchmarkRecord)
	// SweepFinished is called with the complete report.
	SweepFinished(report *Report)
}

// NullObserver ignores every event. Useful for quiet mode or testing.
type NullObserver struct{}

func (NullObserver) SweepStarted(int)                                 {}
func (NullObserver) RunStarted(int, reduce.Strategy, harness.Backend) {}
func (NullObserver) RunFinished(int, BenchmarkRecord)                 {}
func (NullObserver) SweepFinished(*Report)                            {}

// Recorder receives per-run measurements for export.
type Recorder interface {
	ObserveRun(strategy, backend, status string, elapsed, cpu time.Duration)
	SetAgreement(ok bool)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRun(string, string, string, time.Duration, time.Duration) {}
func (nopRecorder) SetAgreement(bool)                                               {}

// ResultPresenter defines the interface for presenting a finished report.
// This interface decouples the orchestration layer from presentation
// concerns, allowing different output formats (table, JSON, YAML) without
// modifying the orchestration logic.
type ResultPresenter interface {
	// PresentReport renders the report.
	PresentReport(report *Report, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}
