package orchestration

import (
	"time"

	"github.com/agbru/reducebench/internal/format"
)

// ProgressAggregator turns observer events into sweep-level progress. It
// wraps format.SweepProgress so the CLI spinner and the TUI share one
// estimate.
type ProgressAggregator struct {
	state *format.SweepProgress
}

// NewProgressAggregator creates an aggregator for a sweep of total runs.
// Returns nil if total <= 0.
func NewProgressAggregator(total int) *ProgressAggregator {
	if total <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewSweepProgress(total)}
}

// AggregatedProgress is the sweep state after one run finished.
type AggregatedProgress struct {
	// Index is the combination that just finished.
	Index int
	// Label names it, e.g. "partitioned/threads".
	Label string
	// Status is its terminal status.
	Status Status
	// Fraction of the sweep completed, 0.0 to 1.0.
	Fraction float64
	// ETA is the estimated time remaining.
	ETA time.Duration
}

// Update records that combination index finished with rec.
func (a *ProgressAggregator) Update(index int, rec BenchmarkRecord) AggregatedProgress {
	fraction, eta := a.state.Complete()
	return AggregatedProgress{
		Index:    index,
		Label:    rec.Strategy.String() + "/" + rec.Backend.String(),
		Status:   rec.Status,
		Fraction: fraction,
		ETA:      eta,
	}
}

// Fraction returns the completed share without updating.
func (a *ProgressAggregator) Fraction() float64 { return a.state.Fraction() }

// ETA returns the current estimate without updating.
func (a *ProgressAggregator) ETA() time.Duration { return a.state.ETA() }

// Total returns the number of combinations in the sweep.
func (a *ProgressAggregator) Total() int { return a.state.Total() }
