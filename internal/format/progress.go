package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps estimates made from very few completed runs.
const maxETA = 24 * time.Hour

// SweepProgress tracks how many runs of a comparison sweep have finished
// and extrapolates the remaining time from the average run so far.
type SweepProgress struct {
	mu    sync.Mutex
	total int
	done  int
	start time.Time
}

// NewSweepProgress starts tracking a sweep of total runs.
func NewSweepProgress(total int) *SweepProgress {
	return &SweepProgress{total: total, start: time.Now()}
}

// Complete marks one run finished and returns the new fraction and ETA.
func (p *SweepProgress) Complete() (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done < p.total {
		p.done++
	}
	return p.fractionLocked(), p.etaLocked(time.Since(p.start))
}

// Fraction returns the completed share in [0, 1].
func (p *SweepProgress) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fractionLocked()
}

// ETA returns the estimated time remaining, or 0 before the first run ends.
func (p *SweepProgress) ETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(time.Since(p.start))
}

// Done returns the number of finished runs.
func (p *SweepProgress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Total returns the number of runs in the sweep.
func (p *SweepProgress) Total() int { return p.total }

func (p *SweepProgress) fractionLocked() float64 {
	if p.total <= 0 {
		return 0
	}
	return float64(p.done) / float64(p.total)
}

func (p *SweepProgress) etaLocked(elapsed time.Duration) time.Duration {
	if p.done == 0 {
		return 0
	}
	eta := elapsed / time.Duration(p.done) * time.Duration(p.total-p.done)
	return min(eta, maxETA)
}

// FormatETA renders an estimate compactly, e.g. "2m30s" or "1h15m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "estimating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m, s := int(eta.Minutes()), int(eta.Seconds())%60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h, m := int(eta.Hours()), int(eta.Minutes())%60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ProgressBar renders progress in [0, 1] as a bar of length cells.
func ProgressBar(progress float64, length int) string {
	progress = max(0, min(progress, 1))
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA combines bar, percentage and ETA on one line.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), 100*max(0, min(progress, 1)), FormatETA(eta))
}
