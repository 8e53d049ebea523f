package orchestration

import (
	"fmt"
	"time"

	apperrors "github.com/agbru/reducebench/internal/errors"
	"github.com/agbru/reducebench/internal/harness"
	"github.com/agbru/reducebench/internal/reduce"
	"github.com/agbru/reducebench/internal/sysmon"
)

// Status is the terminal state of one benchmark record.
type Status string

const (
	StatusOK       Status = "ok"
	StatusFailed   Status = "failed"
	StatusTimedOut Status = "timed_out"
	StatusSkipped  Status = "skipped"
	// StatusInterrupted marks a run cut short because the sweep was
	// cancelled (signal or dashboard quit). It is not a run failure.
	StatusInterrupted Status = "interrupted"
)

// Verdict is the outcome of comparing a record with the serial reference.
type Verdict string

const (
	// VerdictNone means the record was not compared (not ok, or no reference).
	VerdictNone Verdict = ""
	// VerdictAgrees and VerdictDisagrees apply to correct-by-design strategies.
	VerdictAgrees    Verdict = "yes"
	VerdictDisagrees Verdict = "no"
	// VerdictDeviated and VerdictExact annotate the racy strategy.
	VerdictDeviated Verdict = "deviated"
	VerdictExact    Verdict = "exact"
)

// Label renders the verdict for the agrees_with_serial column.
func (v Verdict) Label() string {
	if v == VerdictNone {
		return "-"
	}
	return string(v)
}

// Options parameterize a sweep.
type Options struct {
	Workers   int           `json:"workers" yaml:"workers"`
	Timeout   time.Duration `json:"timeout_ns" yaml:"timeout"`
	Tolerance float64       `json:"tolerance" yaml:"tolerance"`
	Repeat    int           `json:"repeat" yaml:"repeat"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{Workers: 4, Timeout: 30 * time.Second, Tolerance: 1e-9, Repeat: 1}
}

// BenchmarkRecord is the outcome of one (strategy, backend) combination. It
// is never modified after the sweep that produced it returns.
type BenchmarkRecord struct {
	Strategy reduce.Strategy `json:"strategy" yaml:"strategy"`
	Backend  harness.Backend `json:"backend" yaml:"backend"`
	Workers  int             `json:"workers" yaml:"workers"`
	Status   Status          `json:"status" yaml:"status"`
	// Elapsed is the wall-clock time of the run, the median when repeated.
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed"`
	// CPU is the mean user+system time per repetition.
	CPU     time.Duration `json:"cpu_ns" yaml:"cpu"`
	Result  float64       `json:"result" yaml:"result"`
	Verdict Verdict       `json:"agrees_with_serial,omitempty" yaml:"agrees_with_serial,omitempty"`
	Stats   *Stats        `json:"stats,omitempty" yaml:"stats,omitempty"`
	// Error is the failure text, or the reason a combination was skipped.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	Err   error  `json:"-" yaml:"-"`
	// Overlapped is set when an earlier timed-out run was still executing
	// while this one was measured; its Elapsed and CPU include that work.
	Overlapped bool `json:"overlapped,omitempty" yaml:"overlapped,omitempty"`

	results []float64
}

// Agrees reports whether a correct-by-design record matched the reference.
func (r BenchmarkRecord) Agrees() bool { return r.Verdict == VerdictAgrees }

// Deviated reports whether a racy record differed from the reference.
func (r BenchmarkRecord) Deviated() bool { return r.Verdict == VerdictDeviated }

// Report is the result of a full sweep.
type Report struct {
	ID         string        `json:"id" yaml:"id"`
	Workload   string        `json:"workload" yaml:"workload"`
	Elements   int           `json:"elements" yaml:"elements"`
	Stochastic bool          `json:"stochastic,omitempty" yaml:"stochastic,omitempty"`
	Transport  string        `json:"transport,omitempty" yaml:"transport,omitempty"`
	Options    Options       `json:"options" yaml:"options"`
	Host       *sysmon.Host  `json:"host,omitempty" yaml:"host,omitempty"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	Duration   time.Duration `json:"duration_ns" yaml:"duration"`
	// Reference is the serial result every record is compared with.
	Reference       float64 `json:"reference" yaml:"reference"`
	ReferenceSource string  `json:"reference_source,omitempty" yaml:"reference_source,omitempty"`
	ReferenceError  string  `json:"reference_error,omitempty" yaml:"reference_error,omitempty"`
	// Agreement is true when every ok correct-by-design record agrees with
	// the reference.
	Agreement bool              `json:"agreement" yaml:"agreement"`
	Records   []BenchmarkRecord `json:"records" yaml:"records"`

	referenceErr error
}

// Count returns how many records have status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == s {
			n++
		}
	}
	return n
}

// FirstError returns the error of the first failed or timed-out record.
func (r *Report) FirstError() error {
	for _, rec := range r.Records {
		if rec.Err != nil && (rec.Status == StatusFailed || rec.Status == StatusTimedOut) {
			return rec.Err
		}
	}
	return nil
}

// ExitCode derives the process exit code. A missing reference outranks
// disagreement, which outranks failures, which outrank timeouts.
func (r *Report) ExitCode() int {
	switch {
	case r.referenceErr != nil:
		return apperrors.ExitCodeFor(r.referenceErr)
	case !r.Agreement:
		return apperrors.ExitErrorMismatch
	case r.Count(StatusFailed) > 0:
		return apperrors.ExitErrorGeneric
	case r.Count(StatusTimedOut) > 0:
		return apperrors.ExitErrorTimeout
	}
	return apperrors.ExitSuccess
}

// StatusLine summarizes the sweep outcome in one sentence.
func (r *Report) StatusLine() string {
	switch {
	case r.referenceErr != nil:
		return fmt.Sprintf("Failure. No serial reference could be computed: %v", r.referenceErr)
	case !r.Agreement:
		return "CRITICAL ERROR! A correct-by-design strategy disagreed with serial."
	case r.Count(StatusFailed) > 0:
		return fmt.Sprintf("Failure. %d run(s) failed.", r.Count(StatusFailed))
	case r.Count(StatusTimedOut) > 0:
		return fmt.Sprintf("Partial. %d run(s) timed out; all completed results are consistent.", r.Count(StatusTimedOut))
	}
	return "Success. All valid results are consistent."
}
