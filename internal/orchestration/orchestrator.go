package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/floats/scalar"

	apperrors "github.com/agbru/reducebench/internal/errors"
	"github.com/agbru/reducebench/internal/harness"
	"github.com/agbru/reducebench/internal/logging"
	"github.com/agbru/reducebench/internal/reduce"
	"github.com/agbru/reducebench/internal/workload"
)

const tracerName = "github.com/agbru/reducebench/internal/orchestration"

// Reference sources recorded in Report.ReferenceSource.
const (
	ReferenceFromSweep    = "sweep"
	ReferenceFromInternal = "internal"
)

// Runner executes comparison sweeps.
type Runner struct {
	exec     Executor
	logger   logging.Logger
	observer Observer
	recorder Recorder
	tracer   trace.Tracer

	// lingering counts timed-out runs whose goroutines have not returned.
	lingering atomic.Int32
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) RunnerOption { return func(r *Runner) { r.logger = l } }

// WithObserver sets the sweep observer.
func WithObserver(o Observer) RunnerOption { return func(r *Runner) { r.observer = o } }

// WithRecorder exports per-run measurements, e.g. to metrics.RunMetrics.
func WithRecorder(rec Recorder) RunnerOption { return func(r *Runner) { r.recorder = rec } }

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) RunnerOption { return func(r *Runner) { r.tracer = t } }

// NewRunner returns a Runner dispatching through exec.
func NewRunner(exec Executor, opts ...RunnerOption) *Runner {
	r := &Runner{exec: exec}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.Nop()
	}
	if r.observer == nil {
		r.observer = NullObserver{}
	}
	if r.recorder == nil {
		r.recorder = nopRecorder{}
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(tracerName)
	}
	return r
}

// SkipReason returns why a combination is not run, or "" if it is valid.
// Racy needs overlapping workers to mean anything, and shared accumulators
// do not exist across processes.
func SkipReason(s reduce.Strategy, b harness.Backend, workers int) string {
	switch {
	case s == reduce.Racy && !b.Parallel():
		return "racy needs a parallel backend"
	case s == reduce.Racy && workers <= 1:
		return "racy needs more than one worker"
	case s.SharesState() && b == harness.Processes:
		return fmt.Sprintf("%s shares an accumulator, which processes cannot", s)
	}
	return ""
}

// Compare runs every strategy under every backend over w, in the given
// order and one combination at a time, then checks agreement with the
// serial reference. Only invalid arguments abort the sweep before it starts;
// individual failures and timeouts become records. If ctx ends mid-sweep the
// partial report is returned with ctx's error.
func (r *Runner) Compare(ctx context.Context, strategies []reduce.Strategy, backends []harness.Backend, w *workload.Workload, opts Options) (*Report, error) {
	if err := validate(strategies, backends, w, opts); err != nil {
		return nil, err
	}

	report := &Report{
		ID:         ulid.Make().String(),
		Workload:   w.Name,
		Elements:   w.Len(),
		Stochastic: w.Stochastic,
		Options:    opts,
		StartedAt:  time.Now(),
		Records:    make([]BenchmarkRecord, 0, len(strategies)*len(backends)),
	}
	ctx, span := r.tracer.Start(ctx, "reducebench.compare", trace.WithAttributes(
		attribute.String("run.id", report.ID),
		attribute.String("workload", w.Name),
		attribute.Int("workers", opts.Workers),
	))
	defer span.End()

	r.logger.Info("comparison started",
		logging.String("id", report.ID),
		logging.String("workload", w.Name),
		logging.Int("elements", w.Len()),
		logging.Int("workers", opts.Workers))
	r.observer.SweepStarted(len(strategies) * len(backends))

	index := 0
	for _, s := range strategies {
		for _, b := range backends {
			if err := ctx.Err(); err != nil {
				report.Duration = time.Since(report.StartedAt)
				return report, apperrors.WrapError(err, "comparison %s interrupted", report.ID)
			}
			r.observer.RunStarted(index, s, b)
			rec := r.runCombination(ctx, s, b, w, opts)
			r.recorder.ObserveRun(s.String(), b.String(), string(rec.Status), rec.Elapsed, rec.CPU)
			report.Records = append(report.Records, rec)
			r.observer.RunFinished(index, rec)
			index++
		}
	}
	if err := ctx.Err(); err != nil {
		report.Duration = time.Since(report.StartedAt)
		return report, apperrors.WrapError(err, "comparison %s interrupted", report.ID)
	}

	r.judge(ctx, report, w, opts)
	report.Duration = time.Since(report.StartedAt)
	if err := ctx.Err(); err != nil {
		return report, apperrors.WrapError(err, "comparison %s interrupted", report.ID)
	}
	r.recorder.SetAgreement(report.Agreement)
	span.SetAttributes(attribute.Bool("agreement", report.Agreement))

	r.logger.Info("comparison finished",
		logging.String("id", report.ID),
		logging.Bool("agreement", report.Agreement),
		logging.Int("ok", report.Count(StatusOK)),
		logging.Int("failed", report.Count(StatusFailed)),
		logging.Int("timed_out", report.Count(StatusTimedOut)),
		logging.Int("skipped", report.Count(StatusSkipped)),
		logging.Duration("duration", report.Duration))
	r.observer.SweepFinished(report)
	return report, nil
}

func validate(strategies []reduce.Strategy, backends []harness.Backend, w *workload.Workload, opts Options) error {
	switch {
	case len(strategies) == 0:
		return apperrors.NewInvalidArgument("strategies", "at least one strategy is required")
	case len(backends) == 0:
		return apperrors.NewInvalidArgument("backends", "at least one backend is required")
	case opts.Workers < 1:
		return apperrors.NewInvalidArgument("workers", "must be at least 1, got %d", opts.Workers)
	case opts.Timeout <= 0:
		return apperrors.NewInvalidArgument("timeout", "must be positive, got %s", opts.Timeout)
	case opts.Tolerance < 0:
		return apperrors.NewInvalidArgument("tolerance", "must not be negative, got %g", opts.Tolerance)
	case opts.Repeat < 1:
		return apperrors.NewInvalidArgument("repeat", "must be at least 1, got %d", opts.Repeat)
	}
	for _, s := range strategies {
		if s < 0 || int(s) >= len(reduce.All()) {
			return apperrors.NewInvalidArgument("strategies", "unknown strategy %d", int(s))
		}
	}
	for _, b := range backends {
		if b < 0 || int(b) >= len(harness.AllBackends()) {
			return apperrors.NewInvalidArgument("backends", "unknown backend %d", int(b))
		}
	}
	return w.Validate()
}

// runCombination produces the record for one combination, repeating the run
// opts.Repeat times. The first failure or timeout ends the combination.
func (r *Runner) runCombination(ctx context.Context, s reduce.Strategy, b harness.Backend, w *workload.Workload, opts Options) BenchmarkRecord {
	rec := BenchmarkRecord{Strategy: s, Backend: b, Workers: opts.Workers}
	if s == reduce.Serial {
		rec.Workers = 1
	}
	if reason := SkipReason(s, b, opts.Workers); reason != "" {
		rec.Status = StatusSkipped
		rec.Error = reason
		r.logger.Debug("combination skipped",
			logging.String("strategy", s.String()),
			logging.String("backend", b.String()),
			logging.String("reason", reason))
		return rec
	}

	ctx, span := r.tracer.Start(ctx, "reducebench.run", trace.WithAttributes(
		attribute.String("strategy", s.String()),
		attribute.String("backend", b.String()),
		attribute.Int("workers", rec.Workers),
		attribute.Int("repeat", opts.Repeat),
	))
	defer span.End()

	samples := make([]time.Duration, 0, opts.Repeat)
	var cpu time.Duration
	for i := 0; i < opts.Repeat; i++ {
		if r.lingering.Load() > 0 {
			rec.Overlapped = true
		}
		out, err := r.runWithWatchdog(ctx, s, b, w, opts.Workers, opts.Timeout)
		if err != nil {
			rec.Status = statusFor(ctx, err)
			rec.Err = err
			rec.Error = err.Error()
			span.RecordError(err)
			span.SetStatus(codes.Error, string(rec.Status))
			r.logger.Warn("run did not complete",
				logging.String("strategy", s.String()),
				logging.String("backend", b.String()),
				logging.String("status", string(rec.Status)),
				logging.Err(err))
			return rec
		}
		samples = append(samples, out.Elapsed)
		cpu += out.CPU
		rec.results = append(rec.results, out.Result)
	}

	rec.Status = StatusOK
	rec.Result = rec.results[len(rec.results)-1]
	rec.CPU = cpu / time.Duration(len(samples))
	if len(samples) == 1 {
		rec.Elapsed = samples[0]
	} else {
		rec.Stats = Summarize(samples)
		rec.Elapsed = rec.Stats.Median
	}
	span.SetAttributes(attribute.Float64("result", rec.Result), attribute.Int64("elapsed_ns", int64(rec.Elapsed)))
	return rec
}

// runWithWatchdog runs one combination on its own goroutine and stops
// waiting after timeout. A timed-out run is not interrupted; its goroutine
// finishes on its own and its result is discarded. Until then it is counted
// as lingering, since it still competes with later runs for CPU.
func (r *Runner) runWithWatchdog(ctx context.Context, s reduce.Strategy, b harness.Backend, w *workload.Workload, workers int, timeout time.Duration) (harness.Outcome, error) {
	type reply struct {
		out harness.Outcome
		err error
	}
	done := make(chan reply, 1)
	go func() {
		out, err := r.exec.Run(ctx, s, b, w, workers)
		done <- reply{out, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case rep := <-done:
		return rep.out, rep.err
	case <-timer.C:
		r.lingering.Add(1)
		go func() {
			<-done
			r.lingering.Add(-1)
		}()
		return harness.Outcome{}, apperrors.TimeoutError{Operation: fmt.Sprintf("%s/%s", s, b), Limit: timeout}
	case <-ctx.Done():
		return harness.Outcome{}, ctx.Err()
	}
}

// statusFor classifies a run error. A run cut short because the sweep's
// context ended is interrupted, not failed.
func statusFor(ctx context.Context, err error) Status {
	switch {
	case ctx.Err() != nil && apperrors.IsContextError(err):
		return StatusInterrupted
	case errors.Is(err, apperrors.ErrTimedOut):
		return StatusTimedOut
	}
	return StatusFailed
}

// judge sets the reference, every ok record's verdict and the agreement flag.
func (r *Runner) judge(ctx context.Context, report *Report, w *workload.Workload, opts Options) {
	ref, source, err := r.reference(ctx, report, w, opts)
	if err != nil {
		report.referenceErr = err
		report.ReferenceError = err.Error()
		report.Agreement = false
		r.logger.Error("no serial reference", err, logging.String("id", report.ID))
		return
	}
	report.Reference = ref
	report.ReferenceSource = source

	agreement := true
	for i := range report.Records {
		rec := &report.Records[i]
		if rec.Status != StatusOK {
			continue
		}
		within := allWithin(rec.results, ref, opts.Tolerance)
		switch {
		case rec.Strategy.CorrectByDesign() && within:
			rec.Verdict = VerdictAgrees
		case rec.Strategy.CorrectByDesign():
			rec.Verdict = VerdictDisagrees
			agreement = false
			r.logger.Warn("result disagrees with serial",
				logging.String("strategy", rec.Strategy.String()),
				logging.String("backend", rec.Backend.String()),
				logging.Float64("result", rec.Result),
				logging.Float64("reference", ref))
		case within:
			rec.Verdict = VerdictExact
		default:
			rec.Verdict = VerdictDeviated
		}
	}
	report.Agreement = agreement
}

// reference returns the serial result of the sweep, or runs serial on the
// none backend when the sweep has no ok serial record.
func (r *Runner) reference(ctx context.Context, report *Report, w *workload.Workload, opts Options) (float64, string, error) {
	for _, rec := range report.Records {
		if rec.Strategy == reduce.Serial && rec.Status == StatusOK {
			return rec.results[0], ReferenceFromSweep, nil
		}
	}
	out, err := r.runWithWatchdog(ctx, reduce.Serial, harness.None, w, 1, opts.Timeout)
	if err != nil {
		return 0, "", apperrors.WrapError(err, "serial reference")
	}
	return out.Result, ReferenceFromInternal, nil
}

func allWithin(values []float64, ref, tol float64) bool {
	for _, v := range values {
		if !scalar.EqualWithinRel(v, ref, tol) {
			return false
		}
	}
	return true
}

// AnalyzeComparisonResults presents the report, prints its global status
// line and returns the process exit code derived from it.
func AnalyzeComparisonResults(report *Report, presenter ResultPresenter, out io.Writer) int {
	presenter.PresentReport(report, out)
	fmt.Fprintf(out, "\nGlobal Status: %s\n", report.StatusLine())
	return report.ExitCode()
}
