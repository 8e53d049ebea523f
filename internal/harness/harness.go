// Package harness runs one reduction strategy on one concurrency backend and
// measures it.
package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/reducebench/internal/errors"
	"github.com/agbru/reducebench/internal/logging"
	"github.com/agbru/reducebench/internal/metrics"
	"github.com/agbru/reducebench/internal/parallel"
	"github.com/agbru/reducebench/internal/partition"
	"github.com/agbru/reducebench/internal/reduce"
	"github.com/agbru/reducebench/internal/transport"
	"github.com/agbru/reducebench/internal/workload"
)

// Outcome is the measured result of a single run.
type Outcome struct {
	Result  float64
	Elapsed time.Duration
	// CPU is user+system time over the same window, zero when unsupported.
	CPU time.Duration
}

// Harness dispatches strategies onto backends.
type Harness struct {
	transport transport.Transport
	logger    logging.Logger
	tracker   reduce.Tracker
}

// Option configures a Harness.
type Option func(*Harness)

// WithTracker publishes lifecycle phases of every run to tr.
func WithTracker(tr reduce.Tracker) Option {
	return func(h *Harness) { h.tracker = tr }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// New returns a Harness that uses tr for the processes backend. A nil tr
// selects transport.Local.
func New(tr transport.Transport, opts ...Option) *Harness {
	if tr == nil {
		tr = transport.Local{}
	}
	h := &Harness{transport: tr, logger: logging.Nop(), tracker: reduce.TrackerFunc(func(reduce.Phase, int) {})}
	for _, opt := range opts {
		opt(h)
	}
	if h.tracker == nil {
		h.tracker = reduce.TrackerFunc(func(reduce.Phase, int) {})
	}
	if h.logger == nil {
		h.logger = logging.Nop()
	}
	return h
}

// Transport returns the transport used by the processes backend.
func (h *Harness) Transport() transport.Transport { return h.transport }

// Run executes s over w on backend b with the given worker count. Timing
// starts immediately before dispatch and stops after the merge. Run never
// interrupts workers; ctx only reaches the process transport.
func (h *Harness) Run(ctx context.Context, s reduce.Strategy, b Backend, w *workload.Workload, workers int) (Outcome, error) {
	if err := w.Validate(); err != nil {
		return Outcome{}, err
	}
	if workers < 1 {
		return Outcome{}, apperrors.NewInvalidArgument("workers", "must be at least 1, got %d", workers)
	}
	if b == Processes {
		if err := checkTransferable(s, w); err != nil {
			return Outcome{}, err
		}
	}

	cpuStart, cpuOK := metrics.ProcessCPU()
	start := time.Now()

	var (
		result float64
		err    error
	)
	switch b {
	case None:
		result, err = s.Run(w, workers, parallel.Inline{}, h.tracker)
	case Threads:
		result, err = s.Run(w, workers, parallel.Group{}, h.tracker)
	case Processes:
		result, err = h.runProcesses(ctx, s, w, workers)
	default:
		return Outcome{}, apperrors.NewInvalidArgument("backend", "unknown backend %d", int(b))
	}

	elapsed := time.Since(start)
	if err != nil {
		h.logger.Debug("run failed",
			logging.String("strategy", s.String()),
			logging.String("backend", b.String()),
			logging.Err(err))
		return Outcome{Elapsed: elapsed}, err
	}

	out := Outcome{Result: result, Elapsed: elapsed}
	if cpuEnd, ok := metrics.ProcessCPU(); ok && cpuOK {
		out.CPU = cpuEnd - cpuStart
	}
	h.tracker.Phase(reduce.Reported, reduce.AllWorkers)
	h.logger.Debug("run complete",
		logging.String("strategy", s.String()),
		logging.String("backend", b.String()),
		logging.Int("workers", workers),
		logging.Duration("elapsed", elapsed),
		logging.Float64("result", result))
	return out, nil
}

// checkTransferable rejects runs whose state cannot be encoded into frames.
func checkTransferable(s reduce.Strategy, w *workload.Workload) error {
	if s.SharesState() {
		return apperrors.SerializationError{
			Subject: fmt.Sprintf("strategy %s", s),
			Cause:   errors.New("a shared accumulator cannot cross the process boundary"),
		}
	}
	return w.Transferable()
}

// runProcesses sends one task per partition (one task for Serial) through
// the transport and merges the partial results in partition order.
func (h *Harness) runProcesses(ctx context.Context, s reduce.Strategy, w *workload.Workload, workers int) (float64, error) {
	var (
		plan partition.Plan
		err  error
	)
	if s == reduce.Serial {
		plan, err = partition.Split(w.Len(), 1)
	} else {
		plan, err = partition.Split(w.Len(), workers)
	}
	if err != nil {
		return 0, err
	}

	partials := make([]float64, len(plan))
	h.tracker.Phase(reduce.Dispatched, reduce.AllWorkers)

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range plan {
		frame := transport.EncodeTask(transport.Task{
			Worker: i,
			Kernel: w.KernelName,
			Stride: w.Stride,
			Data:   w.Slice(r.Lo, r.Hi),
		})
		g.Go(func() error {
			h.tracker.Phase(reduce.Running, i)
			sum, err := h.exchange(gctx, i, frame)
			if err != nil {
				return err
			}
			partials[i] = sum
			h.tracker.Phase(reduce.Done, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	sum := reduce.Merge(partials)
	h.tracker.Phase(reduce.Merged, reduce.AllWorkers)
	return w.Finalize(sum), nil
}

func (h *Harness) exchange(ctx context.Context, worker int, frame []byte) (float64, error) {
	out, err := h.transport.Execute(ctx, frame)
	if err != nil {
		return 0, apperrors.WorkerFailure{Index: worker, Cause: err}
	}
	res, err := transport.DecodeResult(out)
	if err != nil {
		return 0, apperrors.WorkerFailure{Index: worker, Cause: err}
	}
	if res.Err != "" {
		return 0, apperrors.WorkerFailure{Index: worker, Cause: errors.New(res.Err)}
	}
	return res.Sum, nil
}
