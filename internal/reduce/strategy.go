// Package reduce implements the four interchangeable reduction strategies:
// Serial, Racy, Atomic and Partitioned. All of them compute the sum of a
// kernel over a workload; they differ only in how workers share the
// accumulator.
package reduce

import (
	"fmt"
	"strings"

	apperrors "github.com/agbru/reducebench/internal/errors"
	"github.com/agbru/reducebench/internal/parallel"
	"github.com/agbru/reducebench/internal/partition"
	"github.com/agbru/reducebench/internal/workload"
)

// Strategy is the closed set of reduction strategies.
type Strategy int

const (
	// Serial is the single-accumulator sequential reference.
	Serial Strategy = iota
	// Racy has every worker read-modify-write one unguarded shared cell.
	// It demonstrates lost updates and is never expected to be correct.
	Racy
	// Atomic has every worker fetch-and-add into one shared cell.
	Atomic
	// Partitioned gives each worker a disjoint range and a private slot,
	// merged in partition order after the join barrier.
	Partitioned
)

var strategyNames = [...]string{
	Serial:      "serial",
	Racy:        "racy",
	Atomic:      "atomic",
	Partitioned: "partitioned",
}

// All returns every strategy in canonical order.
func All() []Strategy {
	return []Strategy{Serial, Racy, Atomic, Partitioned}
}

// String returns the strategy's name.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy resolves a strategy name, case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if strings.EqualFold(name, n) {
			return Strategy(i), nil
		}
	}
	return 0, apperrors.NewInvalidArgument("strategy", "unknown strategy %q (want one of %s)",
		name, strings.Join(strategyNames[:], ", "))
}

// MarshalText encodes the strategy by name.
func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a strategy name.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// CorrectByDesign reports whether the strategy must agree with Serial.
func (s Strategy) CorrectByDesign() bool { return s != Racy }

// SharesState reports whether workers mutate one accumulator in common
// memory, which cannot exist across separate processes.
func (s Strategy) SharesState() bool { return s == Racy || s == Atomic }

// Run reduces w with up to workers workers dispatched on pool and returns
// the finalized result. Serial ignores workers and pool. tr may be nil.
func (s Strategy) Run(w *workload.Workload, workers int, pool parallel.Pool, tr Tracker) (float64, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}
	if workers < 1 {
		return 0, apperrors.NewInvalidArgument("workers", "must be at least 1, got %d", workers)
	}
	tr = orNop(tr)

	var (
		sum float64
		err error
	)
	switch s {
	case Serial:
		sum, err = runSerial(w, tr)
	case Racy:
		sum, err = runShared(w, workers, pool, tr, (*SharedCell).AddUnguarded)
	case Atomic:
		sum, err = runShared(w, workers, pool, tr, (*SharedCell).AddAtomic)
	case Partitioned:
		sum, err = runPartitioned(w, workers, pool, tr)
	default:
		return 0, apperrors.NewInvalidArgument("strategy", "unknown strategy %d", int(s))
	}
	if err != nil {
		return 0, err
	}
	return w.Finalize(sum), nil
}

func runSerial(w *workload.Workload, tr Tracker) (float64, error) {
	tr.Phase(Dispatched, AllWorkers)
	var sum float64
	err := parallel.Inline{}.Run(1, func(worker int) error {
		tr.Phase(Running, worker)
		sum = w.Reduce(0, w.Len())
		tr.Phase(Done, worker)
		return nil
	})
	if err != nil {
		return 0, err
	}
	tr.Phase(Merged, AllWorkers)
	return sum, nil
}

// runShared dispatches one worker per partition, all accumulating into a
// single cell through add.
func runShared(w *workload.Workload, workers int, pool parallel.Pool, tr Tracker, add func(*SharedCell, float64)) (float64, error) {
	plan, err := partition.Split(w.Len(), workers)
	if err != nil {
		return 0, err
	}
	var cell SharedCell
	kernel := w.Kernel()

	tr.Phase(Dispatched, AllWorkers)
	err = pool.Run(len(plan), func(worker int) error {
		tr.Phase(Running, worker)
		r := plan[worker]
		for i := r.Lo; i < r.Hi; i++ {
			add(&cell, kernel(w.Elem(i)))
		}
		tr.Phase(Done, worker)
		return nil
	})
	if err != nil {
		return 0, err
	}
	tr.Phase(Merged, AllWorkers)
	return cell.Load(), nil
}

func runPartitioned(w *workload.Workload, workers int, pool parallel.Pool, tr Tracker) (float64, error) {
	plan, err := partition.Split(w.Len(), workers)
	if err != nil {
		return 0, err
	}
	partials := make([]float64, len(plan))

	tr.Phase(Dispatched, AllWorkers)
	err = pool.Run(len(plan), func(worker int) error {
		tr.Phase(Running, worker)
		r := plan[worker]
		partials[worker] = w.Reduce(r.Lo, r.Hi)
		tr.Phase(Done, worker)
		return nil
	})
	if err != nil {
		return 0, err
	}
	sum := Merge(partials)
	tr.Phase(Merged, AllWorkers)
	return sum, nil
}

// Merge sums partial results in slot order.
func Merge(partials []float64) float64 {
	var sum float64
	for _, p := range partials {
		sum += p
	}
	return sum
}
