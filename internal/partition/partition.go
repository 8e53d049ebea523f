// Package partition splits an index domain into contiguous, balanced,
// order-preserving ranges, one per worker.
package partition

import (
	apperrors "github.com/agbru/reducebench/internal/errors"
)

// Range is a half-open index interval [Lo, Hi).
type Range struct {
	Lo int
	Hi int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int { return r.Hi - r.Lo }

// Plan is an ordered sequence of ranges covering [0, n) exactly once.
type Plan []Range

// Total returns the number of indices covered by the plan.
func (p Plan) Total() int {
	total := 0
	for _, r := range p {
		total += r.Len()
	}
	return total
}

// Split divides [0, n) among at most workers partitions.
//
// The base chunk is n/workers and the first n%workers partitions receive one
// extra element, so lengths differ by at most one. Partition i always
// precedes partition i+1 in index space. When n < workers only n non-empty
// partitions are produced; n == 0 yields an empty plan.
//
// Split returns an InvalidArgumentError when workers < 1 or n < 0.
func Split(n, workers int) (Plan, error) {
	if workers < 1 {
		return nil, apperrors.NewInvalidArgument("workers", "must be at least 1, got %d", workers)
	}
	if n < 0 {
		return nil, apperrors.NewInvalidArgument("n", "must be non-negative, got %d", n)
	}
	if n == 0 {
		return Plan{}, nil
	}

	parts := min(workers, n)
	base, rem := n/parts, n%parts
	plan := make(Plan, parts)
	lo := 0
	for i := range plan {
		size := base
		if i < rem {
			size++
		}
		plan[i] = Range{Lo: lo, Hi: lo + size}
		lo += size
	}
	return plan, nil
}
