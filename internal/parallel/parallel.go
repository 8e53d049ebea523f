// Package parallel provides the worker dispatch used by the reduction
// strategies: a fixed number of workers, a join barrier, and first-error
// collection with worker attribution.
package parallel

import (
	"errors"
	"fmt"
	"sync"

	apperrors "github.com/agbru/reducebench/internal/errors"
)

// ErrorCollector keeps the first non-nil error reported by concurrent
// goroutines. The zero value is ready to use.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err if it is non-nil and no error has been recorded yet.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
}

// Err returns the recorded error, if any.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Pool dispatches n workers and waits for all of them.
type Pool interface {
	// Run invokes fn once per worker index in [0, n) and returns only after
	// every invocation has returned. A failing worker yields a
	// WorkerFailure carrying its index.
	Run(n int, fn func(worker int) error) error
	// Concurrent reports whether workers may overlap in time.
	Concurrent() bool
}

// Inline runs workers one after another on the calling goroutine.
type Inline struct{}

// Run executes the workers sequentially, stopping at the first failure.
func (Inline) Run(n int, fn func(worker int) error) error {
	for i := 0; i < n; i++ {
		if err := invoke(i, fn); err != nil {
			return err
		}
	}
	return nil
}

// Concurrent reports false.
func (Inline) Concurrent() bool { return false }

// Group runs each worker on its own goroutine over shared memory.
type Group struct{}

// Run starts n goroutines and blocks on the join barrier.
func (Group) Run(n int, fn func(worker int) error) error {
	var (
		wg sync.WaitGroup
		ec ErrorCollector
	)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(worker int) {
			defer wg.Done()
			ec.SetError(invoke(worker, fn))
		}(i)
	}
	wg.Wait()
	return ec.Err()
}

// Concurrent reports true.
func (Group) Concurrent() bool { return true }

// invoke runs one worker, converting panics and plain errors into a
// WorkerFailure for that index.
func invoke(worker int, fn func(int) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.WorkerFailure{Index: worker, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()
	if err = fn(worker); err != nil {
		var wf apperrors.WorkerFailure
		if !errors.As(err, &wf) {
			err = apperrors.WorkerFailure{Index: worker, Cause: err}
		}
	}
	return err
}
