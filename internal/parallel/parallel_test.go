package parallel

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/agbru/reducebench/internal/errors"
)

func TestPools_RunEveryWorker(t *testing.T) {
	t.Parallel()
	pools := map[string]Pool{"inline": Inline{}, "group": Group{}}

	for name, pool := range pools {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			const n = 16
			var seen [n]atomic.Int32
			err := pool.Run(n, func(worker int) error {
				seen[worker].Add(1)
				return nil
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for i := range seen {
				if got := seen[i].Load(); got != 1 {
					t.Errorf("worker %d ran %d times, want 1", i, got)
				}
			}
		})
	}
}

// TestGroup_JoinBarrier verifies Run does not return before the slowest worker.
func TestGroup_JoinBarrier(t *testing.T) {
	t.Parallel()
	var done atomic.Int32
	err := Group{}.Run(4, func(worker int) error {
		time.Sleep(time.Duration(worker) * 10 * time.Millisecond)
		done.Add(1)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := done.Load(); got != 4 {
		t.Errorf("Run returned with %d/4 workers done", got)
	}
}

func TestPools_WorkerFailure(t *testing.T) {
	t.Parallel()
	pools := map[string]Pool{"inline": Inline{}, "group": Group{}}
	boom := errors.New("boom")

	for name, pool := range pools {
		t.Run(name+"/error", func(t *testing.T) {
			t.Parallel()
			err := pool.Run(4, func(worker int) error {
				if worker == 2 {
					return boom
				}
				return nil
			})
			var wf apperrors.WorkerFailure
			if !errors.As(err, &wf) {
				t.Fatalf("expected WorkerFailure, got %v", err)
			}
			if wf.Index != 2 || !errors.Is(err, boom) {
				t.Errorf("got %+v, want index 2 wrapping boom", wf)
			}
		})

		t.Run(name+"/panic", func(t *testing.T) {
			t.Parallel()
			err := pool.Run(3, func(worker int) error {
				if worker == 1 {
					panic("kernel exploded")
				}
				return nil
			})
			var wf apperrors.WorkerFailure
			if !errors.As(err, &wf) || wf.Index != 1 {
				t.Fatalf("expected WorkerFailure for worker 1, got %v", err)
			}
			if !errors.Is(err, apperrors.ErrWorkerFailure) {
				t.Error("errors.Is should match ErrWorkerFailure")
			}
		})
	}
}

func TestPools_Concurrent(t *testing.T) {
	t.Parallel()
	if (Inline{}).Concurrent() {
		t.Error("Inline must not report concurrency")
	}
	if !(Group{}).Concurrent() {
		t.Error("Group must report concurrency")
	}
}

func TestPools_ZeroWorkers(t *testing.T) {
	t.Parallel()
	for _, pool := range []Pool{Inline{}, Group{}} {
		if err := pool.Run(0, func(int) error { return errors.New("unreachable") }); err != nil {
			t.Errorf("%T.Run(0) = %v, want nil", pool, err)
		}
	}
}
