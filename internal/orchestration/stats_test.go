package orchestration

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	t.Parallel()
	if Summarize(nil) != nil {
		t.Error("Summarize(nil) should be nil")
	}

	samples := []time.Duration{5 * time.Millisecond, 1 * time.Millisecond, 3 * time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}
	s := Summarize(samples)
	if s.Samples != 5 || s.Min != time.Millisecond || s.Max != 5*time.Millisecond {
		t.Errorf("unexpected bounds: %+v", s)
	}
	if s.Median != 3*time.Millisecond {
		t.Errorf("median = %v, want 3ms", s.Median)
	}
	if s.Mean != 3*time.Millisecond {
		t.Errorf("mean = %v, want 3ms", s.Mean)
	}
	if s.StdDev <= 0 {
		t.Errorf("stddev = %v, want > 0", s.StdDev)
	}
	// HDR quantiles are accurate to three significant digits.
	if s.P99 < 4990*time.Microsecond || s.P99 > 5010*time.Microsecond {
		t.Errorf("p99 = %v, want about 5ms", s.P99)
	}
	if s.P90 < s.Median || s.P90 > s.P99 {
		t.Errorf("p90 = %v outside [median, p99]", s.P90)
	}
}

func TestSummarize_SingleSample(t *testing.T) {
	t.Parallel()
	s := Summarize([]time.Duration{7 * time.Microsecond})
	if s.StdDev != 0 || s.Median != 7*time.Microsecond {
		t.Errorf("single sample stats = %+v", s)
	}
}
