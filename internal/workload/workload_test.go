package workload

import (
	"errors"
	"math"
	"testing"

	apperrors "github.com/agbru/reducebench/internal/errors"
)

func TestSqrtSeries(t *testing.T) {
	t.Parallel()
	w := SqrtSeries(1000)

	if w.Len() != 1000 {
		t.Fatalf("Len() = %d, want 1000", w.Len())
	}
	if w.Data[0] != 1 || w.Data[999] != 1000 {
		t.Errorf("expected values 1..1000, got first=%v last=%v", w.Data[0], w.Data[999])
	}
	got := w.Finalize(w.Reduce(0, w.Len()))
	if math.Abs(got-21097.455887480734) > 1e-6 {
		t.Errorf("sum of sqrt(1..1000) = %.9f, want 21097.455887481", got)
	}
}

func TestIncrements(t *testing.T) {
	t.Parallel()
	w := Increments(12345)
	if got := w.Reduce(0, w.Len()); got != 12345 {
		t.Errorf("Reduce() = %v, want 12345", got)
	}
	if got := w.Reduce(100, 200); got != 100 {
		t.Errorf("Reduce(100, 200) = %v, want 100", got)
	}
}

func TestMonteCarlo(t *testing.T) {
	t.Parallel()

	t.Run("same seed gives the same samples", func(t *testing.T) {
		t.Parallel()
		a, b := MonteCarlo(1000, 7), MonteCarlo(1000, 7)
		for i := range a.Data {
			if a.Data[i] != b.Data[i] {
				t.Fatalf("sample %d differs: %v vs %v", i, a.Data[i], b.Data[i])
			}
		}
	})

	t.Run("different seeds differ", func(t *testing.T) {
		t.Parallel()
		a, b := MonteCarlo(1000, 7), MonteCarlo(1000, 8)
		same := 0
		for i := range a.Data {
			if a.Data[i] == b.Data[i] {
				same++
			}
		}
		if same == len(a.Data) {
			t.Error("different seeds produced identical samples")
		}
	})

	t.Run("estimate is plausible", func(t *testing.T) {
		t.Parallel()
		w := MonteCarlo(1_000_000, 42)
		if w.Len() != 1_000_000 || w.Stride != 2 || !w.Stochastic {
			t.Fatalf("unexpected shape: len=%d stride=%d stochastic=%v", w.Len(), w.Stride, w.Stochastic)
		}
		pi := w.Finalize(w.Reduce(0, w.Len()))
		if pi < 3.0 || pi > 3.3 {
			t.Errorf("pi estimate %v outside [3.0, 3.3]", pi)
		}
		for _, v := range w.Data {
			if v < 0 || v >= 1 {
				t.Fatalf("sample %v outside [0, 1)", v)
			}
		}
	})
}

func TestNew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		n       int
		wantErr bool
		kernel  string
	}{
		{NameSqrt, 10, false, KernelSqrt},
		{NameIncrements, 10, false, KernelUnit},
		{NameMonteCarlo, 10, false, KernelHit},
		{"fibonacci", 10, true, ""},
		{NameSqrt, -1, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, err := New(tt.name, tt.n, 1)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w.KernelName != tt.kernel {
				t.Errorf("KernelName = %q, want %q", w.KernelName, tt.kernel)
			}
			if err := w.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestTransferable(t *testing.T) {
	t.Parallel()

	if err := SqrtSeries(4).Transferable(); err != nil {
		t.Errorf("registered kernel should be transferable, got %v", err)
	}

	custom := Custom("captured", []float64{1, 2, 3}, 1, func(e []float64) float64 { return e[0] * 2 })
	err := custom.Transferable()
	if !errors.Is(err, apperrors.ErrSerialization) {
		t.Fatalf("expected ErrSerialization for closure kernel, got %v", err)
	}
	if got := custom.Reduce(0, custom.Len()); got != 12 {
		t.Errorf("closure workload should still reduce in memory, got %v", got)
	}

	ghost := &Workload{Name: "ghost", KernelName: "nope", Data: []float64{1}, Stride: 1, kernel: func([]float64) float64 { return 0 }}
	if err := ghost.Transferable(); !errors.Is(err, apperrors.ErrSerialization) {
		t.Errorf("expected ErrSerialization for unknown kernel name, got %v", err)
	}
}

func TestFromValues(t *testing.T) {
	t.Parallel()
	values := []float64{1, 2, 3, 4}
	w, err := FromValues("small", KernelIdentity, values)
	if err != nil {
		t.Fatal(err)
	}
	values[0] = 100
	if w.Data[0] != 1 {
		t.Error("FromValues must copy its input")
	}
	if got := w.Reduce(0, w.Len()); got != 10 {
		t.Errorf("Reduce() = %v, want 10", got)
	}

	if _, err := FromValues("bad", "nope", values); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for unknown kernel, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	var nilW *Workload
	if err := nilW.Validate(); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("nil workload: expected ErrInvalidArgument, got %v", err)
	}
	odd := Custom("odd", []float64{1, 2, 3}, 2, func(e []float64) float64 { return 0 })
	if err := odd.Validate(); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("ragged pairs: expected ErrInvalidArgument, got %v", err)
	}
	noKernel := &Workload{Name: "bare", Stride: 1}
	if err := noKernel.Validate(); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("missing kernel: expected ErrInvalidArgument, got %v", err)
	}
}

func TestFinalize(t *testing.T) {
	t.Parallel()
	if got := Finalize(FinalPi, 785, 1000); got != 3.14 {
		t.Errorf("Finalize(pi) = %v, want 3.14", got)
	}
	if got := Finalize(FinalPi, 0, 0); got != 0 {
		t.Errorf("Finalize(pi) with no points = %v, want 0", got)
	}
	if got := Finalize(FinalSum, 2.5, 10); got != 2.5 {
		t.Errorf("Finalize(sum) = %v, want 2.5", got)
	}
}
