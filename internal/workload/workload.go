// Package workload defines the immutable input sequences reduced by the
// strategies, together with the per-element kernels applied to them.
//
// A Workload is built once per comparison and shared by every strategy and
// backend; it is never regenerated per strategy. Kernels that must cross the
// process boundary are referred to by registered name.
package workload

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/exascience/pargo/parallel"
	"gonum.org/v1/gonum/stat/distuv"

	apperrors "github.com/agbru/reducebench/internal/errors"
)

// Kernel maps one element (Stride consecutive values) to its contribution
// to the reduction.
type Kernel func(elem []float64) float64

// Finalizer converts the raw reduction into the reported result.
type Finalizer int

const (
	// FinalSum reports the raw sum.
	FinalSum Finalizer = iota
	// FinalPi reports 4*hits/points, the Monte-Carlo estimate of pi.
	FinalPi
)

// Registered kernel names.
const (
	KernelIdentity = "identity"
	KernelSqrt     = "sqrt"
	KernelUnit     = "unit"
	KernelHit      = "hit"
)

// Workload names accepted by New.
const (
	NameSqrt       = "sqrt"
	NameIncrements = "increments"
	NameMonteCarlo = "montecarlo"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Kernel{
		KernelIdentity: func(e []float64) float64 { return e[0] },
		KernelSqrt:     func(e []float64) float64 { return math.Sqrt(e[0]) },
		KernelUnit:     func([]float64) float64 { return 1 },
		KernelHit: func(e []float64) float64 {
			if e[0]*e[0]+e[1]*e[1] <= 1.0 {
				return 1
			}
			return 0
		},
	}
)

// RegisterKernel makes fn addressable by name, which lets workloads using it
// run under the process backend. Registering an existing name replaces it.
func RegisterKernel(name string, fn Kernel) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// LookupKernel returns the kernel registered under name.
func LookupKernel(name string) (Kernel, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := registry[name]
	return fn, ok
}

// Workload is an immutable input sequence plus the kernel reduced over it.
type Workload struct {
	// Name describes the workload in reports.
	Name string
	// KernelName is the registry key of the kernel; empty for ad-hoc closures.
	KernelName string
	// Data holds Len()*Stride values, element i at Data[i*Stride:(i+1)*Stride].
	Data []float64
	// Stride is the number of values per element (1 scalar, 2 for (x, y) pairs).
	Stride int
	// Final selects how the raw sum is reported.
	Final Finalizer
	// Stochastic marks sampled inputs whose results are checked for plausibility.
	Stochastic bool
	// Seed is the sampling seed for stochastic workloads.
	Seed uint64

	kernel Kernel
}

// Len returns the number of elements.
func (w *Workload) Len() int {
	if w.Stride <= 0 {
		return 0
	}
	return len(w.Data) / w.Stride
}

// Kernel returns the per-element function.
func (w *Workload) Kernel() Kernel { return w.kernel }

// Elem returns element i.
func (w *Workload) Elem(i int) []float64 {
	return w.Data[i*w.Stride : (i+1)*w.Stride]
}

// Slice returns the raw values backing elements [lo, hi).
func (w *Workload) Slice(lo, hi int) []float64 {
	return w.Data[lo*w.Stride : hi*w.Stride]
}

// Reduce sums the kernel over elements [lo, hi) sequentially.
func (w *Workload) Reduce(lo, hi int) float64 {
	return ReduceSlice(w.kernel, w.Slice(lo, hi), w.Stride)
}

// Finalize converts a raw sum into the reported result.
func (w *Workload) Finalize(sum float64) float64 {
	return Finalize(w.Final, sum, w.Len())
}

// Validate checks the workload shape.
func (w *Workload) Validate() error {
	switch {
	case w == nil:
		return apperrors.NewInvalidArgument("workload", "must not be nil")
	case w.kernel == nil:
		return apperrors.NewInvalidArgument("workload", "%s has no kernel", w.Name)
	case w.Stride < 1:
		return apperrors.NewInvalidArgument("workload", "stride must be at least 1, got %d", w.Stride)
	case len(w.Data)%w.Stride != 0:
		return apperrors.NewInvalidArgument("workload", "%d values do not divide into elements of %d", len(w.Data), w.Stride)
	}
	return nil
}

// Transferable reports whether the kernel can be named on the other side of
// a process boundary.
func (w *Workload) Transferable() error {
	if w.KernelName == "" {
		return apperrors.SerializationError{
			Subject: fmt.Sprintf("kernel of workload %q", w.Name),
			Cause:   fmt.Errorf("ad-hoc closure is not registered"),
		}
	}
	if _, ok := LookupKernel(w.KernelName); !ok {
		return apperrors.SerializationError{
			Subject: fmt.Sprintf("kernel %q", w.KernelName),
			Cause:   fmt.Errorf("not found in registry"),
		}
	}
	return nil
}

// ReduceSlice sums fn over the elements packed in data.
func ReduceSlice(fn Kernel, data []float64, stride int) float64 {
	var sum float64
	for i := 0; i+stride <= len(data); i += stride {
		sum += fn(data[i : i+stride])
	}
	return sum
}

// Finalize converts a raw sum over n elements into the reported result.
func Finalize(f Finalizer, sum float64, n int) float64 {
	if f == FinalPi {
		if n == 0 {
			return 0
		}
		return 4 * sum / float64(n)
	}
	return sum
}

// SqrtSeries returns the values 1..n reduced with sqrt.
func SqrtSeries(n int) *Workload {
	data := make([]float64, n)
	fill(data, func(i int) float64 { return float64(i + 1) })
	return mustRegistered(fmt.Sprintf("sqrt(1..%d)", n), KernelSqrt, data, 1, FinalSum)
}

// Increments returns n elements that each contribute exactly 1.
func Increments(n int) *Workload {
	return mustRegistered(fmt.Sprintf("increments(%d)", n), KernelUnit, make([]float64, n), 1, FinalSum)
}

// MonteCarlo samples points uniform (x, y) pairs in the unit square from a
// PCG source seeded with seed. The hit kernel counts pairs inside the
// quarter circle and the result is the pi estimate.
func MonteCarlo(points int, seed uint64) *Workload {
	u := distuv.Uniform{Min: 0, Max: 1, Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
	data := make([]float64, 2*points)
	for i := range data {
		data[i] = u.Rand()
	}
	w := mustRegistered(fmt.Sprintf("montecarlo(%d, seed=%d)", points, seed), KernelHit, data, 2, FinalPi)
	w.Stochastic = true
	w.Seed = seed
	return w
}

// FromValues builds a scalar workload over a copy of values using a
// registered kernel.
func FromValues(name, kernelName string, values []float64) (*Workload, error) {
	fn, ok := LookupKernel(kernelName)
	if !ok {
		return nil, apperrors.NewInvalidArgument("kernel", "unknown kernel %q", kernelName)
	}
	data := make([]float64, len(values))
	copy(data, values)
	return &Workload{Name: name, KernelName: kernelName, Data: data, Stride: 1, kernel: fn}, nil
}

// Custom builds a workload around an unregistered kernel. It runs under the
// in-memory backends but cannot be sent to worker processes.
func Custom(name string, data []float64, stride int, fn Kernel) *Workload {
	return &Workload{Name: name, Data: data, Stride: stride, kernel: fn}
}

// New builds a named workload of size n.
func New(name string, n int, seed uint64) (*Workload, error) {
	if n < 0 {
		return nil, apperrors.NewInvalidArgument("size", "must be non-negative, got %d", n)
	}
	switch name {
	case NameSqrt:
		return SqrtSeries(n), nil
	case NameIncrements:
		return Increments(n), nil
	case NameMonteCarlo:
		return MonteCarlo(n, seed), nil
	default:
		return nil, apperrors.NewInvalidArgument("workload", "unknown workload %q (want %s, %s or %s)",
			name, NameSqrt, NameIncrements, NameMonteCarlo)
	}
}

// Names lists the workloads accepted by New.
func Names() []string {
	return []string{NameSqrt, NameIncrements, NameMonteCarlo}
}

func mustRegistered(name, kernelName string, data []float64, stride int, final Finalizer) *Workload {
	fn, ok := LookupKernel(kernelName)
	if !ok {
		panic("workload: built-in kernel " + kernelName + " missing")
	}
	return &Workload{Name: name, KernelName: kernelName, Data: data, Stride: stride, Final: final, kernel: fn}
}

// fill writes gen(i) into every slot of data, in parallel batches.
func fill(data []float64, gen func(i int) float64) {
	parallel.Range(0, len(data), 0, func(low, high int) {
		for i := low; i < high; i++ {
			data[i] = gen(i)
		}
	})
}
