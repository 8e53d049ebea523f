package orchestration

import (
	"slices"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the elapsed times of a repeated run.
type Stats struct {
	Samples int           `json:"samples" yaml:"samples"`
	Min     time.Duration `json:"min_ns" yaml:"min"`
	Max     time.Duration `json:"max_ns" yaml:"max"`
	Median  time.Duration `json:"median_ns" yaml:"median"`
	Mean    time.Duration `json:"mean_ns" yaml:"mean"`
	StdDev  time.Duration `json:"stddev_ns" yaml:"stddev"`
	P90     time.Duration `json:"p90_ns" yaml:"p90"`
	P99     time.Duration `json:"p99_ns" yaml:"p99"`
}

// histogramMax bounds recorded samples; longer runs are clamped.
const histogramMax = int64(time.Hour)

// Summarize computes Stats over samples. It returns nil for no samples.
func Summarize(samples []time.Duration) *Stats {
	if len(samples) == 0 {
		return nil
	}
	sorted := make([]float64, len(samples))
	hist := hdrhistogram.New(1, histogramMax, 3)
	for i, d := range samples {
		sorted[i] = float64(d)
		_ = hist.RecordValue(min(max(int64(d), 1), histogramMax))
	}
	slices.Sort(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		std = 0
	}
	return &Stats{
		Samples: len(samples),
		Min:     time.Duration(sorted[0]),
		Max:     time.Duration(sorted[len(sorted)-1]),
		Median:  time.Duration(stat.Quantile(0.5, stat.Empirical, sorted, nil)),
		Mean:    time.Duration(mean),
		StdDev:  time.Duration(std),
		P90:     time.Duration(hist.ValueAtQuantile(90)),
		P99:     time.Duration(hist.ValueAtQuantile(99)),
	}
}
