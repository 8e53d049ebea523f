package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// RunMetrics records the outcome of every benchmark run of a sweep in a
// private Prometheus registry, exportable as a node_exporter textfile.
type RunMetrics struct {
	registry  *prometheus.Registry
	runs      *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	cpu       *prometheus.CounterVec
	agreement prometheus.Gauge
}

// NewRunMetrics creates the collectors and registers them together with the
// Go runtime collector.
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reducebench_runs_total",
			Help: "Benchmark runs by strategy, backend and status.",
		}, []string{"strategy", "backend", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reducebench_run_duration_seconds",
			Help:    "Wall-clock time of completed runs.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"strategy", "backend"}),
		cpu: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reducebench_run_cpu_seconds_total",
			Help: "User plus system CPU time of completed runs.",
		}, []string{"strategy", "backend"}),
		agreement: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "reducebench_agreement",
			Help: "1 when every correct-by-design strategy agreed with serial.",
		}),
	}
	m.registry.MustRegister(m.runs, m.duration, m.cpu, m.agreement, collectors.NewGoCollector())
	return m
}

// ObserveRun records one finished run. Elapsed and CPU are only recorded
// for runs with status "ok".
func (m *RunMetrics) ObserveRun(strategy, backend, status string, elapsed, cpu time.Duration) {
	m.runs.WithLabelValues(strategy, backend, status).Inc()
	if status != "ok" {
		return
	}
	m.duration.WithLabelValues(strategy, backend).Observe(elapsed.Seconds())
	m.cpu.WithLabelValues(strategy, backend).Add(cpu.Seconds())
}

// SetAgreement records the sweep verdict.
func (m *RunMetrics) SetAgreement(ok bool) {
	if ok {
		m.agreement.Set(1)
		return
	}
	m.agreement.Set(0)
}

// Gatherer exposes the registry.
func (m *RunMetrics) Gatherer() prometheus.Gatherer { return m.registry }

// WriteTextfile writes all metrics atomically to path in text exposition
// format.
func (m *RunMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
