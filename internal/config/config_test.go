package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	apperrors "github.com/agbru/reducebench/internal/errors"
)

func parse(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	configureFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(parse(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workload != "sqrt" || cfg.Size != DefaultSqrtSize {
		t.Errorf("workload = %s/%d, want sqrt/%d", cfg.Workload, cfg.Size, DefaultSqrtSize)
	}
	if cfg.Workers != DefaultWorkers() {
		t.Errorf("workers = %d, want %d", cfg.Workers, DefaultWorkers())
	}
	if cfg.Timeout != 30*time.Second || cfg.Tolerance != 1e-9 || cfg.Repeat != 1 || cfg.Seed != 42 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Transport != "local" || cfg.Format != FormatTable {
		t.Errorf("transport/format = %s/%s", cfg.Transport, cfg.Format)
	}
	if len(cfg.Strategies) != 0 || len(cfg.Backends) != 0 {
		t.Errorf("strategies/backends should default to empty (all), got %v %v", cfg.Strategies, cfg.Backends)
	}
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := Load(parse(t,
		"--workload", "increments", "-n", "500", "-w", "3",
		"--strategies", "serial,atomic", "--backends", "threads",
		"--timeout", "2s", "--repeat", "5", "--format", "json", "-o", "out.json",
	))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workload != "increments" || cfg.Size != 500 || cfg.Workers != 3 {
		t.Errorf("got %s/%d/%d", cfg.Workload, cfg.Size, cfg.Workers)
	}
	if len(cfg.Strategies) != 2 || cfg.Strategies[1] != "atomic" {
		t.Errorf("strategies = %v", cfg.Strategies)
	}
	if cfg.Timeout != 2*time.Second || cfg.Repeat != 5 || cfg.Format != FormatJSON || cfg.OutputFile != "out.json" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_LargeWorkloadDefaultSize(t *testing.T) {
	cfg, err := Load(parse(t, "--workload", "montecarlo"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Size != DefaultLargeSize {
		t.Errorf("size = %d, want %d", cfg.Size, DefaultLargeSize)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REDUCEBENCH_WORKERS", "6")
	t.Setenv("REDUCEBENCH_STRATEGIES", "partitioned,serial")
	t.Setenv("REDUCEBENCH_METRICS_FILE", "/tmp/metrics.prom")
	t.Setenv("REDUCEBENCH_TIMEOUT", "750ms")

	cfg, err := Load(parse(t))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 6 {
		t.Errorf("workers = %d, want 6 from env", cfg.Workers)
	}
	if len(cfg.Strategies) != 2 || cfg.Strategies[0] != "partitioned" {
		t.Errorf("strategies = %v", cfg.Strategies)
	}
	if cfg.MetricsFile != "/tmp/metrics.prom" || cfg.Timeout != 750*time.Millisecond {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_FlagBeatsEnv(t *testing.T) {
	t.Setenv("REDUCEBENCH_WORKERS", "6")
	cfg, err := Load(parse(t, "--workers", "2"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 2 {
		t.Errorf("workers = %d, want flag value 2", cfg.Workers)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	content := "workload: increments\nsize: 2048\nbackends: [none, threads]\nrepeat: 3\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REDUCEBENCH_REPEAT", "4")

	cfg, err := Load(parse(t, "--config", path, "--size", "100"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workload != "increments" {
		t.Errorf("workload = %s, want increments from file", cfg.Workload)
	}
	if cfg.Size != 100 {
		t.Errorf("size = %d, flag must beat the file", cfg.Size)
	}
	if cfg.Repeat != 4 {
		t.Errorf("repeat = %d, env must beat the file", cfg.Repeat)
	}
	if len(cfg.Backends) != 2 || cfg.Backends[1] != "threads" {
		t.Errorf("backends = %v", cfg.Backends)
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q", cfg.ConfigFile)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(parse(t, "--config", filepath.Join(t.TempDir(), "absent.yaml")))
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	valid := AppConfig{
		Workload: "sqrt", Size: 10, Workers: 2, Timeout: time.Second, Tolerance: 1e-9,
		Repeat: 1, Transport: "local", Format: FormatTable, LogLevel: "warn",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"unknown workload", func(c *AppConfig) { c.Workload = "fib" }},
		{"negative size", func(c *AppConfig) { c.Size = -1 }},
		{"zero workers", func(c *AppConfig) { c.Workers = 0 }},
		{"zero timeout", func(c *AppConfig) { c.Timeout = 0 }},
		{"negative tolerance", func(c *AppConfig) { c.Tolerance = -1 }},
		{"zero repeat", func(c *AppConfig) { c.Repeat = 0 }},
		{"unknown strategy", func(c *AppConfig) { c.Strategies = []string{"mutex"} }},
		{"unknown backend", func(c *AppConfig) { c.Backends = []string{"gpu"} }},
		{"unknown transport", func(c *AppConfig) { c.Transport = "ssh" }},
		{"unknown format", func(c *AppConfig) { c.Format = "xml" }},
		{"tui and quiet", func(c *AppConfig) { c.TUI, c.Quiet = true, true }},
		{"bad log level", func(c *AppConfig) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigError, got %v", err)
			}
			if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d, want %d", apperrors.ExitCodeFor(err), apperrors.ExitErrorConfig)
			}
		})
	}
}

func TestToCompareOptions(t *testing.T) {
	t.Parallel()
	cfg := AppConfig{Workers: 8, Timeout: time.Minute, Tolerance: 1e-6, Repeat: 3}
	opts := cfg.ToCompareOptions()
	if opts.Workers != 8 || opts.Timeout != time.Minute || opts.Tolerance != 1e-6 || opts.Repeat != 3 {
		t.Errorf("ToCompareOptions = %+v", opts)
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()
	got := splitList([]string{"serial, atomic", "", " racy "})
	want := []string{"serial", "atomic", "racy"}
	if len(got) != len(want) {
		t.Fatalf("splitList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildWorkload(t *testing.T) {
	t.Parallel()
	w, err := AppConfig{Workload: "sqrt", Size: 10}.BuildWorkload()
	if err != nil {
		t.Fatal(err)
	}
	if w.Len() != 10 {
		t.Errorf("Len = %d, want 10", w.Len())
	}
}
