// Package config holds the application configuration and its loading logic.
// Values resolve with the precedence flag > environment > config file >
// default, through a viper instance bound to the command's pflag set.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/reducebench/internal/errors"
	"github.com/agbru/reducebench/internal/orchestration"
	"github.com/agbru/reducebench/internal/workload"
)

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// AppConfig aggregates the parameters of one reducebench invocation.
type AppConfig struct {
	// Workload names the input sequence: sqrt, increments or montecarlo.
	Workload string
	// Size is the element (or point) count. Zero selects the workload default.
	Size int
	// Workers is the worker count for parallel strategies. Zero selects
	// GOMAXPROCS.
	Workers    int
	Strategies []string
	Backends   []string
	// Timeout is the per-run watchdog budget.
	Timeout   time.Duration
	Tolerance float64
	Seed      uint64
	Repeat    int
	// Transport selects how process-backend frames reach a worker: local or exec.
	Transport string

	Format      string
	OutputFile  string
	MetricsFile string

	Trace    bool
	TUI      bool
	Quiet    bool
	Verbose  bool
	NoColor  bool
	LogLevel string

	ConfigFile string
}

// Validate checks the configuration for semantic errors. Every failure is a
// ConfigError so the CLI exits with the configuration exit code.
func (c AppConfig) Validate() error {
	if !slices.Contains(workload.Names(), c.Workload) {
		return apperrors.NewConfigError("unknown workload %q (want one of %s)",
			c.Workload, strings.Join(workload.Names(), ", "))
	}
	if c.Size < 0 {
		return apperrors.NewConfigError("size must be non-negative, got %d", c.Size)
	}
	if c.Workers < 1 {
		return apperrors.NewConfigError("workers must be at least 1, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Tolerance < 0 {
		return apperrors.NewConfigError("tolerance must be non-negative, got %g", c.Tolerance)
	}
	if c.Repeat < 1 {
		return apperrors.NewConfigError("repeat must be at least 1, got %d", c.Repeat)
	}
	if _, err := orchestration.SelectStrategies(c.Strategies); err != nil {
		return apperrors.NewConfigError("strategies: %v", err)
	}
	if _, err := orchestration.SelectBackends(c.Backends); err != nil {
		return apperrors.NewConfigError("backends: %v", err)
	}
	switch c.Transport {
	case "local", "exec":
	default:
		return apperrors.NewConfigError("unknown transport %q (want local or exec)", c.Transport)
	}
	switch c.Format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return apperrors.NewConfigError("unknown format %q (want table, json or yaml)", c.Format)
	}
	if c.TUI && c.Quiet {
		return apperrors.NewConfigError("--tui and --quiet are mutually exclusive")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	return nil
}

// ToCompareOptions converts the configuration to runner options.
func (c AppConfig) ToCompareOptions() orchestration.Options {
	return orchestration.Options{
		Workers:   c.Workers,
		Timeout:   c.Timeout,
		Tolerance: c.Tolerance,
		Repeat:    c.Repeat,
	}
}

// BuildWorkload creates the input sequence shared by every run of the sweep.
func (c AppConfig) BuildWorkload() (*workload.Workload, error) {
	w, err := workload.New(c.Workload, c.Size, c.Seed)
	if err != nil {
		return nil, fmt.Errorf("building workload: %w", err)
	}
	return w, nil
}
