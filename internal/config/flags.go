package config

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RegisterFlags registers the comparison flags on a cobra command.
func RegisterFlags(cmd *cobra.Command) {
	configureFlags(cmd.Flags())
}

func configureFlags(flags *pflag.FlagSet) {
	// Workload flags
	flags.String("workload", "sqrt", "Input sequence: sqrt, increments or montecarlo")
	flags.IntP("size", "n", 0, "Element count (0 means 1000 for sqrt, 1000000 otherwise)")
	flags.Uint64("seed", 42, "Seed for generated workloads")

	// Sweep flags
	flags.IntP("workers", "w", 0, "Workers for parallel strategies (0 means GOMAXPROCS)")
	flags.StringSlice("strategies", nil, "Strategies to compare (serial, racy, atomic, partitioned or all)")
	flags.StringSlice("backends", nil, "Backends to compare (none, threads, processes or all)")
	flags.Duration("timeout", 30*time.Second, "Per-run time budget")
	flags.Float64("tolerance", 1e-9, "Relative tolerance for agreement with serial")
	flags.Int("repeat", 1, "Repetitions per combination")
	flags.String("transport", "local", "Process backend transport: local or exec")

	// Output flags
	flags.String("format", FormatTable, "Report format: table, json or yaml")
	flags.StringP("output", "o", "", "Also write the report to this file")
	flags.String("metrics-file", "", "Write Prometheus metrics in textfile format to this path")
	flags.Bool("trace", false, "Export run spans to stderr")
	flags.Bool("tui", false, "Show the live dashboard")
	flags.BoolP("quiet", "q", false, "Suppress progress output")
	flags.BoolP("verbose", "v", false, "Include per-run statistics in the report")
	flags.Bool("no-color", false, "Disable colored output")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")
	flags.String("config", "", "Path to configuration file (YAML or JSON)")
}
