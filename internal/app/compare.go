package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agbru/reducebench/internal/cli"
	"github.com/agbru/reducebench/internal/config"
	apperrors "github.com/agbru/reducebench/internal/errors"
	"github.com/agbru/reducebench/internal/harness"
	"github.com/agbru/reducebench/internal/logging"
	"github.com/agbru/reducebench/internal/metrics"
	"github.com/agbru/reducebench/internal/orchestration"
	"github.com/agbru/reducebench/internal/sysmon"
	"github.com/agbru/reducebench/internal/telemetry"
	"github.com/agbru/reducebench/internal/tui"
	"github.com/agbru/reducebench/internal/ui"
	"github.com/agbru/reducebench/internal/workload"
)

// runCompare resolves the configuration, runs the sweep and presents the
// report. Exit codes that follow from the report itself are stored on the
// application; setup failures are returned as errors.
func (a *Application) runCompare(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	a.Config = cfg
	ui.InitTheme(cfg.NoColor)
	logger := logging.NewConsoleLogger(a.ErrWriter, cfg.LogLevel)
	a.Logger = logger

	w, err := cfg.BuildWorkload()
	if err != nil {
		return err
	}
	strategies, err := orchestration.SelectStrategies(cfg.Strategies)
	if err != nil {
		return err
	}
	backends, err := orchestration.SelectBackends(cfg.Backends)
	if err != nil {
		return err
	}
	tr, err := a.resolveTransport(cfg.Transport)
	if err != nil {
		return err
	}

	provider, err := telemetry.Init(cfg.Trace, a.ErrWriter, Version)
	if err != nil {
		return apperrors.WrapError(err, "initializing tracing")
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			a.Logger.Warn("flushing trace spans failed", logging.Err(err))
		}
	}()

	ctx, stopSignals := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	runMetrics := metrics.NewRunMetrics()
	h := harness.New(tr, harness.WithLogger(logger.Component("harness")))
	sweep := func(ctx context.Context, obs orchestration.Observer) (*orchestration.Report, error) {
		runner := orchestration.NewRunner(h,
			orchestration.WithLogger(logger.Component("runner")),
			orchestration.WithObserver(obs),
			orchestration.WithRecorder(runMetrics),
			orchestration.WithTracer(provider.Tracer()),
		)
		return runner.Compare(ctx, strategies, backends, w, cfg.ToCompareOptions())
	}

	a.Logger.Info("starting comparison",
		logging.String("workload", w.Name),
		logging.Int("size", w.Len()),
		logging.Int("workers", cfg.Workers),
		logging.String("transport", tr.Name()),
	)

	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()
	var report *orchestration.Report
	if cfg.TUI {
		report, err = tui.Run(ctx, workloadLabel(w), Version, sweep)
	} else {
		var obs orchestration.Observer = orchestration.NullObserver{}
		if !cfg.Quiet {
			obs = cli.NewSpinnerObserver(a.ErrWriter)
		}
		report, err = sweep(ctx, obs)
	}
	if report == nil {
		return err
	}
	report.Transport = tr.Name()
	host := sysmon.Describe()
	report.Host = &host

	code := a.presentReport(report, mem.Snapshot().Since(before))
	if perr := a.persist(report, runMetrics); perr != nil {
		return perr
	}
	if err != nil {
		return err
	}
	a.exitCode = code
	return nil
}

// presentReport renders report in the configured format and returns the
// exit code it implies. Machine-readable formats keep stdout clean and send
// the status line to the error writer.
func (a *Application) presentReport(report *orchestration.Report, mem metrics.MemorySnapshot) int {
	presenter, err := cli.NewPresenter(a.Config.Format, a.Config.Verbose)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if a.Config.Format != config.FormatTable {
		presenter.PresentReport(report, a.Out)
		if !a.Config.Quiet {
			fmt.Fprintf(a.ErrWriter, "Global Status: %s\n", report.StatusLine())
		}
		return report.ExitCode()
	}

	if a.Config.Quiet {
		fmt.Fprintln(a.Out, report.StatusLine())
		return report.ExitCode()
	}

	code := orchestration.AnalyzeComparisonResults(report, presenter, a.Out)
	if a.Config.Verbose {
		cli.DisplayMemoryStats(mem, a.Out)
	}
	return code
}

// persist writes the optional report and metrics files.
func (a *Application) persist(report *orchestration.Report, m *metrics.RunMetrics) error {
	if path := a.Config.OutputFile; path != "" {
		if err := cli.WriteReportToFile(report, path); err != nil {
			return err
		}
		if !a.Config.Quiet {
			fmt.Fprintf(a.ErrWriter, "%sReport saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
		}
	}
	if path := a.Config.MetricsFile; path != "" {
		if err := m.WriteTextfile(path); err != nil {
			return apperrors.WrapError(err, "writing metrics to %s", path)
		}
	}
	return nil
}

func workloadLabel(w *workload.Workload) string {
	return fmt.Sprintf("%s (n=%d)", w.Name, w.Len())
}
