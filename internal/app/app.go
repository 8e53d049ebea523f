package app

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/agbru/reducebench/internal/cli"
	"github.com/agbru/reducebench/internal/config"
	apperrors "github.com/agbru/reducebench/internal/errors"
	"github.com/agbru/reducebench/internal/logging"
	"github.com/agbru/reducebench/internal/transport"
)

// Application represents one reducebench invocation.
type Application struct {
	Config    config.AppConfig
	Out       io.Writer
	ErrWriter io.Writer
	Logger    logging.Logger

	resolveTransport func(name string) (transport.Transport, error)
	exitCode         int
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithTransportResolver replaces the transport lookup used by the processes
// backend.
func WithTransportResolver(fn func(name string) (transport.Transport, error)) AppOption {
	return func(a *Application) { a.resolveTransport = fn }
}

// New creates an Application writing reports to out and diagnostics to
// errWriter.
func New(out, errWriter io.Writer, opts ...AppOption) *Application {
	app := &Application{
		Out:              out,
		ErrWriter:        errWriter,
		Logger:           logging.Nop(),
		resolveTransport: transport.ByName,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Run parses args (without the program name), executes the selected command
// and returns the process exit code.
func (a *Application) Run(ctx context.Context, args []string) int {
	root := a.RootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	return a.exitCode
}

// RootCommand builds the command tree. The root command runs a comparison,
// as does the explicit compare subcommand.
func (a *Application) RootCommand() *cobra.Command {
	root := a.compareCommand("reducebench")
	root.Short = "Benchmark and compare parallel reduction strategies"
	root.Long = `reducebench runs the same reduction under several strategies
(serial, racy, atomic, partitioned) and execution backends (none, threads,
processes), then checks every result against the serial reference.`
	root.Version = Version
	root.SetVersionTemplate("reducebench {{.Version}}\n")
	root.SilenceErrors = true
	root.SilenceUsage = true
	root.SetOut(a.Out)
	root.SetErr(a.ErrWriter)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.NewConfigError("%v", err)
	})

	compare := a.compareCommand("compare")
	compare.Short = "Run a comparison sweep (default command)"
	root.AddCommand(compare, a.workerCommand(), a.versionCommand())
	return root
}

func (a *Application) compareCommand(use string) *cobra.Command {
	cmd := &cobra.Command{
		Use:  use,
		Args: cobra.NoArgs,
		RunE: a.runCompare,
	}
	config.RegisterFlags(cmd)
	cobra.CheckErr(cli.RegisterCompletions(cmd))
	return cmd
}

func (a *Application) workerCommand() *cobra.Command {
	return &cobra.Command{
		Use:    transport.WorkerCommand,
		Short:  "Process one task frame from stdin (used by the exec transport)",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.NewStdLoggerAdapter(log.New(cmd.ErrOrStderr(), "", 0))
			if err := transport.Serve(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				logger.Error("worker could not answer its task frame", err)
				return err
			}
			return nil
		},
	}
}

func (a *Application) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			PrintVersion(cmd.OutOrStdout())
		},
	}
}
