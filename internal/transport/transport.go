// Package transport carries reduction tasks across the process boundary of
// the processes backend. A task travels as an encoded frame and comes back
// as an encoded result; the worker on the other side never sees the
// caller's memory.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	apperrors "github.com/agbru/reducebench/internal/errors"
	"github.com/agbru/reducebench/internal/workload"
)

// WorkerCommand is the subcommand that turns the binary into a worker.
const WorkerCommand = "worker"

// Transport names accepted by ByName.
const (
	LocalName = "local"
	ExecName  = "exec"
)

// Transport delivers one task frame to an isolated worker and returns the
// worker's result frame.
type Transport interface {
	Execute(ctx context.Context, frame []byte) ([]byte, error)
	Name() string
}

// Process decodes a task frame, reduces it and encodes the result. Kernel
// panics are reported in the result rather than propagated.
func Process(frame []byte) []byte {
	task, err := DecodeTask(frame)
	if err != nil {
		return EncodeResult(Result{Err: err.Error()})
	}
	res := Result{Worker: task.Worker}
	sum, err := reduceTask(task)
	if err != nil {
		res.Err = err.Error()
	} else {
		res.Sum = sum
	}
	return EncodeResult(res)
}

func reduceTask(task Task) (sum float64, err error) {
	fn, ok := workload.LookupKernel(task.Kernel)
	if !ok {
		return 0, fmt.Errorf("kernel %q not registered in worker", task.Kernel)
	}
	if task.Stride < 1 {
		return 0, fmt.Errorf("invalid stride %d", task.Stride)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return workload.ReduceSlice(fn, task.Data, task.Stride), nil
}

// Serve reads one task frame from r until EOF and writes its result to w.
// It is the body of the worker subcommand.
func Serve(r io.Reader, w io.Writer) error {
	frame, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading task frame: %w", err)
	}
	if _, err := w.Write(Process(frame)); err != nil {
		return fmt.Errorf("writing result frame: %w", err)
	}
	return nil
}

// Local runs each task on its own goroutine against a private copy of the
// frame. It is the default transport: tasks are isolated exactly as in a
// separate process, without the cost of spawning one.
type Local struct{}

// Name returns "local".
func (Local) Name() string { return LocalName }

// Execute processes frame on a fresh goroutine. If ctx ends first, Execute
// returns its error and the goroutine is left to finish on its own.
func (Local) Execute(ctx context.Context, frame []byte) ([]byte, error) {
	private := bytes.Clone(frame)
	out := make(chan []byte, 1)
	go func() { out <- Process(private) }()
	select {
	case res := <-out:
		return res, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Exec spawns one operating-system process per task. The frame is written to
// the child's stdin and the result read from its stdout.
type Exec struct {
	// Path is the executable to run.
	Path string
	// Args are passed after Path; normally just WorkerCommand.
	Args []string
	// Env, when non-nil, replaces the child's environment.
	Env []string
}

// NewExec returns an Exec transport that re-executes the running binary in
// worker mode.
func NewExec() (*Exec, error) {
	path, err := os.Executable()
	if err != nil {
		return nil, apperrors.WrapError(err, "locating executable for worker processes")
	}
	return &Exec{Path: path, Args: []string{WorkerCommand}}, nil
}

// Name returns "exec".
func (*Exec) Name() string { return ExecName }

// Execute runs the worker process to completion. The process is killed if
// ctx ends.
func (e *Exec) Execute(ctx context.Context, frame []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.Path, e.Args...)
	if e.Env != nil {
		cmd.Env = e.Env
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(frame)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return nil, fmt.Errorf("worker process: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("worker process: %w", err)
	}
	return stdout.Bytes(), nil
}

// ByName resolves a transport name from configuration.
func ByName(name string) (Transport, error) {
	switch name {
	case "", LocalName:
		return Local{}, nil
	case ExecName:
		return NewExec()
	default:
		return nil, apperrors.NewInvalidArgument("transport", "unknown transport %q (want local or exec)", name)
	}
}
