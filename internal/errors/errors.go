package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates at least one run timed out.
	ExitErrorMismatch = 3   // Indicates a correct-by-design strategy disagreed with Serial.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Sentinel errors for the error classes of a comparison sweep. The typed
// errors below match them through errors.Is.
var (
	// ErrInvalidArgument marks a malformed request rejected before dispatch.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrSerialization marks state that cannot cross the process boundary.
	ErrSerialization = errors.New("serialization error")
	// ErrWorkerFailure marks a worker that failed while running.
	ErrWorkerFailure = errors.New("worker failure")
	// ErrTimedOut marks a run that exceeded its time budget.
	ErrTimedOut = errors.New("timed out")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InvalidArgumentError is returned when a partition request, worker count or
// comparison input is malformed. It is raised before any worker is dispatched.
type InvalidArgumentError struct {
	// Field is the name of the offending argument.
	Field string
	// Message explains why the value was rejected.
	Message string
}

// Error returns a formatted message describing the rejected argument.
func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Message)
}

// Is reports whether target is ErrInvalidArgument.
func (e InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// NewInvalidArgument creates an InvalidArgumentError with a formatted message.
func NewInvalidArgument(field, format string, a ...any) error {
	return InvalidArgumentError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// SerializationError reports that a strategy or its captured input cannot be
// transferred to a worker process. Subject names what failed to cross
// (a strategy or a kernel).
type SerializationError struct {
	// Subject is the strategy or kernel that could not be encoded.
	Subject string
	// Cause is the underlying encoding failure.
	Cause error
}

// Error returns a formatted message describing the serialization failure.
func (e SerializationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("serialization error: %s cannot cross the process boundary", e.Subject)
	}
	return fmt.Sprintf("serialization error: %s: %v", e.Subject, e.Cause)
}

// Unwrap returns the underlying encoding failure.
func (e SerializationError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrSerialization.
func (e SerializationError) Is(target error) bool { return target == ErrSerialization }

// WorkerFailure reports that one worker failed during its Running phase.
// It is fatal to the run it belongs to and to nothing else.
type WorkerFailure struct {
	// Index is the zero-based worker index.
	Index int
	// Cause is the error or recovered panic raised by the worker.
	Cause error
}

// Error returns a formatted message naming the failed worker.
func (e WorkerFailure) Error() string {
	return fmt.Sprintf("worker %d failed: %v", e.Index, e.Cause)
}

// Unwrap returns the worker's underlying error.
func (e WorkerFailure) Unwrap() error { return e.Cause }

// Is reports whether target is ErrWorkerFailure.
func (e WorkerFailure) Is(target error) bool { return target == ErrWorkerFailure }

// TimeoutError represents a run timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Is reports whether target is ErrTimedOut.
func (e TimeoutError) Is(target error) bool { return target == ErrTimedOut }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code used by the CLI.
func ExitCodeFor(err error) int {
	var cfgErr ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &cfgErr), errors.Is(err, ErrInvalidArgument):
		return ExitErrorConfig
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, ErrTimedOut), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	default:
		return ExitErrorGeneric
	}
}
