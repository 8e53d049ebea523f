// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (invalid argument,
// serialization, worker failure, timeout, configuration) and for carrying
// the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Typed errors implement Unwrap() and Is() so that errors.Is() matches the
// class sentinels and errors.As() recovers the concrete type.
package apperrors
