package harness

import (
	"fmt"
	"strings"

	apperrors "github.com/agbru/reducebench/internal/errors"
)

// Backend is the concurrency substrate a strategy runs on.
type Backend int

const (
	// None calls the strategy directly on the caller's goroutine.
	None Backend = iota
	// Threads runs workers as goroutines sharing the workload in memory.
	Threads
	// Processes sends each worker an encoded task and collects encoded
	// results; nothing is shared.
	Processes
)

var backendNames = [...]string{
	None:      "none",
	Threads:   "threads",
	Processes: "processes",
}

// AllBackends returns every backend in canonical order.
func AllBackends() []Backend {
	return []Backend{None, Threads, Processes}
}

func (b Backend) String() string {
	if b < 0 || int(b) >= len(backendNames) {
		return fmt.Sprintf("backend(%d)", int(b))
	}
	return backendNames[b]
}

// ParseBackend resolves a backend name, case-insensitively.
func ParseBackend(name string) (Backend, error) {
	for i, n := range backendNames {
		if strings.EqualFold(name, n) {
			return Backend(i), nil
		}
	}
	return 0, apperrors.NewInvalidArgument("backend", "unknown backend %q (want one of %s)",
		name, strings.Join(backendNames[:], ", "))
}

// MarshalText encodes the backend by name.
func (b Backend) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText decodes a backend name.
func (b *Backend) UnmarshalText(text []byte) error {
	parsed, err := ParseBackend(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Parallel reports whether workers of this backend may overlap in time.
func (b Backend) Parallel() bool { return b != None }
