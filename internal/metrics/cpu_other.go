//go:build !unix

package metrics

import "time"

// ProcessCPU is unsupported on this platform.
func ProcessCPU() (time.Duration, bool) { return 0, false }
