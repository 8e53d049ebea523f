//go:build unix

package metrics

import (
	"time"

	"golang.org/x/sys/unix"
)

// ProcessCPU returns the user plus system CPU time consumed so far by this
// process and its reaped children.
func ProcessCPU() (time.Duration, bool) {
	var total time.Duration
	for _, who := range []int{unix.RUSAGE_SELF, unix.RUSAGE_CHILDREN} {
		var ru unix.Rusage
		if err := unix.Getrusage(who, &ru); err != nil {
			return 0, false
		}
		total += timevalDuration(ru.Utime) + timevalDuration(ru.Stime)
	}
	return total, true
}

func timevalDuration(tv unix.Timeval) time.Duration {
	return time.Duration(tv.Nano())
}
