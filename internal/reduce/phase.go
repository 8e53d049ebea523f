package reduce

// Phase is a step in the lifecycle of one strategy run:
// Idle → Dispatched → (per worker: Running → Done) → Merged → Reported.
type Phase int

const (
	Idle Phase = iota
	Dispatched
	Running
	Done
	Merged
	Reported
)

// AllWorkers is the worker index used for run-wide phases.
const AllWorkers = -1

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dispatched:
		return "dispatched"
	case Running:
		return "running"
	case Done:
		return "done"
	case Merged:
		return "merged"
	case Reported:
		return "reported"
	}
	return "unknown"
}

// Tracker receives lifecycle transitions. Implementations must be safe for
// concurrent use because Running and Done arrive from worker goroutines.
type Tracker interface {
	Phase(p Phase, worker int)
}

// TrackerFunc adapts a function to Tracker.
type TrackerFunc func(p Phase, worker int)

// Phase calls f.
func (f TrackerFunc) Phase(p Phase, worker int) { f(p, worker) }

type nopTracker struct{}

func (nopTracker) Phase(Phase, int) {}

func orNop(tr Tracker) Tracker {
	if tr == nil {
		return nopTracker{}
	}
	return tr
}
