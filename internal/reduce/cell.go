package reduce

import (
	"math"
	"sync/atomic"
)

// SharedCell is a single float64 accumulator owned jointly by every worker
// of a run. It has two access modes and nothing else: AddUnguarded performs a
// plain read-modify-write and loses updates under concurrency; AddAtomic is
// an indivisible compare-and-swap add.
type SharedCell struct {
	bits uint64
}

// AddUnguarded adds x without synchronization. Concurrent callers race.
func (c *SharedCell) AddUnguarded(x float64) {
	c.bits = math.Float64bits(math.Float64frombits(c.bits) + x)
}

// AddAtomic adds x with a CAS loop on the IEEE-754 representation.
func (c *SharedCell) AddAtomic(x float64) {
	for {
		old := atomic.LoadUint64(&c.bits)
		next := math.Float64bits(math.Float64frombits(old) + x)
		if atomic.CompareAndSwapUint64(&c.bits, old, next) {
			return
		}
	}
}

// Load returns the current value. Call it after the join barrier.
func (c *SharedCell) Load() float64 {
	return math.Float64frombits(atomic.LoadUint64(&c.bits))
}
