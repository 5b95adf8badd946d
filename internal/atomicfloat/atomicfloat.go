// Package atomicfloat provides a lock-free float64 cell for the scalar
// robot fields (orientation, angular velocity) that the control loop reads
// every tick and a skill writes at most once per tick: contention is real
// but critical sections would otherwise be microscopic, so atomics beat a
// mutex.
package atomicfloat

import (
	"math"
	"sync/atomic"
)

// Float64 is a float64 that can be read and set without a mutex. The zero
// value holds 0.0 and is ready to use. The bit pattern is stored in a plain
// uint64 and moved in and out of float64 form at each call, so there is no
// unsafe pointer aliasing for the GC to worry about.
type Float64 struct {
	bits uint64
}

// New returns a Float64 initialized to val.
func New(val float64) *Float64 {
	return &Float64{bits: math.Float64bits(val)}
}

// Load atomically reads the current value.
func (f *Float64) Load() float64 {
	return math.Float64frombits(atomic.LoadUint64(&f.bits))
}

// Store atomically sets the value.
func (f *Float64) Store(val float64) {
	atomic.StoreUint64(&f.bits, math.Float64bits(val))
}
