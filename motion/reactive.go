// Package motion implements the goto operation: reactive bang-bang
// tracking, bidirectional-RRT global planning with greedy simplification,
// and per-tick re-validation and replanning.
package motion

import "fieldctl/geometry"

// Reactive is anything that can be sampled for its current position: a
// fixed point, a moving ball, another robot, or any computed value. All
// motion primitives accept a Reactive so the tracker follows whatever it
// names without knowing what it is.
type Reactive interface {
	GetReactive() geometry.Point2
}

// FixedPoint adapts a plain Point2 to Reactive.
type FixedPoint geometry.Point2

// GetReactive returns the wrapped point unchanged.
func (f FixedPoint) GetReactive() geometry.Point2 { return geometry.Point2(f) }

// ReactiveFunc adapts a nullary Point2-returning function to Reactive, so a
// computed destination (e.g. "target offset by the current ball-to-robot
// vector") can be tracked exactly like a fixed point or a moving robot.
type ReactiveFunc func() geometry.Point2

// GetReactive calls the wrapped function.
func (f ReactiveFunc) GetReactive() geometry.Point2 { return f() }
