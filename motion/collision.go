package motion

import (
	"fieldctl/geometry"
	"fieldctl/robot"
	"fieldctl/worldmodel"
)

// ballCollisionRadius is the minimum distance a point may lie from the
// ball's center in AvoidRobotsAndBall mode.
const ballCollisionRadius = 0.2

// Trajectory is the slice of trajectory.BangBang2D that collision checking
// needs; satisfied structurally, so no import of the trajectory package is
// required here.
type Trajectory interface {
	TotalRuntime() float64
	Position(t float64) geometry.Point2
}

// IsFree reports whether pos is unoccupied under mode: always true in
// AvoidNone, clear of every other robot's body in AvoidRobots, and
// additionally clear of the ball in AvoidRobotsAndBall. self is excluded
// from its own collision check.
func IsFree(pos geometry.Point2, w *worldmodel.World, self *robot.Ally, mode robot.AvoidanceMode) bool {
	if mode == robot.AvoidNone {
		return true
	}

	for id, a := range w.Allies() {
		if id == self.ID() {
			continue
		}
		if a.CollidesWith(pos) {
			return false
		}
	}
	for _, e := range w.Enemies() {
		if e.CollidesWith(pos) {
			return false
		}
	}

	if mode == robot.AvoidRobots {
		return true
	}
	return pos.DistanceTo(w.Ball.Position()) >= ballCollisionRadius
}

// IsValidTrajectory samples traj at the current tuning's CollisionStep
// interval and reports whether every sample is free.
func IsValidTrajectory(traj Trajectory, w *worldmodel.World, self *robot.Ally, mode robot.AvoidanceMode) bool {
	step := getTuning().CollisionStep
	steps := int(traj.TotalRuntime() / step)
	for i := 0; i < steps; i++ {
		t := float64(i) * step
		if !IsFree(traj.Position(t), w, self, mode) {
			return false
		}
	}
	return true
}
