package motion

import (
	"context"
	"errors"
	"math"

	"fieldctl/geometry"
	"fieldctl/robot"
	"fieldctl/trajectory"
	"fieldctl/worldmodel"
)

// gotoAngularSpeed is the proportional gain from orientation error to
// commanded angular velocity; unlike the rest of this file's tuning, it
// has no configured override.
const gotoAngularSpeed = 1.5

// ErrDestinationOccupied is returned when the robot itself already stands
// in a non-free cell under the requested avoidance mode.
var ErrDestinationOccupied = errors.New("motion: destination occupied")

// NoPathFoundError is returned when RRT exhausts its iteration budget.
type NoPathFoundError struct {
	Reason string
}

func (e *NoPathFoundError) Error() string { return "motion: no path found: " + e.Reason }

// Goto drives self toward destination under the given avoidance mode,
// returning once all of the arrival criteria hold: within PosEpsilon of
// destination, within AngleEpsilon of the target orientation (if any), and
// (at the final waypoint) slower than VelEpsilon. angle may be nil to leave
// orientation uncontrolled. All of these, along with the planner's step
// size and iteration budget, come from the package's current Tuning (see
// SetTuning).
//
// AvoidNone falls back to straight-line reactive tracking with no obstacle
// checks. AvoidRobots and AvoidRobotsAndBall plan a global path with
// bidirectional RRT, simplify it, and track it waypoint by waypoint,
// re-validating and replanning from scratch whenever the active segment
// becomes invalid.
func Goto(ctx context.Context, w *worldmodel.World, self *robot.Ally, dest Reactive, angle *float64, mode robot.AvoidanceMode) error {
	if mode == robot.AvoidNone {
		return GotoStraight(ctx, w, self, dest, angle)
	}

	t := getTuning()

	if !IsFree(self.Position(), w, self, mode) {
		return ErrDestinationOccupied
	}

newpath:
	for !arrived(self, dest.GetReactive(), angle, t, t.PosEpsilon, true) {
		if err := w.NextUpdate(ctx); err != nil {
			return err
		}

		field := w.Field.BoundingBox()
		isFree := func(p geometry.Point2) bool { return IsFree(p, w, self, mode) }
		sample := func() geometry.Point2 { return field.SampleInside() }

		path, err := rrtConnect(self.Position(), dest.GetReactive(), isFree, sample, t.RRTStepLength, t.RRTMaxIterations)
		if err != nil {
			return &NoPathFoundError{Reason: err.Error()}
		}
		if len(path) < 2 {
			continue newpath
		}
		simplified := simplifyPath(self, w, mode, path[1:], t)

		for i, p := range simplified {
			isLast := i == len(simplified)-1
			doneDist := t.PosEpsilon * 3
			if isLast {
				doneDist = t.PosEpsilon
			}

			for !arrived(self, p, angle, t, doneDist, isLast) {
				if err := w.NextUpdate(ctx); err != nil {
					return err
				}

				traj := trajectory.NewBangBang2D(self.Position(), self.Velocity(), p, t.VMax, t.AMax, t.AlphaToleranceSetpoint)
				if !IsValidTrajectory(traj, w, self, mode) {
					continue newpath
				}

				v := self.PovVec(traj.Velocity(t.Lookahead))
				self.SetTargetVelocity(v)
				applyAngularSetpoint(self, angle)
			}
		}
	}
	return nil
}

// GotoStraight tracks destination directly with no obstacle avoidance,
// rebuilding the bang-bang profile from the measured pose every tick so any
// disturbance is absorbed by replanning.
func GotoStraight(ctx context.Context, w *worldmodel.World, self *robot.Ally, dest Reactive, angle *float64) error {
	t := getTuning()
	for !arrived(self, dest.GetReactive(), angle, t, t.PosEpsilon, true) {
		if err := w.NextUpdate(ctx); err != nil {
			return err
		}
		traj := trajectory.NewBangBang2D(self.Position(), self.Velocity(), dest.GetReactive(), t.VMax, t.AMax, t.AlphaToleranceSetpoint)
		v := self.PovVec(traj.Velocity(t.Lookahead))
		self.SetTargetVelocity(v)
		applyAngularSetpoint(self, angle)
	}
	return nil
}

func applyAngularSetpoint(self *robot.Ally, angle *float64) {
	if angle == nil {
		return
	}
	self.SetTargetAngularVel(self.OrientationDiffTo(*angle) * gotoAngularSpeed)
}

func arrived(self *robot.Ally, dest geometry.Point2, angle *float64, t Tuning, posTol float64, checkVel bool) bool {
	if self.DistanceTo(dest) >= posTol {
		return false
	}
	if angle != nil && math.Abs(self.OrientationDiffTo(*angle)) >= t.AngleEpsilon {
		return false
	}
	if checkVel && self.Velocity().Norm() >= t.VelEpsilon {
		return false
	}
	return true
}

// simplifyPath greedily collapses the RRT polyline: it walks the path in
// order, testing whether a single bang-bang from the last accepted waypoint
// (or the robot's current position, before any are accepted) to the next
// candidate is collision-free. A failing candidate forces the prior point
// onto the simplified path as a new anchor.
func simplifyPath(self *robot.Ally, w *worldmodel.World, mode robot.AvoidanceMode, path []geometry.Point2, t Tuning) []geometry.Point2 {
	var simplified []geometry.Point2
	lastP := self.Position()

	for i, p := range path {
		isLast := i == len(path)-1

		anchor := self.Position()
		if len(simplified) > 0 {
			anchor = simplified[len(simplified)-1]
		}
		traj := trajectory.NewBangBang2D(anchor, geometry.Vec2{}, p, t.VMax, t.AMax, t.AlphaTolerancePath)
		valid := IsValidTrajectory(traj, w, self, mode)

		if !valid {
			simplified = append(simplified, lastP)
			lastP = p
		} else {
			lastP = p
		}
		if isLast {
			simplified = append(simplified, p)
		}
	}
	return simplified
}
