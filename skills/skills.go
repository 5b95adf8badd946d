package skills

import (
	"context"
	"math"
	"time"

	"fieldctl/geometry"
	"fieldctl/motion"
	"fieldctl/robot"
	"fieldctl/worldmodel"
)

// Tuning constants for the skills in this file. The goto-facing values
// (epsilon, lookahead, v_max, ...) live in the motion package and are not
// repeated here; these are purely skill-level timing/geometry.
const (
	settleDelay           = 150 * time.Millisecond
	passReceiveTimeout    = 1 * time.Second
	passAngularGain       = 2.0
	backOffDistance       = 0.3
	shootStagingDistance  = 0.3
	shootKickInterval     = 1 * time.Second
	interceptSpeedThresh  = 0.4
	interceptProjectionS  = 5.0
)

// GoGetBall enables the dribbler and races goto(ball) against
// waitUntilHasBall until the robot possesses the ball, then settles
// briefly before returning.
func GoGetBall(ctx context.Context, w *worldmodel.World, self *robot.Ally) error {
	self.EnableDribbler()
	for !self.HasBall() {
		aim := self.Position().To(w.Ball.Position()).Angle()
		err := race(ctx,
			func(ctx context.Context) error {
				return motion.Goto(ctx, w, self, w.Ball, &aim, robot.AvoidRobots)
			},
			func(ctx context.Context) error { return waitUntilHasBall(ctx, w, self) },
		)
		if err != nil {
			return err
		}
	}
	return sleep(ctx, settleDelay)
}

// PassTo holds position while aiming at receiver, repeatedly requesting a
// kick until the ball leaves self's possession, then waits up to
// passReceiveTimeout for receiver to report possession. Returns
// ErrPassTimedOut if the receiver never does.
func PassTo(ctx context.Context, w *worldmodel.World, self, receiver *robot.Ally) error {
	for self.HasBall() {
		aim := self.Position().To(receiver.Position()).Angle()
		self.SetTargetVelocity(geometry.Vec2{})
		self.SetTargetAngularVel(self.OrientationDiffTo(aim) * passAngularGain)
		self.RequestKick(robot.KickStraight)
		if err := w.NextUpdate(ctx); err != nil {
			return err
		}
	}

	err := withTimeout(ctx, passReceiveTimeout, func(ctx context.Context) error {
		return waitUntilHasBall(ctx, w, receiver)
	})
	if err != nil {
		return ErrPassTimedOut
	}
	return nil
}

// PlaceBall fetches the ball, then drives reactively to (target - the
// current self-to-ball vector) while aiming along that vector, so the
// dribbled ball ends up at target; it then releases the dribbler and
// backs off.
func PlaceBall(ctx context.Context, w *worldmodel.World, self *robot.Ally, target geometry.Point2) error {
	if err := GoGetBall(ctx, w, self); err != nil {
		return err
	}

	angle := self.Position().To(target).Angle()
	dest := motion.ReactiveFunc(func() geometry.Point2 {
		toBall := self.Position().To(w.Ball.Position())
		return target.Sub(toBall)
	})

	if err := motion.Goto(ctx, w, self, dest, &angle, robot.AvoidRobots); err != nil {
		return err
	}
	self.DisableDribbler()

	return backOff(ctx, w, self, angle)
}

// backOff drives self straight back along awayFrom by backOffDistance, so
// a just-released ball isn't immediately re-touched.
func backOff(ctx context.Context, w *worldmodel.World, self *robot.Ally, awayFrom float64) error {
	retreat := geometry.Vec2{X: math.Cos(awayFrom), Y: math.Sin(awayFrom)}.Scale(backOffDistance)
	behind := self.Position().Sub(retreat)
	return motion.Goto(ctx, w, self, motion.FixedPoint(behind), nil, robot.AvoidRobots)
}

// Shoot moves to a staging point shootStagingDistance behind the ball on
// the ball-to-target ray, facing target, then closes on the ball and
// kicks at 1 Hz until it leaves possession.
func Shoot(ctx context.Context, w *worldmodel.World, self *robot.Ally, target geometry.Point2) error {
	ballPos := w.Ball.Position()
	dir := ballPos.To(target).Normalize()
	staging := ballPos.Sub(dir.Scale(shootStagingDistance))
	facing := dir.Angle()

	if err := motion.Goto(ctx, w, self, motion.FixedPoint(staging), &facing, robot.AvoidRobotsAndBall); err != nil {
		return err
	}

	self.EnableDribbler()
	if err := race(ctx,
		func(ctx context.Context) error {
			return motion.Goto(ctx, w, self, w.Ball, &facing, robot.AvoidRobots)
		},
		func(ctx context.Context) error { return waitUntilHasBall(ctx, w, self) },
	); err != nil {
		return err
	}

	var lastKick time.Time
	for self.HasBall() {
		if time.Since(lastKick) >= shootKickInterval {
			self.RequestKick(robot.KickStraight)
			lastKick = time.Now()
		}
		if err := w.NextUpdate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Intercept drives to cut off a moving ball rather than chasing its
// current position: below interceptSpeedThresh it falls back to
// GoGetBall-style direct tracking; above it, it projects the ball's
// velocity forward into a ray and drives to the point on that ray closest
// to self's current position.
func Intercept(ctx context.Context, w *worldmodel.World, self *robot.Ally) error {
	self.EnableDribbler()
	for !self.HasBall() {
		ballPos := w.Ball.Position()
		ballVel := w.Ball.Velocity()

		var dest motion.Reactive
		mode := robot.AvoidRobotsAndBall
		if ballVel.Norm() < interceptSpeedThresh {
			dest = w.Ball
			mode = robot.AvoidRobots
		} else {
			ray := geometry.NewLine(ballPos, ballPos.Add(ballVel.Scale(interceptProjectionS)))
			dest = motion.FixedPoint(ray.ClosestPointTo(self.Position()))
		}
		angle := self.Position().To(ballPos).Angle()

		err := race(ctx,
			func(ctx context.Context) error { return motion.Goto(ctx, w, self, dest, &angle, mode) },
			func(ctx context.Context) error { return waitUntilHasBall(ctx, w, self) },
		)
		if err != nil {
			return err
		}
	}
	self.DisableDribbler()
	return nil
}
