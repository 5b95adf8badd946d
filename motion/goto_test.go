package motion

import (
	"context"
	"sync"
	"testing"
	"time"

	"fieldctl/geometry"
	"fieldctl/robot"
	"fieldctl/worldmodel"
)

// simulate integrates self's commanded velocity and angular velocity into
// its measured pose once per period, standing in for the vision feedback a
// real robot would provide, and notifies the world after each step. It
// runs until ctx is done.
func simulate(ctx context.Context, w *worldmodel.World, self *robot.Ally, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	dt := period.Seconds()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			worldVel := self.TargetVelocity().Rotate(self.Orientation())
			self.SetPosition(self.Position().Add(worldVel.Scale(dt)))
			self.SetVelocity(worldVel)
			self.SetOrientation(self.Orientation() + self.TargetAngularVel()*dt)
			self.SetAngularVel(self.TargetAngularVel())
			w.NotifyUpdate()
		}
	}
}

func TestGotoNoObstacles(t *testing.T) {
	w := worldmodel.New(robot.Blue)
	self := w.UpsertAlly(1, geometry.Zero, 0, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go simulate(ctx, w, self, time.Millisecond)

	dest := FixedPoint{X: 1, Y: 0}
	if err := Goto(ctx, w, self, dest, nil, robot.AvoidNone); err != nil {
		t.Fatalf("Goto returned %v", err)
	}

	if d := self.Position().DistanceTo(geometry.Point2{X: 1, Y: 0}); d > 0.05 {
		t.Errorf("final distance to destination = %v, want <= 0.05", d)
	}
	if v := self.Velocity().Norm(); v > 0.02 {
		t.Errorf("final speed = %v, want < 0.02", v)
	}
}

func TestGotoAvoidsObstacleRobot(t *testing.T) {
	w := worldmodel.New(robot.Blue)
	self := w.UpsertAlly(1, geometry.Zero, 0, 0)
	obstacle := geometry.Point2{X: 0.5, Y: 0}
	w.UpsertAlly(2, obstacle, 0, 0)

	// the minimum center-to-center separation robot.Base.CollidesWith
	// enforces between two robot bodies.
	const collisionRadius = 0.3

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go simulate(ctx, w, self, time.Millisecond)

	var mu sync.Mutex
	minDist := self.Position().DistanceTo(obstacle)
	sampleCtx, stopSampling := context.WithCancel(ctx)
	defer stopSampling()
	go func() {
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-sampleCtx.Done():
				return
			case <-ticker.C:
				d := self.Position().DistanceTo(obstacle)
				mu.Lock()
				if d < minDist {
					minDist = d
				}
				mu.Unlock()
			}
		}
	}()

	dest := FixedPoint{X: 1, Y: 0}
	err := Goto(ctx, w, self, dest, nil, robot.AvoidRobots)
	stopSampling()
	if err != nil {
		t.Fatalf("Goto returned %v", err)
	}

	if d := self.Position().DistanceTo(geometry.Point2{X: 1, Y: 0}); d > 0.05 {
		t.Errorf("final distance to destination = %v, want <= 0.05", d)
	}

	mu.Lock()
	got := minDist
	mu.Unlock()
	if got < collisionRadius {
		t.Errorf("executed trajectory came within %v of the obstacle robot, want >= %v", got, collisionRadius)
	}
}

func TestIsFreeRespectsAvoidanceMode(t *testing.T) {
	w := worldmodel.New(robot.Blue)
	self := w.UpsertAlly(1, geometry.Zero, 0, 0)
	w.UpsertAlly(2, geometry.Point2{X: 0.5, Y: 0}, 0, 0)

	if !IsFree(geometry.Point2{X: 0.5, Y: 0}, w, self, robot.AvoidNone) {
		t.Error("AvoidNone must treat every point as free")
	}
	if IsFree(geometry.Point2{X: 0.5, Y: 0}, w, self, robot.AvoidRobots) {
		t.Error("a point on another robot's center must not be free under AvoidRobots")
	}
	if !IsFree(geometry.Point2{X: 5, Y: 5}, w, self, robot.AvoidRobots) {
		t.Error("a point far from every robot must be free under AvoidRobots")
	}
}
