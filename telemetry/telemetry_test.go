package telemetry

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"fieldctl/geometry"
	"fieldctl/robot"
	"fieldctl/worldmodel"
)

func TestBuildSnapshotIncludesBallAndRobots(t *testing.T) {
	Convey("Given a world with the ball, an ally, and an enemy", t, func() {
		w := worldmodel.New(robot.Blue)
		w.Ball.Update(geometry.Point2{X: 1, Y: 2}, 1.0)
		w.UpsertAlly(1, geometry.Point2{X: 3, Y: 4}, 0.5, 1.0)
		w.UpsertEnemy(9, geometry.Point2{X: -1, Y: -1}, 0, 1.0)

		snap := BuildSnapshot(w)

		Convey("it has one ball point and two robots", func() {
			So(snap.Objects, ShouldHaveLength, 3)

			var points, robots int
			for _, o := range snap.Objects {
				switch o.Kind {
				case ObjectPoint:
					points++
					So(o.X, ShouldEqual, 1)
					So(o.Y, ShouldEqual, 2)
				case ObjectRobot:
					robots++
				}
			}
			So(points, ShouldEqual, 1)
			So(robots, ShouldEqual, 2)
		})

		Convey("the ally and enemy are tagged with their own team colors", func() {
			colors := map[string]bool{}
			for _, o := range snap.Objects {
				if o.Kind == ObjectRobot {
					colors[o.Color] = true
				}
			}
			So(colors, ShouldContainKey, "blue")
			So(colors, ShouldContainKey, "yellow")
		})
	})
}
