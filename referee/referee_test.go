package referee

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"fieldctl/geometry"
	"fieldctl/robot"
	"fieldctl/worldmodel"
)

func TestDispatcherStartsHalted(t *testing.T) {
	Convey("A fresh Dispatcher", t, func() {
		d := NewDispatcher()
		So(d.Halted(), ShouldBeTrue)
	})
}

func TestApplyNormalStartClearsHalted(t *testing.T) {
	Convey("Given a halted dispatcher", t, func() {
		d := NewDispatcher()
		w := worldmodel.New(robot.Blue)

		Convey("NormalStart clears halted", func() {
			d.Apply(w, Message{Command: NormalStart})
			So(d.Halted(), ShouldBeFalse)
		})

		Convey("Stop re-halts after NormalStart", func() {
			d.Apply(w, Message{Command: NormalStart})
			d.Apply(w, Message{Command: Stop})
			So(d.Halted(), ShouldBeTrue)
		})
	})
}

func TestApplyBallPlacementSetsDesignatedPosition(t *testing.T) {
	Convey("Given a dispatcher and world", t, func() {
		d := NewDispatcher()
		w := worldmodel.New(robot.Blue)
		pos := geometry.Point2{X: 1, Y: -2}

		d.Apply(w, Message{Command: BallPlacementYellow, DesignatedPosition: &pos})

		Convey("the world records the designated position", func() {
			got, ok := w.DesignatedPosition()
			So(ok, ShouldBeTrue)
			So(got, ShouldResemble, pos)
		})

		Convey("a subsequent non-placement command clears it", func() {
			d.Apply(w, Message{Command: ForceStart})
			_, ok := w.DesignatedPosition()
			So(ok, ShouldBeFalse)
		})
	})
}

func TestRunAppliesMessagesUntilDone(t *testing.T) {
	Convey("Given a running dispatcher", t, func() {
		d := NewDispatcher()
		w := worldmodel.New(robot.Blue)
		done := make(chan struct{})
		commands := make(chan Message)

		go d.Run(done, w, commands)

		commands <- Message{Command: NormalStart}
		time.Sleep(10 * time.Millisecond)
		So(d.Halted(), ShouldBeFalse)

		close(done)
	})
}
