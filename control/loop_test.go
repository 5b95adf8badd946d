package control

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"fieldctl/controller"
	"fieldctl/geometry"
	"fieldctl/referee"
	"fieldctl/robot"
	"fieldctl/worldmodel"
)

func TestLoopEmitsCommandsThenStopPacket(t *testing.T) {
	Convey("Given a world with one ally and a running loop", t, func() {
		w := worldmodel.New(robot.Blue)
		a := w.UpsertAlly(1, geometry.Zero, 0, 0)
		a.SetTargetVelocity(geometry.Vec2{X: 1, Y: 0})

		out := make(chan controller.Packet, 8)
		loop := &Loop{
			World:   w,
			Adapter: controller.DirectAdapter{},
			Out:     out,
			Period:  time.Millisecond,
		}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			loop.Run(ctx)
			close(done)
		}()

		var pkt controller.Packet
		select {
		case pkt = <-out:
		case <-time.After(time.Second):
			t.Fatal("loop never emitted a packet")
		}
		cancel()
		<-done

		Convey("the emitted packet carries the ally's commanded velocity", func() {
			So(pkt.Commands, ShouldHaveLength, 1)
			So(pkt.Commands[0].Forward, ShouldEqual, 1.0)
		})

		Convey("a final stop packet follows once the loop stops", func() {
			var stop controller.Packet
			found := false
			for !found {
				select {
				case stop = <-out:
					if len(stop.Commands) == controller.NumRobotSlots {
						found = true
					}
				case <-time.After(time.Second):
					t.Fatal("no stop packet observed after shutdown")
				}
			}
			So(stop.Commands[0].DribblerSpeed, ShouldEqual, 0)
		})
	})
}

func TestLoopHaltedEmitsStopPacket(t *testing.T) {
	Convey("Given a halted referee dispatcher", t, func() {
		w := worldmodel.New(robot.Blue)
		a := w.UpsertAlly(1, geometry.Zero, 0, 0)
		a.SetTargetVelocity(geometry.Vec2{X: 2, Y: 0})

		disp := referee.NewDispatcher() // starts halted
		out := make(chan controller.Packet, 8)
		loop := &Loop{
			World:   w,
			Adapter: controller.DirectAdapter{},
			Referee: disp,
			Out:     out,
			Period:  time.Millisecond,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		loop.Run(ctx)

		Convey("every emitted packet is the zeroed stop packet, not the commanded velocity", func() {
			for {
				select {
				case pkt := <-out:
					So(pkt.Commands, ShouldHaveLength, controller.NumRobotSlots)
					So(pkt.Commands[0].Forward, ShouldEqual, 0)
				default:
					return
				}
			}
		})
	})
}
