// Package control implements the fixed-rate control loop: each tick it
// snapshots the ally map, asks a controller.Adapter to emit a command
// packet and feedback, folds that feedback back into the world, and
// forwards the packet onward. On shutdown it emits one final zeroed stop
// packet before returning.
package control

import (
	"context"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	"go.uber.org/zap"

	"fieldctl/controller"
	"fieldctl/referee"
	"fieldctl/telemetry"
	"fieldctl/worldmodel"
)

// DefaultPeriod is the loop's default tick period (~10ms).
const DefaultPeriod = 10 * time.Millisecond

// Loop is the fixed-period aggregator. Out receives one Packet per tick
// (the link layer that writes it onto a radio or simulator is out of
// scope); Snapshots, if non-nil, receives a best-effort telemetry
// snapshot per tick for the websocket broadcaster — a slow or absent
// consumer never blocks the tick.
type Loop struct {
	World     *worldmodel.World
	Adapter   controller.Adapter
	Referee   *referee.Dispatcher
	Out       chan<- controller.Packet
	Snapshots chan<- telemetry.Snapshot
	Period    time.Duration
	Logger    *zap.SugaredLogger
}

// Run ticks the loop every Period until ctx is done, then emits the final
// stop packet and returns. It uses a done-aware ticker channel rather than
// a bare time.Ticker, so the loop needs no select of its own: it ranges
// over that one channel until ctx is done.
func (l *Loop) Run(ctx context.Context) {
	period := l.Period
	if period <= 0 {
		period = DefaultPeriod
	}

	for range channerics.NewTicker(ctx.Done(), period) {
		l.tick()
	}
	l.emitStop()
}

func (l *Loop) tick() {
	allies := l.World.Allies()

	var packet controller.Packet
	var feedback controller.Feedback
	if l.Referee != nil && l.Referee.Halted() {
		packet = controller.StopPacket()
	} else {
		packet, feedback = l.Adapter.Emit(allies)
	}

	for id, hasBall := range feedback.DribblerBallContact {
		if a, ok := allies[id]; ok {
			a.SetHasBall(hasBall)
		}
	}

	l.World.NotifyUpdate()
	l.send(packet)
	l.publishSnapshot()
}

func (l *Loop) send(p controller.Packet) {
	select {
	case l.Out <- p:
	default:
		if l.Logger != nil {
			l.Logger.Warnw("dropped outbound packet, link not keeping up")
		}
	}
}

func (l *Loop) publishSnapshot() {
	if l.Snapshots == nil {
		return
	}
	select {
	case l.Snapshots <- telemetry.BuildSnapshot(l.World):
	default:
	}
}

func (l *Loop) emitStop() {
	if l.Logger != nil {
		l.Logger.Infow("control loop stopping, emitting stop packet")
	}
	select {
	case l.Out <- controller.StopPacket():
	default:
		if l.Logger != nil {
			l.Logger.Warnw("stop packet dropped, link not keeping up")
		}
	}
}
