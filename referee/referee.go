// Package referee carries the decoded Game Controller command type and a
// minimal dispatcher that pauses/resumes the control loop on it. The
// referee's own decision logic (when to issue which command) lives outside
// this process entirely; this package only models the command shape and
// the one piece of policy the core is responsible for: Halt/Stop means
// "stop sending live commands."
package referee

import (
	"sync/atomic"

	"fieldctl/geometry"
	"fieldctl/worldmodel"
)

// Command is one Game Controller directive. Additional SSL command kinds
// (kickoff, penalty, timeouts, ...) carry no extra data and so need no
// dedicated value here; they are not enumerated individually since no core
// behavior branches on them beyond Halt/Stop and ball placement.
type Command int

const (
	Halt Command = iota
	Stop
	ForceStart
	NormalStart
	DirectFreeBlue
	DirectFreeYellow
	BallPlacementBlue
	BallPlacementYellow
)

// Message pairs a Command with its optional designated ball-placement
// position (non-nil only for BallPlacementBlue/BallPlacementYellow).
type Message struct {
	Command            Command
	DesignatedPosition *geometry.Point2
}

// Dispatcher reads Messages and maintains the control loop's halted flag:
// Halt and Stop set it, everything else clears it. Ball-placement messages
// additionally record the designated position on the world for skills to
// read; no skill is auto-triggered by it, since play selection lives
// above this package.
type Dispatcher struct {
	halted int32
}

// NewDispatcher returns a Dispatcher that starts halted, matching a fresh
// match's initial state before any referee command has arrived.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{halted: 1}
}

// Halted reports whether the control loop should withhold live commands.
func (d *Dispatcher) Halted() bool {
	return atomic.LoadInt32(&d.halted) != 0
}

// Apply folds one referee Message into the dispatcher's state and, for
// ball-placement commands, into the world's designated position.
func (d *Dispatcher) Apply(w *worldmodel.World, msg Message) {
	switch msg.Command {
	case Halt, Stop:
		atomic.StoreInt32(&d.halted, 1)
	default:
		atomic.StoreInt32(&d.halted, 0)
	}

	switch msg.Command {
	case BallPlacementBlue, BallPlacementYellow:
		w.SetDesignatedPosition(msg.DesignatedPosition)
	default:
		w.SetDesignatedPosition(nil)
	}
}

// Run reads Messages off commands and applies them until commands closes
// or done fires: one goroutine, one channel, no internal fan-out.
func (d *Dispatcher) Run(done <-chan struct{}, w *worldmodel.World, commands <-chan Message) {
	for {
		select {
		case <-done:
			return
		case msg, ok := <-commands:
			if !ok {
				return
			}
			d.Apply(w, msg)
		}
	}
}
