// Package controller defines the wire-contract boundary between the
// control loop and a radio link: the adapter maps a snapshot of ally
// robots to one outbound command packet per tick and an inbound per-robot
// feedback map. Encoding Packet onto a real radio link, and decoding
// Feedback off one, are out of scope here; this package owns only the
// contract and its zeroed stop packet.
package controller

import "fieldctl/robot"

// NumRobotSlots is the number of robot command slots a stop packet always
// carries, independent of how many robots are actually known.
const NumRobotSlots = 16

// Kick speed and angle for a consumed kick request.
const (
	kickSpeed           = 4.0
	straightKickAngle   = 0.0
	chipKickAngleDeg    = 45.0
	dribblerOnSpeed     = 1.0
	dribblerOffSpeed    = 0.0
)

// RobotCommand is one robot's slice of an outbound Packet: local-frame
// velocity (forward/left, already rotated into the robot's body frame by
// the motion core), angular velocity, dribbler speed, and kick parameters.
type RobotCommand struct {
	ID              robot.ID
	Forward         float64
	Left            float64
	AngularVelocity float64
	DribblerSpeed   float64
	KickSpeed       float64
	KickAngleDeg    float64
}

// Packet is one tick's worth of outbound robot commands.
type Packet struct {
	Commands []RobotCommand
}

// Feedback is the per-robot bits the controller reports back each tick.
// The control loop only consumes DribblerBallContact; other fields a real
// link might carry (battery, wheel encoders, ...) are out of scope.
type Feedback struct {
	DribblerBallContact map[robot.ID]bool
}

// Adapter maps a snapshot of allies to one outbound Packet and the
// feedback observed while building it. Implementations own the actual
// wire format; this interface is the contract only.
type Adapter interface {
	Emit(allies map[robot.ID]*robot.Ally) (Packet, Feedback)
}

// StopPacket returns the shutdown packet: sixteen robot slots, all-zero
// wheel velocities, kick off, dribbler off.
func StopPacket() Packet {
	commands := make([]RobotCommand, NumRobotSlots)
	for i := range commands {
		commands[i] = RobotCommand{ID: robot.ID(i)}
	}
	return Packet{Commands: commands}
}

// DirectAdapter is the default Adapter: it reads each ally's commanded
// state directly (no queuing, no batching) and consumes at most one
// pending kick per robot per tick.
type DirectAdapter struct{}

// Emit builds a Packet from the live commanded state of every ally in the
// snapshot, and a Feedback reporting each ally's possession flag back
// (a real adapter would instead report what the radio link observed; this
// one has no hardware feedback channel, so it echoes HasBall, which the
// control loop then writes right back — harmless, since DirectAdapter is
// the degenerate no-hardware case, not the one exercised by a real link).
func (DirectAdapter) Emit(allies map[robot.ID]*robot.Ally) (Packet, Feedback) {
	commands := make([]RobotCommand, 0, len(allies))
	contact := make(map[robot.ID]bool, len(allies))

	for id, a := range allies {
		v := a.TargetVelocity()
		dribblerSpeed := dribblerOffSpeed
		if a.Dribbling() {
			dribblerSpeed = dribblerOnSpeed
		}

		speed, angle := 0.0, straightKickAngle
		switch a.TakeKick() {
		case robot.KickStraight:
			speed, angle = kickSpeed, straightKickAngle
		case robot.KickChip:
			speed, angle = kickSpeed, chipKickAngleDeg
		}

		commands = append(commands, RobotCommand{
			ID:              id,
			Forward:         v.X,
			Left:            v.Y,
			AngularVelocity: a.TargetAngularVel(),
			DribblerSpeed:   dribblerSpeed,
			KickSpeed:       speed,
			KickAngleDeg:    angle,
		})
		contact[id] = a.HasBall()
	}

	return Packet{Commands: commands}, Feedback{DribblerBallContact: contact}
}
