// Package robot holds per-robot state: pose, possession, and (for allies)
// the commanded state a skill writes and the control loop reads. Every
// attribute lives behind its own lock or atomic cell so unrelated fields
// never contend, matching the world model's per-field locking discipline.
package robot

import (
	"sync"

	"fieldctl/geometry"
	"fieldctl/internal/atomicfloat"
)

// ID identifies a robot within a team color's map.
type ID = uint8

// TeamColor is one of the two SSL team colors.
type TeamColor int

const (
	Blue TeamColor = iota
	Yellow
)

// Opponent returns the other team color.
func (c TeamColor) Opponent() TeamColor {
	if c == Blue {
		return Yellow
	}
	return Blue
}

func (c TeamColor) String() string {
	if c == Blue {
		return "blue"
	}
	return "yellow"
}

// Kick is a pending kick request, or KickNone when nothing is queued.
type Kick int

const (
	KickNone Kick = iota
	KickStraight
	KickChip
)

// AvoidanceMode selects what the motion core treats as an obstacle.
type AvoidanceMode int

const (
	// AvoidNone disables obstacle checks entirely.
	AvoidNone AvoidanceMode = iota
	// AvoidRobots treats every other robot's body as an obstacle.
	AvoidRobots
	// AvoidRobotsAndBall additionally treats the ball as an obstacle.
	AvoidRobotsAndBall
)

// collisionRadius is the minimum center-to-center distance between two
// robot bodies (each approximated as a 10cm-radius disc, plus a 10cm buffer).
const collisionRadius = 0.3

// Base is the pose and possession state shared by allies and enemies.
type Base struct {
	id    ID
	color TeamColor

	posMu sync.Mutex
	pos   geometry.Point2

	velMu sync.Mutex
	vel   geometry.Vec2

	orientation atomicfloat.Float64
	angularVel  atomicfloat.Float64

	hasBallMu sync.Mutex
	hasBall   bool

	lastUpdateMu sync.Mutex
	lastUpdate   *float64 // capture-time seconds; nil until the first detection
}

func newBase(id ID, color TeamColor) Base {
	return Base{id: id, color: color}
}

// ID returns the robot's id, unique within its team color's map.
func (b *Base) ID() ID { return b.id }

// Color returns the robot's team color.
func (b *Base) Color() TeamColor { return b.color }

// Position returns the robot's last-known position.
func (b *Base) Position() geometry.Point2 {
	b.posMu.Lock()
	defer b.posMu.Unlock()
	return b.pos
}

// SetPosition overwrites the robot's position.
func (b *Base) SetPosition(p geometry.Point2) {
	b.posMu.Lock()
	defer b.posMu.Unlock()
	b.pos = p
}

// GetReactive implements motion.Reactive: a robot is itself a valid
// destination, so goto can track another robot directly.
func (b *Base) GetReactive() geometry.Point2 { return b.Position() }

// Velocity returns the robot's last-known velocity.
func (b *Base) Velocity() geometry.Vec2 {
	b.velMu.Lock()
	defer b.velMu.Unlock()
	return b.vel
}

// SetVelocity overwrites the robot's velocity.
func (b *Base) SetVelocity(v geometry.Vec2) {
	b.velMu.Lock()
	defer b.velMu.Unlock()
	b.vel = v
}

// Orientation returns the robot's heading in radians on (-pi, pi].
func (b *Base) Orientation() float64 { return b.orientation.Load() }

// SetOrientation overwrites the robot's heading.
func (b *Base) SetOrientation(theta float64) { b.orientation.Store(theta) }

// AngularVel returns the robot's angular velocity in rad/s.
func (b *Base) AngularVel() float64 { return b.angularVel.Load() }

// SetAngularVel overwrites the robot's angular velocity.
func (b *Base) SetAngularVel(w float64) { b.angularVel.Store(w) }

// HasBall reports whether the robot currently possesses the ball.
func (b *Base) HasBall() bool {
	b.hasBallMu.Lock()
	defer b.hasBallMu.Unlock()
	return b.hasBall
}

// SetHasBall overwrites the robot's possession flag.
func (b *Base) SetHasBall(v bool) {
	b.hasBallMu.Lock()
	defer b.hasBallMu.Unlock()
	b.hasBall = v
}

// LastUpdate returns the capture-time of the last applied detection, and
// false if the robot has never been updated.
func (b *Base) LastUpdate() (float64, bool) {
	b.lastUpdateMu.Lock()
	defer b.lastUpdateMu.Unlock()
	if b.lastUpdate == nil {
		return 0, false
	}
	return *b.lastUpdate, true
}

// ApplyDetection folds a single vision detection into the robot's pose. If
// a prior detection exists and is strictly older than tCapture, velocity and
// angular velocity are estimated by finite difference against the prior
// pose; otherwise only position, orientation, and the timestamp advance.
func (b *Base) ApplyDetection(pos geometry.Point2, orientation, tCapture float64) {
	b.lastUpdateMu.Lock()
	prior := b.lastUpdate
	b.lastUpdateMu.Unlock()

	if prior != nil && *prior < tCapture {
		dt := tCapture - *prior
		b.SetVelocity(b.Position().To(pos).Scale(1 / dt))
		b.SetAngularVel(geometry.AngleDifference(orientation, b.Orientation()) / dt)
	}

	b.lastUpdateMu.Lock()
	t := tCapture
	b.lastUpdate = &t
	b.lastUpdateMu.Unlock()

	b.SetPosition(pos)
	b.SetOrientation(orientation)
}

// To returns the vector from the robot's position to other.
func (b *Base) To(other geometry.Point2) geometry.Vec2 { return b.Position().To(other) }

// DistanceTo returns the distance from the robot's position to p.
func (b *Base) DistanceTo(p geometry.Point2) float64 { return b.Position().DistanceTo(p) }

// CollidesWith reports whether pos lies within this robot's collision disc.
func (b *Base) CollidesWith(pos geometry.Point2) bool {
	return b.DistanceTo(pos) < collisionRadius
}

// OrientationDiffTo returns the signed angular distance from the robot's
// current heading to target, on (-pi, pi].
func (b *Base) OrientationDiffTo(target float64) float64 {
	return geometry.AngleDifference(target, b.Orientation())
}

// Pov transforms a world-frame point into the robot's body frame.
func (b *Base) Pov(posWorld geometry.Point2) geometry.Point2 {
	toPos := b.To(posWorld)
	rotated := toPos.Rotate(-b.Orientation())
	return geometry.Zero.Add(rotated)
}

// PovVec transforms a world-frame vector into the robot's body frame.
func (b *Base) PovVec(vecWorld geometry.Vec2) geometry.Vec2 {
	return vecWorld.Rotate(-b.Orientation())
}

// Ally is a friendly robot: it carries the pose fields every robot has plus
// the commanded state a skill writes and the control loop consumes.
type Ally struct {
	Base

	targetVelMu sync.Mutex
	targetVel   geometry.Vec2

	targetAngularVel atomicfloat.Float64

	dribbleMu sync.Mutex
	dribbling bool

	kickMu sync.Mutex
	kick   Kick
}

// NewAlly constructs an ally robot with zeroed pose and no pending command.
func NewAlly(id ID, color TeamColor) *Ally {
	return &Ally{Base: newBase(id, color)}
}

// TargetVelocity returns the last commanded body-frame velocity.
func (a *Ally) TargetVelocity() geometry.Vec2 {
	a.targetVelMu.Lock()
	defer a.targetVelMu.Unlock()
	return a.targetVel
}

// SetTargetVelocity overwrites the commanded body-frame velocity.
func (a *Ally) SetTargetVelocity(v geometry.Vec2) {
	a.targetVelMu.Lock()
	defer a.targetVelMu.Unlock()
	a.targetVel = v
}

// TargetAngularVel returns the last commanded angular velocity.
func (a *Ally) TargetAngularVel() float64 { return a.targetAngularVel.Load() }

// SetTargetAngularVel overwrites the commanded angular velocity.
func (a *Ally) SetTargetAngularVel(w float64) { a.targetAngularVel.Store(w) }

// Dribbling reports whether the dribbler is commanded on.
func (a *Ally) Dribbling() bool {
	a.dribbleMu.Lock()
	defer a.dribbleMu.Unlock()
	return a.dribbling
}

// EnableDribbler commands the dribbler on.
func (a *Ally) EnableDribbler() {
	a.dribbleMu.Lock()
	defer a.dribbleMu.Unlock()
	a.dribbling = true
}

// DisableDribbler commands the dribbler off.
func (a *Ally) DisableDribbler() {
	a.dribbleMu.Lock()
	defer a.dribbleMu.Unlock()
	a.dribbling = false
}

// RequestKick queues a kick. The controller adapter consumes it on the next
// tick via TakeKick, clearing the pending flag.
func (a *Ally) RequestKick(k Kick) {
	a.kickMu.Lock()
	defer a.kickMu.Unlock()
	a.kick = k
}

// TakeKick returns the pending kick and resets it to KickNone.
func (a *Ally) TakeKick() Kick {
	a.kickMu.Lock()
	defer a.kickMu.Unlock()
	k := a.kick
	a.kick = KickNone
	return k
}

// Enemy is an opposing robot: pose only, no commanded state. There is no
// feedback source for enemy possession, so it is left permanently false
// (Base.hasBall's zero value).
type Enemy struct {
	Base
}

// NewEnemy constructs an enemy robot with zeroed pose.
func NewEnemy(id ID, color TeamColor) *Enemy {
	return &Enemy{Base: newBase(id, color)}
}
