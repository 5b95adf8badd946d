// Package trajectory implements minimum-time double-integrator (bang-bang)
// motion profiles: a 1-D profile of up to three constant-acceleration
// segments, and a 2-D profile built by splitting the velocity/acceleration
// budget between axes so both finish at the same time.
package trajectory

import "math"

// part is one constant-acceleration segment of a 1-D profile.
type part struct {
	endTime     float64
	initialPos  float64
	initialVel  float64
	accel       float64
}

// BangBang1D is a minimum-time profile from an initial (position, velocity)
// to a target position with zero terminal velocity, saturating at maxVel
// and maxAccel. Shape is triangular (accel, decel) or trapezoidal (accel,
// cruise, decel); see NewBangBang1D.
type BangBang1D struct {
	parts  [3]part
	nParts int
}

// posIfBrakeUntilZeroVel returns the position reached if the body applies
// full deceleration from (s0, v0) until velocity reaches zero.
func posIfBrakeUntilZeroVel(s0, v0, aMax float64) float64 {
	a := -aMax
	if v0 < 0 {
		a = aMax
	}
	timeToStop := -v0 / a
	return s0 + 0.5*v0*timeToStop
}

// posIfBrakeUntilZeroVelTriangle returns the position reached if the body
// first accelerates from (s0, v0) to v1 then decelerates to zero.
func posIfBrakeUntilZeroVelTriangle(s0, v0, v1, aMax float64) float64 {
	a1, a2 := aMax, -aMax
	if v1 < v0 {
		a1, a2 = -aMax, aMax
	}

	t1 := (v1 - v0) / a1
	s1 := s0 + 0.5*(v0+v1)*t1

	t2 := -v1 / a2
	return s1 + 0.5*v1*t2
}

// NewBangBang1D builds a minimum-time profile from (initialPos, initialVel)
// to targetPos that saturates at maxVel/maxAccel and ends at rest: if
// braking now would undershoot the target, the profile accelerates forward
// (triangular if it never needs to reach maxVel, trapezoidal with a maxVel
// cruise otherwise); if braking now would overshoot, the mirror image
// applies in the opposite direction.
func NewBangBang1D(initialPos, initialVel, targetPos, maxVel, maxAccel float64) BangBang1D {
	posAtZeroAccel := posIfBrakeUntilZeroVel(initialPos, initialVel, maxAccel)

	if posAtZeroAccel <= targetPos {
		posEnd := posIfBrakeUntilZeroVelTriangle(initialPos, initialVel, maxVel, maxAccel)
		if posEnd >= targetPos {
			return calcTriangle(initialPos, initialVel, targetPos, maxAccel)
		}
		return calcTrapezoid(initialPos, initialVel, maxVel, targetPos, maxAccel)
	}

	posEnd := posIfBrakeUntilZeroVelTriangle(initialPos, initialVel, -maxVel, maxAccel)
	if posEnd <= targetPos {
		return calcTriangle(initialPos, initialVel, targetPos, -maxAccel)
	}
	return calcTrapezoid(initialPos, initialVel, -maxVel, targetPos, maxAccel)
}

func calcTriangle(s0, v0, s2, a float64) BangBang1D {
	var sq float64
	if a > 0 {
		sq = (a*(s2-s0) + 0.5*v0*v0) / (a * a)
	} else {
		sq = (-a*(s0-s2) + 0.5*v0*v0) / (a * a)
	}

	t2 := 0.0
	if sq > 0 {
		t2 = math.Sqrt(sq)
	}
	v1 := a * t2
	t1 := (v1 - v0) / a
	s1 := s0 + (v0+v1)*0.5*t1

	var parts [3]part
	parts[0] = part{endTime: t1, accel: a, initialVel: v0, initialPos: s0}
	parts[1] = part{endTime: t1 + t2, accel: -a, initialVel: v1, initialPos: s1}
	return BangBang1D{parts: parts, nParts: 2}
}

func calcTrapezoid(s0, v0, v1, s3, aMax float64) BangBang1D {
	a1 := aMax
	if v0 > v1 {
		a1 = -aMax
	}
	a3 := -aMax
	if v1 <= 0 {
		a3 = aMax
	}
	t1 := (v1 - v0) / a1
	v2 := v1
	t3 := -v2 / a3
	s1 := s0 + 0.5*(v0+v1)*t1
	s2 := s3 - 0.5*v2*t3
	t2 := (s2 - s1) / v1

	var parts [3]part
	parts[0] = part{endTime: t1, accel: a1, initialVel: v0, initialPos: s0}
	parts[1] = part{endTime: t1 + t2, accel: 0, initialVel: v1, initialPos: s1}
	parts[2] = part{endTime: t1 + t2 + t3, accel: a3, initialVel: v2, initialPos: s2}
	return BangBang1D{parts: parts, nParts: 3}
}

func (b BangBang1D) findPartIndex(t float64) int {
	for i := 0; i < b.nParts; i++ {
		if t < b.parts[i].endTime {
			return i
		}
	}
	return b.nParts - 1
}

// TotalRuntime returns the time at which the profile reaches its terminal,
// at-rest state.
func (b BangBang1D) TotalRuntime() float64 {
	return b.parts[b.nParts-1].endTime
}

// Position returns the profile's position at time t. Times before 0 are
// clamped to 0; times past TotalRuntime hold at the terminal position.
func (b BangBang1D) Position(t float64) float64 {
	t = math.Max(t, 0)

	if t >= b.TotalRuntime() {
		last := b.parts[b.nParts-1]
		dt := last.endTime - b.parts[b.nParts-2].endTime
		if b.nParts == 1 {
			dt = last.endTime
		}
		return last.initialPos + last.initialVel*dt + 0.5*last.accel*dt*dt
	}

	idx := b.findPartIndex(t)
	piece := b.parts[idx]
	pieceStart := 0.0
	if idx >= 1 {
		pieceStart = b.parts[idx-1].endTime
	}
	dt := t - pieceStart
	return piece.initialPos + piece.initialVel*dt + 0.5*piece.accel*dt*dt
}

// Velocity returns the profile's velocity at time t; zero once the profile
// has finished.
func (b BangBang1D) Velocity(t float64) float64 {
	t = math.Max(t, 0)
	if t >= b.TotalRuntime() {
		return 0
	}

	idx := b.findPartIndex(t)
	piece := b.parts[idx]
	pieceStart := 0.0
	if idx >= 1 {
		pieceStart = b.parts[idx-1].endTime
	}
	dt := t - pieceStart
	return piece.initialVel + piece.accel*dt
}

// Acceleration returns the profile's (piecewise-constant) acceleration at
// time t; zero once the profile has finished.
func (b BangBang1D) Acceleration(t float64) float64 {
	t = math.Max(t, 0)
	if t >= b.TotalRuntime() {
		return 0
	}
	return b.parts[b.findPartIndex(t)].accel
}

// TimeSections returns the end times of each segment, in order.
func (b BangBang1D) TimeSections() []float64 {
	sections := make([]float64, b.nParts)
	for i := 0; i < b.nParts; i++ {
		sections[i] = b.parts[i].endTime
	}
	return sections
}
