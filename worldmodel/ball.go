package worldmodel

import (
	"sync"

	"fieldctl/geometry"
)

// Ball is the shared ball state: position, velocity, and the capture time
// of its last update. Created once at world construction and mutated by
// vision ingestion for the life of the process; never destroyed.
type Ball struct {
	mu         sync.Mutex
	pos        geometry.Point2
	vel        geometry.Vec2
	lastUpdate *float64
}

// NewBall returns a ball at the origin with no velocity and no prior update.
func NewBall() *Ball {
	return &Ball{}
}

// Position returns the ball's last-known position.
func (b *Ball) Position() geometry.Point2 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pos
}

// GetReactive implements motion.Reactive, letting goto track a moving ball.
func (b *Ball) GetReactive() geometry.Point2 { return b.Position() }

// Velocity returns the ball's last finite-difference velocity estimate.
func (b *Ball) Velocity() geometry.Vec2 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.vel
}

// LastUpdate returns the capture time of the last applied update, and false
// if the ball has never been updated.
func (b *Ball) LastUpdate() (float64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lastUpdate == nil {
		return 0, false
	}
	return *b.lastUpdate, true
}

// Update folds a new ball detection into state: if a strictly older prior
// capture exists, velocity is the finite difference against the prior
// position; position and the capture timestamp always advance.
func (b *Ball) Update(pos geometry.Point2, tCapture float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.lastUpdate != nil && *b.lastUpdate < tCapture {
		dt := tCapture - *b.lastUpdate
		b.vel = b.pos.To(pos).Scale(1 / dt)
	}
	t := tCapture
	b.lastUpdate = &t
	b.pos = pos
}
