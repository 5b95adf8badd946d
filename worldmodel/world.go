package worldmodel

import (
	"context"
	"sync"

	"fieldctl/geometry"
	"fieldctl/robot"
)

// World aggregates the team's shared view of the match: field geometry, the
// ball, and the ally/enemy robot maps, plus the broadcast primitive tasks
// suspend on between ticks. The ally and enemy maps are keyed by robot id
// within their own team color and are never the same map, so a robot can
// never appear in both.
type World struct {
	Color robot.TeamColor
	Field *Field
	Ball  *Ball

	alliesMu sync.Mutex
	allies   map[robot.ID]*robot.Ally

	enemiesMu sync.Mutex
	enemies   map[robot.ID]*robot.Enemy

	updated *Broadcast

	designatedMu sync.Mutex
	designated   *geometry.Point2
}

// New returns a world for the given observed team color, with an empty
// field at Division B defaults, a ball at the origin, and no robots known.
func New(color robot.TeamColor) *World {
	return &World{
		Color:   color,
		Field:   NewField(),
		Ball:    NewBall(),
		allies:  make(map[robot.ID]*robot.Ally),
		enemies: make(map[robot.ID]*robot.Enemy),
		updated: NewBroadcast(),
	}
}

// NotifyUpdate wakes every task currently blocked in NextUpdate. Called by
// vision ingestion once a frame has been fully applied, and by the control
// loop once feedback has been folded back in.
func (w *World) NotifyUpdate() { w.updated.Notify() }

// NextUpdate suspends the caller until the next NotifyUpdate, or until ctx
// is done.
func (w *World) NextUpdate(ctx context.Context) error { return w.updated.Wait(ctx) }

// AlliesDetected resolves once at least one ally is known, polling on
// successive world updates; used at startup to gate skill execution until
// vision has found the team.
func (w *World) AlliesDetected(ctx context.Context) error {
	for {
		w.alliesMu.Lock()
		n := len(w.allies)
		w.alliesMu.Unlock()
		if n > 0 {
			return nil
		}
		if err := w.NextUpdate(ctx); err != nil {
			return err
		}
	}
}

// UpsertAlly folds a vision detection into the ally with the given id,
// inserting a new ally (with default state) if the id hasn't been seen.
func (w *World) UpsertAlly(id robot.ID, pos geometry.Point2, orientation, tCapture float64) *robot.Ally {
	a := w.getOrInsertAlly(id)
	a.ApplyDetection(pos, orientation, tCapture)
	return a
}

func (w *World) getOrInsertAlly(id robot.ID) *robot.Ally {
	w.alliesMu.Lock()
	defer w.alliesMu.Unlock()
	a, ok := w.allies[id]
	if !ok {
		a = robot.NewAlly(id, w.Color)
		w.allies[id] = a
	}
	return a
}

// UpsertEnemy folds a vision detection into the enemy with the given id,
// inserting a new enemy (with default state) if the id hasn't been seen.
// Enemies carry the opposing team color.
func (w *World) UpsertEnemy(id robot.ID, pos geometry.Point2, orientation, tCapture float64) *robot.Enemy {
	e := w.getOrInsertEnemy(id)
	e.ApplyDetection(pos, orientation, tCapture)
	return e
}

func (w *World) getOrInsertEnemy(id robot.ID) *robot.Enemy {
	w.enemiesMu.Lock()
	defer w.enemiesMu.Unlock()
	e, ok := w.enemies[id]
	if !ok {
		e = robot.NewEnemy(id, w.Color.Opponent())
		w.enemies[id] = e
	}
	return e
}

// Ally returns the ally with the given id, if known.
func (w *World) Ally(id robot.ID) (*robot.Ally, bool) {
	w.alliesMu.Lock()
	defer w.alliesMu.Unlock()
	a, ok := w.allies[id]
	return a, ok
}

// Allies returns a snapshot copy of the ally map: a shallow clone safe to
// range over without holding the world's lock, per the control loop's
// per-tick snapshot step. The robot pointers themselves remain shared and
// are still protected by their own per-field locks.
func (w *World) Allies() map[robot.ID]*robot.Ally {
	w.alliesMu.Lock()
	defer w.alliesMu.Unlock()
	snapshot := make(map[robot.ID]*robot.Ally, len(w.allies))
	for id, a := range w.allies {
		snapshot[id] = a
	}
	return snapshot
}

// Enemies returns a snapshot copy of the enemy map.
func (w *World) Enemies() map[robot.ID]*robot.Enemy {
	w.enemiesMu.Lock()
	defer w.enemiesMu.Unlock()
	snapshot := make(map[robot.ID]*robot.Enemy, len(w.enemies))
	for id, e := range w.enemies {
		snapshot[id] = e
	}
	return snapshot
}

// SetDesignatedPosition records the referee's ball-placement target so
// skills can read it. Passing nil clears it (e.g. once play resumes).
func (w *World) SetDesignatedPosition(p *geometry.Point2) {
	w.designatedMu.Lock()
	defer w.designatedMu.Unlock()
	w.designated = p
}

// DesignatedPosition returns the last ball-placement position the referee
// named, and false if none is currently designated.
func (w *World) DesignatedPosition() (geometry.Point2, bool) {
	w.designatedMu.Lock()
	defer w.designatedMu.Unlock()
	if w.designated == nil {
		return geometry.Point2{}, false
	}
	return *w.designated, true
}
