// Package vision implements a decode-agnostic ingress: it consumes
// already-decoded Frame values (the SSL-Vision protobuf decode itself is
// out of scope) and folds them into a worldmodel.World, computing
// finite-difference velocities and notifying waiters once a frame has been
// fully applied. A malformed frame is dropped without affecting state or
// propagating an error past Ingest's caller.
package vision

import (
	"math"

	"go.uber.org/zap"

	"fieldctl/geometry"
	"fieldctl/robot"
	"fieldctl/worldmodel"
)

// millimetersPerMeter converts the wire's millimeter coordinates to the
// meters every other package works in.
const millimetersPerMeter = 1000.0

// BallDetection is a single ball observation, in millimeters.
type BallDetection struct {
	X, Y float64
}

// RobotDetection is a single robot observation, in millimeters, with
// orientation in radians.
type RobotDetection struct {
	ID          robot.ID
	X, Y        float64
	Orientation float64
}

// GeometryDetection carries the field length/width, in millimeters, from
// an SSL-Vision geometry packet. Goal dimensions are not part of this
// block and are left at whatever the field already has.
type GeometryDetection struct {
	LengthMM, WidthMM float64
}

// Frame is one decoded vision frame: a capture timestamp (monotonic
// seconds from the vision source's own epoch), an optional ball
// detection, the two per-color robot detection lists, and an optional
// geometry block.
type Frame struct {
	CaptureTime float64
	Ball        *BallDetection
	Blue        []RobotDetection
	Yellow      []RobotDetection
	Geometry    *GeometryDetection
}

// valid reports whether every numeric field in frame is finite. Malformed
// frames (NaN/Inf coordinates, e.g. from a corrupted packet) are dropped
// rather than folded into the world.
func (f Frame) valid() bool {
	if !finite(f.CaptureTime) {
		return false
	}
	if f.Ball != nil && !(finite(f.Ball.X) && finite(f.Ball.Y)) {
		return false
	}
	for _, list := range [][]RobotDetection{f.Blue, f.Yellow} {
		for _, d := range list {
			if !(finite(d.X) && finite(d.Y) && finite(d.Orientation)) {
				return false
			}
		}
	}
	if f.Geometry != nil && !(finite(f.Geometry.LengthMM) && finite(f.Geometry.WidthMM)) {
		return false
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Ingest folds one decoded frame into w: the ball (if present), both
// robot detection lists (split into allies/enemies by w.Color), and the
// geometry block (if present). Detections are applied and the world is
// notified before Ingest returns, so the next NextUpdate the world's
// waiters observe always sees the whole frame applied, never a partial
// one. A malformed frame is logged at Warn and dropped: Ingest leaves the
// world untouched and returns without notifying.
func Ingest(w *worldmodel.World, logger *zap.SugaredLogger, frame Frame) {
	if !frame.valid() {
		logger.Warnw("dropping malformed vision frame", "captureTime", frame.CaptureTime)
		return
	}

	if frame.Ball != nil {
		w.Ball.Update(mmToM(frame.Ball.X, frame.Ball.Y), frame.CaptureTime)
	}

	applyDetections(w, frame.Blue, robot.Blue, frame.CaptureTime)
	applyDetections(w, frame.Yellow, robot.Yellow, frame.CaptureTime)

	if frame.Geometry != nil {
		length := frame.Geometry.LengthMM / millimetersPerMeter
		width := frame.Geometry.WidthMM / millimetersPerMeter
		w.Field.SetLengthWidth(length, width)
	}

	w.NotifyUpdate()
}

func applyDetections(w *worldmodel.World, detections []RobotDetection, color robot.TeamColor, captureTime float64) {
	for _, d := range detections {
		pos := mmToM(d.X, d.Y)
		if color == w.Color {
			w.UpsertAlly(d.ID, pos, d.Orientation, captureTime)
		} else {
			w.UpsertEnemy(d.ID, pos, d.Orientation, captureTime)
		}
	}
}

func mmToM(x, y float64) geometry.Point2 {
	return geometry.Point2{X: x / millimetersPerMeter, Y: y / millimetersPerMeter}
}

// Run reads Frames off frames and ingests each one until frames closes or
// done fires, the same single-purpose worker-goroutine shape as
// referee.Dispatcher.Run.
func Run(done <-chan struct{}, w *worldmodel.World, logger *zap.SugaredLogger, frames <-chan Frame) {
	for {
		select {
		case <-done:
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			Ingest(w, logger, frame)
		}
	}
}
