package trajectory

import (
	"math"

	"fieldctl/geometry"
)

// BangBang2D composes two 1-D profiles (x and y) whose runtimes are made to
// agree within a tolerance by splitting the velocity/acceleration budget
// between axes.
type BangBang2D struct {
	x, y BangBang1D
}

// maxAlphaIterations bounds the binary search over the velocity/acceleration
// split angle; each iteration halves the search interval, so this many
// iterations drives the interval well below any plausible tolerance.
const maxAlphaIterations = 40

// NewBangBang2D builds a 2-D bang-bang profile from (initialPos, initialVel)
// to targetPos. It searches alpha in (0, pi/2) by bisection starting at
// pi/4: at each step the x-axis receives maxVel*cos(alpha)/maxAccel*cos(alpha)
// and the y-axis maxVel*sin(alpha)/maxAccel*sin(alpha), and alpha is nudged
// toward whichever axis is slower until the two runtimes agree within
// accuracy or the iteration budget is spent.
func NewBangBang2D(
	initialPos geometry.Point2,
	initialVel geometry.Vec2,
	targetPos geometry.Point2,
	maxVel, maxAccel, accuracy float64,
) BangBang2D {
	inc := math.Pi / 8.0
	alpha := math.Pi / 4.0

	var x, y BangBang1D
	for i := 0; i < maxAlphaIterations && inc > 1e-7; i++ {
		sa, ca := math.Sin(alpha), math.Cos(alpha)

		x = NewBangBang1D(initialPos.X, initialVel.X, targetPos.X, maxVel*ca, maxAccel*ca)
		y = NewBangBang1D(initialPos.Y, initialVel.Y, targetPos.Y, maxVel*sa, maxAccel*sa)

		diff := math.Abs(x.TotalRuntime() - y.TotalRuntime())
		if diff < accuracy {
			break
		}
		if x.TotalRuntime() > y.TotalRuntime() {
			alpha -= inc
		} else {
			alpha += inc
		}
		inc *= 0.5
	}

	return BangBang2D{x: x, y: y}
}

// Position returns the profile's position at time t.
func (b BangBang2D) Position(t float64) geometry.Point2 {
	return geometry.Point2{X: b.x.Position(t), Y: b.y.Position(t)}
}

// Velocity returns the profile's velocity at time t.
func (b BangBang2D) Velocity(t float64) geometry.Vec2 {
	return geometry.Vec2{X: b.x.Velocity(t), Y: b.y.Velocity(t)}
}

// Acceleration returns the profile's acceleration at time t.
func (b BangBang2D) Acceleration(t float64) geometry.Vec2 {
	return geometry.Vec2{X: b.x.Acceleration(t), Y: b.y.Acceleration(t)}
}

// TotalRuntime returns the later of the two axes' runtimes.
func (b BangBang2D) TotalRuntime() float64 {
	return math.Max(b.x.TotalRuntime(), b.y.TotalRuntime())
}

// TimeSections returns every segment boundary from both axes, unsorted and
// with duplicates; callers that need a clean sweep dedupe and sort it
// themselves.
func (b BangBang2D) TimeSections() []float64 {
	return append(b.x.TimeSections(), b.y.TimeSections()...)
}
