// Package geometry implements the 2-D point/vector algebra, rectangles, and
// lines shared by the trajectory, world model, and motion packages.
package geometry

import (
	"errors"
	"math"
	"math/rand"
)

// Point2 is an (x, y) location in meters.
type Point2 struct {
	X, Y float64
}

// Vec2 is a displacement or velocity/acceleration in meters (per second[^2]).
type Vec2 struct {
	X, Y float64
}

// Zero is the origin.
var Zero = Point2{}

// To returns the vector from p to other: other - p.
func (p Point2) To(other Point2) Vec2 {
	return Vec2{X: other.X - p.X, Y: other.Y - p.Y}
}

// Add returns p translated by v.
func (p Point2) Add(v Vec2) Point2 {
	return Point2{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns p translated by the negation of v.
func (p Point2) Sub(v Vec2) Point2 {
	return Point2{X: p.X - v.X, Y: p.Y - v.Y}
}

// DistanceTo returns the Euclidean distance between p and other.
func (p Point2) DistanceTo(other Point2) float64 {
	return p.To(other).Norm()
}

// Norm returns the Euclidean length of v.
func (v Vec2) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns v scaled to unit length. The zero vector normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Angle returns atan2(y, x), i.e. the direction v points in, on (-pi, pi].
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Dot returns the dot product of v and other.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Scale returns v multiplied componentwise by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Add returns the sum of v and other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v minus other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Rotate returns v rotated counterclockwise by theta radians. The motion core
// uses this (with a negative theta) to transform a world-frame setpoint into
// a robot's body frame.
func (v Vec2) Rotate(theta float64) Vec2 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Vec2{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

// AngleDifference returns a1 - a2 folded onto (-pi, pi].
func AngleDifference(a1, a2 float64) float64 {
	diff := math.Mod(a1-a2, 2*math.Pi)
	switch {
	case diff > math.Pi:
		return diff - 2*math.Pi
	case diff <= -math.Pi:
		return diff + 2*math.Pi
	default:
		return diff
	}
}

// Rect is a canonicalized axis-aligned rectangle: Min is always the
// lower-left corner and Max the upper-right, regardless of the order the two
// defining corners were given in.
type Rect struct {
	Min, Max Point2
}

// NewRect canonicalizes the rectangle spanned by two arbitrary corners.
func NewRect(a, b Point2) Rect {
	return Rect{
		Min: Point2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// SampleInside returns a uniformly random point within the rectangle,
// inclusive of its boundary.
func (r Rect) SampleInside() Point2 {
	return Point2{
		X: r.Min.X + rand.Float64()*(r.Max.X-r.Min.X),
		Y: r.Min.Y + rand.Float64()*(r.Max.Y-r.Min.Y),
	}
}

// Contains reports whether p lies within the rectangle, inclusive of its boundary.
func (r Rect) Contains(p Point2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Line is a line segment between two endpoints. ClosestPointTo treats it as
// an infinite line (the projection parameter t is not clamped to [0, 1]);
// callers that need segment-clamped behavior must clamp t themselves.
type Line struct {
	Start, End Point2
}

// NewLine builds a line from its two endpoints.
func NewLine(start, end Point2) Line {
	return Line{Start: start, End: end}
}

// ClosestPointTo projects point onto the (infinite) line through Start and End.
func (l Line) ClosestPointTo(point Point2) Point2 {
	direction := l.Start.To(l.End)
	lengthSquared := direction.Dot(direction)
	if lengthSquared == 0 {
		return l.Start
	}
	toPoint := l.Start.To(point)
	t := toPoint.Dot(direction) / lengthSquared
	return l.Start.Add(direction.Scale(t))
}

// ErrLinesParallel is returned by Intersection when the two lines' direction
// vectors are parallel (their cross product is below machine epsilon).
var ErrLinesParallel = errors.New("geometry: lines are parallel")

// Intersection returns the point where l and other cross, treating both as
// infinite lines. Returns ErrLinesParallel if the direction vectors' cross
// product magnitude is below machine epsilon.
func (l Line) Intersection(other Line) (Point2, error) {
	d1 := l.Start.To(l.End)
	d2 := other.Start.To(other.End)

	cross := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(cross) < epsilon {
		return Point2{}, ErrLinesParallel
	}

	x1, y1 := l.Start.X, l.Start.Y
	x2, y2 := l.End.X, l.End.Y
	x3, y3 := other.Start.X, other.Start.Y
	x4, y4 := other.End.X, other.End.Y

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom

	return Point2{
		X: x1 + t*(x2-x1),
		Y: y1 + t*(y2-y1),
	}, nil
}

// epsilon is the machine-epsilon threshold below which two line directions
// are treated as parallel.
const epsilon = 2.220446049250313e-16
