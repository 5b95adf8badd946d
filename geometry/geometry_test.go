package geometry

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAngleDifference(t *testing.T) {
	Convey("Given arbitrary angles", t, func() {
		Convey("the result always lies on (-pi, pi]", func() {
			for a := -10.0; a < 10.0; a += 0.37 {
				for b := -10.0; b < 10.0; b += 0.53 {
					d := AngleDifference(a, b)
					So(d, ShouldBeGreaterThan, -math.Pi)
					So(d, ShouldBeLessThanOrEqualTo, math.Pi+1e-12)
				}
			}
		})

		Convey("is invariant to adding a full turn to either argument", func() {
			a, b := 1.2, -2.4
			So(AngleDifference(a+2*math.Pi, b), ShouldAlmostEqual, AngleDifference(a, b), 1e-9)
		})
	})
}

func TestLineIntersection(t *testing.T) {
	Convey("Given two crossing lines", t, func() {
		l1 := NewLine(Point2{X: -1, Y: 0}, Point2{X: 1, Y: 0})
		l2 := NewLine(Point2{X: 0, Y: -1}, Point2{X: 0, Y: 1})

		Convey("the intersection lies on both lines", func() {
			p, err := l1.Intersection(l2)
			So(err, ShouldBeNil)
			So(p.X, ShouldAlmostEqual, 0, 1e-9)
			So(p.Y, ShouldAlmostEqual, 0, 1e-9)
		})
	})

	Convey("Given two parallel lines", t, func() {
		l1 := NewLine(Point2{X: 0, Y: 0}, Point2{X: 1, Y: 0})
		l2 := NewLine(Point2{X: 0, Y: 1}, Point2{X: 1, Y: 1})

		Convey("Intersection reports ErrLinesParallel", func() {
			_, err := l1.Intersection(l2)
			So(err, ShouldEqual, ErrLinesParallel)
		})
	})
}

func TestLineClosestPoint(t *testing.T) {
	Convey("Given a horizontal line through the origin", t, func() {
		l := NewLine(Point2{X: -5, Y: 0}, Point2{X: 5, Y: 0})

		Convey("the closest point to a point above the line is its projection", func() {
			p := l.ClosestPointTo(Point2{X: 2, Y: 3})
			So(p.X, ShouldAlmostEqual, 2, 1e-9)
			So(p.Y, ShouldAlmostEqual, 0, 1e-9)
		})
	})
}

func TestRectSampleInside(t *testing.T) {
	Convey("Given a rectangle built from arbitrary corners", t, func() {
		r := NewRect(Point2{X: 3, Y: -2}, Point2{X: -1, Y: 4})

		Convey("it canonicalizes to Min <= Max", func() {
			So(r.Min.X, ShouldEqual, -1)
			So(r.Max.X, ShouldEqual, 3)
			So(r.Min.Y, ShouldEqual, -2)
			So(r.Max.Y, ShouldEqual, 4)
		})

		Convey("every sample lies inside the rectangle", func() {
			for i := 0; i < 200; i++ {
				So(r.Contains(r.SampleInside()), ShouldBeTrue)
			}
		})
	})
}

func TestVec2RotateRoundTrip(t *testing.T) {
	Convey("Rotating by theta then by -theta recovers the original vector", t, func() {
		v := Vec2{X: 1.5, Y: -0.7}
		got := v.Rotate(0.9).Rotate(-0.9)
		So(got.X, ShouldAlmostEqual, v.X, 1e-9)
		So(got.Y, ShouldAlmostEqual, v.Y, 1e-9)
	})
}
