package trajectory

import (
	"math"
	"testing"

	"fieldctl/geometry"

	. "github.com/smartystreets/goconvey/convey"
)

// checkUniversalInvariants asserts properties every profile must satisfy:
// it reaches s1 at rest, and never exceeds its saturation limits by more
// than a small slack delta.
func checkUniversalInvariants(t *testing.T, b BangBang1D, s1, vMax, aMax float64) {
	t.Helper()
	const delta = 1e-6
	runtime := b.TotalRuntime()

	if got := b.Position(runtime); math.Abs(got-s1) > 1e-6 {
		t.Errorf("Position(total_runtime) = %v, want %v", got, s1)
	}
	if got := b.Velocity(runtime); math.Abs(got) > 1e-6 {
		t.Errorf("Velocity(total_runtime) = %v, want 0", got)
	}

	const samples = 500
	for i := 0; i <= samples; i++ {
		tt := runtime * float64(i) / samples
		if v := b.Velocity(tt); math.Abs(v) > vMax+delta {
			t.Errorf("velocity(%v) = %v exceeds vMax=%v", tt, v, vMax)
		}
		if a := b.Acceleration(tt); math.Abs(a) > aMax+delta {
			t.Errorf("acceleration(%v) = %v exceeds aMax=%v", tt, a, aMax)
		}
	}
}

func TestBangBang1DTriangle(t *testing.T) {
	b := NewBangBang1D(0, 0, 1, 10, 10)
	checkUniversalInvariants(t, b, 1, 10, 10)

	wantRuntime := math.Sqrt(2*1/10.0) * 2
	if got := b.TotalRuntime(); math.Abs(got-wantRuntime) > 1e-6 {
		t.Errorf("runtime = %v, want %v", got, wantRuntime)
	}

	peak := 0.0
	for _, section := range b.TimeSections() {
		if v := math.Abs(b.Velocity(section)); v > peak {
			peak = v
		}
	}
	wantPeak := math.Sqrt(10.0) // a*t at the switch: 10 * sqrt(0.1)
	if math.Abs(peak-wantPeak) > 1e-6 {
		t.Errorf("peak speed = %v, want %v", peak, wantPeak)
	}

	if got := b.Position(b.TotalRuntime()); math.Abs(got-1) > 1e-9 {
		t.Errorf("terminal position = %v, want 1", got)
	}
}

func TestBangBang1DTrapezoid(t *testing.T) {
	b := NewBangBang1D(0, 0, 10, 2, 2)
	checkUniversalInvariants(t, b, 10, 2, 2)

	if got := b.TotalRuntime(); math.Abs(got-6) > 1e-6 {
		t.Errorf("runtime = %v, want 6", got)
	}
	if got := b.Position(3); math.Abs(got-5.0) > 1e-6 {
		t.Errorf("Position(3) = %v, want 5.0", got)
	}

	peakIdx := b.findPartIndex(2) // well inside the cruise segment
	if v := math.Abs(b.Velocity(b.parts[peakIdx].endTime - 0.01)); math.Abs(v-2) > 1e-2 {
		t.Errorf("cruise speed = %v, want ~2", v)
	}
}

func TestBangBang1DOvershootBrake(t *testing.T) {
	b := NewBangBang1D(0, 3, 1, 2, 2)
	// The profile starts above vMax=2, so its speed bound is the initial
	// speed 3 rather than vMax.
	checkUniversalInvariants(t, b, 1, 3, 2)

	// The profile must begin with negative acceleration (braking hard past
	// what forward braking alone would allow) before re-accelerating.
	if a := b.Acceleration(0); a >= 0 {
		t.Errorf("initial acceleration = %v, want negative", a)
	}

	runtime := b.TotalRuntime()
	if got := b.Position(runtime); math.Abs(got-1) > 1e-9 {
		t.Errorf("terminal position = %v, want 1", got)
	}
	if got := b.Velocity(runtime); math.Abs(got) > 1e-9 {
		t.Errorf("terminal velocity = %v, want 0", got)
	}
}

func TestBangBang2DAxisSplit(t *testing.T) {
	Convey("Given a 2-D bang-bang to (3, 4) with matched limits", t, func() {
		b := NewBangBang2D(geometry.Zero, geometry.Vec2{}, geometry.Point2{X: 3, Y: 4}, 5, 5, 1e-3)

		Convey("the axis runtimes agree within tolerance", func() {
			diff := math.Abs(b.x.TotalRuntime() - b.y.TotalRuntime())
			So(diff, ShouldBeLessThanOrEqualTo, 1e-3)
		})

		Convey("the profile reaches the target at rest", func() {
			p := b.Position(b.TotalRuntime())
			So(p.X, ShouldAlmostEqual, 3, 1e-6)
			So(p.Y, ShouldAlmostEqual, 4, 1e-6)
		})
	})
}
