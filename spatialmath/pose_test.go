package spatialmath_test

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/navbotics/navkit/spatialmath"
)

func TestTransformPointInto(t *testing.T) {
	// Robot at (1,1) facing +y; a world point one meter further along +y is
	// directly ahead of the robot.
	pose := spatialmath.NewPose2D(1, 1, math.Pi/2)
	pt := pose.TransformPointInto(r2.Point{X: 1, Y: 2})
	test.That(t, pt.X, test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 0, 1e-12)

	// A point to the robot's left.
	pt = pose.TransformPointInto(r2.Point{X: 0, Y: 1})
	test.That(t, pt.X, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 1, 1e-12)
}

func TestTransformRoundTrip(t *testing.T) {
	pose := spatialmath.NewPose2D(-2.5, 3.1, 0.7)
	for _, pt := range []r2.Point{{X: 0, Y: 0}, {X: 4, Y: -1}, {X: -3.3, Y: 2.2}} {
		back := pose.TransformPointFrom(pose.TransformPointInto(pt))
		test.That(t, back.X, test.ShouldAlmostEqual, pt.X, 1e-12)
		test.That(t, back.Y, test.ShouldAlmostEqual, pt.Y, 1e-12)
	}
}

func TestTwistRotated(t *testing.T) {
	tw := spatialmath.Twist2D{VX: 1, VY: 0, Omega: 0.5}
	rot := tw.Rotated(math.Pi / 2)
	test.That(t, rot.VX, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, rot.VY, test.ShouldAlmostEqual, 1, 1e-12)
	// Angular velocity is unchanged by a planar frame change.
	test.That(t, rot.Omega, test.ShouldEqual, 0.5)

	test.That(t, tw.Speed(), test.ShouldAlmostEqual, 1)
}
