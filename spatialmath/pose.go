// Package spatialmath defines the 2-D geometry shared between a navigation
// core and the robot it drives: planar poses and velocities, frame
// transforms, and the collision primitive used to test straight-line
// candidate motions against point obstacles.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Pose2D is a robot position and heading in the world frame.
// X and Y are meters, Theta is radians.
type Pose2D struct {
	X     float64
	Y     float64
	Theta float64
}

// NewPose2D creates a pose from world coordinates and a heading.
func NewPose2D(x, y, theta float64) Pose2D {
	return Pose2D{X: x, Y: y, Theta: theta}
}

// Point returns the position component of the pose.
func (p Pose2D) Point() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// TransformPointInto maps a world-frame point into the robot-centric frame
// of this pose: the robot at the origin, heading along +x.
func (p Pose2D) TransformPointInto(pt r2.Point) r2.Point {
	dx := pt.X - p.X
	dy := pt.Y - p.Y
	sin, cos := math.Sincos(p.Theta)
	return r2.Point{
		X: dx*cos + dy*sin,
		Y: -dx*sin + dy*cos,
	}
}

// TransformPointFrom maps a robot-centric point of this pose back into the
// world frame. It is the inverse of TransformPointInto.
func (p Pose2D) TransformPointFrom(pt r2.Point) r2.Point {
	sin, cos := math.Sincos(p.Theta)
	return r2.Point{
		X: p.X + pt.X*cos - pt.Y*sin,
		Y: p.Y + pt.X*sin + pt.Y*cos,
	}
}

func (p Pose2D) String() string {
	return fmt.Sprintf("(%.3f,%.3f,%.1fdeg)", p.X, p.Y, p.Theta*180/math.Pi)
}

// Twist2D is an instantaneous planar velocity. VX and VY are m/s in the
// world frame, Omega is rad/s. A Twist2D is paired 1:1 with the Pose2D it
// was sampled with.
type Twist2D struct {
	VX    float64
	VY    float64
	Omega float64
}

// Rotated returns the twist with its linear components rotated by theta
// radians. Angular velocity is frame independent in the plane.
func (t Twist2D) Rotated(theta float64) Twist2D {
	sin, cos := math.Sincos(theta)
	return Twist2D{
		VX:    t.VX*cos - t.VY*sin,
		VY:    t.VX*sin + t.VY*cos,
		Omega: t.Omega,
	}
}

// Speed returns the magnitude of the linear velocity.
func (t Twist2D) Speed() float64 {
	return math.Hypot(t.VX, t.VY)
}

func (t Twist2D) String() string {
	return fmt.Sprintf("(%.3fm/s,%.3fm/s,%.3frad/s)", t.VX, t.VY, t.Omega)
}
