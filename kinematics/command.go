// Package kinematics defines the velocity commands a navigation core sends
// through a robot port, one variant per kinematic model. Commands are
// immutable values once constructed; a given robot accepts only a subset of
// the variants and rejects the rest with ErrUnsupportedCommand.
package kinematics

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// ErrUnsupportedCommand is returned by a robot that receives a velocity
// command variant outside the set its kinematic model accepts. This is a
// usage error on the caller's side, distinct from a transmission failure.
var ErrUnsupportedCommand = errors.New("velocity command variant not supported by this robot")

// A VelocityCommand is one concrete set-point for a robot's motion
// controller. The variant set is closed: DiffDrive, Ackermann and Holonomic
// are the only implementations.
type VelocityCommand interface {
	fmt.Stringer

	// Stop reports whether the command demands zero motion.
	Stop() bool

	isVelocityCommand()
}

var (
	_ VelocityCommand = DiffDrive{}
	_ VelocityCommand = Ackermann{}
	_ VelocityCommand = Holonomic{}
)

// DiffDrive commands a differential-drive robot: linear velocity along the
// heading plus angular velocity about the center.
type DiffDrive struct {
	LinVelMPerSec   float64
	AngVelRadPerSec float64
}

// NewDiffDriveStop returns the zero-motion differential-drive command.
func NewDiffDriveStop() DiffDrive {
	return DiffDrive{}
}

func (d DiffDrive) isVelocityCommand() {}

// Stop reports whether both velocity components are zero.
func (d DiffDrive) Stop() bool {
	return d.LinVelMPerSec == 0 && d.AngVelRadPerSec == 0
}

// Clamped returns the command with each component limited to the given
// magnitude, signs preserved. Non-positive limits leave the corresponding
// component untouched.
func (d DiffDrive) Clamped(maxLinMPerSec, maxAngRadPerSec float64) DiffDrive {
	out := d
	if maxLinMPerSec > 0 && math.Abs(out.LinVelMPerSec) > maxLinMPerSec {
		out.LinVelMPerSec = math.Copysign(maxLinMPerSec, out.LinVelMPerSec)
	}
	if maxAngRadPerSec > 0 && math.Abs(out.AngVelRadPerSec) > maxAngRadPerSec {
		out.AngVelRadPerSec = math.Copysign(maxAngRadPerSec, out.AngVelRadPerSec)
	}
	return out
}

func (d DiffDrive) String() string {
	return fmt.Sprintf("diffdrive(v=%.3fm/s w=%.3frad/s)", d.LinVelMPerSec, d.AngVelRadPerSec)
}

// Ackermann commands a car-like robot: forward speed plus a steering angle
// of the front axle.
type Ackermann struct {
	SpeedMPerSec  float64
	SteerAngleRad float64
}

// NewAckermannStop returns the zero-motion Ackermann command. The steering
// angle is zero as well; a stopped car keeps its wheels straight.
func NewAckermannStop() Ackermann {
	return Ackermann{}
}

func (a Ackermann) isVelocityCommand() {}

// Stop reports whether the forward speed is zero. Steering angle does not
// move the vehicle on its own.
func (a Ackermann) Stop() bool {
	return a.SpeedMPerSec == 0
}

func (a Ackermann) String() string {
	return fmt.Sprintf("ackermann(v=%.3fm/s steer=%.3frad)", a.SpeedMPerSec, a.SteerAngleRad)
}

// Holonomic commands an omnidirectional robot: speed along a direction given
// in the robot frame, a ramp time to reach it, and an independent rotational
// speed.
type Holonomic struct {
	VelMPerSec        float64
	DirLocalRad       float64
	RampTimeSec       float64
	RotSpeedRadPerSec float64
}

// NewHolonomicStop returns the zero-motion holonomic command.
func NewHolonomicStop() Holonomic {
	return Holonomic{}
}

func (h Holonomic) isVelocityCommand() {}

// Stop reports whether both the linear and rotational speeds are zero.
func (h Holonomic) Stop() bool {
	return h.VelMPerSec == 0 && h.RotSpeedRadPerSec == 0
}

func (h Holonomic) String() string {
	return fmt.Sprintf("holo(v=%.3fm/s dir=%.3frad ramp=%.2fs rot=%.3frad/s)",
		h.VelMPerSec, h.DirLocalRad, h.RampTimeSec, h.RotSpeedRadPerSec)
}
