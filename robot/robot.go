// Package robot defines the boundary between a navigation core and the real
// or simulated robot it drives: state sensing, actuation, watchdog control,
// obstacle sensing and lifecycle event reporting. Concrete drivers and
// simulators implement Robot; reactive planners consume it.
package robot

import (
	"context"
	"time"

	"github.com/golang/geo/r2"

	"github.com/navbotics/navkit/kinematics"
	"github.com/navbotics/navkit/spatialmath"
)

// An ObstacleSet is an unordered collection of 2-D obstacle points expressed
// in the robot-centric frame: robot at the origin, heading along +x.
type ObstacleSet []r2.Point

// Robot is the port a navigation core drives a robot through.
//
// CurrentPoseAndSpeeds and SenseObstacles are called from a control loop and
// must return quickly, within roughly 10ms. Implementations are expected to
// serve a cached snapshot kept fresh by their own sampling goroutine rather
// than transact with hardware on the calling goroutine.
//
// The optional operations (ChangeSpeedsNOP, AlignCmd, the watchdog pair, the
// event emitters and the navigation timer) all have usable default bodies in
// Core; embed a *Core and implement the rest.
type Robot interface {
	EventSink

	// CurrentPoseAndSpeeds returns the latest robot pose and world-frame
	// velocity along with the instant they were sampled at. It fails as a
	// whole on any retrieval error; there are no partial results.
	CurrentPoseAndSpeeds(ctx context.Context) (spatialmath.Pose2D, spatialmath.Twist2D, time.Time, error)

	// ChangeSpeeds sends an actuation command and, as a side effect,
	// refreshes the watchdog deadline. It fails if the command variant is
	// unsupported (kinematics.ErrUnsupportedCommand) or transmission fails.
	ChangeSpeeds(ctx context.Context, cmd kinematics.VelocityCommand) error

	// ChangeSpeedsNOP refreshes the watchdog deadline without re-issuing
	// set-points, for when the last command is still the preferred one.
	ChangeSpeedsNOP(ctx context.Context) error

	// Stop commands zero velocity immediately. isEmergency marks an abnormal
	// halt; false means a planned stop such as reaching the goal.
	Stop(ctx context.Context, isEmergency bool) error

	// EmergencyStopCmd returns the command value Stop sends on an emergency
	// halt, so callers can pre-validate or re-send it themselves.
	EmergencyStopCmd() kinematics.VelocityCommand

	// StopCmd returns the command value Stop sends on a planned halt.
	StopCmd() kinematics.VelocityCommand

	// AlignCmd returns a command that rotates the robot in place by the
	// given relative heading without translating, or nil if the platform
	// cannot rotate in place.
	AlignCmd(relativeHeadingRad float64) kinematics.VelocityCommand

	// StartWatchdog arms the platform liveness watchdog with the maximum
	// expected delay between consecutive ChangeSpeeds calls.
	StartWatchdog(ctx context.Context, period time.Duration) error

	// StopWatchdog disarms the platform liveness watchdog.
	StopWatchdog(ctx context.Context) error

	// SenseObstacles returns the currently perceived obstacle points in the
	// robot-centric frame and the instant they were sampled at.
	SenseObstacles(ctx context.Context) (ObstacleSet, time.Time, error)

	// NavigationTime returns the time elapsed since construction or the last
	// ResetNavigationTimer call. Wall-clock by default; simulators report
	// simulation time.
	NavigationTime() time.Duration

	// ResetNavigationTimer restarts the navigation timer from zero.
	ResetNavigationTimer()
}
