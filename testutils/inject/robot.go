// Package inject provides dependency-injected implementations of navkit
// interfaces: each method delegates to a settable function, falling through
// to an embedded value when unset.
package inject

import (
	"context"
	"time"

	"github.com/navbotics/navkit/kinematics"
	"github.com/navbotics/navkit/robot"
	"github.com/navbotics/navkit/spatialmath"
)

// Robot is an injectable robot.Robot.
type Robot struct {
	robot.Robot
	CurrentPoseAndSpeedsFunc func(ctx context.Context) (spatialmath.Pose2D, spatialmath.Twist2D, time.Time, error)
	ChangeSpeedsFunc         func(ctx context.Context, cmd kinematics.VelocityCommand) error
	ChangeSpeedsNOPFunc      func(ctx context.Context) error
	StopFunc                 func(ctx context.Context, isEmergency bool) error
	EmergencyStopCmdFunc     func() kinematics.VelocityCommand
	StopCmdFunc              func() kinematics.VelocityCommand
	AlignCmdFunc             func(relativeHeadingRad float64) kinematics.VelocityCommand
	StartWatchdogFunc        func(ctx context.Context, period time.Duration) error
	StopWatchdogFunc         func(ctx context.Context) error
	SenseObstaclesFunc       func(ctx context.Context) (robot.ObstacleSet, time.Time, error)
	NavigationTimeFunc       func() time.Duration
	ResetNavigationTimerFunc func()

	SendNavigationStartEventFunc         func()
	SendNavigationEndEventFunc           func()
	SendWaypointReachedEventFunc         func(waypointIndex int, reachedNotSkipped bool)
	SendNewWaypointTargetEventFunc       func(waypointIndex int)
	SendNavigationEndDueToErrorEventFunc func()
	SendWaySeemsBlockedEventFunc         func()
}

// CurrentPoseAndSpeeds calls the injected func or the embedded robot.
func (r *Robot) CurrentPoseAndSpeeds(ctx context.Context) (spatialmath.Pose2D, spatialmath.Twist2D, time.Time, error) {
	if r.CurrentPoseAndSpeedsFunc == nil {
		return r.Robot.CurrentPoseAndSpeeds(ctx)
	}
	return r.CurrentPoseAndSpeedsFunc(ctx)
}

// ChangeSpeeds calls the injected func or the embedded robot.
func (r *Robot) ChangeSpeeds(ctx context.Context, cmd kinematics.VelocityCommand) error {
	if r.ChangeSpeedsFunc == nil {
		return r.Robot.ChangeSpeeds(ctx, cmd)
	}
	return r.ChangeSpeedsFunc(ctx, cmd)
}

// ChangeSpeedsNOP calls the injected func or the embedded robot.
func (r *Robot) ChangeSpeedsNOP(ctx context.Context) error {
	if r.ChangeSpeedsNOPFunc == nil {
		return r.Robot.ChangeSpeedsNOP(ctx)
	}
	return r.ChangeSpeedsNOPFunc(ctx)
}

// Stop calls the injected func or the embedded robot.
func (r *Robot) Stop(ctx context.Context, isEmergency bool) error {
	if r.StopFunc == nil {
		return r.Robot.Stop(ctx, isEmergency)
	}
	return r.StopFunc(ctx, isEmergency)
}

// EmergencyStopCmd calls the injected func or the embedded robot.
func (r *Robot) EmergencyStopCmd() kinematics.VelocityCommand {
	if r.EmergencyStopCmdFunc == nil {
		return r.Robot.EmergencyStopCmd()
	}
	return r.EmergencyStopCmdFunc()
}

// StopCmd calls the injected func or the embedded robot.
func (r *Robot) StopCmd() kinematics.VelocityCommand {
	if r.StopCmdFunc == nil {
		return r.Robot.StopCmd()
	}
	return r.StopCmdFunc()
}

// AlignCmd calls the injected func or the embedded robot.
func (r *Robot) AlignCmd(relativeHeadingRad float64) kinematics.VelocityCommand {
	if r.AlignCmdFunc == nil {
		return r.Robot.AlignCmd(relativeHeadingRad)
	}
	return r.AlignCmdFunc(relativeHeadingRad)
}

// StartWatchdog calls the injected func or the embedded robot.
func (r *Robot) StartWatchdog(ctx context.Context, period time.Duration) error {
	if r.StartWatchdogFunc == nil {
		return r.Robot.StartWatchdog(ctx, period)
	}
	return r.StartWatchdogFunc(ctx, period)
}

// StopWatchdog calls the injected func or the embedded robot.
func (r *Robot) StopWatchdog(ctx context.Context) error {
	if r.StopWatchdogFunc == nil {
		return r.Robot.StopWatchdog(ctx)
	}
	return r.StopWatchdogFunc(ctx)
}

// SenseObstacles calls the injected func or the embedded robot.
func (r *Robot) SenseObstacles(ctx context.Context) (robot.ObstacleSet, time.Time, error) {
	if r.SenseObstaclesFunc == nil {
		return r.Robot.SenseObstacles(ctx)
	}
	return r.SenseObstaclesFunc(ctx)
}

// NavigationTime calls the injected func or the embedded robot.
func (r *Robot) NavigationTime() time.Duration {
	if r.NavigationTimeFunc == nil {
		return r.Robot.NavigationTime()
	}
	return r.NavigationTimeFunc()
}

// ResetNavigationTimer calls the injected func or the embedded robot.
func (r *Robot) ResetNavigationTimer() {
	if r.ResetNavigationTimerFunc == nil {
		r.Robot.ResetNavigationTimer()
		return
	}
	r.ResetNavigationTimerFunc()
}

// SendNavigationStartEvent calls the injected func or the embedded robot.
func (r *Robot) SendNavigationStartEvent() {
	if r.SendNavigationStartEventFunc == nil {
		r.Robot.SendNavigationStartEvent()
		return
	}
	r.SendNavigationStartEventFunc()
}

// SendNavigationEndEvent calls the injected func or the embedded robot.
func (r *Robot) SendNavigationEndEvent() {
	if r.SendNavigationEndEventFunc == nil {
		r.Robot.SendNavigationEndEvent()
		return
	}
	r.SendNavigationEndEventFunc()
}

// SendWaypointReachedEvent calls the injected func or the embedded robot.
func (r *Robot) SendWaypointReachedEvent(waypointIndex int, reachedNotSkipped bool) {
	if r.SendWaypointReachedEventFunc == nil {
		r.Robot.SendWaypointReachedEvent(waypointIndex, reachedNotSkipped)
		return
	}
	r.SendWaypointReachedEventFunc(waypointIndex, reachedNotSkipped)
}

// SendNewWaypointTargetEvent calls the injected func or the embedded robot.
func (r *Robot) SendNewWaypointTargetEvent(waypointIndex int) {
	if r.SendNewWaypointTargetEventFunc == nil {
		r.Robot.SendNewWaypointTargetEvent(waypointIndex)
		return
	}
	r.SendNewWaypointTargetEventFunc(waypointIndex)
}

// SendNavigationEndDueToErrorEvent calls the injected func or the embedded robot.
func (r *Robot) SendNavigationEndDueToErrorEvent() {
	if r.SendNavigationEndDueToErrorEventFunc == nil {
		r.Robot.SendNavigationEndDueToErrorEvent()
		return
	}
	r.SendNavigationEndDueToErrorEventFunc()
}

// SendWaySeemsBlockedEvent calls the injected func or the embedded robot.
func (r *Robot) SendWaySeemsBlockedEvent() {
	if r.SendWaySeemsBlockedEventFunc == nil {
		r.Robot.SendWaySeemsBlockedEvent()
		return
	}
	r.SendWaySeemsBlockedEventFunc()
}
