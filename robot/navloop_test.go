package robot_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/navbotics/navkit/kinematics"
	"github.com/navbotics/navkit/robot"
	"github.com/navbotics/navkit/spatialmath"
	"github.com/navbotics/navkit/testutils/inject"
)

// TestControlLoopContract walks one iteration of a reactive navigation loop
// against an injected port: poll state, validate the straight-line candidate
// motion against sensed obstacles, actuate or halt, and report lifecycle
// events in causal order.
func TestControlLoopContract(t *testing.T) {
	ctx := context.Background()
	var sink robot.RecordingSink
	core := robot.NewCoreWithSink(clock.NewMock(), golog.NewTestLogger(t), &sink)

	const robotRadius = 0.3
	var sentCmds []kinematics.VelocityCommand
	var stops []bool

	port := &inject.Robot{}
	port.CurrentPoseAndSpeedsFunc = func(ctx context.Context) (spatialmath.Pose2D, spatialmath.Twist2D, time.Time, error) {
		return spatialmath.NewPose2D(0, 0, 0), spatialmath.Twist2D{}, time.Unix(10, 0), nil
	}
	obstacles := robot.ObstacleSet{{X: 2, Y: 2}}
	port.SenseObstaclesFunc = func(ctx context.Context) (robot.ObstacleSet, time.Time, error) {
		return obstacles, time.Unix(10, 0), nil
	}
	port.ChangeSpeedsFunc = func(ctx context.Context, cmd kinematics.VelocityCommand) error {
		sentCmds = append(sentCmds, cmd)
		return nil
	}
	port.StopFunc = func(ctx context.Context, isEmergency bool) error {
		stops = append(stops, isEmergency)
		return nil
	}
	port.StartWatchdogFunc = func(ctx context.Context, period time.Duration) error { return nil }
	port.StopWatchdogFunc = func(ctx context.Context) error { return nil }
	// Lifecycle notifications route through the core defaults.
	port.SendNavigationStartEventFunc = core.SendNavigationStartEvent
	port.SendNewWaypointTargetEventFunc = core.SendNewWaypointTargetEvent
	port.SendWaySeemsBlockedEventFunc = core.SendWaySeemsBlockedEvent
	port.SendNavigationEndEventFunc = core.SendNavigationEndEvent

	// One loop iteration: head for the waypoint at (5,0) in the robot frame.
	target := r2.Point{X: 5, Y: 0}
	step := func() {
		_, _, _, err := port.CurrentPoseAndSpeeds(ctx)
		test.That(t, err, test.ShouldBeNil)
		obs, _, err := port.SenseObstacles(ctx)
		test.That(t, err, test.ShouldBeNil)

		// Candidate motion and obstacles are both in the robot-centric
		// frame, so the segment starts at the origin.
		blocked := false
		for _, o := range obs {
			collides, _, err := spatialmath.CollisionFreeDistSegmentCircRobot(
				r2.Point{}, target, robotRadius, o)
			test.That(t, err, test.ShouldBeNil)
			if collides {
				blocked = true
				break
			}
		}
		if blocked {
			port.SendWaySeemsBlockedEvent()
			test.That(t, port.Stop(ctx, false), test.ShouldBeNil)
			return
		}
		test.That(t, port.ChangeSpeeds(ctx, kinematics.DiffDrive{LinVelMPerSec: 0.5}), test.ShouldBeNil)
	}

	test.That(t, port.StartWatchdog(ctx, 200*time.Millisecond), test.ShouldBeNil)
	port.SendNavigationStartEvent()
	port.SendNewWaypointTargetEvent(0)

	// Obstacle well off the path: the candidate motion is collision free.
	step()
	test.That(t, sentCmds, test.ShouldHaveLength, 1)
	test.That(t, stops, test.ShouldHaveLength, 0)

	// An obstacle drops onto the path: the core halts instead of driving.
	obstacles = robot.ObstacleSet{{X: 2, Y: 0.1}}
	step()
	test.That(t, sentCmds, test.ShouldHaveLength, 1)
	test.That(t, stops, test.ShouldResemble, []bool{false})

	port.SendNavigationEndEvent()
	test.That(t, port.StopWatchdog(ctx), test.ShouldBeNil)

	test.That(t, sink.Events(), test.ShouldResemble, []robot.Event{
		robot.EventNavigationStart{},
		robot.EventNewWaypointTarget{Index: 0},
		robot.EventWaySeemsBlocked{},
		robot.EventNavigationEnd{OK: true},
	})
}
