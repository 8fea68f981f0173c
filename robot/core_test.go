package robot_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/navbotics/navkit/robot"
)

func TestCoreDefaults(t *testing.T) {
	ctx := context.Background()
	core := robot.NewCore(clock.NewMock(), golog.NewTestLogger(t))

	test.That(t, core.ChangeSpeedsNOP(ctx), test.ShouldBeNil)
	test.That(t, core.StartWatchdog(ctx, 100*time.Millisecond), test.ShouldBeNil)
	test.That(t, core.StopWatchdog(ctx), test.ShouldBeNil)

	// A default port cannot align in place, whatever the heading.
	for _, heading := range []float64{0, 0.1, -0.1, 1.5708, -3.1415, 100} {
		test.That(t, core.AlignCmd(heading), test.ShouldBeNil)
	}
}

func TestNavigationTimer(t *testing.T) {
	mock := clock.NewMock()
	core := robot.NewCore(mock, golog.NewTestLogger(t))

	test.That(t, core.NavigationTime(), test.ShouldEqual, time.Duration(0))

	mock.Add(2500 * time.Millisecond)
	test.That(t, core.NavigationTime(), test.ShouldEqual, 2500*time.Millisecond)
	test.That(t, core.NavigationTime().Seconds(), test.ShouldAlmostEqual, 2.5)

	core.ResetNavigationTimer()
	test.That(t, core.NavigationTime(), test.ShouldEqual, time.Duration(0))
	mock.Add(time.Second)
	test.That(t, core.NavigationTime(), test.ShouldEqual, time.Second)
}

func TestEventForwardingOrder(t *testing.T) {
	var sink robot.RecordingSink
	core := robot.NewCoreWithSink(clock.NewMock(), golog.NewTestLogger(t), &sink)

	// Emit in the causal order of a short two-waypoint run.
	core.SendNavigationStartEvent()
	core.SendNewWaypointTargetEvent(0)
	core.SendWaypointReachedEvent(0, true)
	core.SendNewWaypointTargetEvent(1)
	core.SendWaySeemsBlockedEvent()
	core.SendWaypointReachedEvent(1, false)
	core.SendNavigationEndEvent()

	test.That(t, sink.Events(), test.ShouldResemble, []robot.Event{
		robot.EventNavigationStart{},
		robot.EventNewWaypointTarget{Index: 0},
		robot.EventWaypointReached{Index: 0, Reached: true},
		robot.EventNewWaypointTarget{Index: 1},
		robot.EventWaySeemsBlocked{},
		robot.EventWaypointReached{Index: 1, Reached: false},
		robot.EventNavigationEnd{OK: true},
	})
}

func TestEventErrorEnd(t *testing.T) {
	var sink robot.RecordingSink
	core := robot.NewCoreWithSink(clock.NewMock(), golog.NewTestLogger(t), &sink)

	core.SendNavigationStartEvent()
	core.SendNavigationEndDueToErrorEvent()

	events := sink.Events()
	test.That(t, events, test.ShouldHaveLength, 2)
	test.That(t, events[1], test.ShouldResemble, robot.EventNavigationEnd{OK: false})
}

func TestCoreWithoutSink(t *testing.T) {
	// Emitters without a sink only log; they must not panic.
	core := robot.NewCore(nil, golog.NewTestLogger(t))
	core.SendNavigationStartEvent()
	core.SendNavigationEndEvent()
	core.SendWaypointReachedEvent(3, true)
	core.SendNewWaypointTargetEvent(4)
	core.SendNavigationEndDueToErrorEvent()
	core.SendWaySeemsBlockedEvent()
}
