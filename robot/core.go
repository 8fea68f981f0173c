package robot

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"

	"github.com/navbotics/navkit/kinematics"
)

// Core provides the default behavior of every optional Robot operation:
// trivially successful NOP and watchdog control, an unsupported AlignCmd,
// event emitters that log at debug level, and a clock-backed navigation
// timer. Concrete implementations embed a *Core and override what their
// platform actually supports; the mandatory sensing and actuation
// operations have no defaults here.
type Core struct {
	logger golog.Logger
	clock  clock.Clock
	sink   EventSink

	mu       sync.Mutex
	navStart time.Time
}

// NewCore returns defaults backed by the given clock, which also starts the
// navigation timer. A nil clock means wall-clock time.
func NewCore(c clock.Clock, logger golog.Logger) *Core {
	return NewCoreWithSink(c, logger, nil)
}

// NewCoreWithSink is NewCore with an observer: every event emitted through
// the defaults is also forwarded, synchronously and in order, to sink.
func NewCoreWithSink(c clock.Clock, logger golog.Logger, sink EventSink) *Core {
	if c == nil {
		c = clock.New()
	}
	return &Core{
		logger:   logger,
		clock:    c,
		sink:     sink,
		navStart: c.Now(),
	}
}

// Logger returns the logger the defaults write to, for embedders.
func (c *Core) Logger() golog.Logger {
	return c.logger
}

// ChangeSpeedsNOP succeeds without doing anything. Platforms with a real
// watchdog override this to refresh the deadline.
func (c *Core) ChangeSpeedsNOP(ctx context.Context) error {
	return nil
}

// AlignCmd returns nil: only circular robots that can rotate in place can
// provide a real align command.
func (c *Core) AlignCmd(relativeHeadingRad float64) kinematics.VelocityCommand {
	return nil
}

// StartWatchdog succeeds trivially for platforms without watchdog logic.
func (c *Core) StartWatchdog(ctx context.Context, period time.Duration) error {
	return nil
}

// StopWatchdog succeeds trivially for platforms without watchdog logic.
func (c *Core) StopWatchdog(ctx context.Context) error {
	return nil
}

// NavigationTime returns the time elapsed since construction or the last
// reset, as measured by the injected clock.
func (c *Core) NavigationTime() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clock.Now().Sub(c.navStart)
}

// ResetNavigationTimer restarts the navigation timer from zero.
func (c *Core) ResetNavigationTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.navStart = c.clock.Now()
}

// SendNavigationStartEvent logs the start of a navigation command.
func (c *Core) SendNavigationStartEvent() {
	c.logger.Debug("navigation started")
	if c.sink != nil {
		c.sink.SendNavigationStartEvent()
	}
}

// SendNavigationEndEvent logs normal navigation termination.
func (c *Core) SendNavigationEndEvent() {
	c.logger.Debug("navigation ended")
	if c.sink != nil {
		c.sink.SendNavigationEndEvent()
	}
}

// SendWaypointReachedEvent logs waypoint arrival or skip.
func (c *Core) SendWaypointReachedEvent(waypointIndex int, reachedNotSkipped bool) {
	c.logger.Debugw("waypoint done", "index", waypointIndex, "reached", reachedNotSkipped)
	if c.sink != nil {
		c.sink.SendWaypointReachedEvent(waypointIndex, reachedNotSkipped)
	}
}

// SendNewWaypointTargetEvent logs selection of a new waypoint target.
func (c *Core) SendNewWaypointTargetEvent(waypointIndex int) {
	c.logger.Debugw("new waypoint target", "index", waypointIndex)
	if c.sink != nil {
		c.sink.SendNewWaypointTargetEvent(waypointIndex)
	}
}

// SendNavigationEndDueToErrorEvent logs navigation termination on error.
func (c *Core) SendNavigationEndDueToErrorEvent() {
	c.logger.Debug("navigation ended due to error")
	if c.sink != nil {
		c.sink.SendNavigationEndDueToErrorEvent()
	}
}

// SendWaySeemsBlockedEvent logs sustained lack of progress.
func (c *Core) SendWaySeemsBlockedEvent() {
	c.logger.Debug("way seems blocked")
	if c.sink != nil {
		c.sink.SendWaySeemsBlockedEvent()
	}
}
