// Package fake implements a simulated differential-drive robot satisfying
// the robot.Robot port. A background goroutine integrates the last actuated
// command into a guarded pose/velocity snapshot, so the sensing operations
// serve cached state and never block the control loop. The platform policy
// on watchdog expiry is to halt and disarm.
package fake

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"github.com/navbotics/navkit/kinematics"
	"github.com/navbotics/navkit/robot"
	"github.com/navbotics/navkit/spatialmath"
	"github.com/navbotics/navkit/utils"
	"github.com/navbotics/navkit/watchdog"
)

const (
	defaultRadiusM         = 0.3
	defaultMaxLinMPerSec   = 1.0
	defaultMaxAngRadPerSec = math.Pi / 2
	defaultSampleInterval  = 10 * time.Millisecond
	defaultAlignRadPerSec  = 0.5
)

var errRobotClosed = errors.New("robot is closed")

// Config describes a fake robot. Zero values take defaults; a nil Clock
// means wall-clock time, in which case the simulation runs in real time.
type Config struct {
	// RadiusM is the robot's footprint radius in meters.
	RadiusM float64
	// MaxLinVelMPerSec caps commanded linear velocity.
	MaxLinVelMPerSec float64
	// MaxAngVelRadPerSec caps commanded angular velocity.
	MaxAngVelRadPerSec float64
	// SampleInterval is the period of the internal pose integrator.
	SampleInterval time.Duration
	// StartPose is the initial world-frame pose.
	StartPose spatialmath.Pose2D
	// WorldObstacles are obstacle points in the world frame; SenseObstacles
	// reports them relative to the current pose.
	WorldObstacles []r2.Point
	// Clock drives integration, timestamps and the navigation timer. Inject
	// a mock for deterministic simulation time.
	Clock clock.Clock
	// Sink, if set, additionally receives every lifecycle event.
	Sink robot.EventSink
}

// Validate checks the config for impossible values.
func (c Config) Validate() error {
	var err error
	if c.RadiusM < 0 {
		err = multierr.Append(err, errors.Errorf("radius must be non-negative, got %f", c.RadiusM))
	}
	if c.MaxLinVelMPerSec < 0 {
		err = multierr.Append(err, errors.Errorf("max linear velocity must be non-negative, got %f", c.MaxLinVelMPerSec))
	}
	if c.MaxAngVelRadPerSec < 0 {
		err = multierr.Append(err, errors.Errorf("max angular velocity must be non-negative, got %f", c.MaxAngVelRadPerSec))
	}
	if c.SampleInterval < 0 {
		err = multierr.Append(err, errors.Errorf("sample interval must be non-negative, got %v", c.SampleInterval))
	}
	return err
}

// Robot is a simulated circular differential-drive robot. It accepts only
// kinematics.DiffDrive commands and, being circular, can rotate in place,
// so AlignCmd is supported.
type Robot struct {
	*robot.Core
	logger         golog.Logger
	clk            clock.Clock
	wd             *watchdog.Watchdog
	radius         float64
	maxLin         float64
	maxAng         float64
	sampleInterval time.Duration
	worldObstacles []r2.Point

	mu      sync.RWMutex
	pose    spatialmath.Pose2D
	vel     spatialmath.Twist2D
	stamp   time.Time
	lastCmd kinematics.DiffDrive
	closed  bool

	cancelCtx               context.Context
	cancelFunc              func()
	activeBackgroundWorkers sync.WaitGroup
}

var _ robot.Robot = (*Robot)(nil)

// New builds a fake robot and starts its pose integrator.
func New(conf Config, logger golog.Logger) (*Robot, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	clk := conf.Clock
	if clk == nil {
		clk = clock.New()
	}
	if conf.RadiusM == 0 {
		conf.RadiusM = defaultRadiusM
	}
	if conf.MaxLinVelMPerSec == 0 {
		conf.MaxLinVelMPerSec = defaultMaxLinMPerSec
	}
	if conf.MaxAngVelRadPerSec == 0 {
		conf.MaxAngVelRadPerSec = defaultMaxAngRadPerSec
	}
	if conf.SampleInterval == 0 {
		conf.SampleInterval = defaultSampleInterval
	}

	cancelCtx, cancelFunc := context.WithCancel(context.Background())
	r := &Robot{
		Core:           robot.NewCoreWithSink(clk, logger, conf.Sink),
		logger:         logger,
		clk:            clk,
		wd:             watchdog.New(clk, logger),
		radius:         conf.RadiusM,
		maxLin:         conf.MaxLinVelMPerSec,
		maxAng:         conf.MaxAngVelRadPerSec,
		sampleInterval: conf.SampleInterval,
		worldObstacles: conf.WorldObstacles,
		pose:           conf.StartPose,
		stamp:          clk.Now(),
		cancelCtx:      cancelCtx,
		cancelFunc:     cancelFunc,
	}

	r.activeBackgroundWorkers.Add(1)
	goutils.PanicCapturingGo(func() {
		defer r.activeBackgroundWorkers.Done()
		for {
			if !goutils.SelectContextOrWait(r.cancelCtx, r.sampleInterval) {
				return
			}
			r.tick()
		}
	})
	return r, nil
}

// tick advances the simulation to the clock's current instant and refreshes
// the cached snapshot. Watchdog expiry is checked here, under the same lock
// command delivery refreshes it under.
func (r *Robot) tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if r.wd.Expired() {
		r.logger.Warnw("watchdog expired, halting robot", "pose", r.pose)
		r.lastCmd = kinematics.NewDiffDriveStop()
		if err := r.wd.Stop(); err != nil {
			r.logger.Errorw("failed to disarm watchdog", "error", err)
		}
	}

	now := r.clk.Now()
	dt := now.Sub(r.stamp).Seconds()
	if dt > 0 {
		r.pose.X += r.lastCmd.LinVelMPerSec * math.Cos(r.pose.Theta) * dt
		r.pose.Y += r.lastCmd.LinVelMPerSec * math.Sin(r.pose.Theta) * dt
		r.pose.Theta = utils.WrapAngleRad(r.pose.Theta + r.lastCmd.AngVelRadPerSec*dt)
	}
	r.vel = spatialmath.Twist2D{
		VX:    r.lastCmd.LinVelMPerSec * math.Cos(r.pose.Theta),
		VY:    r.lastCmd.LinVelMPerSec * math.Sin(r.pose.Theta),
		Omega: r.lastCmd.AngVelRadPerSec,
	}
	r.stamp = now
}

// CurrentPoseAndSpeeds returns the cached pose/velocity snapshot.
func (r *Robot) CurrentPoseAndSpeeds(ctx context.Context) (spatialmath.Pose2D, spatialmath.Twist2D, time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return spatialmath.Pose2D{}, spatialmath.Twist2D{}, time.Time{}, errRobotClosed
	}
	return r.pose, r.vel, r.stamp, nil
}

// ChangeSpeeds actuates a differential-drive command, clamped to the
// configured limits, and refreshes the watchdog deadline. Any other command
// variant is rejected with kinematics.ErrUnsupportedCommand.
func (r *Robot) ChangeSpeeds(ctx context.Context, cmd kinematics.VelocityCommand) error {
	dd, ok := cmd.(kinematics.DiffDrive)
	if !ok {
		return errors.Wrapf(kinematics.ErrUnsupportedCommand, "got %s", cmd)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return errRobotClosed
	}
	r.lastCmd = dd.Clamped(r.maxLin, r.maxAng)
	r.wd.Refresh()
	return nil
}

// ChangeSpeedsNOP refreshes the watchdog deadline while leaving the last
// actuated command in force.
func (r *Robot) ChangeSpeedsNOP(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return errRobotClosed
	}
	r.wd.Refresh()
	return nil
}

// Stop zeroes the robot's velocity immediately.
func (r *Robot) Stop(ctx context.Context, isEmergency bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return errRobotClosed
	}
	r.lastCmd = kinematics.NewDiffDriveStop()
	r.vel = spatialmath.Twist2D{}
	if isEmergency {
		r.logger.Warnw("emergency stop", "pose", r.pose)
	} else {
		r.logger.Infow("stop", "pose", r.pose)
	}
	return nil
}

// EmergencyStopCmd returns the command Stop sends on an emergency halt.
func (r *Robot) EmergencyStopCmd() kinematics.VelocityCommand {
	return kinematics.NewDiffDriveStop()
}

// StopCmd returns the command Stop sends on a planned halt.
func (r *Robot) StopCmd() kinematics.VelocityCommand {
	return kinematics.NewDiffDriveStop()
}

// AlignCmd returns an in-place rotation toward the given relative heading.
// The fake robot is circular, so alignment is always possible.
func (r *Robot) AlignCmd(relativeHeadingRad float64) kinematics.VelocityCommand {
	if relativeHeadingRad == 0 {
		return kinematics.NewDiffDriveStop()
	}
	rate := math.Min(r.maxAng, defaultAlignRadPerSec)
	return kinematics.DiffDrive{AngVelRadPerSec: math.Copysign(rate, relativeHeadingRad)}
}

// StartWatchdog arms the liveness watchdog. On expiry the integrator halts
// the robot and disarms.
func (r *Robot) StartWatchdog(ctx context.Context, period time.Duration) error {
	return r.wd.Start(period)
}

// StopWatchdog disarms the liveness watchdog.
func (r *Robot) StopWatchdog(ctx context.Context) error {
	return r.wd.Stop()
}

// Radius returns the robot's footprint radius in meters, for planners
// validating candidate motions.
func (r *Robot) Radius() float64 {
	return r.radius
}

// Watchdog exposes the underlying watchdog state for inspection.
func (r *Robot) Watchdog() *watchdog.Watchdog {
	return r.wd
}

// SenseObstacles reports the configured world obstacles relative to the
// current pose, in the robot-centric frame.
func (r *Robot) SenseObstacles(ctx context.Context) (robot.ObstacleSet, time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, time.Time{}, errRobotClosed
	}
	set := make(robot.ObstacleSet, 0, len(r.worldObstacles))
	for _, o := range r.worldObstacles {
		set = append(set, r.pose.TransformPointInto(o))
	}
	return set, r.stamp, nil
}

// Close halts the robot, stops the integrator and disarms the watchdog.
// Closing twice is safe.
func (r *Robot) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.lastCmd = kinematics.NewDiffDriveStop()
	r.vel = spatialmath.Twist2D{}
	r.mu.Unlock()

	r.cancelFunc()
	r.activeBackgroundWorkers.Wait()
	return r.wd.Stop()
}
