// Package watchdog implements the command-liveness timer a robot platform
// arms while a navigation core is in control. While armed, every successful
// command delivery refreshes the deadline; what happens on expiry is the
// platform's decision, not this package's. It only exposes the state machine
// and the expiry predicate.
package watchdog

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

var errNonPositivePeriod = errors.New("watchdog period must be positive")

// A Watchdog tracks freshness of command delivery. It is either disarmed, or
// armed with a period and a deadline. All methods are safe for concurrent
// use; Refresh appears atomic to a concurrent Expired check.
type Watchdog struct {
	clock  clock.Clock
	logger golog.Logger

	mu       sync.Mutex
	armed    bool
	period   time.Duration
	deadline time.Time
}

// New returns a disarmed watchdog. A nil clock means wall-clock time.
func New(c clock.Clock, logger golog.Logger) *Watchdog {
	if c == nil {
		c = clock.New()
	}
	return &Watchdog{clock: c, logger: logger}
}

// Start arms the watchdog with the given period and sets the deadline to
// now+period. Starting an already armed watchdog rearms it with the new
// period.
func (w *Watchdog) Start(period time.Duration) error {
	if period <= 0 {
		return errors.Wrapf(errNonPositivePeriod, "got %v", period)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.armed = true
	w.period = period
	w.deadline = w.clock.Now().Add(period)
	w.logger.Debugw("watchdog armed", "period", period)
	return nil
}

// Stop disarms the watchdog. Stopping a disarmed watchdog is a no-op.
func (w *Watchdog) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.armed {
		w.logger.Debug("watchdog disarmed")
	}
	w.armed = false
	return nil
}

// Refresh pushes the deadline out to now+period. It does nothing while
// disarmed, so command paths can call it unconditionally.
func (w *Watchdog) Refresh() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.armed {
		return
	}
	w.deadline = w.clock.Now().Add(w.period)
}

// Armed reports whether the watchdog is currently armed.
func (w *Watchdog) Armed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.armed
}

// Expired reports whether the watchdog is armed and its deadline has passed
// without a refresh. A disarmed watchdog never reports expiry.
func (w *Watchdog) Expired() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.armed && w.clock.Now().After(w.deadline)
}

// TimeUntilExpiry returns the time remaining before the deadline and whether
// the watchdog is armed. The remaining time is negative once expired.
func (w *Watchdog) TimeUntilExpiry() (time.Duration, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.armed {
		return 0, false
	}
	return w.deadline.Sub(w.clock.Now()), true
}
