package robot

import "sync"

// EventSink receives lifecycle notifications from a navigation core. The
// core calls these synchronously at the transition points of its own control
// loop, in the causal order its state changes occur; implementations must
// not block. Events are notifications, not state, and no history is kept by
// the core.
type EventSink interface {
	// SendNavigationStartEvent reports the start of a navigation command.
	SendNavigationStartEvent()

	// SendNavigationEndEvent reports normal termination: a single goal, or
	// the final waypoint of a list, was reached.
	SendNavigationEndEvent()

	// SendWaypointReachedEvent reports arrival at an intermediary waypoint.
	// reachedNotSkipped is false if the waypoint was skipped rather than
	// physically reached.
	SendWaypointReachedEvent(waypointIndex int, reachedNotSkipped bool)

	// SendNewWaypointTargetEvent reports that the core is now heading toward
	// the waypoint at the given index.
	SendNewWaypointTargetEvent(waypointIndex int)

	// SendNavigationEndDueToErrorEvent reports termination caused by a
	// sensing or actuation failure.
	SendNavigationEndDueToErrorEvent()

	// SendWaySeemsBlockedEvent reports lack of progress toward the target
	// for a sustained period.
	SendWaySeemsBlockedEvent()
}

// An Event is the value form of one EventSink notification, for sinks that
// keep or forward history.
type Event interface {
	isNavigationEvent()
}

// EventNavigationStart marks the start of a navigation command.
type EventNavigationStart struct{}

// EventNavigationEnd marks termination. OK is false when the run ended due
// to a sensing or actuation error.
type EventNavigationEnd struct {
	OK bool
}

// EventWaypointReached marks arrival at an intermediary waypoint. Reached is
// false if the waypoint was skipped.
type EventWaypointReached struct {
	Index   int
	Reached bool
}

// EventNewWaypointTarget marks selection of a new waypoint target.
type EventNewWaypointTarget struct {
	Index int
}

// EventWaySeemsBlocked marks sustained lack of progress.
type EventWaySeemsBlocked struct{}

func (EventNavigationStart) isNavigationEvent() {}

func (EventNavigationEnd) isNavigationEvent() {}

func (EventWaypointReached) isNavigationEvent() {}

func (EventNewWaypointTarget) isNavigationEvent() {}

func (EventWaySeemsBlocked) isNavigationEvent() {}

// A RecordingSink is an EventSink that appends every notification, in the
// order received, to an internal list. Safe for concurrent use.
type RecordingSink struct {
	mu     sync.Mutex
	events []Event
}

// Events returns a copy of the recorded events in arrival order.
func (s *RecordingSink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *RecordingSink) record(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// SendNavigationStartEvent records an EventNavigationStart.
func (s *RecordingSink) SendNavigationStartEvent() { s.record(EventNavigationStart{}) }

// SendNavigationEndEvent records a successful EventNavigationEnd.
func (s *RecordingSink) SendNavigationEndEvent() { s.record(EventNavigationEnd{OK: true}) }

// SendWaypointReachedEvent records an EventWaypointReached.
func (s *RecordingSink) SendWaypointReachedEvent(waypointIndex int, reachedNotSkipped bool) {
	s.record(EventWaypointReached{Index: waypointIndex, Reached: reachedNotSkipped})
}

// SendNewWaypointTargetEvent records an EventNewWaypointTarget.
func (s *RecordingSink) SendNewWaypointTargetEvent(waypointIndex int) {
	s.record(EventNewWaypointTarget{Index: waypointIndex})
}

// SendNavigationEndDueToErrorEvent records a failed EventNavigationEnd.
func (s *RecordingSink) SendNavigationEndDueToErrorEvent() { s.record(EventNavigationEnd{OK: false}) }

// SendWaySeemsBlockedEvent records an EventWaySeemsBlocked.
func (s *RecordingSink) SendWaySeemsBlockedEvent() { s.record(EventWaySeemsBlocked{}) }
