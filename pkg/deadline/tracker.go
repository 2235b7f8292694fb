package deadline

import (
	"fmt"
	"time"

	"github.com/borgmon/rollout-board/pkg/models"
)

// Status tracks the state of an individual deadline
type Status string

const (
	StatusPending Status = "Pending" // more than the warning threshold remains
	StatusWarning Status = "Warning" // within the warning threshold
	StatusOverdue Status = "Overdue" // deadline passed, terminal
)

const (
	// WarningThreshold is how close to the deadline an appointment must be
	// before the approaching alert fires.
	WarningThreshold = 15 * time.Minute

	// FulfillmentOffset is the business window granted after the scheduled
	// time to fulfill an appointment.
	FulfillmentOffset = 3*time.Hour + 30*time.Minute

	// ClosedLabel replaces the countdown once the deadline has passed.
	ClosedLabel = "Encerrado"
)

// SignalKind names the one-shot alert signals a tracker can raise.
type SignalKind string

const (
	SignalApproaching SignalKind = "approaching"
	SignalOverdue     SignalKind = "overdue"
)

// Signal is a one-shot alert raised at a threshold crossing, consumed by a
// notification sink. Each tracker instance raises each kind at most once.
type Signal struct {
	Kind SignalKind
	Name string // subject display name
}

// Target computes the instant by which an appointment must be fulfilled:
// scheduled date + time + the fixed fulfillment offset.
func Target(date time.Time, clock models.WallClock) time.Time {
	return date.Add(clock.Duration() + FulfillmentOffset)
}

// Tracker is the live deadline state machine for one displayed entry
// scheduled today. Status only moves forward (Pending, Warning, Overdue) and
// the fired latches never reset for the lifetime of the instance. Trackers
// are discarded and recreated whenever the view is rebuilt, so the latches
// deliberately do not survive a re-render or dataset reload.
type Tracker struct {
	name   string
	target time.Time
	status Status

	warningFired bool
	overdueFired bool
}

// NewTracker creates a pending tracker for the given subject and deadline.
func NewTracker(name string, target time.Time) *Tracker {
	return &Tracker{
		name:   name,
		target: target,
		status: StatusPending,
	}
}

// Name returns the subject display name this tracker alerts for.
func (t *Tracker) Name() string { return t.name }

// Target returns the deadline instant.
func (t *Tracker) Target() time.Time { return t.target }

// Status returns the current state.
func (t *Tracker) Status() Status { return t.status }

// WarningFired reports whether the approaching alert has been raised.
func (t *Tracker) WarningFired() bool { return t.warningFired }

// OverdueFired reports whether the overdue alert has been raised.
func (t *Tracker) OverdueFired() bool { return t.overdueFired }

// Remaining returns the time left until the deadline, never negative.
func (t *Tracker) Remaining(now time.Time) time.Duration {
	d := t.target.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Tick advances the state machine against the given instant and returns the
// one-shot signals raised by this crossing, if any. Calling Tick repeatedly
// with the same or later instants is idempotent once a latch has flipped.
func (t *Tracker) Tick(now time.Time) []Signal {
	remaining := t.target.Sub(now)

	if remaining <= 0 {
		t.status = StatusOverdue
		if !t.overdueFired {
			t.overdueFired = true
			return []Signal{{Kind: SignalOverdue, Name: t.name}}
		}
		return nil
	}

	if remaining <= WarningThreshold {
		if t.status == StatusPending {
			t.status = StatusWarning
		}
		if !t.warningFired {
			t.warningFired = true
			return []Signal{{Kind: SignalApproaching, Name: t.name}}
		}
	}
	return nil
}

// DisplayText renders the live countdown as HH:MM:SS (integer division, no
// rounding up). Once overdue the text is permanently the closed label.
func (t *Tracker) DisplayText(now time.Time) string {
	if t.status == StatusOverdue {
		return ClosedLabel
	}
	total := int(t.Remaining(now) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
