package order

import (
	"time"

	"orderflow/internal/pkg/errs"
)

// StatusEvent is an immutable record of one status transition. A segment's
// history is append-only and totally ordered by insertion; events are never
// modified or removed after the fact.
type StatusEvent struct {
	status     Status
	occurredAt time.Time
	actorID    string
	notes      string
}

// NewStatusEvent builds a validated status event.
func NewStatusEvent(status Status, occurredAt time.Time, actorID, notes string) (StatusEvent, error) {
	if err := status.Validate(); err != nil {
		return StatusEvent{}, err
	}
	if occurredAt.IsZero() {
		return StatusEvent{}, errs.NewValueIsRequiredError("occurredAt")
	}
	if actorID == "" {
		return StatusEvent{}, errs.NewValueIsRequiredError("actorId")
	}
	return StatusEvent{status: status, occurredAt: occurredAt, actorID: actorID, notes: notes}, nil
}

// Status returns the status this event records entry into.
func (e StatusEvent) Status() Status {
	return e.status
}

// OccurredAt returns when the transition happened.
func (e StatusEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// ActorID returns the identity that triggered the transition.
func (e StatusEvent) ActorID() string {
	return e.actorID
}

// Notes returns the optional free-form note attached to the transition.
func (e StatusEvent) Notes() string {
	return e.notes
}
