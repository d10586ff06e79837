// Package outbox provides the persistent message entity backing at-least-once
// delivery of collaborator calls. Settlement fees and status notifications are
// enqueued in the same transaction as the business write and dispatched by a
// background job with bounded retry, instead of being fired and forgotten.
package outbox

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// Kind identifies which collaborator a message targets.
type Kind string

const (
	// KindSettlement records a platform fee against the settlement ledger.
	KindSettlement Kind = "settlement"
	// KindNotification delivers a status-change notification.
	KindNotification Kind = "notification"
)

// defaultMaxAttempts bounds retries before a message is abandoned.
const defaultMaxAttempts = 5

// Message is one pending collaborator call. Payload is an opaque JSON
// document interpreted by the dispatcher for the message's kind.
type Message struct {
	id            kernel.UUID
	kind          Kind
	payload       []byte
	attempts      int
	maxAttempts   int
	nextAttemptAt time.Time
	dispatchedAt  *time.Time
	createdAt     time.Time
}

// NewMessage enqueues a collaborator call due immediately.
func NewMessage(kind Kind, payload []byte, now time.Time) (*Message, error) {
	if kind != KindSettlement && kind != KindNotification {
		return nil, errs.NewValueIsInvalidError("outboxKind")
	}
	if len(payload) == 0 {
		return nil, errs.NewValueIsRequiredError("payload")
	}

	return &Message{
		id:            kernel.NewUUID(),
		kind:          kind,
		payload:       payload,
		maxAttempts:   defaultMaxAttempts,
		nextAttemptAt: now,
		createdAt:     now,
	}, nil
}

// RestoreMessage reconstructs a message from persistence.
func RestoreMessage(
	id kernel.UUID,
	kind Kind,
	payload []byte,
	attempts, maxAttempts int,
	nextAttemptAt time.Time,
	dispatchedAt *time.Time,
	createdAt time.Time,
) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Message{
		id:            id,
		kind:          kind,
		payload:       payload,
		attempts:      attempts,
		maxAttempts:   maxAttempts,
		nextAttemptAt: nextAttemptAt,
		dispatchedAt:  dispatchedAt,
		createdAt:     createdAt,
	}, nil
}

// ID returns the message identity.
func (m *Message) ID() kernel.UUID {
	return m.id
}

// Kind returns the target collaborator kind.
func (m *Message) Kind() Kind {
	return m.kind
}

// Payload returns the opaque JSON payload.
func (m *Message) Payload() []byte {
	return m.payload
}

// Attempts returns how many dispatch attempts have been made.
func (m *Message) Attempts() int {
	return m.attempts
}

// MaxAttempts returns the retry bound.
func (m *Message) MaxAttempts() int {
	return m.maxAttempts
}

// NextAttemptAt returns when the message is next due.
func (m *Message) NextAttemptAt() time.Time {
	return m.nextAttemptAt
}

// DispatchedAt returns when the message was delivered, or nil.
func (m *Message) DispatchedAt() *time.Time {
	return m.dispatchedAt
}

// CreatedAt returns when the message was enqueued.
func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// IsDue reports whether the message should be dispatched now.
func (m *Message) IsDue(now time.Time) bool {
	return m.dispatchedAt == nil && !m.Exhausted() && !m.nextAttemptAt.After(now)
}

// Exhausted reports whether the retry bound has been reached.
func (m *Message) Exhausted() bool {
	return m.attempts >= m.maxAttempts
}

// MarkDispatched records successful delivery.
func (m *Message) MarkDispatched(now time.Time) {
	m.attempts++
	m.dispatchedAt = &now
}

// MarkFailed records a failed attempt and schedules the retry with
// exponential backoff: 30s, 60s, 120s, ...
func (m *Message) MarkFailed(now time.Time) {
	m.attempts++
	backoff := 30 * time.Second << (m.attempts - 1)
	m.nextAttemptAt = now.Add(backoff)
}
