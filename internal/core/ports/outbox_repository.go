package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for outbox messages.
// Messages are enqueued in the same transaction as the business write and
// later drained by the dispatch job.
type OutboxRepository interface {
	// Add persists a new outbox message.
	Add(ctx context.Context, message *outbox.Message) error

	// Update persists attempt bookkeeping after a dispatch try.
	Update(ctx context.Context, message *outbox.Message) error

	// GetDue retrieves up to limit undispatched messages whose next
	// attempt time has passed, oldest first.
	GetDue(ctx context.Context, now time.Time, limit int) ([]*outbox.Message, error)
}
