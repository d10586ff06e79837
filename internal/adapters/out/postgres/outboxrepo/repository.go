package outboxrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"orderflow/internal/core/domain/model/outbox"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add persists a new outbox message.
func (r *GormOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	dto := fromDomain(message)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update persists attempt bookkeeping after a dispatch try.
func (r *GormOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	dto := fromDomain(message)
	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", dto.ID).
		Select("attempts", "next_attempt_at", "dispatched_at").
		Updates(&dto).Error
}

// GetDue retrieves undispatched messages whose next attempt time has
// passed, oldest first. Rows are locked with FOR UPDATE SKIP LOCKED so
// concurrent dispatchers never double-deliver within a transaction.
func (r *GormOutboxRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*outbox.Message, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Raw(`
			SELECT *
			FROM outbox_messages
			WHERE dispatched_at IS NULL
			  AND attempts < max_attempts
			  AND next_attempt_at <= ?
			ORDER BY created_at
			LIMIT ?
			FOR UPDATE SKIP LOCKED
		`, now, limit).
		Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		message, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, message)
	}
	return messages, nil
}
