// Package outboxrepo provides data transfer objects and mapping functions
// for outbox message persistence.
package outboxrepo

import (
	"time"

	"github.com/google/uuid"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/outbox"
)

// MessageDTO represents one pending collaborator call.
type MessageDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind          string
	Payload       []byte `gorm:"type:jsonb"`
	Attempts      int
	MaxAttempts   int
	NextAttemptAt time.Time `gorm:"index"`
	DispatchedAt  *time.Time
	CreatedAt     time.Time
}

// TableName specifies the database table name for outbox messages.
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// fromDomain converts an outbox message to its database representation.
func fromDomain(message *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:            message.ID().Bytes(),
		Kind:          string(message.Kind()),
		Payload:       message.Payload(),
		Attempts:      message.Attempts(),
		MaxAttempts:   message.MaxAttempts(),
		NextAttemptAt: message.NextAttemptAt(),
		DispatchedAt:  message.DispatchedAt(),
		CreatedAt:     message.CreatedAt(),
	}
}

// toDomain converts a database DTO to an outbox message.
func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(
		id, outbox.Kind(dto.Kind), dto.Payload,
		dto.Attempts, dto.MaxAttempts,
		dto.NextAttemptAt, dto.DispatchedAt, dto.CreatedAt,
	)
}
