package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/outbox"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// dispatchBatchSize bounds how many messages one dispatch run claims.
const dispatchBatchSize = 50

// DispatchOutboxCommandHandler delivers due outbox messages to the
// settlement and notification collaborators. Each failed attempt backs off
// exponentially; a message that exhausts its attempts is abandoned with a
// warning. Delivery is at-least-once: a crash between the collaborator
// call and the bookkeeping write redelivers on the next run.
type DispatchOutboxCommandHandler struct {
	uowFactory   OutboxUoWFactory
	settlement   ports.SettlementClient
	notification ports.NotificationClient
	logger       *slog.Logger
}

// NewDispatchOutboxCommandHandler creates a handler for outbox dispatch.
func NewDispatchOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	settlement ports.SettlementClient,
	notification ports.NotificationClient,
	logger *slog.Logger,
) DispatchOutboxCommandHandler {
	return DispatchOutboxCommandHandler{
		uowFactory:   uowFactory,
		settlement:   settlement,
		notification: notification,
		logger:       logger.With("component", "dispatch_outbox"),
	}
}

// Handle claims a batch of due messages, attempts delivery for each and
// records the outcome. One failing message never blocks the rest.
func (h *DispatchOutboxCommandHandler) Handle(ctx context.Context, cmd DispatchOutboxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()

	outboxRepo := uow.OutboxRepository()
	due, err := outboxRepo.GetDue(ctx, now, dispatchBatchSize)
	if err != nil {
		return err
	}

	for _, message := range due {
		if deliverErr := h.deliver(ctx, message); deliverErr != nil {
			message.MarkFailed(now)
			if message.Exhausted() {
				h.logger.Warn("outbox message abandoned",
					"messageId", message.ID().String(),
					"kind", string(message.Kind()),
					"attempts", message.Attempts(),
					"error", deliverErr)
			} else {
				h.logger.Info("outbox delivery failed, will retry",
					"messageId", message.ID().String(),
					"kind", string(message.Kind()),
					"error", deliverErr)
			}
		} else {
			message.MarkDispatched(now)
		}

		if err = outboxRepo.Update(ctx, message); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h *DispatchOutboxCommandHandler) deliver(ctx context.Context, message *outbox.Message) error {
	switch message.Kind() {
	case outbox.KindSettlement:
		var payload SettlementPayload
		if err := json.Unmarshal(message.Payload(), &payload); err != nil {
			return err
		}
		return h.settlement.RecordPlatformFee(ctx, ports.PlatformFee{
			OrderBusinessID:    payload.OrderBusinessID,
			RestaurantID:       payload.RestaurantID,
			Amount:             payload.Amount,
			BillingPeriodStart: payload.BillingPeriodStart,
		})
	case outbox.KindNotification:
		var payload NotificationPayload
		if err := json.Unmarshal(message.Payload(), &payload); err != nil {
			return err
		}
		return h.notification.NotifyStatusChange(ctx, ports.StatusNotification{
			OrderBusinessID: payload.OrderBusinessID,
			CustomerID:      payload.CustomerID,
			Status:          payload.Status,
			OccurredAt:      payload.OccurredAt,
		})
	default:
		return errs.NewValueIsInvalidError("outboxKind")
	}
}
