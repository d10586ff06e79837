package commands

import (
	"context"
	"encoding/json"
	"time"

	"orderflow/internal/core/domain/model/outbox"
)

// SettlementPayload is the JSON body of a settlement outbox message.
type SettlementPayload struct {
	OrderBusinessID    string    `json:"orderBusinessId"`
	RestaurantID       string    `json:"restaurantId"`
	Amount             float64   `json:"amount"`
	BillingPeriodStart time.Time `json:"billingPeriodStart"`
}

// NotificationPayload is the JSON body of a notification outbox message.
type NotificationPayload struct {
	OrderBusinessID string    `json:"orderBusinessId"`
	CustomerID      string    `json:"customerId"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// enqueueNotification marshals a notification payload onto the outbox
// within the caller's transaction.
func enqueueNotification(ctx context.Context, repos OutboxRepoFactory, payload NotificationPayload, now time.Time) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	message, err := outbox.NewMessage(outbox.KindNotification, raw, now)
	if err != nil {
		return err
	}
	return repos.OutboxRepository().Add(ctx, message)
}

// nextWeeklyBillingBoundary returns the first Monday 00:00 UTC strictly
// after now. Platform fees accrue against the following billing week.
func nextWeeklyBillingBoundary(now time.Time) time.Time {
	now = now.UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	daysAhead := (int(time.Monday) - int(day.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return day.AddDate(0, 0, daysAhead)
}
