package collab

import (
	"context"
	"net/http"
	"strings"
	"time"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// HTTPNotificationClient implements ports.NotificationClient against the
// notification service.
type HTTPNotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPNotificationClient creates a notification client for the given
// base URL.
func NewHTTPNotificationClient(baseURL string, timeout time.Duration) (*HTTPNotificationClient, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	return &HTTPNotificationClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}, nil
}

type statusNotificationRequest struct {
	OrderID    string    `json:"orderId"`
	CustomerID string    `json:"customerId"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NotifyStatusChange posts one status-change notification.
func (c *HTTPNotificationClient) NotifyStatusChange(ctx context.Context, notification ports.StatusNotification) error {
	body := statusNotificationRequest{
		OrderID:    notification.OrderBusinessID,
		CustomerID: notification.CustomerID,
		Status:     notification.Status,
		OccurredAt: notification.OccurredAt,
	}
	if err := postJSON(ctx, c.httpClient, c.baseURL+"/notifications/status", body); err != nil {
		return errs.NewCollaboratorFailureError("notification", "NotifyStatusChange", err)
	}
	return nil
}
