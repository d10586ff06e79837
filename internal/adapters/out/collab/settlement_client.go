package collab

import (
	"context"
	"net/http"
	"strings"
	"time"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// HTTPSettlementClient implements ports.SettlementClient against the
// settlement service.
type HTTPSettlementClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPSettlementClient creates a settlement client for the given base URL.
func NewHTTPSettlementClient(baseURL string, timeout time.Duration) (*HTTPSettlementClient, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	return &HTTPSettlementClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}, nil
}

type platformFeeRequest struct {
	OrderID            string    `json:"orderId"`
	RestaurantID       string    `json:"restaurantId"`
	Amount             float64   `json:"amount"`
	BillingPeriodStart time.Time `json:"billingPeriodStart"`
}

// RecordPlatformFee posts one platform fee ledger entry.
func (c *HTTPSettlementClient) RecordPlatformFee(ctx context.Context, fee ports.PlatformFee) error {
	body := platformFeeRequest{
		OrderID:            fee.OrderBusinessID,
		RestaurantID:       fee.RestaurantID,
		Amount:             fee.Amount,
		BillingPeriodStart: fee.BillingPeriodStart,
	}
	if err := postJSON(ctx, c.httpClient, c.baseURL+"/platform-fees", body); err != nil {
		return errs.NewCollaboratorFailureError("settlement", "RecordPlatformFee", err)
	}
	return nil
}
