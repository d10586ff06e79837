package collab

import (
	"context"
	"net/http"
	"strings"
	"time"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// HTTPIdentityClient implements ports.IdentityClient against the identity
// service.
type HTTPIdentityClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPIdentityClient creates an identity client for the given base URL.
func NewHTTPIdentityClient(baseURL string, timeout time.Duration) (*HTTPIdentityClient, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	return &HTTPIdentityClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}, nil
}

type addressResponse struct {
	Street     string   `json:"street"`
	City       string   `json:"city"`
	PostalCode string   `json:"postalCode"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
}

type profileResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	DefaultAddress *addressResponse `json:"defaultAddress"`
}

// GetCustomerProfile retrieves the customer's contact details and default
// delivery address.
func (c *HTTPIdentityClient) GetCustomerProfile(ctx context.Context, customerID string) (*ports.CustomerProfile, error) {
	if customerID == "" {
		return nil, errs.NewValueIsRequiredError("customerID")
	}

	var body profileResponse
	status, err := getJSON(ctx, c.httpClient, c.baseURL+"/customers/"+customerID, &body)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, errs.NewObjectNotFoundError("customerID", customerID)
		}
		return nil, errs.NewCollaboratorFailureError("identity", "GetCustomerProfile", err)
	}

	profile := &ports.CustomerProfile{
		ID:    body.ID,
		Name:  body.Name,
		Email: body.Email,
		Phone: body.Phone,
	}
	if body.DefaultAddress != nil {
		profile.DefaultAddress = &ports.DeliveryAddress{
			Street:     body.DefaultAddress.Street,
			City:       body.DefaultAddress.City,
			PostalCode: body.DefaultAddress.PostalCode,
			Lat:        body.DefaultAddress.Lat,
			Lng:        body.DefaultAddress.Lng,
		}
	}
	return profile, nil
}
