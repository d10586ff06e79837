package collab_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow/internal/adapters/out/collab"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

func Test_HTTPCatalogClient_GetRestaurant(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/restaurants/rest-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "rest-1",
			"name": "Thai Garden",
			"deliveryFee": 2.99,
			"dishes": [
				{
					"id": "dish-1",
					"name": "Pad Thai",
					"price": 9.50,
					"portions": [{"id": "portion-l", "name": "Large", "price": 12.00}]
				}
			]
		}`))
	}))
	defer server.Close()

	client, err := collab.NewHTTPCatalogClient(server.URL, time.Second)
	require.NoError(t, err)

	// Act
	restaurant, err := client.GetRestaurant(context.Background(), "rest-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Thai Garden", restaurant.Name)
	assert.Equal(t, 2.99, restaurant.DeliveryFee)
	dish := restaurant.FindDish("dish-1")
	require.NotNil(t, dish)
	assert.Equal(t, 9.50, dish.Price)
	portion := dish.FindPortion("portion-l")
	require.NotNil(t, portion)
	assert.Equal(t, 12.00, portion.Price)
}

func Test_HTTPCatalogClient_GetRestaurant_NotFound(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := collab.NewHTTPCatalogClient(server.URL, time.Second)
	require.NoError(t, err)

	// Act
	restaurant, err := client.GetRestaurant(context.Background(), "missing")

	// Assert
	assert.Nil(t, restaurant)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func Test_HTTPCatalogClient_GetRestaurant_ServerError(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := collab.NewHTTPCatalogClient(server.URL, time.Second)
	require.NoError(t, err)

	// Act
	restaurant, err := client.GetRestaurant(context.Background(), "rest-1")

	// Assert
	assert.Nil(t, restaurant)
	assert.ErrorIs(t, err, errs.ErrCollaboratorFailure)
}

func Test_HTTPIdentityClient_GetCustomerProfile(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/cust-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "cust-1",
			"name": "Dana Smith",
			"email": "dana@example.com",
			"phone": "+15550100",
			"defaultAddress": {
				"street": "1 Main St",
				"city": "Springfield",
				"postalCode": "12345",
				"lat": 40.1,
				"lng": -74.2
			}
		}`))
	}))
	defer server.Close()

	client, err := collab.NewHTTPIdentityClient(server.URL, time.Second)
	require.NoError(t, err)

	// Act
	profile, err := client.GetCustomerProfile(context.Background(), "cust-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Dana Smith", profile.Name)
	require.NotNil(t, profile.DefaultAddress)
	assert.Equal(t, "1 Main St", profile.DefaultAddress.Street)
	require.NotNil(t, profile.DefaultAddress.Lat)
	assert.Equal(t, 40.1, *profile.DefaultAddress.Lat)
}

func Test_HTTPIdentityClient_GetCustomerProfile_NotFound(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := collab.NewHTTPIdentityClient(server.URL, time.Second)
	require.NoError(t, err)

	// Act
	profile, err := client.GetCustomerProfile(context.Background(), "ghost")

	// Assert
	assert.Nil(t, profile)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func Test_HTTPSettlementClient_RecordPlatformFee(t *testing.T) {
	// Arrange
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/platform-fees", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, err := collab.NewHTTPSettlementClient(server.URL, time.Second)
	require.NoError(t, err)

	// Act
	err = client.RecordPlatformFee(context.Background(), ports.PlatformFee{
		OrderBusinessID:    "ORD-20250601-0001",
		RestaurantID:       "rest-1",
		Amount:             2.00,
		BillingPeriodStart: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ORD-20250601-0001", received["orderId"])
	assert.Equal(t, "rest-1", received["restaurantId"])
	assert.Equal(t, 2.00, received["amount"])
}

func Test_HTTPSettlementClient_RecordPlatformFee_ServerError(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := collab.NewHTTPSettlementClient(server.URL, time.Second)
	require.NoError(t, err)

	// Act
	err = client.RecordPlatformFee(context.Background(), ports.PlatformFee{OrderBusinessID: "ORD-20250601-0001"})

	// Assert
	assert.ErrorIs(t, err, errs.ErrCollaboratorFailure)
}

func Test_HTTPNotificationClient_NotifyStatusChange(t *testing.T) {
	// Arrange
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notifications/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client, err := collab.NewHTTPNotificationClient(server.URL, time.Second)
	require.NoError(t, err)

	// Act
	err = client.NotifyStatusChange(context.Background(), ports.StatusNotification{
		OrderBusinessID: "ORD-20250601-0001",
		CustomerID:      "cust-1",
		Status:          "PREPARING",
		OccurredAt:      time.Now().UTC(),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "PREPARING", received["status"])
	assert.Equal(t, "cust-1", received["customerId"])
}

func Test_Clients_RequireBaseURL(t *testing.T) {
	_, err := collab.NewHTTPCatalogClient("", time.Second)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = collab.NewHTTPIdentityClient("", time.Second)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = collab.NewHTTPSettlementClient("", time.Second)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = collab.NewHTTPNotificationClient("", time.Second)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
