package services_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
)

func projectorTestOrder(t *testing.T, placedAt time.Time) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("cust-1", "Ada Lovelace", "ada@example.com", "+15550100")
	require.NoError(t, err)

	item, err := order.NewItem("dish-1", "Pad Thai", "Large", 5.00, 2)
	require.NoError(t, err)

	segment, err := order.NewSegment("rest-1", "Thai Garden", []order.Item{item}, 10.00, 1.00, 2.99, placedAt, "cust-1")
	require.NoError(t, err)

	destination, err := kernel.NewGeoPoint(13.75, 100.50)
	require.NoError(t, err)
	address, err := order.NewAddress("1 Main St", "Bangkok", "10100", &destination)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), "ORD-20260115-0001", customer, order.Delivery, &address, segment, placedAt,
	)
	require.NoError(t, err)
	return aggregate
}

func TestProjectOrderUpdate(t *testing.T) {
	placedAt := time.Date(2026, 1, 15, 14, 45, 0, 0, time.UTC)
	aggregate := projectorTestOrder(t, placedAt)
	require.NoError(t, aggregate.UpdateStatus(order.Preparing, "rest-1", "", placedAt.Add(time.Minute), 20))

	view, err := services.NewTrackingProjector().ProjectOrderUpdate(aggregate)
	require.NoError(t, err)

	assert.Equal(t, "ORD-20260115-0001", view.OrderID)
	assert.Equal(t, "PREPARING", view.Status)
	assert.Equal(t, "Jan 15, 2026 2:45 PM", view.StatusUpdates["PLACED"])
	assert.Equal(t, "Jan 15, 2026 2:46 PM", view.StatusUpdates["PREPARING"])
}

func TestProjectTrackingUpdateWithoutAssignment(t *testing.T) {
	aggregate := projectorTestOrder(t, time.Now().UTC())

	view, err := services.NewTrackingProjector().ProjectTrackingUpdate(aggregate)
	require.NoError(t, err)

	assert.Nil(t, view.DriverLocation)
	assert.Nil(t, view.EstimatedArrival)
	assert.Empty(t, view.RouteCoordinates)
}

func TestProjectTrackingUpdateWithDriver(t *testing.T) {
	now := time.Now().UTC()
	aggregate := projectorTestOrder(t, now)
	require.NoError(t, aggregate.UpdateStatus(order.Preparing, "rest-1", "", now, 0))

	driver, err := order.NewDriverInfo("drv-1", "Kai", "+15550111", "bike")
	require.NoError(t, err)
	require.NoError(t, aggregate.AssignDriver(driver, now))
	require.NoError(t, aggregate.UpdateStatus(order.ReadyForPickup, "rest-1", "", now, 0))
	require.NoError(t, aggregate.UpdateStatus(order.OutForDelivery, "drv-1", "", now, 0))

	position, err := kernel.NewGeoPoint(13.70, 100.40)
	require.NoError(t, err)
	require.NoError(t, aggregate.UpdateDriverLocation(position, "drv-1", now))

	view, err := services.NewTrackingProjector().ProjectTrackingUpdate(aggregate)
	require.NoError(t, err)

	require.NotNil(t, view.DriverLocation)
	assert.InDelta(t, 13.70, view.DriverLocation.Lat, 1e-9)
	require.NotNil(t, view.EstimatedArrival)

	// Route runs from the driver to the delivery address.
	require.Len(t, view.RouteCoordinates, 9)
	assert.InDelta(t, 13.70, view.RouteCoordinates[0].Lat, 1e-9)
	last := view.RouteCoordinates[len(view.RouteCoordinates)-1]
	assert.InDelta(t, 13.75, last.Lat, 1e-9)
	assert.InDelta(t, 100.50, last.Lng, 1e-9)
}

func TestOrderUpdateMessageShape(t *testing.T) {
	now := time.Now().UTC()
	aggregate := projectorTestOrder(t, now)

	raw, err := services.NewTrackingProjector().OrderUpdateMessage(aggregate, now)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, services.TypeOrderUpdate, decoded["type"])
	assert.Contains(t, decoded, "timestamp")
	orderBody, ok := decoded["order"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ORD-20260115-0001", orderBody["orderId"])
	assert.NotContains(t, decoded, "tracking")
}
