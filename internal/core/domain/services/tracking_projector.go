package services

import (
	"encoding/json"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// routeSegments is how many straight-line legs the interpolated route has.
const routeSegments = 8

// humanTimestampLayout renders status timestamps for customers,
// e.g. "Jan 15, 2026 2:45 PM".
const humanTimestampLayout = "Jan 2, 2006 3:04 PM"

// Coordinate is a latitude/longitude pair on the wire.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OrderUpdate is the payload pushed to subscribers on every status change.
type OrderUpdate struct {
	OrderID       string            `json:"orderId"`
	Status        string            `json:"status"`
	StatusUpdates map[string]string `json:"statusUpdates"`
}

// TrackingUpdate is the payload pushed when the driver reports a location.
type TrackingUpdate struct {
	DriverLocation   *Coordinate  `json:"driverLocation"`
	EstimatedArrival *time.Time   `json:"estimatedArrival"`
	RouteCoordinates []Coordinate `json:"routeCoordinates"`
}

// Envelope wraps every outbound tracking message.
type Envelope struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Order     *OrderUpdate    `json:"order,omitempty"`
	Tracking  *TrackingUpdate `json:"tracking,omitempty"`
}

// Message type discriminators.
const (
	TypeOrderUpdate    = "ORDER_UPDATE"
	TypeTrackingUpdate = "TRACKING_UPDATE"
	TypePing           = "PING"
	TypePong           = "PONG"
)

// TrackingProjector builds the tracking wire payloads from an order
// aggregate. It holds no state and is safe for concurrent use.
type TrackingProjector struct{}

// NewTrackingProjector creates a TrackingProjector.
func NewTrackingProjector() TrackingProjector {
	return TrackingProjector{}
}

// ProjectOrderUpdate builds the ORDER_UPDATE view for an order.
func (p TrackingProjector) ProjectOrderUpdate(aggregate *order.Order) (*OrderUpdate, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	updates := make(map[string]string)
	for status, at := range aggregate.Segment().StatusTimestamps() {
		updates[status.String()] = at.Format(humanTimestampLayout)
	}

	return &OrderUpdate{
		OrderID:       aggregate.BusinessID(),
		Status:        aggregate.Status().String(),
		StatusUpdates: updates,
	}, nil
}

// ProjectTrackingUpdate builds the TRACKING_UPDATE view for an order.
// The route is a straight-line interpolation from the driver's last
// reported location to the delivery address; when either end is unknown
// the route is empty and only the fields that exist are populated.
func (p TrackingProjector) ProjectTrackingUpdate(aggregate *order.Order) (*TrackingUpdate, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	update := &TrackingUpdate{RouteCoordinates: []Coordinate{}}

	assignment := aggregate.Segment().Assignment()
	if assignment == nil {
		return update, nil
	}

	eta := assignment.EstimatedDeliveryTime()
	update.EstimatedArrival = &eta

	location := assignment.Location()
	if location == nil {
		return update, nil
	}
	update.DriverLocation = &Coordinate{Lat: location.Lat(), Lng: location.Lng()}

	if aggregate.Address() == nil || aggregate.Address().Location == nil {
		return update, nil
	}

	route, err := location.Interpolate(*aggregate.Address().Location, routeSegments)
	if err != nil {
		return nil, err
	}
	update.RouteCoordinates = coordinates(route)

	return update, nil
}

// OrderUpdateMessage marshals the full ORDER_UPDATE envelope.
func (p TrackingProjector) OrderUpdateMessage(aggregate *order.Order, now time.Time) ([]byte, error) {
	view, err := p.ProjectOrderUpdate(aggregate)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Envelope{
		Type:      TypeOrderUpdate,
		Timestamp: now,
		Order:     view,
	})
}

// TrackingUpdateMessage marshals the full TRACKING_UPDATE envelope.
func (p TrackingProjector) TrackingUpdateMessage(aggregate *order.Order, now time.Time) ([]byte, error) {
	view, err := p.ProjectTrackingUpdate(aggregate)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Envelope{
		Type:      TypeTrackingUpdate,
		Timestamp: now,
		Tracking:  view,
	})
}

func coordinates(points []kernel.GeoPoint) []Coordinate {
	result := make([]Coordinate, 0, len(points))
	for _, point := range points {
		result = append(result, Coordinate{Lat: point.Lat(), Lng: point.Lng()})
	}
	return result
}
