// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Hot query columns (business id, customer, status) are
// flat; the restaurant segment with its items, history and delivery
// assignment is stored as one JSONB document, so a future multi-segment
// order extends the document rather than the schema.
package orderrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID        string    `gorm:"uniqueIndex"`
	CustomerID        string    `gorm:"index"`
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	Fulfillment       string
	AddressStreet     *string
	AddressCity       *string
	AddressPostalCode *string
	AddressLat        *float64
	AddressLng        *float64
	RestaurantID      string `gorm:"index"`
	Status            string `gorm:"index"`
	Segment           []byte `gorm:"type:jsonb"`
	PaymentStatus     string
	PaymentMethod     string
	PaymentRef        string
	PlacedAt          time.Time
	Version           int64
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// DaySequenceDTO backs per-day business identifier allocation.
type DaySequenceDTO struct {
	Day       time.Time `gorm:"type:date;primaryKey"`
	LastValue int64
}

// TableName specifies the database table name for day sequences.
func (DaySequenceDTO) TableName() string {
	return "order_day_sequences"
}

// segmentDoc is the JSONB shape of the order's restaurant segment.
type segmentDoc struct {
	RestaurantID   string             `json:"restaurantId"`
	RestaurantName string             `json:"restaurantName"`
	Items          []itemDoc          `json:"items"`
	Subtotal       float64            `json:"subtotal"`
	Tax            float64            `json:"tax"`
	DeliveryFee    float64            `json:"deliveryFee"`
	Status         string             `json:"status"`
	History        []statusEventDoc   `json:"history"`
	EstimatedReady *time.Time         `json:"estimatedReadyTime,omitempty"`
	ActualReady    *time.Time         `json:"actualReadyTime,omitempty"`
	Assignment     *assignmentDoc     `json:"assignment,omitempty"`
}

type itemDoc struct {
	DishID      string  `json:"dishId"`
	Name        string  `json:"name"`
	PortionName string  `json:"portionName,omitempty"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
}

type statusEventDoc struct {
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
	ActorID    string    `json:"actorId"`
	Notes      string    `json:"notes,omitempty"`
}

type locationDoc struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type assignmentDoc struct {
	DriverID              string       `json:"driverId"`
	DriverName            string       `json:"driverName"`
	DriverPhone           string       `json:"driverPhone,omitempty"`
	DriverVehicle         string       `json:"driverVehicle,omitempty"`
	AssignedAt            time.Time    `json:"assignedAt"`
	EstimatedDeliveryTime time.Time    `json:"estimatedDeliveryTime"`
	Location              *locationDoc `json:"location,omitempty"`
	LocationUpdatedAt     *time.Time   `json:"locationUpdatedAt,omitempty"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	segment := aggregate.Segment()

	doc := segmentDoc{
		RestaurantID:   segment.RestaurantID(),
		RestaurantName: segment.RestaurantName(),
		Subtotal:       segment.Subtotal(),
		Tax:            segment.Tax(),
		DeliveryFee:    segment.DeliveryFee(),
		Status:         segment.Status().String(),
		EstimatedReady: segment.EstimatedReadyTime(),
		ActualReady:    segment.ActualReadyTime(),
	}

	for _, item := range segment.Items() {
		doc.Items = append(doc.Items, itemDoc{
			DishID:      item.DishID,
			Name:        item.Name,
			PortionName: item.PortionName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}

	for _, event := range segment.History() {
		doc.History = append(doc.History, statusEventDoc{
			Status:     event.Status().String(),
			OccurredAt: event.OccurredAt(),
			ActorID:    event.ActorID(),
			Notes:      event.Notes(),
		})
	}

	if assignment := segment.Assignment(); assignment != nil {
		doc.Assignment = &assignmentDoc{
			DriverID:              assignment.Driver().ID,
			DriverName:            assignment.Driver().Name,
			DriverPhone:           assignment.Driver().Phone,
			DriverVehicle:         assignment.Driver().Vehicle,
			AssignedAt:            assignment.AssignedAt(),
			EstimatedDeliveryTime: assignment.EstimatedDeliveryTime(),
		}
		if location := assignment.Location(); location != nil {
			doc.Assignment.Location = &locationDoc{Lat: location.Lat(), Lng: location.Lng()}
			updatedAt := assignment.LocationUpdatedAt()
			doc.Assignment.LocationUpdatedAt = &updatedAt
		}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return OrderDTO{}, err
	}

	dto := OrderDTO{
		ID:            aggregate.ID().Bytes(),
		BusinessID:    aggregate.BusinessID(),
		CustomerID:    aggregate.Customer().ID,
		CustomerName:  aggregate.Customer().Name,
		CustomerEmail: aggregate.Customer().Email,
		CustomerPhone: aggregate.Customer().Phone,
		Fulfillment:   aggregate.Fulfillment().String(),
		RestaurantID:  segment.RestaurantID(),
		Status:        aggregate.Status().String(),
		Segment:       raw,
		PaymentStatus: aggregate.PaymentStatus().String(),
		PaymentMethod: aggregate.PaymentDetails().Method,
		PaymentRef:    aggregate.PaymentDetails().TransactionRef,
		PlacedAt:      aggregate.PlacedAt(),
		Version:       aggregate.Version(),
	}

	if address := aggregate.Address(); address != nil {
		dto.AddressStreet = &address.Street
		dto.AddressCity = &address.City
		dto.AddressPostalCode = &address.PostalCode
		if address.Location != nil {
			lat := address.Location.Lat()
			lng := address.Location.Lng()
			dto.AddressLat, dto.AddressLng = &lat, &lng
		}
	}

	return dto, nil
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.CustomerID, dto.CustomerName, dto.CustomerEmail, dto.CustomerPhone)
	if err != nil {
		return nil, err
	}

	fulfillment, err := order.FulfillmentFromString(dto.Fulfillment)
	if err != nil {
		return nil, err
	}

	var address *order.Address
	if dto.AddressStreet != nil {
		var location *kernel.GeoPoint
		if dto.AddressLat != nil && dto.AddressLng != nil {
			point, pointErr := kernel.NewGeoPoint(*dto.AddressLat, *dto.AddressLng)
			if pointErr != nil {
				return nil, pointErr
			}
			location = &point
		}
		restored, addrErr := order.NewAddress(*dto.AddressStreet, deref(dto.AddressCity), deref(dto.AddressPostalCode), location)
		if addrErr != nil {
			return nil, addrErr
		}
		address = &restored
	}

	segment, err := segmentToDomain(dto.Segment)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, dto.BusinessID, customer, fulfillment, address, segment,
		paymentStatus,
		order.PaymentDetails{Method: dto.PaymentMethod, TransactionRef: dto.PaymentRef},
		dto.PlacedAt, dto.Version,
	)
}

func segmentToDomain(raw []byte) (*order.Segment, error) {
	var doc segmentDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(doc.Items))
	for _, item := range doc.Items {
		restored, err := order.NewItem(item.DishID, item.Name, item.PortionName, item.UnitPrice, item.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, restored)
	}

	history := make([]order.StatusEvent, 0, len(doc.History))
	for _, event := range doc.History {
		status, err := order.StatusFromString(event.Status)
		if err != nil {
			return nil, err
		}
		restored, err := order.NewStatusEvent(status, event.OccurredAt, event.ActorID, event.Notes)
		if err != nil {
			return nil, err
		}
		history = append(history, restored)
	}

	status, err := order.StatusFromString(doc.Status)
	if err != nil {
		return nil, err
	}

	var assignment *order.Assignment
	if doc.Assignment != nil {
		driver, driverErr := order.NewDriverInfo(
			doc.Assignment.DriverID, doc.Assignment.DriverName,
			doc.Assignment.DriverPhone, doc.Assignment.DriverVehicle,
		)
		if driverErr != nil {
			return nil, driverErr
		}

		var location *kernel.GeoPoint
		var locationUpdatedAt time.Time
		if doc.Assignment.Location != nil {
			point, pointErr := kernel.NewGeoPoint(doc.Assignment.Location.Lat, doc.Assignment.Location.Lng)
			if pointErr != nil {
				return nil, pointErr
			}
			location = &point
			if doc.Assignment.LocationUpdatedAt != nil {
				locationUpdatedAt = *doc.Assignment.LocationUpdatedAt
			}
		}

		assignment, err = order.RestoreAssignment(
			driver, doc.Assignment.AssignedAt, doc.Assignment.EstimatedDeliveryTime,
			location, locationUpdatedAt,
		)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreSegment(
		doc.RestaurantID, doc.RestaurantName, items,
		doc.Subtotal, doc.Tax, doc.DeliveryFee,
		status, history,
		doc.EstimatedReady, doc.ActualReady,
		assignment,
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
