package http

import (
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/services"
)

// AddressDTO is the delivery destination on the wire.
type AddressDTO struct {
	Street     string   `json:"street"`
	City       string   `json:"city"`
	PostalCode string   `json:"postalCode"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
}

// AddCartItemRequest adds one dish to the caller's cart.
type AddCartItemRequest struct {
	RestaurantID string `json:"restaurantId"`
	DishID       string `json:"dishId"`
	PortionID    string `json:"portionId"`
	Quantity     int    `json:"quantity"`
}

// UpdateCartItemRequest changes one line's quantity; zero removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineUpdateDTO is one entry of a bulk cart update.
type CartLineUpdateDTO struct {
	LineID   string `json:"lineId"`
	Quantity int    `json:"quantity"`
}

// BulkUpdateCartRequest applies several quantity changes atomically.
type BulkUpdateCartRequest struct {
	Updates []CartLineUpdateDTO `json:"updates"`
}

// CartLineDTO is one cart line of the cart view.
type CartLineDTO struct {
	LineID      string  `json:"lineId"`
	DishID      string  `json:"dishId"`
	DishName    string  `json:"dishName"`
	PortionID   string  `json:"portionId,omitempty"`
	PortionName string  `json:"portionName,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// CartResponse is the cart view returned by the API.
type CartResponse struct {
	CustomerID   string        `json:"customerId"`
	RestaurantID string        `json:"restaurantId,omitempty"`
	Lines        []CartLineDTO `json:"lines"`
	Subtotal     float64       `json:"subtotal"`
}

func cartResponseFrom(view queries.GetCartQueryResponse) CartResponse {
	lines := make([]CartLineDTO, 0, len(view.Lines))
	for _, line := range view.Lines {
		lines = append(lines, CartLineDTO{
			LineID:      line.LineID.String(),
			DishID:      line.DishID,
			DishName:    line.DishName,
			PortionID:   line.PortionID,
			PortionName: line.PortionName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TotalPrice:  line.TotalPrice,
		})
	}
	return CartResponse{
		CustomerID:   view.CustomerID,
		RestaurantID: view.RestaurantID,
		Lines:        lines,
		Subtotal:     view.Subtotal,
	}
}

// CheckoutRequest places an order from the caller's cart.
type CheckoutRequest struct {
	Fulfillment         string      `json:"fulfillment"`
	PaymentMethod       string      `json:"paymentMethod"`
	Address             *AddressDTO `json:"address,omitempty"`
	TaxOverride         *float64    `json:"taxOverride,omitempty"`
	DeliveryFeeOverride *float64    `json:"deliveryFeeOverride,omitempty"`
}

// UpdateOrderStatusRequest moves an order to a new status.
type UpdateOrderStatusRequest struct {
	Status                string `json:"status"`
	Notes                 string `json:"notes"`
	EstimatedReadyMinutes int    `json:"estimatedReadyMinutes"`
}

// AssignDriverRequest attaches a delivery person to an order.
type AssignDriverRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle"`
}

// UpdateDriverLocationRequest reports the driver's position.
type UpdateDriverLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OrderItemDTO is one line of the order view.
type OrderItemDTO struct {
	DishID      string  `json:"dishId"`
	Name        string  `json:"name"`
	PortionName string  `json:"portionName,omitempty"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"totalPrice"`
}

// StatusEventDTO is one history entry of the order view.
type StatusEventDTO struct {
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
	ActorID    string    `json:"actorId,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// DriverDTO describes the assigned delivery person.
type DriverDTO struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Phone                 string    `json:"phone"`
	Vehicle               string    `json:"vehicle,omitempty"`
	AssignedAt            time.Time `json:"assignedAt"`
	EstimatedDeliveryTime time.Time `json:"estimatedDeliveryTime"`
}

// OrderResponse is the full order view returned by the API.
type OrderResponse struct {
	OrderID            string           `json:"orderId"`
	Status             string           `json:"status"`
	Fulfillment        string           `json:"fulfillment"`
	CustomerID         string           `json:"customerId"`
	CustomerName       string           `json:"customerName"`
	RestaurantID       string           `json:"restaurantId"`
	RestaurantName     string           `json:"restaurantName"`
	Items              []OrderItemDTO   `json:"items"`
	Subtotal           float64          `json:"subtotal"`
	Tax                float64          `json:"tax"`
	DeliveryFee        float64          `json:"deliveryFee"`
	TotalAmount        float64          `json:"totalAmount"`
	PaymentStatus      string           `json:"paymentStatus,omitempty"`
	PaymentMethod      string           `json:"paymentMethod,omitempty"`
	Address            *AddressDTO      `json:"address,omitempty"`
	History            []StatusEventDTO `json:"history"`
	EstimatedReadyTime *time.Time       `json:"estimatedReadyTime,omitempty"`
	ActualReadyTime    *time.Time       `json:"actualReadyTime,omitempty"`
	Driver             *DriverDTO       `json:"driver,omitempty"`
	PlacedAt           time.Time        `json:"placedAt"`
	Version            int64            `json:"version"`
}

func orderResponseFrom(view queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemDTO, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, OrderItemDTO{
			DishID:      item.DishID,
			Name:        item.Name,
			PortionName: item.PortionName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice,
		})
	}

	history := make([]StatusEventDTO, 0, len(view.History))
	for _, event := range view.History {
		history = append(history, StatusEventDTO{
			Status:     event.Status,
			OccurredAt: event.OccurredAt,
			ActorID:    event.ActorID,
			Notes:      event.Notes,
		})
	}

	response := OrderResponse{
		OrderID:            view.OrderID,
		Status:             view.Status,
		Fulfillment:        view.Fulfillment,
		CustomerID:         view.CustomerID,
		CustomerName:       view.CustomerName,
		RestaurantID:       view.RestaurantID,
		RestaurantName:     view.RestaurantName,
		Items:              items,
		Subtotal:           view.Subtotal,
		Tax:                view.Tax,
		DeliveryFee:        view.DeliveryFee,
		TotalAmount:        view.TotalAmount,
		PaymentStatus:      view.PaymentStatus,
		PaymentMethod:      view.PaymentMethod,
		History:            history,
		EstimatedReadyTime: view.EstimatedReadyTime,
		ActualReadyTime:    view.ActualReadyTime,
		PlacedAt:           view.PlacedAt,
		Version:            view.Version,
	}
	if view.Address != nil {
		response.Address = &AddressDTO{
			Street:     view.Address.Street,
			City:       view.Address.City,
			PostalCode: view.Address.PostalCode,
			Lat:        view.Address.Lat,
			Lng:        view.Address.Lng,
		}
	}
	if view.Driver != nil {
		response.Driver = &DriverDTO{
			ID:                    view.Driver.ID,
			Name:                  view.Driver.Name,
			Phone:                 view.Driver.Phone,
			Vehicle:               view.Driver.Vehicle,
			AssignedAt:            view.Driver.AssignedAt,
			EstimatedDeliveryTime: view.Driver.EstimatedDeliveryTime,
		}
	}
	return response
}

// TrackingResponse is the on-demand tracking snapshot: the order view plus
// the live tracking view, in the same shapes the WebSocket feed uses.
type TrackingResponse struct {
	Order    services.OrderUpdate    `json:"order"`
	Tracking services.TrackingUpdate `json:"tracking"`
}
