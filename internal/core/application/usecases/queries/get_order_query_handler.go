package queries

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// GetOrderQueryHandler serves the order read model. Orders carry a nested
// segment document, so the handler reconstructs the aggregate through the
// repository instead of scanning flat rows.
type GetOrderQueryHandler struct {
	orderRepo ports.OrderRepository
}

// NewGetOrderQueryHandler creates a handler for order reads.
func NewGetOrderQueryHandler(orderRepo ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orderRepo: orderRepo}
}

// Handle returns the order read model, or not-found.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	aggregate, err := h.orderRepo.GetByBusinessID(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return OrderResponseFromAggregate(aggregate), nil
}

// OrderResponseFromAggregate flattens an order aggregate into the read model.
func OrderResponseFromAggregate(aggregate *order.Order) GetOrderQueryResponse {
	segment := aggregate.Segment()

	items := make([]OrderItemResponse, 0, len(segment.Items()))
	for _, item := range segment.Items() {
		items = append(items, OrderItemResponse{
			DishID:      item.DishID,
			Name:        item.Name,
			PortionName: item.PortionName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			TotalPrice:  item.Total(),
		})
	}

	history := make([]StatusEventResponse, 0, len(segment.History()))
	for _, event := range segment.History() {
		history = append(history, StatusEventResponse{
			Status:     event.Status().String(),
			OccurredAt: event.OccurredAt(),
			ActorID:    event.ActorID(),
			Notes:      event.Notes(),
		})
	}

	var address *AddressResponse
	if aggregate.Address() != nil {
		address = &AddressResponse{
			Street:     aggregate.Address().Street,
			City:       aggregate.Address().City,
			PostalCode: aggregate.Address().PostalCode,
		}
		if aggregate.Address().Location != nil {
			lat := aggregate.Address().Location.Lat()
			lng := aggregate.Address().Location.Lng()
			address.Lat, address.Lng = &lat, &lng
		}
	}

	var driver *DriverResponse
	if assignment := segment.Assignment(); assignment != nil {
		driver = &DriverResponse{
			ID:                    assignment.Driver().ID,
			Name:                  assignment.Driver().Name,
			Phone:                 assignment.Driver().Phone,
			Vehicle:               assignment.Driver().Vehicle,
			AssignedAt:            assignment.AssignedAt(),
			EstimatedDeliveryTime: assignment.EstimatedDeliveryTime(),
		}
	}

	return GetOrderQueryResponse{
		OrderID:            aggregate.BusinessID(),
		Status:             aggregate.Status().String(),
		Fulfillment:        aggregate.Fulfillment().String(),
		CustomerID:         aggregate.Customer().ID,
		CustomerName:       aggregate.Customer().Name,
		RestaurantID:       segment.RestaurantID(),
		RestaurantName:     segment.RestaurantName(),
		Items:              items,
		Subtotal:           segment.Subtotal(),
		Tax:                segment.Tax(),
		DeliveryFee:        segment.DeliveryFee(),
		TotalAmount:        aggregate.TotalAmount(),
		PaymentStatus:      aggregate.PaymentStatus().String(),
		PaymentMethod:      aggregate.PaymentDetails().Method,
		Address:            address,
		History:            history,
		EstimatedReadyTime: segment.EstimatedReadyTime(),
		ActualReadyTime:    segment.ActualReadyTime(),
		Driver:             driver,
		PlacedAt:           aggregate.PlacedAt(),
		Version:            aggregate.Version(),
	}
}
