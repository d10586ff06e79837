// Package cartrepo provides data transfer objects and mapping functions for
// cart persistence. A cart is stored as its line rows keyed by customer;
// saving replaces the full line set, so the rows always mirror the aggregate.
package cartrepo

import (
	"time"

	"github.com/google/uuid"

	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/domain/model/kernel"
)

// CartLineDTO represents one cart line row.
type CartLineDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID   string    `gorm:"index"`
	RestaurantID string
	DishID       string
	DishName     string
	PortionID    string
	PortionName  string
	Quantity     int
	UnitPrice    float64
	CreatedAt    time.Time
}

// TableName specifies the database table name for cart lines.
func (CartLineDTO) TableName() string {
	return "cart_lines"
}

// fromDomain converts a cart aggregate to its line rows.
func fromDomain(aggregate *cart.Cart) []CartLineDTO {
	dtos := make([]CartLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		dtos = append(dtos, CartLineDTO{
			ID:           line.ID().Bytes(),
			CustomerID:   aggregate.CustomerID(),
			RestaurantID: line.RestaurantID(),
			DishID:       line.DishID(),
			DishName:     line.DishName(),
			PortionID:    line.PortionID(),
			PortionName:  line.PortionName(),
			Quantity:     line.Quantity(),
			UnitPrice:    line.UnitPrice(),
			CreatedAt:    line.CreatedAt(),
		})
	}
	return dtos
}

// toDomain reconstructs a cart aggregate from its line rows.
func toDomain(customerID string, dtos []CartLineDTO) (*cart.Cart, error) {
	lines := make([]*cart.Line, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}

		line, err := cart.NewLine(
			id, dto.RestaurantID, dto.DishID, dto.DishName,
			dto.PortionID, dto.PortionName,
			dto.Quantity, dto.UnitPrice, dto.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return cart.RestoreCart(customerID, lines)
}
