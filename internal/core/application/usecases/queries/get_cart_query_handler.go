package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orderflow/internal/core/domain/model/kernel"
)

// GetCartQueryHandler reads cart lines straight from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart reads.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle returns the customer's cart lines in insertion order.
// A customer without a cart gets an empty response, not an error.
func (h GetCartQueryHandler) Handle(
	ctx context.Context,
	query GetCartQuery,
) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	response := GetCartQueryResponse{
		CustomerID: query.CustomerID(),
		Lines:      make([]CartLineResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			restaurant_id,
			dish_id,
			dish_name,
			portion_id,
			portion_name,
			quantity,
			unit_price
		FROM cart_lines
		WHERE customer_id = ?
		ORDER BY created_at
	`, query.CustomerID()).Rows()
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var line CartLineResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&response.RestaurantID,
			&line.DishID,
			&line.DishName,
			&line.PortionID,
			&line.PortionName,
			&line.Quantity,
			&line.UnitPrice,
		)
		if err != nil {
			return GetCartQueryResponse{}, err
		}

		lineID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetCartQueryResponse{}, idErr
		}
		line.LineID = lineID
		line.TotalPrice = float64(line.Quantity) * line.UnitPrice

		response.Subtotal += line.TotalPrice
		response.Lines = append(response.Lines, line)
	}
	if err = rows.Err(); err != nil {
		return GetCartQueryResponse{}, err
	}

	return response, nil
}
