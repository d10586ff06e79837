package cartrepo

import (
	"context"

	"gorm.io/gorm"

	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/pkg/errs"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Get loads the customer's cart lines in insertion order. A customer with
// no rows gets a fresh empty cart.
func (r *GormCartRepository) Get(ctx context.Context, customerID string) (*cart.Cart, error) {
	if customerID == "" {
		return nil, errs.NewValueIsRequiredError("customerId")
	}

	var dtos []CartLineDTO
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	if len(dtos) == 0 {
		return cart.NewCart(customerID)
	}
	return toDomain(customerID, dtos)
}

// Save replaces the customer's stored line set with the aggregate's current
// lines. Saving an empty cart deletes everything. Runs inside the caller's
// transaction so a mid-save failure leaves the old rows intact.
func (r *GormCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("customer_id = ?", aggregate.CustomerID()).Delete(&CartLineDTO{}).Error; err != nil {
		return err
	}

	dtos := fromDomain(aggregate)
	if len(dtos) == 0 {
		return nil
	}
	return db.Create(&dtos).Error
}
