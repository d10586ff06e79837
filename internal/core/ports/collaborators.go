package ports

import (
	"context"
	"time"
)

// Portion is a sellable size of a dish with its own price.
type Portion struct {
	ID    string
	Name  string
	Price float64
}

// Dish is a catalog menu item.
type Dish struct {
	ID       string
	Name     string
	Price    float64
	Portions []Portion
}

// Restaurant is the catalog view of a restaurant: its menu plus the
// pricing knobs checkout needs.
type Restaurant struct {
	ID          string
	Name        string
	DeliveryFee float64
	Dishes      []Dish
}

// FindDish looks up a dish by id, or nil when absent.
func (r *Restaurant) FindDish(dishID string) *Dish {
	for i := range r.Dishes {
		if r.Dishes[i].ID == dishID {
			return &r.Dishes[i]
		}
	}
	return nil
}

// FindPortion looks up a portion by id, or nil when absent.
func (d *Dish) FindPortion(portionID string) *Portion {
	for i := range d.Portions {
		if d.Portions[i].ID == portionID {
			return &d.Portions[i]
		}
	}
	return nil
}

// CatalogClient is the restaurant catalog collaborator. Checkout and cart
// mutation both price items from the catalog, never from the caller.
type CatalogClient interface {
	// GetRestaurant retrieves a restaurant with its full menu.
	// A missing restaurant surfaces as errs.ObjectNotFoundError; a
	// transport failure as errs.CollaboratorFailureError.
	GetRestaurant(ctx context.Context, restaurantID string) (*Restaurant, error)
}

// DeliveryAddress is the identity service's stored address shape.
type DeliveryAddress struct {
	Street     string
	City       string
	PostalCode string
	Lat        *float64
	Lng        *float64
}

// CustomerProfile is the identity collaborator's view of a customer.
type CustomerProfile struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	DefaultAddress *DeliveryAddress
}

// IdentityClient resolves customer profiles at checkout time.
type IdentityClient interface {
	// GetCustomerProfile retrieves the customer's contact details and
	// default delivery address.
	GetCustomerProfile(ctx context.Context, customerID string) (*CustomerProfile, error)
}

// PlatformFee is one settlement ledger entry for a placed order.
type PlatformFee struct {
	OrderBusinessID    string
	RestaurantID       string
	Amount             float64
	BillingPeriodStart time.Time
}

// SettlementClient records platform fees with the settlement service.
// Calls are made from the outbox dispatcher, never inline with checkout.
type SettlementClient interface {
	RecordPlatformFee(ctx context.Context, fee PlatformFee) error
}

// StatusNotification tells a customer their order moved to a new status.
type StatusNotification struct {
	OrderBusinessID string
	CustomerID      string
	Status          string
	OccurredAt      time.Time
}

// NotificationClient delivers status-change notifications. Like settlement,
// it is only ever invoked from the outbox dispatcher.
type NotificationClient interface {
	NotifyStatusChange(ctx context.Context, notification StatusNotification) error
}
