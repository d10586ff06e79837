package order

import (
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// Fulfillment distinguishes delivery orders from pickup orders.
type Fulfillment int

const (
	// FulfillmentUnknown catches uninitialized values.
	FulfillmentUnknown Fulfillment = iota
	// Delivery orders require a resolved address and carry a delivery fee.
	Delivery
	// Pickup orders skip address resolution and the delivery fee.
	Pickup
)

// FulfillmentFromString parses "DELIVERY" or "PICKUP".
func FulfillmentFromString(s string) (Fulfillment, error) {
	switch s {
	case "DELIVERY":
		return Delivery, nil
	case "PICKUP":
		return Pickup, nil
	default:
		return FulfillmentUnknown, errs.NewValueIsInvalidErrorWithCause("fulfillmentType",
			fmt.Errorf("%q is not a valid fulfillment type", s))
	}
}

// Validate checks the Fulfillment is a defined value.
func (f Fulfillment) Validate() error {
	if f != Delivery && f != Pickup {
		return errs.NewValueIsInvalidError("fulfillmentType")
	}
	return nil
}

// String returns the wire-format name.
func (f Fulfillment) String() string {
	switch f {
	case Delivery:
		return "DELIVERY"
	case Pickup:
		return "PICKUP"
	default:
		return "UNKNOWN"
	}
}

// Customer is the contact snapshot embedded in an order at checkout.
// A complete profile (name, email, phone) is a checkout precondition.
type Customer struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// NewCustomer builds a validated contact snapshot.
func NewCustomer(id, name, email, phone string) (Customer, error) {
	if id == "" {
		return Customer{}, errs.NewValueIsRequiredError("customerId")
	}
	if name == "" {
		return Customer{}, errs.NewValueIsRequiredError("customerName")
	}
	if email == "" {
		return Customer{}, errs.NewValueIsRequiredError("customerEmail")
	}
	if phone == "" {
		return Customer{}, errs.NewValueIsRequiredError("customerPhone")
	}
	return Customer{ID: id, Name: name, Email: email, Phone: phone}, nil
}

// Validate checks the snapshot is complete.
func (c Customer) Validate() error {
	_, err := NewCustomer(c.ID, c.Name, c.Email, c.Phone)
	return err
}

// Address is a delivery destination. The geographic location is optional;
// when present it serves as the endpoint for tracking-route interpolation.
type Address struct {
	Street     string
	City       string
	PostalCode string
	Location   *kernel.GeoPoint
}

// NewAddress builds a validated address. Street is the only mandatory field.
func NewAddress(street, city, postalCode string, location *kernel.GeoPoint) (Address, error) {
	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return Address{}, err
		}
	}
	return Address{Street: street, City: city, PostalCode: postalCode, Location: location}, nil
}

// Validate checks the address carries at least a street.
func (a Address) Validate() error {
	if a.Street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	return nil
}

// Item is an immutable snapshot of one ordered dish, priced from the cart
// line it came from rather than the live catalog.
type Item struct {
	DishID      string
	Name        string
	PortionName string
	UnitPrice   float64
	Quantity    int
}

// NewItem builds a validated item snapshot.
func NewItem(dishID, name, portionName string, unitPrice float64, quantity int) (Item, error) {
	if dishID == "" {
		return Item{}, errs.NewValueIsRequiredError("dishId")
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("itemName")
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidError("unitPrice")
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, 100)
	}
	return Item{DishID: dishID, Name: name, PortionName: portionName, UnitPrice: unitPrice, Quantity: quantity}, nil
}

// Total returns quantity times the snapshot price.
func (i Item) Total() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// PaymentStatus tracks settlement of the order amount.
type PaymentStatus int

const (
	// PaymentUnknown catches uninitialized values.
	PaymentUnknown PaymentStatus = iota
	// PaymentPending is the initial state at checkout.
	PaymentPending
	// PaymentPaid marks a confirmed charge.
	PaymentPaid
	// PaymentFailed marks a rejected charge.
	PaymentFailed
	// PaymentRefunded marks a reversed charge after cancellation.
	PaymentRefunded
)

// PaymentStatusFromString parses a wire-format payment status.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	switch s {
	case "PENDING":
		return PaymentPending, nil
	case "PAID":
		return PaymentPaid, nil
	case "FAILED":
		return PaymentFailed, nil
	case "REFUNDED":
		return PaymentRefunded, nil
	default:
		return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%q is not a valid payment status", s))
	}
}

// String returns the wire-format name.
func (p PaymentStatus) String() string {
	switch p {
	case PaymentPending:
		return "PENDING"
	case PaymentPaid:
		return "PAID"
	case PaymentFailed:
		return "FAILED"
	case PaymentRefunded:
		return "REFUNDED"
	default:
		return "UNKNOWN"
	}
}

// PaymentDetails carries the externally supplied settlement reference.
// Payment-gateway logic itself is out of scope for this service.
type PaymentDetails struct {
	Method         string
	TransactionRef string
}

// DriverInfo identifies the driver assigned to a delivery, with the contact
// and vehicle details surfaced to tracking clients.
type DriverInfo struct {
	ID      string
	Name    string
	Phone   string
	Vehicle string
}

// NewDriverInfo builds validated driver identity details.
func NewDriverInfo(id, name, phone, vehicle string) (DriverInfo, error) {
	if id == "" {
		return DriverInfo{}, errs.NewValueIsRequiredError("driverId")
	}
	if name == "" {
		return DriverInfo{}, errs.NewValueIsRequiredError("driverName")
	}
	return DriverInfo{ID: id, Name: name, Phone: phone, Vehicle: vehicle}, nil
}

// Validate checks the driver identity is complete.
func (d DriverInfo) Validate() error {
	_, err := NewDriverInfo(d.ID, d.Name, d.Phone, d.Vehicle)
	return err
}
