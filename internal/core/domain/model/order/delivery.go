package order

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// estimatedTransitMinutes is the flat transit allowance added to the
// restaurant's estimated ready time when a driver is assigned. Real routing
// is out of scope; this matches the straight-line tracking model.
const estimatedTransitMinutes = 25

// Assignment records the driver working a delivery segment, together with
// the driver's last reported live location.
type Assignment struct {
	driver                DriverInfo
	assignedAt            time.Time
	estimatedDeliveryTime time.Time
	location              *kernel.GeoPoint
	locationUpdatedAt     time.Time
}

// NewAssignment builds a validated assignment. estimatedDeliveryTime is
// derived by the aggregate, not supplied by callers.
func NewAssignment(driver DriverInfo, assignedAt, estimatedDeliveryTime time.Time) (*Assignment, error) {
	if err := driver.Validate(); err != nil {
		return nil, err
	}
	if assignedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("assignedAt")
	}
	return &Assignment{
		driver:                driver,
		assignedAt:            assignedAt,
		estimatedDeliveryTime: estimatedDeliveryTime,
	}, nil
}

// RestoreAssignment reconstructs an assignment from persistence, including
// the optional last-known driver location.
func RestoreAssignment(
	driver DriverInfo,
	assignedAt, estimatedDeliveryTime time.Time,
	location *kernel.GeoPoint,
	locationUpdatedAt time.Time,
) (*Assignment, error) {
	assignment, err := NewAssignment(driver, assignedAt, estimatedDeliveryTime)
	if err != nil {
		return nil, err
	}
	if location != nil {
		if err = location.Validate(); err != nil {
			return nil, err
		}
		assignment.location = location
		assignment.locationUpdatedAt = locationUpdatedAt
	}
	return assignment, nil
}

// Driver returns the assigned driver's identity.
func (a *Assignment) Driver() DriverInfo {
	return a.driver
}

// AssignedAt returns when the driver took the segment.
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// EstimatedDeliveryTime returns the projected arrival time.
func (a *Assignment) EstimatedDeliveryTime() time.Time {
	return a.estimatedDeliveryTime
}

// Location returns the last reported driver position, or nil if the driver
// has not reported one yet.
func (a *Assignment) Location() *kernel.GeoPoint {
	return a.location
}

// LocationUpdatedAt returns when the location was last reported.
func (a *Assignment) LocationUpdatedAt() time.Time {
	return a.locationUpdatedAt
}

// recordLocation stores a live position report. Authorization and status
// checks are the aggregate's responsibility.
func (a *Assignment) recordLocation(point kernel.GeoPoint, at time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}
	a.location = &point
	a.locationUpdatedAt = at
	return nil
}
