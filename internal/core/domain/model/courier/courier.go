package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a courier without a contact phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrVehicleNumberIsRequired is returned when attempting to create a courier without a vehicle identifier.
	ErrVehicleNumberIsRequired = errs.NewValueIsRequiredError("vehicleNumber")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier constructor")
)

// Courier represents a delivery courier in the system.
// It is an aggregate root holding the courier's identity, contact details,
// the availability flag, and the last-known geographic location.
//
// Business rules:
//   - A courier must have a valid UUID, a name, a phone, and a vehicle identifier
//   - Availability is toggled by the courier and gates new matches only;
//     an unavailable courier still finishes in-flight deliveries
//   - Location is optional: a courier without a position fix carries a nil
//     location and can never win a match
type Courier struct {
	id            kernel.UUID
	name          string
	phone         string
	vehicleNumber string
	available     bool
	location      *kernel.GeoPoint
	guard         guard.ConstructorGuard
}

// NewCourier creates a new Courier with the specified identity and contact details.
// New couriers start unavailable and without a location fix; the courier toggles
// availability on and the location feed supplies the first position.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: human-readable courier name (must be non-empty)
//   - phone: contact phone shared with the customer on assignment
//   - vehicleNumber: vehicle identifier shared with the customer on assignment
func NewCourier(id kernel.UUID, name string, phone string, vehicleNumber string) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
		c.setVehicleNumber(vehicleNumber),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// preserving availability and the last-known location. A nil location means
// the registry has no position fix for this courier.
func RestoreCourier(
	id kernel.UUID,
	name string,
	phone string,
	vehicleNumber string,
	available bool,
	location *kernel.GeoPoint,
) (*Courier, error) {
	c, err := NewCourier(id, name, phone, vehicleNumber)
	if err != nil {
		return nil, err
	}

	c.available = available
	if location != nil {
		if err = location.Validate(); err != nil {
			return nil, err
		}
		loc := *location
		c.location = &loc
	}

	return c, nil
}

// Validate ensures the Courier was properly constructed through a factory method.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's name.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's contact phone.
func (c *Courier) Phone() string {
	return c.phone
}

// VehicleNumber returns the courier's vehicle identifier.
func (c *Courier) VehicleNumber() string {
	return c.vehicleNumber
}

// IsAvailable reports whether the courier accepts new matches.
func (c *Courier) IsAvailable() bool {
	return c.available
}

// Location returns the last-known position, or nil when the registry has no fix.
func (c *Courier) Location() *kernel.GeoPoint {
	return c.location
}

// SetAvailable marks the courier as accepting new matches.
func (c *Courier) SetAvailable() {
	c.available = true
}

// SetUnavailable stops the courier from receiving new matches.
// In-flight orders assigned to the courier are unaffected.
func (c *Courier) SetUnavailable() {
	c.available = false
}

// UpdateLocation records a new position fix from the location feed.
func (c *Courier) UpdateLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = &location
	return nil
}

// DistanceToKm calculates the great-circle distance from the courier's
// last-known position to the given point in kilometers.
// Returns an error if the courier has no position fix.
func (c *Courier) DistanceToKm(point kernel.GeoPoint) (float64, error) {
	if c.location == nil {
		return 0, errs.NewValueIsRequiredError("courier location")
	}

	return c.location.DistanceKm(point)
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	c.phone = phone
	return nil
}

func (c *Courier) setVehicleNumber(vehicleNumber string) error {
	if vehicleNumber == "" {
		return ErrVehicleNumberIsRequired
	}
	c.vehicleNumber = vehicleNumber
	return nil
}
