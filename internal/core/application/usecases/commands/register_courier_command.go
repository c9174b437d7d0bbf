package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterCourierCommandIsNotConstructed = errors.New(
	"RegisterCourierCommand must be created via NewRegisterCourierCommand constructor",
)

// RegisterCourierCommand adds a courier to the registry. Couriers start
// unavailable with no location fix; they go on shift via the registry and
// publish positions through the location feed.
type RegisterCourierCommand struct { //nolint:recvcheck //using for validation
	courierID     kernel.UUID
	name          string
	phone         string
	vehicleNumber string

	guard guard.ConstructorGuard
}

// NewRegisterCourierCommand creates a command for courier registration.
func NewRegisterCourierCommand(
	courierID kernel.UUID,
	name string,
	phone string,
	vehicleNumber string,
) (RegisterCourierCommand, error) {
	registerCommand := RegisterCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		registerCommand.setCourierID(courierID),
		registerCommand.setName(name),
		registerCommand.setPhone(phone),
		registerCommand.setVehicleNumber(vehicleNumber),
	); err != nil {
		return RegisterCourierCommand{}, err
	}

	return registerCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterCourierCommandIsNotConstructed if validation fails.
func (c RegisterCourierCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCourierCommandIsNotConstructed)
}

// CourierID returns the identifier assigned to the new courier.
func (c RegisterCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier's display name.
func (c RegisterCourierCommand) Name() string {
	return c.name
}

// Phone returns the courier's contact number.
func (c RegisterCourierCommand) Phone() string {
	return c.phone
}

// VehicleNumber returns the courier's vehicle registration.
func (c RegisterCourierCommand) VehicleNumber() string {
	return c.vehicleNumber
}

func (c *RegisterCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *RegisterCourierCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *RegisterCourierCommand) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}

	c.phone = phone
	return nil
}

func (c *RegisterCourierCommand) setVehicleNumber(vehicleNumber string) error {
	if vehicleNumber == "" {
		return errs.NewValueIsRequiredError("vehicleNumber")
	}

	c.vehicleNumber = vehicleNumber
	return nil
}
