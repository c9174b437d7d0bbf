package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetCourierShiftCommandIsNotConstructed = errors.New(
	"SetCourierShiftCommand must be created via NewSetCourierShiftCommand constructor",
)

// SetCourierShiftCommand puts a courier on or off shift. An on-shift courier
// is offered matches; going off shift does not touch in-flight deliveries.
type SetCourierShiftCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewSetCourierShiftCommand creates a command for toggling courier availability.
func NewSetCourierShiftCommand(courierID kernel.UUID, available bool) (SetCourierShiftCommand, error) {
	shiftCommand := SetCourierShiftCommand{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := shiftCommand.setCourierID(courierID); err != nil {
		return SetCourierShiftCommand{}, err
	}

	return shiftCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetCourierShiftCommandIsNotConstructed if validation fails.
func (c SetCourierShiftCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierShiftCommandIsNotConstructed)
}

// CourierID returns the identifier of the courier changing shift.
func (c SetCourierShiftCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Available reports whether the courier is going on shift.
func (c SetCourierShiftCommand) Available() bool {
	return c.available
}

func (c *SetCourierShiftCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
