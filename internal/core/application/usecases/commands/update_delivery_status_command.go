package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand represents a courier reporting delivery
// progress on an order assigned to them. Only "onTheWay" and "delivered" are
// courier-reportable statuses.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	status    order.Status

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command for a courier-side status report.
func NewUpdateDeliveryStatusCommand(
	orderID kernel.UUID,
	courierID kernel.UUID,
	status order.Status,
) (UpdateDeliveryStatusCommand, error) {
	updateCommand := UpdateDeliveryStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		updateCommand.setOrderID(orderID),
		updateCommand.setCourierID(courierID),
		updateCommand.setStatus(status),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return updateCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being reported on.
func (c UpdateDeliveryStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the reporting courier.
func (c UpdateDeliveryStatusCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Status returns the reported status.
func (c UpdateDeliveryStatusCommand) Status() order.Status {
	return c.status
}

func (c *UpdateDeliveryStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setStatus(status order.Status) error {
	switch status {
	case order.OnTheWay, order.Delivered:
		c.status = status
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%q is not a courier-reportable status", status),
		)
	}
}
