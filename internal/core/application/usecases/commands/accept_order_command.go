package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents the restaurant accepting an order together
// with a committed preparation time in minutes.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	prepTime int

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command for restaurant acceptance.
// Validates that the order ID is valid and prepTime is a positive number of minutes.
func NewAcceptOrderCommand(orderID kernel.UUID, prepTime int) (AcceptOrderCommand, error) {
	acceptCommand := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acceptCommand.setOrderID(orderID),
		acceptCommand.setPrepTime(prepTime),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptOrderCommandIsNotConstructed if validation fails.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being accepted.
func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PrepTime returns the committed preparation time in minutes.
func (c AcceptOrderCommand) PrepTime() int {
	return c.prepTime
}

func (c *AcceptOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptOrderCommand) setPrepTime(prepTime int) error {
	if prepTime <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"prepTime",
			fmt.Errorf("%d is not a positive number of minutes", prepTime),
		)
	}

	c.prepTime = prepTime
	return nil
}
