package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrAssignCouriersCommandIsNotConstructed = errors.New(
	"AssignCouriersCommand must be created via NewAssignCouriersCommand constructor",
)

// AssignCouriersCommand triggers one dispatch tick: every ready, unassigned
// order is matched against the available courier pool and bound to the
// closest courier within the match radius.
//
// Example:
//
//	cmd := NewAssignCouriersCommand()
//	handler := NewAssignCouriersCommandHandler(uowFactory, matcher, notifier, locations, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("dispatch tick failed: %v", err)
//	}
type AssignCouriersCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignCouriersCommand creates a new command to trigger a dispatch tick.
// This is a parameterless command that initiates the courier-order matching process.
func NewAssignCouriersCommand() AssignCouriersCommand {
	return AssignCouriersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignCouriersCommandIsNotConstructed if validation fails.
func (c *AssignCouriersCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignCouriersCommandIsNotConstructed,
	)
}
