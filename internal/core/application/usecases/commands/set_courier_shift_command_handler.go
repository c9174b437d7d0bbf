package commands

import (
	"context"
)

// SetCourierShiftCommandHandler toggles a courier's availability.
type SetCourierShiftCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewSetCourierShiftCommandHandler creates a handler for shift changes.
func NewSetCourierShiftCommandHandler(uowFactory CourierUoWFactory) SetCourierShiftCommandHandler {
	return SetCourierShiftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shift change.
func (h SetCourierShiftCommandHandler) Handle(ctx context.Context, cmd SetCourierShiftCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	aggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if cmd.Available() {
		aggregate.SetAvailable()
	} else {
		aggregate.SetUnavailable()
	}

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
