package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// AdvanceOrderStatusCommandHandler moves an order along the restaurant-side
// lifecycle: pending to confirmed, accepted to preparing, preparing to ready.
// Each step is a separate aggregate operation so the transition rules stay in
// the domain model.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderStatusCommandHandler creates a handler for lifecycle advancement.
func NewAdvanceOrderStatusCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the advancement command.
// An illegal step for the order's current status surfaces as the domain's
// transition error; concurrent writers surface as errs.VersionConflictError.
func (h AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	switch cmd.Target() {
	case order.Confirmed:
		err = aggregate.Confirm()
	case order.Preparing:
		err = aggregate.StartPreparing()
	case order.Ready:
		err = aggregate.MarkReady()
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
