package commands

import (
	"context"
	"fmt"
	"log/slog"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ClaimOrderCommandHandler handles a courier claiming a ready order.
// Binds the order to the courier, marks the courier busy, and persists both
// changes in one transaction.
//
// Two couriers racing for the same order cannot both win: the second writer's
// version check fails and the claim comes back as errs.VersionConflictError.
//
// Example:
//
//	handler := NewClaimOrderCommandHandler(uowFactory, notifier, logger)
//	cmd, _ := NewClaimOrderCommand(orderID, courierID)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrVersionConflict) {
//	    // another courier got there first
//	}
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
	logger     *slog.Logger
}

// NewClaimOrderCommandHandler creates a handler for manual order claims.
// Requires a UoWFactory spanning both aggregates and a notification sink for
// the customer-facing message.
func NewClaimOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationSink,
	logger *slog.Logger,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "claim_order"),
	}
}

// Handle processes the claim command.
// The courier must exist and be available; the order must be ready and
// unassigned. On success the customer is notified best-effort: a failed
// notification is logged and never undoes the claim.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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
	orderRepo := uow.OrderRepository()

	claimant, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !claimant.IsAvailable() {
		return errs.NewPreconditionFailedErrorWithCause(
			"courierId",
			fmt.Errorf("courier %s is not available", claimant.ID()),
		)
	}

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AssignCourier(claimant.ID()); err != nil {
		return err
	}
	claimant.SetUnavailable()

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, claimant); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notification := ports.Notification{
		UserID:   aggregate.CustomerID().String(),
		UserType: ports.RecipientCustomer,
		Title:    "Order on the way",
		Message:  fmt.Sprintf("%s picked up your order", claimant.Name()),
		Data: map[string]string{
			"orderId":       aggregate.ID().String(),
			"driverName":    claimant.Name(),
			"driverPhone":   claimant.Phone(),
			"vehicleNumber": claimant.VehicleNumber(),
		},
	}
	if err = h.notifier.Notify(ctx, notification); err != nil {
		h.logger.WarnContext(ctx, "customer notification failed",
			"orderId", aggregate.ID(), "error", err)
	}

	return nil
}
