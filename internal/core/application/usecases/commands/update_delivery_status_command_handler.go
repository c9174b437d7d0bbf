package commands

import (
	"context"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// UpdateDeliveryStatusCommandHandler handles courier-side delivery reports.
// Completing a delivery settles cash-on-delivery payment inside the same
// aggregate change and frees the courier for new matches, all in one
// transaction.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
	logger     *slog.Logger
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery reports.
func NewUpdateDeliveryStatusCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationSink,
	logger *slog.Logger,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "update_delivery_status"),
	}
}

// Handle processes the delivery report.
// The order must be assigned to the reporting courier: reports from anyone
// else fail with errs.PreconditionFailedError. An "onTheWay" report on an
// order already on the way is accepted without a write, since assignment and
// departure happen together. A "delivered" report completes the order,
// settles cash payment when applicable, and returns the courier to the
// available pool. The customer is notified best-effort.
func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
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
	courierRepo := uow.CourierRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !aggregate.IsAssignedTo(cmd.CourierID()) {
		return errs.NewPreconditionFailedErrorWithCause(
			"courierId",
			fmt.Errorf("order %s is not assigned to courier %s", aggregate.ID(), cmd.CourierID()),
		)
	}

	if cmd.Status() == order.OnTheWay {
		if aggregate.Status() == order.OnTheWay {
			return nil
		}
		return errs.NewPreconditionFailedErrorWithCause(
			"status",
			fmt.Errorf("order %s is %s, not on the way", aggregate.ID(), aggregate.Status()),
		)
	}

	if err = aggregate.Deliver(); err != nil {
		return err
	}

	carrier, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	carrier.SetAvailable()

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, carrier); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notification := ports.Notification{
		UserID:   aggregate.CustomerID().String(),
		UserType: ports.RecipientCustomer,
		Title:    "Order delivered",
		Message:  "Your order has been delivered. Enjoy!",
		Data:     map[string]string{"orderId": aggregate.ID().String()},
	}
	if err = h.notifier.Notify(ctx, notification); err != nil {
		h.logger.WarnContext(ctx, "customer notification failed",
			"orderId", aggregate.ID(), "error", err)
	}

	return nil
}
