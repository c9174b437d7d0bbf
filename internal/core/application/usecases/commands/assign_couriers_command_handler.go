package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AssignCouriersCommandHandler orchestrates one dispatch tick.
// Loads every ready, unassigned order and the available courier pool, refreshes
// courier positions from the live feed when one is wired, and matches each
// order to its closest eligible courier.
//
// A courier that wins an order leaves the pool for the rest of the tick, so
// one tick never double-books a courier. Orders with no eligible courier stay
// ready and are retried on the next tick; that outcome is logged, not failed.
type AssignCouriersCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.DispatchMatcher
	notifier   ports.NotificationSink
	locations  ports.CourierLocationSource
	logger     *slog.Logger
}

// NewAssignCouriersCommandHandler creates a handler for dispatch ticks.
// The location source may be nil; couriers then match on their last persisted
// position.
func NewAssignCouriersCommandHandler(
	uowFactory UoWFactory,
	matcher services.DispatchMatcher,
	notifier ports.NotificationSink,
	locations ports.CourierLocationSource,
	logger *slog.Logger,
) AssignCouriersCommandHandler {
	return AssignCouriersCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		notifier:   notifier,
		locations:  locations,
		logger:     logger.With("component", "assign_couriers"),
	}
}

// Handle processes one dispatch tick.
// Assignments are persisted inside a single transaction; a version conflict on
// an individual order means another writer touched it mid-tick, and that order
// is skipped rather than failing the tick. Notifications go out after commit,
// best-effort.
func (h AssignCouriersCommandHandler) Handle(ctx context.Context, cmd AssignCouriersCommand) error {
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

	orders, err := orderRepo.GetUnassignedReady(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return uow.Commit(ctx)
	}

	pool, err := courierRepo.GetAllAvailable(ctx)
	if err != nil {
		return err
	}
	h.refreshLocations(ctx, pool)

	assignments := make(map[*order.Order]*courier.Courier)
	for _, candidate := range orders {
		winner, matchErr := h.matcher.Match(candidate, pool)
		if errors.Is(matchErr, services.ErrNoEligibleCourier) {
			h.logger.InfoContext(ctx, "no eligible courier",
				"orderId", candidate.ID(), "pool", len(pool))
			continue
		}
		if matchErr != nil {
			return matchErr
		}

		if err = candidate.AssignCourier(winner.ID()); err != nil {
			return err
		}
		winner.SetUnavailable()

		if err = orderRepo.Update(ctx, candidate); err != nil {
			if errors.Is(err, errs.ErrVersionConflict) {
				h.logger.InfoContext(ctx, "order changed mid-tick, skipping",
					"orderId", candidate.ID())
				winner.SetAvailable()
				continue
			}
			return err
		}
		if err = courierRepo.Update(ctx, winner); err != nil {
			return err
		}

		assignments[candidate] = winner
		pool = removeCourier(pool, winner)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyAssignments(ctx, assignments)
	return nil
}

func (h AssignCouriersCommandHandler) refreshLocations(ctx context.Context, pool []*courier.Courier) {
	if h.locations == nil {
		return
	}

	for _, c := range pool {
		point, err := h.locations.Location(ctx, c.ID())
		if err != nil {
			if !errors.Is(err, errs.ErrObjectNotFound) {
				h.logger.WarnContext(ctx, "location feed read failed",
					"courierId", c.ID(), "error", err)
			}
			continue
		}
		if err = c.UpdateLocation(point); err != nil {
			h.logger.WarnContext(ctx, "location fix rejected",
				"courierId", c.ID(), "error", err)
		}
	}
}

func (h AssignCouriersCommandHandler) notifyAssignments(
	ctx context.Context,
	assignments map[*order.Order]*courier.Courier,
) {
	for assigned, winner := range assignments {
		data := map[string]string{"orderId": assigned.ID().String()}

		driverNote := ports.Notification{
			UserID:   winner.ID().String(),
			UserType: ports.RecipientDriver,
			Title:    "New delivery",
			Message:  fmt.Sprintf("Pick up order %s", assigned.ID()),
			Data:     data,
		}
		if err := h.notifier.Notify(ctx, driverNote); err != nil {
			h.logger.WarnContext(ctx, "driver notification failed",
				"orderId", assigned.ID(), "error", err)
		}

		customerNote := ports.Notification{
			UserID:   assigned.CustomerID().String(),
			UserType: ports.RecipientCustomer,
			Title:    "Order on the way",
			Message:  fmt.Sprintf("%s picked up your order", winner.Name()),
			Data: map[string]string{
				"orderId":       assigned.ID().String(),
				"driverName":    winner.Name(),
				"driverPhone":   winner.Phone(),
				"vehicleNumber": winner.VehicleNumber(),
			},
		}
		if err := h.notifier.Notify(ctx, customerNote); err != nil {
			h.logger.WarnContext(ctx, "customer notification failed",
				"orderId", assigned.ID(), "error", err)
		}
	}
}

func removeCourier(pool []*courier.Courier, gone *courier.Courier) []*courier.Courier {
	remaining := make([]*courier.Courier, 0, len(pool)-1)
	for _, c := range pool {
		if !c.IsEqual(gone) {
			remaining = append(remaining, c)
		}
	}
	return remaining
}
