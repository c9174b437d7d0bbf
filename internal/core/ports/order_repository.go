// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the notification sink, and
// the live courier-location source. These interfaces enable dependency
// inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Update performs an optimistic-concurrency write: the aggregate's version as
// read from storage is compared against the stored row, and a mismatch is
// reported as a VersionConflictError so the caller can retry against fresh
// state instead of silently overwriting a concurrent change.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Returns errs.VersionConflictError when the row changed since the
	// aggregate was read, and errs.ObjectNotFoundError when the row is gone.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetUnassignedReady retrieves all orders in Ready status without an
	// assigned courier, the candidate set of a dispatch tick. The filter runs
	// inside the store's query layer so the core never scans full collections.
	GetUnassignedReady(ctx context.Context) ([]*order.Order, error)

	// GetByCourier retrieves all orders assigned to the given courier that
	// are not yet in a terminal status.
	GetByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error)
}
