package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// CourierLocationSource reads the live position feed couriers publish from
// their devices. A missing entry yields errs.ObjectNotFoundError; callers fall
// back to the courier's last persisted location.
type CourierLocationSource interface {
	Location(ctx context.Context, courierID kernel.UUID) (kernel.GeoPoint, error)
}
