package services

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrNoEligibleCourier is returned when no courier can serve the order: none
// are available, none have a position fix, or all are beyond the maximum match
// radius. This is a distinct observable outcome so operators can alert on
// order starvation instead of seeing a silent no-op.
var ErrNoEligibleCourier = errors.New("no eligible courier")

// DispatchMatcher is a domain service that finds the best courier for a ready
// order by great-circle distance from the order's restaurant.
//
// Selection rules:
//   - Only available couriers are candidates
//   - Couriers without a position fix are discarded
//   - Couriers beyond maxDistanceKm from the restaurant are discarded
//   - The remaining candidate with the minimum distance wins; on equal
//     distances the earlier courier in the input slice is kept
//
// The matcher never mutates its inputs; committing the winning assignment is
// the caller's responsibility.
type DispatchMatcher struct {
	maxDistanceKm float64
}

// NewDispatchMatcher creates a matcher with the given maximum match radius in
// kilometers. The radius must be positive; there is no unbounded default.
func NewDispatchMatcher(maxDistanceKm float64) (DispatchMatcher, error) {
	if maxDistanceKm <= 0 || math.IsNaN(maxDistanceKm) {
		return DispatchMatcher{}, errs.NewValueIsInvalidErrorWithCause(
			"maxDistanceKm",
			fmt.Errorf("%f is not a positive radius", maxDistanceKm),
		)
	}

	return DispatchMatcher{maxDistanceKm: maxDistanceKm}, nil
}

// MaxDistanceKm returns the configured match radius.
func (m DispatchMatcher) MaxDistanceKm() float64 {
	return m.maxDistanceKm
}

// Match selects the nearest eligible courier for the given order.
//
// The order must be a valid unassigned aggregate in Ready status. Returns
// ErrNoEligibleCourier when no candidate survives filtering.
func (m DispatchMatcher) Match(o *order.Order, couriers []*courier.Courier) (*courier.Courier, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if o.Status() != order.Ready || o.Courier() != nil {
		return nil, errs.NewPreconditionFailedErrorWithCause(
			"match",
			fmt.Errorf("order %s is not an unassigned ready order", o.ID()),
		)
	}

	var (
		best     *courier.Courier
		bestDist = math.MaxFloat64
	)

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if !c.IsAvailable() || c.Location() == nil {
			continue
		}

		dist, err := c.DistanceToKm(o.RestaurantLocation())
		if err != nil {
			return nil, err
		}

		if dist > m.maxDistanceKm {
			continue
		}

		if dist < bestDist {
			bestDist = dist
			best = c
		}
	}

	if best == nil {
		return nil, ErrNoEligibleCourier
	}

	return best, nil
}
