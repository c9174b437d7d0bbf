package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetCourierBoardQueryIsNotConstructed = errors.New(
	"GetCourierBoardQuery must be created via NewGetCourierBoardQuery constructor",
)

// GetCourierBoardQuery retrieves the work board for one courier: the orders
// they are currently carrying, plus (only while they are on shift) the ready
// orders open for claiming.
type GetCourierBoardQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierBoardQuery creates a query for the given courier's board.
func NewGetCourierBoardQuery(courierID kernel.UUID) (GetCourierBoardQuery, error) {
	boardQuery := GetCourierBoardQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := boardQuery.setCourierID(courierID); err != nil {
		return GetCourierBoardQuery{}, err
	}

	return boardQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierBoardQueryIsNotConstructed)
}

// CourierID returns the identifier of the courier whose board is requested.
func (q GetCourierBoardQuery) CourierID() kernel.UUID {
	return q.courierID
}

func (q *GetCourierBoardQuery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	q.courierID = courierID
	return nil
}

// CourierBoardView is the read model for a courier's work board.
// Active reports whether the courier currently carries at least one
// in-flight delivery.
type CourierBoardView struct {
	Active bool
	Orders []OrderView
}
