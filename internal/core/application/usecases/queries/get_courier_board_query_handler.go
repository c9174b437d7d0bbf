package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCourierBoardQueryHandler retrieves a courier's work board from the database.
//
// An available courier sees their in-flight deliveries followed by the ready,
// unassigned pool; an off-shift courier sees only their own in-flight work, so
// new work is never offered to a courier who cannot take it.
type GetCourierBoardQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierBoardQueryHandler creates a handler for courier board queries.
// Requires a GORM database connection for query execution.
func NewGetCourierBoardQueryHandler(db *gorm.DB) GetCourierBoardQueryHandler {
	return GetCourierBoardQueryHandler{db: db}
}

// Handle executes the board query for one courier.
func (h GetCourierBoardQueryHandler) Handle(
	ctx context.Context,
	query GetCourierBoardQuery,
) (CourierBoardView, error) {
	if err := query.Validate(); err != nil {
		return CourierBoardView{}, err
	}

	available, err := h.courierAvailability(ctx, query)
	if err != nil {
		return CourierBoardView{}, err
	}

	active, err := h.activeDeliveries(ctx, query)
	if err != nil {
		return CourierBoardView{}, err
	}
	if !available {
		return CourierBoardView{Active: len(active) > 0, Orders: active}, nil
	}

	open, err := h.openCandidates(ctx)
	if err != nil {
		return CourierBoardView{}, err
	}

	return CourierBoardView{Active: len(active) > 0, Orders: append(active, open...)}, nil
}

func (h GetCourierBoardQueryHandler) courierAvailability(
	ctx context.Context,
	query GetCourierBoardQuery,
) (bool, error) {
	var available bool
	err := h.db.WithContext(ctx).Raw(`
		SELECT available
		FROM couriers
		WHERE id = ?
	`, query.CourierID().Bytes()).Row().Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return false, errs.NewObjectNotFoundError("courierId", query.CourierID().String())
	}
	if err != nil {
		return false, err
	}
	return available, nil
}

func (h GetCourierBoardQueryHandler) activeDeliveries(
	ctx context.Context,
	query GetCourierBoardQuery,
) ([]OrderView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE courier_id = ?
		  AND status NOT IN ('delivered', 'cancelled', 'rejected')
		ORDER BY id
	`, query.CourierID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views, err := scanOrderViews(rows)
	if err != nil {
		return nil, err
	}

	if err = attachItems(ctx, h.db, views); err != nil {
		return nil, err
	}
	return views, nil
}

func (h GetCourierBoardQueryHandler) openCandidates(ctx context.Context) ([]OrderView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT ` + orderColumns + `
		FROM orders
		WHERE status = 'ready'
		  AND courier_id IS NULL
		ORDER BY id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views, err := scanOrderViews(rows)
	if err != nil {
		return nil, err
	}

	if err = attachItems(ctx, h.db, views); err != nil {
		return nil, err
	}
	return views, nil
}
