package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderColumns is the select list shared by every order read.
const orderColumns = `
	id,
	customer_id,
	restaurant_id,
	total_amount,
	delivery_fee,
	payment_method,
	payment_status,
	payment_id,
	status,
	restaurant_lat,
	restaurant_lng,
	delivery_lat,
	delivery_lng,
	courier_id,
	prep_time,
	rejection_reason
`

// scanOrderViews drains order rows into read models, without items.
func scanOrderViews(rows *sql.Rows) ([]OrderView, error) {
	views := make([]OrderView, 0)

	for rows.Next() {
		var view OrderView
		var id, customerID, restaurantID uuid.UUID
		var courierID uuid.NullUUID

		err := rows.Scan(
			&id,
			&customerID,
			&restaurantID,
			&view.TotalAmount,
			&view.DeliveryFee,
			&view.PaymentMethod,
			&view.PaymentStatus,
			&view.PaymentID,
			&view.Status,
			&view.RestaurantLocation.Lat,
			&view.RestaurantLocation.Lng,
			&view.DeliveryLocation.Lat,
			&view.DeliveryLocation.Lng,
			&courierID,
			&view.PrepTime,
			&view.RejectionReason,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if view.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
			return nil, err
		}
		if courierID.Valid {
			cID, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			view.CourierID = &cID
		}

		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

// attachItems loads the order lines for every view in one query.
func attachItems(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(views))
	byID := make(map[uuid.UUID]int, len(views))
	for i, view := range views {
		raw := view.ID.Bytes()
		ids = append(ids, raw)
		byID[raw] = i
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			name,
			unit_price,
			quantity
		FROM order_items
		WHERE order_id IN ?
		ORDER BY id
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uuid.UUID
		var item OrderItemView

		if err = rows.Scan(&orderID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			return err
		}

		i, ok := byID[orderID]
		if !ok {
			continue
		}
		views[i].Items = append(views[i].Items, item)
	}

	return rows.Err()
}
