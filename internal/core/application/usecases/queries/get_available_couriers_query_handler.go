package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableCouriersQueryHandler retrieves the available courier pool from
// the database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetAvailableCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableCouriersQueryHandler creates a handler for courier pool queries.
// Requires a GORM database connection for query execution.
func NewGetAvailableCouriersQueryHandler(db *gorm.DB) GetAvailableCouriersQueryHandler {
	return GetAvailableCouriersQueryHandler{db: db}
}

// Handle executes the query to retrieve all available couriers.
// Returns a slice of courier read models sorted by name.
func (h GetAvailableCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableCouriersQuery,
) ([]CourierView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]CourierView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			vehicle_number,
			available,
			location_lat,
			location_lng
		FROM couriers
		WHERE available = TRUE
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var view CourierView
		var id uuid.UUID
		var lat, lng sql.NullFloat64

		err = rows.Scan(
			&id,
			&view.Name,
			&view.Phone,
			&view.VehicleNumber,
			&view.Available,
			&lat,
			&lng,
		)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = courierID

		if lat.Valid && lng.Valid {
			view.Location = &GeoPointView{Lat: lat.Float64, Lng: lng.Float64}
		}

		couriers = append(couriers, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
