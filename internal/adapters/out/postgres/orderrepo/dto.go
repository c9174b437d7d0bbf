// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and courier assignment are indexed so the dispatch tick and the
// courier board read their candidate sets through the query planner instead
// of scanning the table. Version is the optimistic-concurrency column.
type OrderDTO struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	RestaurantID       uuid.UUID      `gorm:"type:uuid;not null"`
	Items              []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount        float64        `gorm:"type:numeric(10,2);not null"`
	DeliveryFee        float64        `gorm:"type:numeric(10,2);not null"`
	PaymentMethod      string         `gorm:"type:varchar(32);not null"`
	PaymentStatus      string         `gorm:"type:varchar(32);not null"`
	PaymentID          string         `gorm:"type:varchar(128)"`
	Status             string         `gorm:"type:varchar(32);not null;index"`
	RestaurantLocation GeoPointDTO    `gorm:"embedded;embeddedPrefix:restaurant_"`
	DeliveryLocation   GeoPointDTO    `gorm:"embedded;embeddedPrefix:delivery_"`
	CourierID          *uuid.UUID     `gorm:"type:uuid;index"`
	PrepTime           int            `gorm:"type:int;not null;default:0"`
	RejectionReason    string         `gorm:"type:varchar(255)"`
	Version            int            `gorm:"type:int;not null;default:0"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoPointDTO represents embedded geographic coordinates within the order table.
type GeoPointDTO struct {
	Lat float64 `gorm:"type:double precision;not null"`
	Lng float64 `gorm:"type:double precision;not null"`
}

// OrderItemDTO represents the database structure for persisting order lines.
// Lines are immutable after order placement: they are written once with the
// order and only ever read back.
type OrderItemDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	UnitPrice float64   `gorm:"type:numeric(10,2);not null"`
	Quantity  int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional courier assignment.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   orderID,
			Name:      item.Name(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderDTO{
		ID:            orderID,
		CustomerID:    aggregate.CustomerID().Bytes(),
		RestaurantID:  aggregate.RestaurantID().Bytes(),
		Items:         items,
		TotalAmount:   aggregate.TotalAmount(),
		DeliveryFee:   aggregate.DeliveryFee(),
		PaymentMethod: aggregate.PaymentMethod().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		PaymentID:     aggregate.PaymentID(),
		Status:        aggregate.Status().String(),
		RestaurantLocation: GeoPointDTO{
			Lat: aggregate.RestaurantLocation().Lat(),
			Lng: aggregate.RestaurantLocation().Lng(),
		},
		DeliveryLocation: GeoPointDTO{
			Lat: aggregate.DeliveryLocation().Lat(),
			Lng: aggregate.DeliveryLocation().Lng(),
		},
		CourierID:       courierID,
		PrepTime:        aggregate.PrepTime(),
		RejectionReason: aggregate.RejectionReason(),
		Version:         aggregate.Version(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, payment state, and
// courier assignment using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := order.NewItem(itemDto.Name, itemDto.UnitPrice, itemDto.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	restaurantLocation, err := kernel.NewGeoPoint(dto.RestaurantLocation.Lat, dto.RestaurantLocation.Lng)
	if err != nil {
		return nil, err
	}

	deliveryLocation, err := kernel.NewGeoPoint(dto.DeliveryLocation.Lat, dto.DeliveryLocation.Lng)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customerID,
		restaurantID,
		items,
		dto.TotalAmount,
		dto.DeliveryFee,
		paymentMethod,
		paymentStatus,
		dto.PaymentID,
		status,
		restaurantLocation,
		deliveryLocation,
		courierID,
		dto.PrepTime,
		dto.RejectionReason,
		dto.Version,
	)
}
