// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"dispatch/internal/core/domain/model/kernel"
)

// OrderView is the read model for a single order as exposed to clients.
// Statuses and the payment method carry their wire names ("pending",
// "cashOnDelivery", ...), ready for serialization without further mapping.
type OrderView struct {
	ID                 kernel.UUID
	CustomerID         kernel.UUID
	RestaurantID       kernel.UUID
	Items              []OrderItemView
	TotalAmount        float64
	DeliveryFee        float64
	PaymentMethod      string
	PaymentStatus      string
	PaymentID          string
	Status             string
	RestaurantLocation GeoPointView
	DeliveryLocation   GeoPointView
	CourierID          *kernel.UUID
	PrepTime           int
	RejectionReason    string
}

// OrderItemView is the read model for one order line.
type OrderItemView struct {
	Name      string
	UnitPrice float64
	Quantity  int
}

// GeoPointView carries plain coordinates in the read model.
type GeoPointView struct {
	Lat float64
	Lng float64
}

// CourierView is the read model for a courier as exposed to clients.
// Location is nil when the courier never published a position fix.
type CourierView struct {
	ID            kernel.UUID
	Name          string
	Phone         string
	VehicleNumber string
	Available     bool
	Location      *GeoPointView
}
