package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the wire shape for failed requests.
type Error struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// Location carries coordinates on the wire.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OrderItem is one order line on the wire.
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order is the full order record on the wire.
type Order struct {
	ID                 string      `json:"id"`
	CustomerID         string      `json:"customerId"`
	RestaurantID       string      `json:"restaurantId"`
	Items              []OrderItem `json:"items"`
	TotalAmount        float64     `json:"totalAmount"`
	DeliveryFee        float64     `json:"deliveryFee"`
	PaymentMethod      string      `json:"paymentMethod"`
	PaymentStatus      string      `json:"paymentStatus"`
	PaymentID          string      `json:"paymentId,omitempty"`
	OrderStatus        string      `json:"orderStatus"`
	RestaurantLocation Location    `json:"restaurantLocation"`
	DeliveryLocation   Location    `json:"deliveryLocation"`
	AssignedDriverID   *string     `json:"assignedDriverId"`
	PrepTime           int         `json:"prepTime,omitempty"`
	RejectionReason    string      `json:"rejectionReason,omitempty"`
}

// Courier is the driver record on the wire.
type Courier struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	VehicleNumber   string    `json:"vehicleNumber"`
	Availability    bool      `json:"availability"`
	CurrentLocation *Location `json:"currentLocation"`
}

func orderFromView(view queries.OrderView) Order {
	items := make([]OrderItem, len(view.Items))
	for i, item := range view.Items {
		items[i] = OrderItem{
			Name:     item.Name,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
		}
	}

	var driverID *string
	if view.CourierID != nil {
		s := view.CourierID.String()
		driverID = &s
	}

	return Order{
		ID:                 view.ID.String(),
		CustomerID:         view.CustomerID.String(),
		RestaurantID:       view.RestaurantID.String(),
		Items:              items,
		TotalAmount:        view.TotalAmount,
		DeliveryFee:        view.DeliveryFee,
		PaymentMethod:      view.PaymentMethod,
		PaymentStatus:      view.PaymentStatus,
		PaymentID:          view.PaymentID,
		OrderStatus:        view.Status,
		RestaurantLocation: Location{Lat: view.RestaurantLocation.Lat, Lng: view.RestaurantLocation.Lng},
		DeliveryLocation:   Location{Lat: view.DeliveryLocation.Lat, Lng: view.DeliveryLocation.Lng},
		AssignedDriverID:   driverID,
		PrepTime:           view.PrepTime,
		RejectionReason:    view.RejectionReason,
	}
}

func courierFromView(view queries.CourierView) Courier {
	var location *Location
	if view.Location != nil {
		location = &Location{Lat: view.Location.Lat, Lng: view.Location.Lng}
	}

	return Courier{
		ID:              view.ID.String(),
		Name:            view.Name,
		Phone:           view.Phone,
		VehicleNumber:   view.VehicleNumber,
		Availability:    view.Available,
		CurrentLocation: location,
	}
}

// writeError maps domain and application errors onto HTTP status codes.
// Version conflicts are flagged retryable so callers re-read and retry.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	retryable := false

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrPreconditionFailed),
		errors.Is(err, order.ErrCourierAlreadyAssigned):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrVersionConflict):
		code = http.StatusConflict
		retryable = true
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		code = http.StatusServiceUnavailable
	}

	return ctx.JSON(code, Error{
		Code:      code,
		Message:   err.Error(),
		Retryable: retryable,
	})
}
