package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

const (
	// DeliveryFee is the constant surcharge added to every order at creation.
	DeliveryFee = 2.50

	// DefaultRejectionReason is stored when the restaurant rejects an order
	// without giving a reason.
	DefaultRejectionReason = "No reason provided"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrCourierAlreadyAssigned is returned on an attempt to assign a courier to
	// an order that already has one. Assignment happens exactly once per order.
	ErrCourierAlreadyAssigned = errors.New("order already has an assigned courier")
)

// Order represents a food-delivery order. It is the aggregate root that owns the
// lifecycle from placement through restaurant acceptance, courier assignment, and
// delivery.
//
// Order maintains these invariants:
//   - Items, amounts, and both locations are fixed at creation
//   - Status transitions follow the graph defined on Status
//   - The courier is assigned at most once, and only together with the
//     transition to OnTheWay
//   - prepTime is set only by Accept, rejectionReason only by Reject
//   - Delivering a cash-on-delivery order settles the payment in the same
//     state change
//
// The version field is the optimistic-concurrency token compared by the
// repository at write time; a mismatch means the caller lost a race and must
// retry against fresh state.
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID

	items       []Item
	totalAmount float64
	deliveryFee float64

	paymentMethod PaymentMethod
	paymentStatus PaymentStatus
	paymentID     string

	status             Status
	restaurantLocation kernel.GeoPoint
	deliveryLocation   kernel.GeoPoint

	courierID       *kernel.UUID
	prepTime        int
	rejectionReason string

	version int

	isConstructed bool
}

// NewOrder creates a freshly placed Order in Pending status with the delivery
// fee surcharge applied and the total computed from the item lines.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - customerID, restaurantID: references to the ordering parties
//   - items: at least one validated order line
//   - paymentMethod: how the customer pays
//   - restaurantLocation: pickup point, used for courier matching
//   - deliveryLocation: drop-off point
//
// The payment status starts as Unpaid and no courier is assigned.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []Item,
	paymentMethod PaymentMethod,
	restaurantLocation kernel.GeoPoint,
	deliveryLocation kernel.GeoPoint,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: Unpaid,
		deliveryFee:   DeliveryFee,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setPaymentMethod(paymentMethod),
		o.setRestaurantLocation(restaurantLocation),
		o.setDeliveryLocation(deliveryLocation),
	); err != nil {
		return nil, err
	}

	total := 0.0
	for _, item := range o.items {
		total += item.Subtotal()
	}
	o.totalAmount = total + o.deliveryFee

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// preserving its status, assignment, payment state, and concurrency version.
// The restored order behaves identically to one mutated through domain
// operations.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []Item,
	totalAmount float64,
	deliveryFee float64,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	paymentID string,
	status Status,
	restaurantLocation kernel.GeoPoint,
	deliveryLocation kernel.GeoPoint,
	courierID *kernel.UUID,
	prepTime int,
	rejectionReason string,
	version int,
) (*Order, error) {
	o := &Order{
		totalAmount:     totalAmount,
		deliveryFee:     deliveryFee,
		paymentID:       paymentID,
		prepTime:        prepTime,
		rejectionReason: rejectionReason,
		version:         version,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setPaymentMethod(paymentMethod),
		o.setRestaurantLocation(restaurantLocation),
		o.setDeliveryLocation(deliveryLocation),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.paymentStatus = paymentStatus

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		cID := *courierID
		o.courierID = &cID
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the reference to the ordering customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the reference to the restaurant.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the order total including the delivery fee.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// DeliveryFee returns the delivery surcharge fixed at creation.
func (o *Order) DeliveryFee() float64 {
	return o.deliveryFee
}

// PaymentMethod returns how the customer pays.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns the settlement state of the payment.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// PaymentID returns the gateway transaction reference, empty until settlement.
func (o *Order) PaymentID() string {
	return o.paymentID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// RestaurantLocation returns the pickup point.
func (o *Order) RestaurantLocation() kernel.GeoPoint {
	return o.restaurantLocation
}

// DeliveryLocation returns the drop-off point.
func (o *Order) DeliveryLocation() kernel.GeoPoint {
	return o.deliveryLocation
}

// Courier returns the assigned courier's ID, or nil while unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// PrepTime returns the restaurant's committed preparation time in minutes,
// zero until the order is accepted.
func (o *Order) PrepTime() int {
	return o.prepTime
}

// RejectionReason returns the reason the restaurant gave, empty unless rejected.
func (o *Order) RejectionReason() string {
	return o.rejectionReason
}

// Version returns the optimistic-concurrency token as read from storage.
func (o *Order) Version() int {
	return o.version
}

// IsAssignedTo reports whether the order is assigned to the given courier.
func (o *Order) IsAssignedTo(courierID kernel.UUID) bool {
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

// Confirm moves the order from Pending to Confirmed.
func (o *Order) Confirm() error {
	return o.transition(Confirmed)
}

// Accept records the restaurant's acceptance together with a committed
// preparation time in minutes.
//
// Returns a validation error unless prepTime is a positive number; the
// transition fails unless the order is Confirmed.
func (o *Order) Accept(prepTime int) error {
	if prepTime <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"prepTime",
			fmt.Errorf("%d is not a positive number of minutes", prepTime),
		)
	}

	if err := o.transition(Accepted); err != nil {
		return err
	}

	o.prepTime = prepTime
	return nil
}

// Reject records the restaurant declining the order. An empty reason is
// replaced with DefaultRejectionReason. Legal only while Pending or Confirmed.
func (o *Order) Reject(reason string) error {
	if reason == "" {
		reason = DefaultRejectionReason
	}

	if err := o.transition(Rejected); err != nil {
		return err
	}

	o.rejectionReason = reason
	return nil
}

// StartPreparing moves the order from Accepted to Preparing.
func (o *Order) StartPreparing() error {
	return o.transition(Preparing)
}

// MarkReady moves the order from Preparing to Ready, making it visible to the
// dispatch matcher and to available couriers.
func (o *Order) MarkReady() error {
	return o.transition(Ready)
}

// AssignCourier binds the order to a courier and moves it to OnTheWay in a
// single state change, so the two can never be observed apart.
//
// Business rules:
//   - The courier ID must be valid
//   - The order must be Ready
//   - The order must not already have a courier (assignment is exactly-once)
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return ErrCourierAlreadyAssigned
	}

	if err := o.transition(OnTheWay); err != nil {
		return err
	}

	o.courierID = &courierID
	return nil
}

// Deliver completes the delivery. For cash-on-delivery orders the payment is
// settled to Paid within the same state change, so delivered-but-unpaid is
// never observable.
func (o *Order) Deliver() error {
	if err := o.transition(Delivered); err != nil {
		return err
	}

	if o.paymentMethod == CashOnDelivery {
		o.paymentStatus = Paid
	}
	return nil
}

// Cancel withdraws the order. Legal only while Pending or Confirmed; once the
// restaurant accepted, the protocol defines no cancellation path.
func (o *Order) Cancel() error {
	return o.transition(Cancelled)
}

// SetPaymentSettlement records the outcome of a gateway transaction.
// Used by the ledger's status-merge endpoint for card payments; the
// cash-on-delivery settlement happens inside Deliver instead.
func (o *Order) SetPaymentSettlement(status PaymentStatus, paymentID string) error {
	if err := status.Validate(); err != nil {
		return err
	}

	o.paymentStatus = status
	if paymentID != "" {
		o.paymentID = paymentID
	}
	return nil
}

func (o *Order) transition(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	copied := make([]Item, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		copied[i] = item
	}

	o.items = copied
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setRestaurantLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantLocation", err)
	}
	o.restaurantLocation = location
	return nil
}

func (o *Order) setDeliveryLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryLocation", err)
	}
	o.deliveryLocation = location
	return nil
}
