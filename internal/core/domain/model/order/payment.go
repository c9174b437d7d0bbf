package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PaymentMethod is how the customer pays for the order, fixed at creation.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota

	// CashOnDelivery means the courier collects payment at the door.
	// Delivery of such an order settles the payment in the same state change.
	CashOnDelivery

	// Card means the customer paid (or will pay) through the card gateway.
	Card
)

// getPaymentMethodStrings returns wire representations of payment methods.
func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		CashOnDelivery: "cashOnDelivery",
		Card:           "card",
	}
}

// PaymentMethodFromString parses a wire-format payment method.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for m, str := range getPaymentMethodStrings() {
		if str == s {
			return m, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentMethod",
		fmt.Errorf("%q is not a valid payment method", s),
	)
}

// Validate checks if the payment method is a defined value.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m),
		)
	}
	return nil
}

// String returns the wire-format name of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatus tracks the settlement state of the order's payment.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// Unpaid is the initial payment status of every order.
	Unpaid

	// PaymentPending means a gateway transaction is in flight.
	PaymentPending

	// Paid means the payment settled.
	Paid

	// PaymentFailed means the gateway declined or the transaction errored.
	PaymentFailed
)

// getPaymentStatusStrings returns wire representations of payment statuses.
func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		Unpaid:         "unpaid",
		PaymentPending: "pending",
		Paid:           "paid",
		PaymentFailed:  "failed",
	}
}

// PaymentStatusFromString parses a wire-format payment status.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for st, str := range getPaymentStatusStrings() {
		if str == s {
			return st, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

// Validate checks if the payment status is a defined value.
func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s),
		)
	}
	return nil
}

// String returns the wire-format name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
