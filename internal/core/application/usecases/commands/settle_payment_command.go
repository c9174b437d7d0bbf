package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrSettlePaymentCommandIsNotConstructed = errors.New(
	"SettlePaymentCommand must be created via NewSettlePaymentCommand constructor",
)

// SettlePaymentCommand records the outcome reported by the payment provider
// for a card order. The payment identifier is optional; when present it is
// stored alongside the settlement status.
type SettlePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	paymentStatus order.PaymentStatus
	paymentID     string

	guard guard.ConstructorGuard
}

// NewSettlePaymentCommand creates a command for payment settlement.
func NewSettlePaymentCommand(
	orderID kernel.UUID,
	paymentStatus order.PaymentStatus,
	paymentID string,
) (SettlePaymentCommand, error) {
	settleCommand := SettlePaymentCommand{
		paymentID: paymentID,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		settleCommand.setOrderID(orderID),
		settleCommand.setPaymentStatus(paymentStatus),
	); err != nil {
		return SettlePaymentCommand{}, err
	}

	return settleCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSettlePaymentCommandIsNotConstructed if validation fails.
func (c SettlePaymentCommand) Validate() error {
	return c.guard.Validate(ErrSettlePaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being settled.
func (c SettlePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PaymentStatus returns the settlement status reported by the provider.
func (c SettlePaymentCommand) PaymentStatus() order.PaymentStatus {
	return c.paymentStatus
}

// PaymentID returns the provider's payment identifier, empty when not reported.
func (c SettlePaymentCommand) PaymentID() string {
	return c.paymentID
}

func (c *SettlePaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SettlePaymentCommand) setPaymentStatus(paymentStatus order.PaymentStatus) error {
	if err := paymentStatus.Validate(); err != nil {
		return err
	}

	c.paymentStatus = paymentStatus
	return nil
}
