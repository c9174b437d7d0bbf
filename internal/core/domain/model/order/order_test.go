package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(t *testing.T) []order.Item {
	t.Helper()
	plov, err := order.NewItem("Plov", 8.50, 2)
	require.NoError(t, err)
	tea, err := order.NewItem("Green tea", 1.20, 1)
	require.NoError(t, err)
	return []order.Item{plov, tea}
}

func testLocations(t *testing.T) (kernel.GeoPoint, kernel.GeoPoint) {
	t.Helper()
	restaurant, err := kernel.NewGeoPoint(41.3111, 69.2797)
	require.NoError(t, err)
	delivery, err := kernel.NewGeoPoint(41.3265, 69.2285)
	require.NoError(t, err)
	return restaurant, delivery
}

func newTestOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()
	restaurant, delivery := testLocations(t)
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		testItems(t),
		method,
		restaurant,
		delivery,
	)
	require.NoError(t, err)
	return o
}

// driveTo advances a fresh pending order along the happy path up to target.
func driveTo(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()
	steps := []struct {
		status order.Status
		apply  func() error
	}{
		{order.Confirmed, o.Confirm},
		{order.Accepted, func() error { return o.Accept(15) }},
		{order.Preparing, o.StartPreparing},
		{order.Ready, o.MarkReady},
	}
	for _, step := range steps {
		if o.Status() == target {
			return
		}
		require.NoError(t, step.apply())
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending unpaid order with computed total", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)

		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.Unpaid, o.PaymentStatus())
		assert.Nil(t, o.Courier())
		assert.Zero(t, o.PrepTime())
		assert.Empty(t, o.RejectionReason())
		assert.Equal(t, order.DeliveryFee, o.DeliveryFee())
		// 2 * 8.50 + 1.20 + fee
		assert.InDelta(t, 18.20+order.DeliveryFee, o.TotalAmount(), 1e-9)
	})

	t.Run("requires at least one item", func(t *testing.T) {
		restaurant, delivery := testLocations(t)

		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, order.Card, restaurant, delivery,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires valid locations", func(t *testing.T) {
		restaurant, _ := testLocations(t)
		var missing kernel.GeoPoint

		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			testItems(t), order.Card, restaurant, missing,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "deliveryLocation")
	})

	t.Run("requires valid payment method", func(t *testing.T) {
		restaurant, delivery := testLocations(t)

		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			testItems(t), order.PaymentMethodUnknown, restaurant, delivery,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("constructed order validates", func(t *testing.T) {
		o := newTestOrder(t, order.Card)
		require.NoError(t, o.Validate())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order fails validation", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Accept(t *testing.T) {
	t.Run("stores prep time and moves to accepted", func(t *testing.T) {
		o := newTestOrder(t, order.Card)
		require.NoError(t, o.Confirm())

		err := o.Accept(20)

		require.NoError(t, err)
		assert.Equal(t, order.Accepted, o.Status())
		assert.Equal(t, 20, o.PrepTime())
	})

	t.Run("rejects zero and negative prep time", func(t *testing.T) {
		for _, prepTime := range []int{0, -5} {
			o := newTestOrder(t, order.Card)
			require.NoError(t, o.Confirm())

			err := o.Accept(prepTime)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Equal(t, order.Confirmed, o.Status(), "failed accept must not change state")
			assert.Zero(t, o.PrepTime())
		}
	})

	t.Run("fails unless order is confirmed", func(t *testing.T) {
		o := newTestOrder(t, order.Card)

		err := o.Accept(20)

		require.Error(t, err)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_Reject(t *testing.T) {
	t.Run("stores the given reason", func(t *testing.T) {
		o := newTestOrder(t, order.Card)

		err := o.Reject("out of plov")

		require.NoError(t, err)
		assert.Equal(t, order.Rejected, o.Status())
		assert.Equal(t, "out of plov", o.RejectionReason())
	})

	t.Run("defaults the reason when omitted", func(t *testing.T) {
		o := newTestOrder(t, order.Card)
		require.NoError(t, o.Confirm())

		err := o.Reject("")

		require.NoError(t, err)
		assert.Equal(t, order.DefaultRejectionReason, o.RejectionReason())
	})

	t.Run("fails once the order is accepted", func(t *testing.T) {
		o := newTestOrder(t, order.Card)
		driveTo(t, o, order.Accepted)

		err := o.Reject("too late")

		require.Error(t, err)
		assert.Equal(t, order.Accepted, o.Status())
		assert.Empty(t, o.RejectionReason())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("legal while pending or confirmed", func(t *testing.T) {
		pending := newTestOrder(t, order.Card)
		require.NoError(t, pending.Cancel())
		assert.Equal(t, order.Cancelled, pending.Status())

		confirmed := newTestOrder(t, order.Card)
		require.NoError(t, confirmed.Confirm())
		require.NoError(t, confirmed.Cancel())
		assert.Equal(t, order.Cancelled, confirmed.Status())
	})

	t.Run("no cancellation path after acceptance", func(t *testing.T) {
		o := newTestOrder(t, order.Card)
		driveTo(t, o, order.Accepted)

		require.Error(t, o.Cancel())
		assert.Equal(t, order.Accepted, o.Status())
	})
}

func TestOrder_AssignCourier(t *testing.T) {
	t.Run("binds courier and moves to onTheWay atomically", func(t *testing.T) {
		o := newTestOrder(t, order.Card)
		driveTo(t, o, order.Ready)
		courierID := kernel.NewUUID()

		err := o.AssignCourier(courierID)

		require.NoError(t, err)
		assert.Equal(t, order.OnTheWay, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, o.Courier().IsEqual(courierID))
		assert.True(t, o.IsAssignedTo(courierID))
	})

	t.Run("fails unless order is ready", func(t *testing.T) {
		o := newTestOrder(t, order.Card)
		driveTo(t, o, order.Preparing)

		err := o.AssignCourier(kernel.NewUUID())

		require.Error(t, err)
		assert.Nil(t, o.Courier())
		assert.Equal(t, order.Preparing, o.Status())
	})

	t.Run("never reassigns", func(t *testing.T) {
		o := newTestOrder(t, order.Card)
		driveTo(t, o, order.Ready)
		first := kernel.NewUUID()
		require.NoError(t, o.AssignCourier(first))

		err := o.AssignCourier(kernel.NewUUID())

		require.ErrorIs(t, err, order.ErrCourierAlreadyAssigned)
		assert.True(t, o.Courier().IsEqual(first))
	})

	t.Run("rejects invalid courier id", func(t *testing.T) {
		o := newTestOrder(t, order.Card)
		driveTo(t, o, order.Ready)
		var invalid kernel.UUID

		err := o.AssignCourier(invalid)

		require.Error(t, err)
		assert.Nil(t, o.Courier())
	})
}

func TestOrder_Deliver(t *testing.T) {
	t.Run("cash on delivery settles payment with delivery", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)
		driveTo(t, o, order.Ready)
		require.NoError(t, o.AssignCourier(kernel.NewUUID()))

		err := o.Deliver()

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.Paid, o.PaymentStatus())
	})

	t.Run("card payment status is untouched by delivery", func(t *testing.T) {
		o := newTestOrder(t, order.Card)
		driveTo(t, o, order.Ready)
		require.NoError(t, o.AssignCourier(kernel.NewUUID()))

		err := o.Deliver()

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.Unpaid, o.PaymentStatus())
	})

	t.Run("fails unless order is on the way", func(t *testing.T) {
		o := newTestOrder(t, order.CashOnDelivery)
		driveTo(t, o, order.Ready)

		err := o.Deliver()

		require.Error(t, err)
		assert.Equal(t, order.Ready, o.Status())
		assert.Equal(t, order.Unpaid, o.PaymentStatus(), "failed delivery must not settle payment")
	})
}

func TestOrder_SetPaymentSettlement(t *testing.T) {
	t.Run("records gateway outcome and transaction id", func(t *testing.T) {
		o := newTestOrder(t, order.Card)

		err := o.SetPaymentSettlement(order.Paid, "tx-12345")

		require.NoError(t, err)
		assert.Equal(t, order.Paid, o.PaymentStatus())
		assert.Equal(t, "tx-12345", o.PaymentID())
	})

	t.Run("keeps existing transaction id when omitted", func(t *testing.T) {
		o := newTestOrder(t, order.Card)
		require.NoError(t, o.SetPaymentSettlement(order.PaymentPending, "tx-12345"))

		err := o.SetPaymentSettlement(order.PaymentFailed, "")

		require.NoError(t, err)
		assert.Equal(t, order.PaymentFailed, o.PaymentStatus())
		assert.Equal(t, "tx-12345", o.PaymentID())
	})

	t.Run("rejects undefined payment status", func(t *testing.T) {
		o := newTestOrder(t, order.Card)

		err := o.SetPaymentSettlement(order.PaymentStatusUnknown, "tx-1")

		require.Error(t, err)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores full persisted state", func(t *testing.T) {
		restaurant, delivery := testLocations(t)
		courierID := kernel.NewUUID()

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			testItems(t), 20.70, order.DeliveryFee,
			order.CashOnDelivery, order.Unpaid, "",
			order.OnTheWay, restaurant, delivery,
			&courierID, 15, "", 7,
		)

		require.NoError(t, err)
		assert.Equal(t, order.OnTheWay, o.Status())
		assert.Equal(t, 15, o.PrepTime())
		assert.Equal(t, 7, o.Version())
		require.NotNil(t, o.Courier())
		assert.True(t, o.Courier().IsEqual(courierID))

		// Restored aggregates keep enforcing the graph.
		require.NoError(t, o.Deliver())
		assert.Equal(t, order.Paid, o.PaymentStatus())
	})

	t.Run("rejects invalid persisted status", func(t *testing.T) {
		restaurant, delivery := testLocations(t)

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			testItems(t), 20.70, order.DeliveryFee,
			order.Card, order.Unpaid, "",
			order.Status(42), restaurant, delivery,
			nil, 0, "", 1,
		)

		require.Error(t, err)
	})
}

func TestItem(t *testing.T) {
	t.Run("computes subtotal", func(t *testing.T) {
		item, err := order.NewItem("Lagman", 6.00, 3)

		require.NoError(t, err)
		assert.InDelta(t, 18.00, item.Subtotal(), 1e-9)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := order.NewItem("", 6.00, 1)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := order.NewItem("Lagman", -1, 1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := order.NewItem("Lagman", 6.00, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var item order.Item
		require.Error(t, item.Validate())
	})
}
