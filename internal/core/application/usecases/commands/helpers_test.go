package commands_test

import (
	"io"
	"log/slog"
	"testing"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testGeoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	pizza, err := order.NewItem("Margherita", 11.50, 1)
	require.NoError(t, err)
	cola, err := order.NewItem("Cola", 2.00, 2)
	require.NoError(t, err)
	return []order.Item{pizza, cola}
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		testItems(t),
		order.CashOnDelivery,
		testGeoPoint(t, 41.00, 29.00),
		testGeoPoint(t, 41.05, 29.05),
	)
	require.NoError(t, err)
	return o
}

func readyOrder(t *testing.T) *order.Order {
	t.Helper()
	o := pendingOrder(t)
	require.NoError(t, o.Confirm())
	require.NoError(t, o.Accept(15))
	require.NoError(t, o.StartPreparing())
	require.NoError(t, o.MarkReady())
	return o
}

// availableCourierAtKm builds an available courier roughly km kilometers due
// north of the test restaurant at (41.00, 29.00).
func availableCourierAtKm(t *testing.T, km float64) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), "Test Courier", "+90-555-0000", "34 ABC 123")
	require.NoError(t, err)
	c.SetAvailable()
	require.NoError(t, c.UpdateLocation(testGeoPoint(t, 41.00+km/111.2, 29.00)))
	return c
}
