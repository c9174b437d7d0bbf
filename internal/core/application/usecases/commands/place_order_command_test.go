package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func TestNewPlaceOrderCommand_Valid(t *testing.T) {
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		testItems(t),
		order.Card,
		testGeoPoint(t, 41.00, 29.00),
		testGeoPoint(t, 41.05, 29.05),
	)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	require.Len(t, cmd.Items(), 2)
	require.Equal(t, order.Card, cmd.PaymentMethod())
}

func TestNewPlaceOrderCommand_RequiresItems(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		nil,
		order.Card,
		testGeoPoint(t, 41.00, 29.00),
		testGeoPoint(t, 41.05, 29.05),
	)
	require.Error(t, err)
}

func TestNewPlaceOrderCommand_RequiresValidIDs(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand(
		kernel.UUID{},
		kernel.NewUUID(),
		kernel.NewUUID(),
		testItems(t),
		order.Card,
		testGeoPoint(t, 41.00, 29.00),
		testGeoPoint(t, 41.05, 29.05),
	)
	require.Error(t, err)
}

func TestPlaceOrderCommand_ZeroValueFailsValidate(t *testing.T) {
	var cmd commands.PlaceOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrPlaceOrderCommandIsNotConstructed)
}
