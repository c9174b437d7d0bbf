package courier_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourier(t *testing.T) {
	t.Run("creates unavailable courier without location", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := courier.NewCourier(id, "Aziz", "+998901234567", "01A777BC")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, "Aziz", c.Name())
		assert.Equal(t, "+998901234567", c.Phone())
		assert.Equal(t, "01A777BC", c.VehicleNumber())
		assert.False(t, c.IsAvailable())
		assert.Nil(t, c.Location())
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), "", "+998901234567", "01A777BC")

		require.Error(t, err)
		require.ErrorIs(t, err, courier.ErrNameIsRequired)
	})

	t.Run("requires a phone", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), "Aziz", "", "01A777BC")

		require.Error(t, err)
		require.ErrorIs(t, err, courier.ErrPhoneIsRequired)
	})

	t.Run("requires a vehicle number", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), "Aziz", "+998901234567", "")

		require.Error(t, err)
		require.ErrorIs(t, err, courier.ErrVehicleNumberIsRequired)
	})

	t.Run("requires a valid id", func(t *testing.T) {
		var id kernel.UUID

		_, err := courier.NewCourier(id, "Aziz", "+998901234567", "01A777BC")

		require.Error(t, err)
	})

	t.Run("collects all construction errors", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), "", "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "phone")
		assert.Contains(t, err.Error(), "vehicleNumber")
	})
}

func TestRestoreCourier(t *testing.T) {
	t.Run("restores availability and location", func(t *testing.T) {
		loc, _ := kernel.NewGeoPoint(41.3111, 69.2797)

		c, err := courier.RestoreCourier(kernel.NewUUID(), "Aziz", "+998901234567", "01A777BC", true, &loc)

		require.NoError(t, err)
		assert.True(t, c.IsAvailable())
		require.NotNil(t, c.Location())
		equal, err := c.Location().IsEqual(loc)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("restores missing location as nil", func(t *testing.T) {
		c, err := courier.RestoreCourier(kernel.NewUUID(), "Aziz", "+998901234567", "01A777BC", true, nil)

		require.NoError(t, err)
		assert.Nil(t, c.Location())
	})

	t.Run("rejects unconstructed location", func(t *testing.T) {
		var loc kernel.GeoPoint

		_, err := courier.RestoreCourier(kernel.NewUUID(), "Aziz", "+998901234567", "01A777BC", true, &loc)

		require.Error(t, err)
	})
}

func TestCourier_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var c courier.Courier
		require.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
	})

	t.Run("nil courier fails validation", func(t *testing.T) {
		var c *courier.Courier
		require.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
	})
}

func TestCourier_Availability(t *testing.T) {
	t.Run("toggles both ways", func(t *testing.T) {
		c, _ := courier.NewCourier(kernel.NewUUID(), "Aziz", "+998901234567", "01A777BC")

		c.SetAvailable()
		assert.True(t, c.IsAvailable())

		c.SetUnavailable()
		assert.False(t, c.IsAvailable())
	})
}

func TestCourier_UpdateLocation(t *testing.T) {
	t.Run("records a position fix", func(t *testing.T) {
		c, _ := courier.NewCourier(kernel.NewUUID(), "Aziz", "+998901234567", "01A777BC")
		loc, _ := kernel.NewGeoPoint(41.3111, 69.2797)

		err := c.UpdateLocation(loc)

		require.NoError(t, err)
		require.NotNil(t, c.Location())
	})

	t.Run("rejects unconstructed point", func(t *testing.T) {
		c, _ := courier.NewCourier(kernel.NewUUID(), "Aziz", "+998901234567", "01A777BC")
		var loc kernel.GeoPoint

		err := c.UpdateLocation(loc)

		require.Error(t, err)
		assert.Nil(t, c.Location())
	})
}

func TestCourier_DistanceToKm(t *testing.T) {
	t.Run("measures distance from last fix", func(t *testing.T) {
		c, _ := courier.NewCourier(kernel.NewUUID(), "Aziz", "+998901234567", "01A777BC")
		at, _ := kernel.NewGeoPoint(41.0, 69.0)
		require.NoError(t, c.UpdateLocation(at))
		restaurant, _ := kernel.NewGeoPoint(42.0, 69.0)

		d, err := c.DistanceToKm(restaurant)

		require.NoError(t, err)
		assert.InDelta(t, 111.2, d, 0.5)
	})

	t.Run("fails without a position fix", func(t *testing.T) {
		c, _ := courier.NewCourier(kernel.NewUUID(), "Aziz", "+998901234567", "01A777BC")
		restaurant, _ := kernel.NewGeoPoint(42.0, 69.0)

		_, err := c.DistanceToKm(restaurant)

		require.Error(t, err)
	})
}
