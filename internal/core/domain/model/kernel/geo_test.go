package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("creates valid point", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(41.3111, 69.2797)

		require.NoError(t, err)
		assert.InDelta(t, 41.3111, p.Lat(), 1e-9)
		assert.InDelta(t, 69.2797, p.Lng(), 1e-9)
		require.NoError(t, p.Validate())
	})

	t.Run("accepts boundary coordinates", func(t *testing.T) {
		corners := [][2]float64{
			{kernel.LatitudeMin, kernel.LongitudeMin},
			{kernel.LatitudeMin, kernel.LongitudeMax},
			{kernel.LatitudeMax, kernel.LongitudeMin},
			{kernel.LatitudeMax, kernel.LongitudeMax},
			{0, 0},
		}

		for _, c := range corners {
			_, err := kernel.NewGeoPoint(c[0], c[1])
			require.NoError(t, err)
		}
	})

	t.Run("rejects latitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90.0001, 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects longitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -180.5)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("collects both coordinate errors", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(-91, 181)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var p kernel.GeoPoint

		err := p.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal coordinates are equal", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(10, 20)
		p2, _ := kernel.NewGeoPoint(10, 20)

		equal, err := p1.IsEqual(p2)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different coordinates are not equal", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(10, 20)
		p2, _ := kernel.NewGeoPoint(10, 21)

		equal, err := p1.IsEqual(p2)

		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("fails on unconstructed point", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(10, 20)
		var p2 kernel.GeoPoint

		_, err := p1.IsEqual(p2)

		require.Error(t, err)
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("distance to itself is zero", func(t *testing.T) {
		points := [][2]float64{{0, 0}, {41.3111, 69.2797}, {-33.8688, 151.2093}}

		for _, c := range points {
			p, _ := kernel.NewGeoPoint(c[0], c[1])

			d, err := p.DistanceKm(p)

			require.NoError(t, err)
			assert.InDelta(t, 0, d, 1e-9)
		}
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(41.3111, 69.2797)
		b, _ := kernel.NewGeoPoint(43.2220, 76.8512)

		ab, err := a.DistanceKm(b)
		require.NoError(t, err)
		ba, err := b.DistanceKm(a)
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("one degree of latitude is about 111.2 km", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(41.0, 69.0)
		b, _ := kernel.NewGeoPoint(42.0, 69.0)

		d, err := a.DistanceKm(b)

		require.NoError(t, err)
		assert.InDelta(t, 111.2, d, 0.5)
	})

	t.Run("antipodal points are half the circumference apart", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(0, 0)
		b, _ := kernel.NewGeoPoint(0, 180)

		d, err := a.DistanceKm(b)

		require.NoError(t, err)
		// pi * R
		assert.InDelta(t, 20015, d, 1)
	})

	t.Run("fails on unconstructed point", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(0, 0)
		var b kernel.GeoPoint

		_, err := a.DistanceKm(b)

		require.Error(t, err)
	})
}
