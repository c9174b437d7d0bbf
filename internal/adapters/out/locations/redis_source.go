// Package locations reads the live courier position feed from Redis.
// Courier devices publish fixes into per-courier hashes keyed "courier:<id>";
// this adapter is the read side of that feed.
package locations

import (
	"context"
	"strconv"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "courier:"

// RedisLocationSource implements ports.CourierLocationSource against the
// Redis hash feed. A courier with no hash, or a hash without both coordinate
// fields, counts as having no position fix.
type RedisLocationSource struct {
	rdb *redis.Client
}

// NewRedisLocationSource creates a location source over an existing Redis client.
func NewRedisLocationSource(rdb *redis.Client) *RedisLocationSource {
	return &RedisLocationSource{rdb: rdb}
}

// Location returns the courier's latest published position.
// Returns errs.ObjectNotFoundError when the feed has no fix for the courier
// and errs.UpstreamUnavailableError when Redis itself cannot be reached.
func (s *RedisLocationSource) Location(ctx context.Context, courierID kernel.UUID) (kernel.GeoPoint, error) {
	if err := courierID.Validate(); err != nil {
		return kernel.GeoPoint{}, err
	}

	fields, err := s.rdb.HGetAll(ctx, keyPrefix+courierID.String()).Result()
	if err != nil {
		return kernel.GeoPoint{}, errs.NewUpstreamUnavailableErrorWithCause("location feed", err)
	}

	lat, latOK := fields["latitude"]
	lng, lngOK := fields["longitude"]
	if !latOK || !lngOK {
		return kernel.GeoPoint{}, errs.NewObjectNotFoundError("courierId", courierID.String())
	}

	latVal, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return kernel.GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("latitude", err)
	}
	lngVal, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return kernel.GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("longitude", err)
	}

	return kernel.NewGeoPoint(latVal, lngVal)
}
