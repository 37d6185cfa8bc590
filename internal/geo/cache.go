package geo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"atlas/internal/logger"
)

const geocodeKeyPrefix = "atlas:geocode:"

// CachedGeocoder keeps successful lookups in Redis. Cache errors are logged
// and the lookup falls through to the wrapped geocoder.
type CachedGeocoder struct {
	next Geocoder
	rdb  *redis.Client
	ttl  time.Duration
	log  logger.Logger
}

func NewCachedGeocoder(next Geocoder, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedGeocoder {
	return &CachedGeocoder{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
		log:  log.With(map[string]interface{}{"component": "geocode_cache"}),
	}
}

func geocodeKey(place string) string {
	return geocodeKeyPrefix + strings.ToLower(strings.TrimSpace(place))
}

func (c *CachedGeocoder) Geocode(ctx context.Context, place string) (Coordinates, error) {
	key := geocodeKey(place)

	val, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		if coords, perr := parseCoords(val); perr == nil {
			return coords, nil
		}
		c.log.Warn("discarding bad cache entry", map[string]interface{}{"key": key, "value": val})
	case !errors.Is(err, redis.Nil):
		c.log.Warn("geocode cache read failed", map[string]interface{}{"error": err.Error()})
	}

	coords, err := c.next.Geocode(ctx, place)
	if err != nil {
		return Coordinates{}, err
	}

	if err := c.rdb.Set(ctx, key, formatCoords(coords), c.ttl).Err(); err != nil {
		c.log.Warn("geocode cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return coords, nil
}

func formatCoords(c Coordinates) string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

func parseCoords(s string) (Coordinates, error) {
	lonStr, latStr, ok := strings.Cut(s, ",")
	if !ok {
		return Coordinates{}, fmt.Errorf("bad coordinates %q", s)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return Coordinates{}, err
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return Coordinates{}, err
	}
	return Coordinates{Lon: lon, Lat: lat}, nil
}
