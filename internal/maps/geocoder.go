// README: Geocoding adapter over the Google Maps Geocoding API with a Redis cache.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"

	"smartride/internal/metrics"
	"smartride/internal/types"
)

// ErrNoResults is returned when an address resolves to zero geocoding results.
var ErrNoResults = errors.New("no geocoding results")

const (
	geocodeKeyPrefix = "geocode:%s"
	geocodeCacheTTL  = 24 * time.Hour
)

// Geocoder resolves free-text addresses to coordinates. Results are cached
// in Redis by normalized address; the cache and metrics are both optional.
type Geocoder struct {
	client  *maps.Client
	limiter *rate.Limiter
	cache   *redis.Client
	metrics *metrics.Collector
}

func NewGeocoder(client *maps.Client, limiter *rate.Limiter, cache *redis.Client, m *metrics.Collector) *Geocoder {
	return &Geocoder{client: client, limiter: limiter, cache: cache, metrics: m}
}

func (g *Geocoder) Geocode(ctx context.Context, address string) (types.Point, error) {
	key := geocodeKey(address)

	if p, ok := g.cacheGet(ctx, key); ok {
		if g.metrics != nil {
			g.metrics.GeocodeCacheHits.Inc()
		}
		return p, nil
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return types.Point{}, err
		}
	}

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		g.countError("geocode")
		return types.Point{}, fmt.Errorf("geocode api error: %w", err)
	}
	if len(results) == 0 {
		g.countError("geocode")
		return types.Point{}, fmt.Errorf("%w: %q", ErrNoResults, address)
	}

	loc := results[0].Geometry.Location
	p := types.Point{Lat: loc.Lat, Lng: loc.Lng}
	g.cacheSet(ctx, key, p)
	return p, nil
}

func (g *Geocoder) cacheGet(ctx context.Context, key string) (types.Point, bool) {
	if g.cache == nil {
		return types.Point{}, false
	}
	val, err := g.cache.Get(ctx, key).Result()
	if err != nil {
		return types.Point{}, false
	}
	parts := strings.SplitN(val, ",", 2)
	if len(parts) != 2 {
		return types.Point{}, false
	}
	lat, errLat := strconv.ParseFloat(parts[0], 64)
	lng, errLng := strconv.ParseFloat(parts[1], 64)
	if errLat != nil || errLng != nil {
		return types.Point{}, false
	}
	return types.Point{Lat: lat, Lng: lng}, true
}

func (g *Geocoder) cacheSet(ctx context.Context, key string, p types.Point) {
	if g.cache == nil {
		return
	}
	val := strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
	_ = g.cache.Set(ctx, key, val, geocodeCacheTTL).Err()
}

func (g *Geocoder) countError(api string) {
	if g.metrics != nil {
		g.metrics.UpstreamErrors.WithLabelValues(api).Inc()
	}
}

func geocodeKey(address string) string {
	return fmt.Sprintf(geocodeKeyPrefix, strings.ToLower(strings.TrimSpace(address)))
}
