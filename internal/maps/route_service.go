// README: Route resolution adapter over the Google Maps Directions and Distance Matrix APIs.
package maps

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"

	"smartride/internal/metrics"
	"smartride/internal/modules/matching"
	"smartride/internal/types"
)

// ErrNoRoute is returned when the Directions API finds no route between the
// requested endpoints.
var ErrNoRoute = errors.New("no route found")

// RouteService handles route interactions with the Google Maps API.
type RouteService struct {
	client  *maps.Client
	limiter *rate.Limiter
	metrics *metrics.Collector
}

func NewRouteService(client *maps.Client, limiter *rate.Limiter, m *metrics.Collector) *RouteService {
	return &RouteService{client: client, limiter: limiter, metrics: m}
}

// NewClient creates the shared Google Maps client for the given API key.
func NewClient(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

// RouteDistance resolves the driving route from origin to destination,
// visiting any waypoints in order. When the API returns several candidate
// routes the first one is used.
func (s *RouteService) RouteDistance(ctx context.Context, origin, destination string, waypoints []string) (matching.RouteDetails, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return matching.RouteDetails{}, err
		}
	}

	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Waypoints:   waypoints,
		Mode:        maps.TravelModeDriving,
	}
	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		s.countError("directions")
		return matching.RouteDetails{}, fmt.Errorf("directions api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		s.countError("directions")
		return matching.RouteDetails{}, fmt.Errorf("%w: %s -> %s", ErrNoRoute, origin, destination)
	}

	legs := routes[0].Legs
	meters := 0
	for _, leg := range legs {
		meters += leg.Distance.Meters
	}
	first := legs[0]
	last := legs[len(legs)-1]

	return matching.RouteDetails{
		StartPoint: origin,
		EndPoint:   destination,
		DistanceKm: float64(meters) / 1000.0,
		StartCoord: types.Point{Lat: first.StartLocation.Lat, Lng: first.StartLocation.Lng},
		EndCoord:   types.Point{Lat: last.EndLocation.Lat, Lng: last.EndLocation.Lng},
	}, nil
}

// DistanceKm returns the driving distance between two locations in
// kilometres, rounded to two decimals, via the Distance Matrix API.
func (s *RouteService) DistanceKm(ctx context.Context, origin, destination string) (float64, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return 0, err
		}
	}

	resp, err := s.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Units:        maps.UnitsMetric,
	})
	if err != nil {
		s.countError("distance_matrix")
		return 0, fmt.Errorf("distance matrix api error: %w", err)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		s.countError("distance_matrix")
		return 0, fmt.Errorf("%w: %s -> %s", ErrNoRoute, origin, destination)
	}
	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		s.countError("distance_matrix")
		return 0, fmt.Errorf("%w: element status %s", ErrNoRoute, element.Status)
	}

	km := float64(element.Distance.Meters) / 1000.0
	return math.Round(km*100) / 100, nil
}

func (s *RouteService) countError(api string) {
	if s.metrics != nil {
		s.metrics.UpstreamErrors.WithLabelValues(api).Inc()
	}
}
