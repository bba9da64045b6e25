// README: Candidate ride classification against a passenger's desired trip.
package matching

import (
	"context"
	"fmt"
	"strings"

	"smartride/internal/config"
	"smartride/internal/types"
)

// Geocoder resolves a free-text location to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (types.Point, error)
}

// RouteResolver resolves the driving route between two locations, optionally
// visiting waypoints in between.
type RouteResolver interface {
	RouteDistance(ctx context.Context, origin, destination string, waypoints []string) (RouteDetails, error)
}

// Classifier decides whether and how a single candidate ride can serve a
// passenger's trip. Failures to analyze a candidate are reported to the
// caller but always mean "no match", never a failed search.
type Classifier struct {
	geocoder Geocoder
	routes   RouteResolver
	cfg      config.MatchingConfig
}

func NewClassifier(geocoder Geocoder, routes RouteResolver, cfg config.MatchingConfig) *Classifier {
	return &Classifier{geocoder: geocoder, routes: routes, cfg: cfg}
}

// Classify returns the match for a candidate ride, or (nil, nil) when the
// ride is not viable for the trip. A non-nil error also means no match; it
// exists only so callers can observe why a candidate was dropped.
func (c *Classifier) Classify(ctx context.Context, ride CandidateRide, passengerSource, passengerDestination string) (*RideMatch, error) {
	// Fast path: exact endpoint match needs no upstream calls.
	if locationsEqual(ride.Source, passengerSource) && locationsEqual(ride.Destination, passengerDestination) {
		return &RideMatch{
			Ride:        ride,
			Type:        MatchExact,
			Score:       100,
			Description: "Exact route match",
		}, nil
	}

	rideRoute, err := c.routes.RouteDistance(ctx, ride.Source, ride.Destination, nil)
	if err != nil {
		return nil, fmt.Errorf("resolve ride route: %w", err)
	}
	if _, err := c.routes.RouteDistance(ctx, passengerSource, passengerDestination, nil); err != nil {
		return nil, fmt.Errorf("resolve passenger route: %w", err)
	}

	pickup, err := c.geocoder.Geocode(ctx, passengerSource)
	if err != nil {
		return nil, fmt.Errorf("geocode pickup: %w", err)
	}
	drop, err := c.geocoder.Geocode(ctx, passengerDestination)
	if err != nil {
		return nil, fmt.Errorf("geocode drop: %w", err)
	}

	pickupDev := PerpendicularDistanceKm(rideRoute.StartCoord, rideRoute.EndCoord, pickup)
	dropDev := PerpendicularDistanceKm(rideRoute.StartCoord, rideRoute.EndCoord, drop)
	onRoute := pickupDev <= c.cfg.MaxDeviationKm && dropDev <= c.cfg.MaxDeviationKm

	extra, err := c.extraDistanceKm(ctx, rideRoute, passengerSource, passengerDestination)
	if err != nil {
		return nil, err
	}

	if onRoute {
		return &RideMatch{
			Ride:            ride,
			Type:            MatchAlongRoute,
			Score:           matchScore(extra, rideRoute.DistanceKm),
			ExtraDistanceKm: extra,
			Description: fmt.Sprintf(
				"Route passes near pickup (+%.1f km) and drop (+%.1f km). Extra distance: %.1f km",
				pickupDev, dropDev, extra),
			SuggestedPickup: passengerSource,
			SuggestedDrop:   passengerDestination,
		}, nil
	}

	// The points sit off the straight segment between the route endpoints,
	// but the road detour may still be cheap (e.g. the real route bows out
	// toward them). Accept it as a partial detour when the extra distance
	// stays within both the percentage and absolute caps.
	if extra <= rideRoute.DistanceKm*c.cfg.MaxDetourPercent && extra <= c.cfg.MaxDeviationKm {
		return &RideMatch{
			Ride:            ride,
			Type:            MatchPartialDetour,
			Score:           matchScore(extra, rideRoute.DistanceKm),
			ExtraDistanceKm: extra,
			Description: fmt.Sprintf(
				"Reachable with a small detour. Extra distance: %.1f km", extra),
			SuggestedPickup: passengerSource,
			SuggestedDrop:   passengerDestination,
		}, nil
	}

	return nil, nil
}

// extraDistanceKm measures how much longer the driver's route becomes when
// the passenger's pickup and drop are inserted as waypoints. Never negative.
func (c *Classifier) extraDistanceKm(ctx context.Context, rideRoute RouteDetails, pickup, drop string) (float64, error) {
	withWaypoints, err := c.routes.RouteDistance(ctx, rideRoute.StartPoint, rideRoute.EndPoint, []string{pickup, drop})
	if err != nil {
		return 0, fmt.Errorf("resolve waypoint route: %w", err)
	}
	extra := withWaypoints.DistanceKm - rideRoute.DistanceKm
	if extra < 0 {
		extra = 0
	}
	return extra, nil
}

// matchScore maps a detour onto [0,100]: 100 for no extra distance, falling
// linearly with the detour's share of the direct route distance.
func matchScore(extraKm, routeKm float64) float64 {
	if routeKm <= 0 {
		return 0
	}
	score := 100 - (extraKm/routeKm)*100
	if score < 0 {
		return 0
	}
	return score
}

func locationsEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
