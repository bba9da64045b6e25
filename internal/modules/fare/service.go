// README: Fare service computes deterministic fare breakdowns and splits.
package fare

import (
	"context"
	"errors"
	"math"

	"smartride/internal/config"
)

// ErrInvalidInput rejects non-positive distances or seat counts. Unlike
// matching failures, fare errors always surface to the caller: an incorrect
// fare must never be silently substituted.
var ErrInvalidInput = errors.New("invalid fare input")

// DistanceCalculator resolves the driving distance for a trip estimate.
type DistanceCalculator interface {
	DistanceKm(ctx context.Context, origin, destination string) (float64, error)
}

type Service struct {
	cfg      config.FareConfig
	distance DistanceCalculator
}

// NewService builds a fare service. distance may be nil when only pure
// computations are needed.
func NewService(cfg config.FareConfig, distance DistanceCalculator) *Service {
	return &Service{cfg: cfg, distance: distance}
}

// Compute produces the fare breakdown for a booking:
//
//	total = (baseFare + distanceKm*pricePerKm) * seats + bookingFee
//
// floored at the configured minimum fare and rounded to two decimals.
func (s *Service) Compute(distanceKm, pricePerKm float64, seatsBooked int) (Breakdown, error) {
	if distanceKm <= 0 || pricePerKm < 0 || seatsBooked <= 0 {
		return Breakdown{}, ErrInvalidInput
	}

	distanceFare := distanceKm * pricePerKm
	subtotal := s.cfg.BaseFare + distanceFare
	perSeatTotal := subtotal * float64(seatsBooked)
	total := perSeatTotal + s.cfg.BookingFee

	minimumApplied := false
	if total < s.cfg.MinimumFare {
		total = s.cfg.MinimumFare
		minimumApplied = true
	}

	return Breakdown{
		BaseFare:           s.cfg.BaseFare,
		DistanceFare:       round2(distanceFare),
		BookingFee:         s.cfg.BookingFee,
		TotalFare:          round2(total),
		SeatsBooked:        seatsBooked,
		MinimumFareApplied: minimumApplied,
	}, nil
}

// DriverEarnings returns the driver's share of a collected fare after the
// platform commission.
func (s *Service) DriverEarnings(totalFare float64) float64 {
	return round2(totalFare * (1 - s.cfg.CommissionRate))
}

// Split divides a total fare evenly among passengers sharing the ride.
func (s *Service) Split(totalFare float64, passengers int) (float64, error) {
	if passengers <= 0 {
		return 0, ErrInvalidInput
	}
	return round2(totalFare / float64(passengers)), nil
}

// EstimateTrip resolves the driving distance between pickup and drop and
// computes the breakdown for it. Upstream failures propagate.
func (s *Service) EstimateTrip(ctx context.Context, origin, destination string, pricePerKm float64, seatsBooked int) (Breakdown, float64, error) {
	distanceKm, err := s.distance.DistanceKm(ctx, origin, destination)
	if err != nil {
		return Breakdown{}, 0, err
	}
	breakdown, err := s.Compute(distanceKm, pricePerKm, seatsBooked)
	if err != nil {
		return Breakdown{}, 0, err
	}
	return breakdown, distanceKm, nil
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
