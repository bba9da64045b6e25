// README: Ride search handler; joins the candidate store and the matching engine.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartride/internal/modules/matching"
	"smartride/internal/modules/ride"
)

// RideSearcher lists candidate rides for a departure window.
type RideSearcher interface {
	SearchActive(ctx context.Context, from, until time.Time) ([]ride.Ride, error)
}

// Matcher ranks candidate rides against a passenger trip.
type Matcher interface {
	MatchRides(ctx context.Context, candidates []matching.CandidateRide, source, destination string) []matching.RideMatch
}

type RideHandler struct {
	rides    RideSearcher
	matching Matcher
}

func NewRideHandler(rides RideSearcher, matcher Matcher) *RideHandler {
	return &RideHandler{rides: rides, matching: matcher}
}

type rideMatchResponse struct {
	RideID           string  `json:"ride_id"`
	DriverID         string  `json:"driver_id"`
	Source           string  `json:"source"`
	Destination      string  `json:"destination"`
	PricePerKm       float64 `json:"price_per_km"`
	AvailableSeats   int     `json:"available_seats"`
	MatchType        string  `json:"match_type"`
	MatchScore       float64 `json:"match_score"`
	ExtraDistanceKm  float64 `json:"extra_distance_km"`
	MatchDescription string  `json:"match_description"`
	SuggestedPickup  string  `json:"suggested_pickup,omitempty"`
	SuggestedDrop    string  `json:"suggested_drop,omitempty"`
}

// Search handles GET /api/rides/search?source=&destination=&date=YYYY-MM-DD.
// A search with no viable rides returns an empty list, not an error.
func (h *RideHandler) Search(c *gin.Context) {
	source := c.Query("source")
	destination := c.Query("destination")
	if source == "" || destination == "" {
		writeError(c, http.StatusBadRequest, "source and destination are required")
		return
	}

	from := time.Now()
	until := from.AddDate(100, 0, 0)
	if d := c.Query("date"); d != "" {
		day, err := time.Parse("2006-01-02", d)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
			return
		}
		from = day
		until = day.AddDate(0, 0, 1)
	}

	rides, err := h.rides.SearchActive(c.Request.Context(), from, until)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	candidates := make([]matching.CandidateRide, len(rides))
	for i, r := range rides {
		candidates[i] = matching.CandidateRide{
			ID:             r.ID,
			DriverID:       r.DriverID,
			Source:         r.Source,
			Destination:    r.Destination,
			PricePerKm:     r.PricePerKm,
			AvailableSeats: r.AvailableSeats,
		}
	}

	matches := h.matching.MatchRides(c.Request.Context(), candidates, source, destination)

	out := make([]rideMatchResponse, len(matches))
	for i, m := range matches {
		out[i] = rideMatchResponse{
			RideID:           string(m.Ride.ID),
			DriverID:         string(m.Ride.DriverID),
			Source:           m.Ride.Source,
			Destination:      m.Ride.Destination,
			PricePerKm:       m.Ride.PricePerKm,
			AvailableSeats:   m.Ride.AvailableSeats,
			MatchType:        string(m.Type),
			MatchScore:       m.Score,
			ExtraDistanceKm:  m.ExtraDistanceKm,
			MatchDescription: m.Description,
			SuggestedPickup:  m.SuggestedPickup,
			SuggestedDrop:    m.SuggestedDrop,
		}
	}
	c.JSON(http.StatusOK, out)
}
