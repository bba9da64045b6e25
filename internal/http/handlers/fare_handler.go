// README: Fare estimate handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartride/internal/modules/fare"
)

type FareHandler struct {
	fare *fare.Service
}

func NewFareHandler(svc *fare.Service) *FareHandler {
	return &FareHandler{fare: svc}
}

type estimateReq struct {
	DistanceKm  float64 `json:"distance_km"`
	PricePerKm  float64 `json:"price_per_km"`
	SeatsBooked int     `json:"seats_booked"`
}

type estimateResp struct {
	Breakdown      fare.Breakdown `json:"breakdown"`
	DriverEarnings float64        `json:"driver_earnings"`
}

// Estimate handles POST /api/fares/estimate with a known distance.
func (h *FareHandler) Estimate(c *gin.Context) {
	var req estimateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	breakdown, err := h.fare.Compute(req.DistanceKm, req.PricePerKm, req.SeatsBooked)
	if err != nil {
		writeFareError(c, err)
		return
	}
	c.JSON(http.StatusOK, estimateResp{
		Breakdown:      breakdown,
		DriverEarnings: h.fare.DriverEarnings(breakdown.TotalFare),
	})
}

type tripEstimateReq struct {
	Pickup      string  `json:"pickup"`
	Drop        string  `json:"drop"`
	PricePerKm  float64 `json:"price_per_km"`
	SeatsBooked int     `json:"seats_booked"`
}

type tripEstimateResp struct {
	DistanceKm     float64        `json:"distance_km"`
	Breakdown      fare.Breakdown `json:"breakdown"`
	DriverEarnings float64        `json:"driver_earnings"`
}

// TripEstimate handles POST /api/fares/trip-estimate; the distance is
// resolved through the Distance Matrix API before computing the breakdown.
func (h *FareHandler) TripEstimate(c *gin.Context) {
	var req tripEstimateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Pickup == "" || req.Drop == "" {
		writeError(c, http.StatusBadRequest, "pickup and drop are required")
		return
	}
	breakdown, distanceKm, err := h.fare.EstimateTrip(c.Request.Context(), req.Pickup, req.Drop, req.PricePerKm, req.SeatsBooked)
	if err != nil {
		writeFareError(c, err)
		return
	}
	c.JSON(http.StatusOK, tripEstimateResp{
		DistanceKm:     distanceKm,
		Breakdown:      breakdown,
		DriverEarnings: h.fare.DriverEarnings(breakdown.TotalFare),
	})
}
