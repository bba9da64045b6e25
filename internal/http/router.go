// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartride/internal/http/handlers"
	"smartride/internal/http/middleware"
	"smartride/internal/modules/fare"
)

func NewRouter(
	rides handlers.RideSearcher,
	matcher handlers.Matcher,
	fareService *fare.Service,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	rideHandler := handlers.NewRideHandler(rides, matcher)
	r.GET("/api/rides/search", rideHandler.Search)

	fareHandler := handlers.NewFareHandler(fareService)
	r.POST("/api/fares/estimate", fareHandler.Estimate)
	r.POST("/api/fares/trip-estimate", fareHandler.TripEstimate)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
