// README: Read-only ride projection used as matching input.
package ride

import (
	"time"

	"smartride/internal/types"
)

// Ride is a driver-posted trip as seen by the search flow. The matching
// engine only reads it; all mutation happens elsewhere in the platform.
type Ride struct {
	ID             types.ID
	DriverID       types.ID
	Source         string
	Destination    string
	DepartureAt    time.Time
	PricePerKm     float64
	AvailableSeats int
	Status         string
}
