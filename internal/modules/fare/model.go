// README: Fare breakdown value object.
package fare

// Breakdown itemizes one fare computation. All monetary fields are rounded
// to two decimal places; TotalFare never drops below the configured minimum.
type Breakdown struct {
	BaseFare           float64 `json:"base_fare"`
	DistanceFare       float64 `json:"distance_fare"`
	BookingFee         float64 `json:"booking_fee"`
	TotalFare          float64 `json:"total_fare"`
	SeatsBooked        int     `json:"seats_booked"`
	MinimumFareApplied bool    `json:"minimum_fare_applied"`
}
