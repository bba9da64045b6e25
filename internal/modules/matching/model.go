// README: Match result types for the route-matching engine.
package matching

import "smartride/internal/types"

// MatchType classifies how well a candidate ride fits a passenger's trip.
type MatchType string

const (
	MatchExact         MatchType = "EXACT"
	MatchAlongRoute    MatchType = "ALONG_ROUTE"
	MatchPartialDetour MatchType = "PARTIAL_DETOUR"
)

// Precedence returns the sort rank of a match type, lower sorting first.
// The rank is assigned explicitly so reordering the constants above can
// never silently change ranking semantics.
func (t MatchType) Precedence() int {
	switch t {
	case MatchExact:
		return 0
	case MatchAlongRoute:
		return 1
	case MatchPartialDetour:
		return 2
	default:
		return 3
	}
}

// RouteDetails describes one resolved route. It lives only for the duration
// of a single match attempt and is never cached across calls.
type RouteDetails struct {
	StartPoint string
	EndPoint   string
	DistanceKm float64
	StartCoord types.Point
	EndCoord   types.Point
}

// RideMatch is one ranked search result. It is created once per candidate
// per search and owned by the caller after return.
type RideMatch struct {
	Ride            CandidateRide
	Type            MatchType
	Score           float64
	ExtraDistanceKm float64
	Description     string
	SuggestedPickup string
	SuggestedDrop   string
}

// CandidateRide is the read-only projection of a driver-posted ride that the
// engine matches against. The engine never mutates it.
type CandidateRide struct {
	ID             types.ID
	DriverID       types.ID
	Source         string
	Destination    string
	PricePerKm     float64
	AvailableSeats int
}
