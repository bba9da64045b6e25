// README: Pure geometry helpers for route deviation analysis.
package matching

import (
	"math"

	"smartride/internal/types"
)

// degreeKm converts degree-space distances to kilometres. This is an
// equirectangular approximation; it ignores latitude and is only suitable
// for gating against coarse thresholds at moderate latitudes.
const degreeKm = 111.0

// PerpendicularDistanceKm returns the distance in kilometres from p to the
// closest point on the segment segStart-segEnd. The projection scalar is
// clamped to [0,1] so the closest point always lies on the segment itself.
// A zero-length segment degenerates to the distance from p to segStart.
func PerpendicularDistanceKm(segStart, segEnd, p types.Point) float64 {
	ax := p.Lat - segStart.Lat
	ay := p.Lng - segStart.Lng
	bx := segEnd.Lat - segStart.Lat
	by := segEnd.Lng - segStart.Lng

	lenSq := bx*bx + by*by
	t := 0.0
	if lenSq > 0 {
		t = (ax*bx + ay*by) / lenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}

	cx := segStart.Lat + t*bx
	cy := segStart.Lng + t*by

	dx := p.Lat - cx
	dy := p.Lng - cy
	return math.Sqrt(dx*dx+dy*dy) * degreeKm
}
