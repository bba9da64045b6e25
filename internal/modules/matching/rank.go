// README: Deterministic ordering of match results.
package matching

import "sort"

// Rank orders matches by match-type precedence (exact first), then by score
// descending. The sort is stable: ties keep their relative input order.
func Rank(matches []RideMatch) []RideMatch {
	ranked := make([]RideMatch, len(matches))
	copy(ranked, matches)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Type.Precedence() != ranked[j].Type.Precedence() {
			return ranked[i].Type.Precedence() < ranked[j].Type.Precedence()
		}
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
