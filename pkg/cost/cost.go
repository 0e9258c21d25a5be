// Package cost implements the pure edge-cost function shared by every
// search in bikeroute: a weighted blend of physical distance and positive
// elevation gain.
package cost

import "math"

// Compute returns the integer cost, in centimeters, of traversing an edge
// of the given length and climb (both centimeters) at weight w.
//
//	cost = round(w*length + (1-w)*climb)
//
// w=1 favors pure distance, w=0 favors pure climb. Rounding is half-away-
// from-zero (math.Round's behavior), keeping every downstream sum an
// integer so search costs never accumulate floating-point drift.
func Compute(lengthCm, climbCm uint32, w float64) uint64 {
	v := w*float64(lengthCm) + (1-w)*float64(climbCm)
	if v < 0 {
		v = 0
	}
	return uint64(math.Round(v))
}
