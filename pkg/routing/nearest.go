package routing

import (
	"math"

	"bikeroute/pkg/graph"
)

// NearestIndex answers "which graph node is closest to (lat, lon)?" via a
// linear scan. At 12M nodes and a one-second query budget this is
// sufficient; a grid or k-d tree is a drop-in replacement behind the same
// interface if the budget tightens later.
type NearestIndex struct {
	g *graph.Graph
}

// NewNearestIndex builds an index over g. g's node coordinate arrays are
// read directly, not copied.
func NewNearestIndex(g *graph.Graph) *NearestIndex {
	return &NearestIndex{g: g}
}

// Nearest returns the id of the node closest to (lat, lon) by squared
// Euclidean distance in the lat/lon plane. Ties break toward the lower
// node id, since ids are scanned in increasing order and a strict "<"
// comparison only replaces the incumbent on genuine improvement.
func (idx *NearestIndex) Nearest(lat, lon float64) uint32 {
	best := uint32(0)
	bestDist := math.MaxFloat64

	for i := uint32(0); i < idx.g.NumNodes; i++ {
		dLat := idx.g.NodeLat[i] - lat
		dLon := idx.g.NodeLon[i] - lon
		d := dLat*dLat + dLon*dLon
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
