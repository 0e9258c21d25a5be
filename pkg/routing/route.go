package routing

import (
	"context"
	"math"

	"bikeroute/pkg/graph"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RouteService translates a user-facing slider value into a cost-function
// weight and materializes reconstructed Dijkstra paths as GeoJSON
// LineStrings with aggregate distance and climb.
type RouteService struct {
	engine *Engine
	g      *graph.Graph
}

// NewRouteService wires a RouteService to an Engine and the graph it
// reads node coordinates from when building response geometry.
func NewRouteService(engine *Engine, g *graph.Graph) *RouteService {
	return &RouteService{engine: engine, g: g}
}

// RouteOutcome is the materialized result of a slider-driven route query.
type RouteOutcome struct {
	DistanceCm      uint64
	ElevationGainCm uint64
	Coordinates     []orb.Point // (lon, lat) order
	Nodes           []uint32
}

// sliderExponent spreads meaningful route variation across most of the
// slider range; raw distance otherwise dwarfs raw climb and the slider's
// middle range collapses onto the pure-distance solution.
const sliderExponent = 0.7

// Route runs the full slider protocol: two reference searches at w=1.0 and
// w=0.0 to establish Dmax/Gmax, a rescale of slider into w, then a final
// search at the rescaled weight.
func (rs *RouteService) Route(ctx context.Context, source, target uint32, slider float64) (*RouteOutcome, error) {
	distRef, err := rs.engine.OneToOne(ctx, source, target, 1.0)
	if err != nil {
		return nil, err
	}
	climbRef, err := rs.engine.OneToOne(ctx, source, target, 0.0)
	if err != nil {
		return nil, err
	}

	dMax := maxUint64(distRef.DistCm, climbRef.DistCm)
	gMax := maxUint64(distRef.ClimbCm, climbRef.ClimbCm)

	w := slider
	if dMax != 0 && gMax != 0 {
		w = math.Pow(slider, sliderExponent)
	}

	result, err := rs.engine.OneToOne(ctx, source, target, w)
	if err != nil {
		return nil, err
	}

	return &RouteOutcome{
		DistanceCm:      result.DistCm,
		ElevationGainCm: result.ClimbCm,
		Coordinates:     rs.buildCoordinates(result.Nodes),
		Nodes:           result.Nodes,
	}, nil
}

func (rs *RouteService) buildCoordinates(nodes []uint32) []orb.Point {
	pts := make([]orb.Point, len(nodes))
	for i, n := range nodes {
		pts[i] = orb.Point{rs.g.NodeLon[n], rs.g.NodeLat[n]}
	}
	return pts
}

// GeoJSON renders the outcome's coordinate sequence as a GeoJSON LineString.
// A sequence of fewer than two points renders as an empty LineString.
func (o *RouteOutcome) GeoJSON() *geojson.Geometry {
	if len(o.Coordinates) < 2 {
		return geojson.NewGeometry(orb.LineString{})
	}
	return geojson.NewGeometry(orb.LineString(o.Coordinates))
}

func maxUint64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
