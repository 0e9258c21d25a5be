// Package gpxexport renders a computed route as a GPX track, the format
// bike navigation apps and GPS units import directly. GeoJSON remains the
// primary route encoding; GPX is a supplemental export of the same
// coordinate sequence.
package gpxexport

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"
)

// Point is one track point: a coordinate plus its ground elevation.
type Point struct {
	Lat, Lon   float64
	ElevationM float64
}

// Track builds a single-segment GPX track named name from pts, in order.
func Track(name string, pts []Point) ([]byte, error) {
	if len(pts) == 0 {
		return nil, fmt.Errorf("gpxexport: no points to export")
	}

	segment := gpx.GPXTrackSegment{}
	for _, p := range pts {
		elev := gpx.NewNullableFloat64(p.ElevationM)
		segment.Points = append(segment.Points, gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  p.Lat,
				Longitude: p.Lon,
				Elevation: *elev,
			},
		})
	}

	g := &gpx.GPX{
		Creator: "bikeroute",
		Tracks: []gpx.GPXTrack{
			{
				Name:     name,
				Segments: []gpx.GPXTrackSegment{segment},
			},
		},
	}

	return g.ToXml(gpx.ToXmlParams{Indent: true})
}
