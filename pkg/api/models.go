package api

import "github.com/paulmach/orb/geojson"

// NearestResponse is the JSON response for GET /nearest.
type NearestResponse struct {
	NodeID uint32  `json:"nodeId"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// RouteResponse is the JSON response for GET /route.
type RouteResponse struct {
	DistanceCm      uint64            `json:"distanceCm"`
	ElevationGainCm uint64            `json:"elevationGainCm"`
	GeoJSON         *geojson.Geometry `json:"geojson"`
}

// BoundsResponse is the JSON response for GET /bounds.
type BoundsResponse struct {
	MinLat      float64 `json:"minLat"`
	MaxLat      float64 `json:"maxLat"`
	MinLon      float64 `json:"minLon"`
	MaxLon      float64 `json:"maxLon"`
	CentroidLat float64 `json:"centroidLat"`
	CentroidLon float64 `json:"centroidLon"`
}

// ErrorResponse is the JSON response for every 4xx/5xx error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
