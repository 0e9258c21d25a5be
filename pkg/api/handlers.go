package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bikeroute/pkg/gpxexport"
	"bikeroute/pkg/graph"
	"bikeroute/pkg/routing"
)

// Handlers holds the HTTP handlers and the state they query against. All
// fields are read-only after construction: the graph, bounds, and indices
// are fixed once the server starts. Each Dijkstra Engine is single-threaded
// internally, but the graph and elevation store are read-only and safely
// shared across concurrent requests.
type Handlers struct {
	routeSvc *routing.RouteService
	nearest  *routing.NearestIndex
	g        *graph.Graph
	bounds   graph.Bounds
	centLat  float64
	centLon  float64
}

// NewHandlers wires the HTTP handlers to their backing services.
func NewHandlers(routeSvc *routing.RouteService, nearest *routing.NearestIndex, g *graph.Graph, bounds graph.Bounds, centroidLat, centroidLon float64) *Handlers {
	return &Handlers{
		routeSvc: routeSvc,
		nearest:  nearest,
		g:        g,
		bounds:   bounds,
		centLat:  centroidLat,
		centLon:  centroidLon,
	}
}

// HandleNearest handles GET /nearest?lat=F&lon=F.
func (h *Handlers) HandleNearest(w http.ResponseWriter, r *http.Request) {
	lat, err := parseFloatParam(r, "lat")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lon, err := parseFloatParam(r, "lon")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := h.nearest.Nearest(lat, lon)
	writeJSON(w, http.StatusOK, NearestResponse{
		NodeID: id,
		Lat:    h.g.NodeLat[id],
		Lon:    h.g.NodeLon[id],
	})
}

// HandleRoute handles GET /route?from=I&to=I&slider=F, with an optional
// &format=gpx to receive a GPX track instead of the default JSON/GeoJSON
// response.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	from, err := parseNodeParam(r, "from", h.g.NumNodes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseNodeParam(r, "to", h.g.NumNodes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slider, err := parseFloatParam(r, "slider")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if slider < 0 || slider > 1 {
		writeError(w, http.StatusBadRequest, "slider must be in [0,1]")
		return
	}

	outcome, err := h.routeSvc.Route(r.Context(), from, to, slider)
	if err != nil {
		h.writeRouteError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "gpx" {
		h.writeGPX(w, outcome)
		return
	}

	writeJSON(w, http.StatusOK, RouteResponse{
		DistanceCm:      outcome.DistanceCm,
		ElevationGainCm: outcome.ElevationGainCm,
		GeoJSON:         outcome.GeoJSON(),
	})
}

func (h *Handlers) writeGPX(w http.ResponseWriter, outcome *routing.RouteOutcome) {
	pts := make([]gpxexport.Point, len(outcome.Nodes))
	for i, n := range outcome.Nodes {
		pts[i] = gpxexport.Point{
			Lat:        h.g.NodeLat[n],
			Lon:        h.g.NodeLon[n],
			ElevationM: float64(h.g.NodeElev[n]) / 100,
		}
	}
	data, err := gpxexport.Track("bikeroute", pts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render gpx")
		return
	}
	w.Header().Set("Content-Type", "application/gpx+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handlers) writeRouteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, routing.ErrNoRoute):
		writeError(w, http.StatusNotFound, "no route found")
	case errors.Is(err, routing.ErrNodeOutOfRange):
		writeError(w, http.StatusBadRequest, "node id out of range")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request timed out")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// HandleBounds handles GET /bounds.
func (h *Handlers) HandleBounds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, BoundsResponse{
		MinLat:      h.bounds.MinLat,
		MaxLat:      h.bounds.MaxLat,
		MinLon:      h.bounds.MinLon,
		MaxLon:      h.bounds.MaxLon,
		CentroidLat: h.centLat,
		CentroidLon: h.centLon,
	})
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func parseFloatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.New("missing query parameter: " + name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("malformed query parameter: " + name)
	}
	return v, nil
}

func parseNodeParam(r *http.Request, name string, numNodes uint32) (uint32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.New("missing query parameter: " + name)
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.New("malformed query parameter: " + name)
	}
	if uint32(v) >= numNodes {
		return 0, errors.New("node id out of range: " + name)
	}
	return uint32(v), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
