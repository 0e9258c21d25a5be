package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bikeroute/pkg/graph"
	"bikeroute/pkg/routing"
)

func testHandlers(t *testing.T) *Handlers {
	t.Helper()
	const fmi = `4
4
0 0 48.0 9.0 0
1 0 48.01 9.0 0
2 0 48.02 9.0 0
3 0 48.03 9.0 0
0 1 100 0
0 2 50 0
1 3 100 0
2 3 50 0
`
	g, err := graph.Load(strings.NewReader(fmi))
	if err != nil {
		t.Fatalf("graph.Load: %v", err)
	}
	bounds, centLat, centLon := graph.ComputeBounds(g)
	engine := routing.NewEngine(g)
	routeSvc := routing.NewRouteService(engine, g)
	nearest := routing.NewNearestIndex(g)
	return NewHandlers(routeSvc, nearest, g, bounds, centLat, centLon)
}

func TestHandleNearestSuccess(t *testing.T) {
	h := testHandlers(t)
	req := httptest.NewRequest("GET", "/nearest?lat=48.009&lon=9.0", nil)
	w := httptest.NewRecorder()

	h.HandleNearest(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}
	var resp NearestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.NodeID != 1 {
		t.Errorf("NodeID = %d, want 1", resp.NodeID)
	}
}

func TestHandleNearestMissingParam(t *testing.T) {
	h := testHandlers(t)
	req := httptest.NewRequest("GET", "/nearest?lat=48.0", nil)
	w := httptest.NewRecorder()

	h.HandleNearest(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRouteSuccess(t *testing.T) {
	h := testHandlers(t)
	req := httptest.NewRequest("GET", "/route?from=0&to=3&slider=1.0", nil)
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}
	var resp RouteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.DistanceCm != 100 {
		t.Errorf("DistanceCm = %d, want 100 (shorter path via node 2)", resp.DistanceCm)
	}
}

func TestHandleRouteInvalidSlider(t *testing.T) {
	h := testHandlers(t)
	req := httptest.NewRequest("GET", "/route?from=0&to=3&slider=2.0", nil)
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRouteNodeOutOfRange(t *testing.T) {
	h := testHandlers(t)
	req := httptest.NewRequest("GET", "/route?from=0&to=999&slider=0.5", nil)
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRouteNoRoute(t *testing.T) {
	const fmi = `2
0
0 0 48.0 9.0 0
1 0 49.0 9.0 0
`
	g, err := graph.Load(strings.NewReader(fmi))
	if err != nil {
		t.Fatalf("graph.Load: %v", err)
	}
	bounds, centLat, centLon := graph.ComputeBounds(g)
	h := NewHandlers(routing.NewRouteService(routing.NewEngine(g), g), routing.NewNearestIndex(g), g, bounds, centLat, centLon)

	req := httptest.NewRequest("GET", "/route?from=0&to=1&slider=0.5", nil)
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHandleRouteGPXFormat(t *testing.T) {
	h := testHandlers(t)
	req := httptest.NewRequest("GET", "/route?from=0&to=3&slider=1.0&format=gpx", nil)
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/gpx+xml" {
		t.Errorf("Content-Type = %q, want application/gpx+xml", ct)
	}
	if !strings.Contains(w.Body.String(), "<gpx") {
		t.Errorf("body does not look like GPX: %s", w.Body.String())
	}
}

func TestHandleBounds(t *testing.T) {
	h := testHandlers(t)
	req := httptest.NewRequest("GET", "/bounds", nil)
	w := httptest.NewRecorder()

	h.HandleBounds(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp BoundsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.MinLat != 48.0 || resp.MaxLat != 48.03 {
		t.Errorf("bounds = %+v, want MinLat=48.0 MaxLat=48.03", resp)
	}
}

func TestHandleHealth(t *testing.T) {
	h := testHandlers(t)
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	var resp HealthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}
