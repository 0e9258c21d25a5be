package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"bikeroute/pkg/api"
	"bikeroute/pkg/elevation"
	"bikeroute/pkg/graph"
	"bikeroute/pkg/routing"
)

func main() {
	graphPath := flag.String("graph", "graph.fmi", "Path to the .fmi graph file")
	tileDir := flag.String("tiles", "", "SRTM tile directory (default: sibling 'srtm' dir next to -graph)")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	start := time.Now()

	log.Printf("Loading graph from %s...", *graphPath)
	f, err := os.Open(*graphPath)
	if err != nil {
		log.Fatalf("Failed to open graph file: %v", err)
	}
	g, err := graph.Load(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	log.Printf("Loaded: %d nodes, %d edges", g.NumNodes, g.NumEdges)

	dir := *tileDir
	if dir == "" {
		dir = elevation.DefaultTileDir(*graphPath)
	}
	log.Printf("Assigning node elevations from %s...", dir)
	store := elevation.NewStore(dir)
	if err := graph.AssignElevations(g, store); err != nil {
		log.Fatalf("Failed to assign elevations: %v", err)
	}
	graph.UpdateEdgeClimbs(g)
	log.Printf("Elevation ready: %d tiles cached", store.CachedTiles())

	bounds, centroidLat, centroidLon := graph.ComputeBounds(g)

	engine := routing.NewEngine(g)
	routeSvc := routing.NewRouteService(engine, g)
	nearest := routing.NewNearestIndex(g)

	// Reclaim memory from loading-time temporaries. Without this, Go's heap
	// retains peak RSS from graph construction (GC doubles heap each cycle:
	// 120->240->480->960->1920 MB). This returns unused pages to the OS.
	runtime.GC()
	debug.FreeOSMemory()

	loadTime := time.Since(start)
	log.Printf("Ready in %s", loadTime.Round(time.Millisecond))

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	handlers := api.NewHandlers(routeSvc, nearest, g, bounds, centroidLat, centroidLon)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
