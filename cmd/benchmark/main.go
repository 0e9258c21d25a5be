// Command benchmark drives the Dijkstra Engine directly against a .fmi
// graph for timing and .que/.sol regression runs, bypassing the HTTP
// server entirely.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"bikeroute/pkg/elevation"
	"bikeroute/pkg/gpxexport"
	"bikeroute/pkg/graph"
	"bikeroute/pkg/routing"
)

func main() {
	graphPath := flag.String("graph", "", "Path to the .fmi graph file (required)")
	tileDir := flag.String("tiles", "", "SRTM tile directory (default: sibling 'srtm' dir next to -graph)")
	quePath := flag.String("que", "", "Path to a .que query file; if present, process each query and print one cost per line")
	lat := flag.Float64("lat", 0, "Latitude for a nearest-node lookup (with -lon, runs the lookup)")
	lon := flag.Float64("lon", 0, "Longitude for a nearest-node lookup (with -lat, runs the lookup)")
	source := flag.Int("s", -1, "Source node id for a single one-to-all run")
	weight := flag.Float64("w", 1.0, "Weight w passed to -s's one-to-all run; also the slider value for the -from/-to route")
	from := flag.Int("from", -1, "Source node id for a single one-to-one route (use with -to)")
	to := flag.Int("to", -1, "Target node id for a single one-to-one route (use with -from)")
	gpxPath := flag.String("gpx", "", "Write the -from/-to route as a GPX track to this path")
	flag.Parse()

	if *graphPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: benchmark -graph <path.fmi> [-que <path.que>] [-lat F -lon F] [-s nodeId -w weight] [-from I -to I [-gpx path]]")
		os.Exit(1)
	}

	var latSet, lonSet bool
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			latSet = true
		case "lon":
			lonSet = true
		}
	})
	hasLatLon := latSet && lonSet

	start := time.Now()
	f, err := os.Open(*graphPath)
	if err != nil {
		log.Fatalf("Failed to open graph file: %v", err)
	}
	g, err := graph.Load(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Loaded %d nodes, %d edges in %s\n", g.NumNodes, g.NumEdges, time.Since(start).Round(time.Millisecond))

	dir := *tileDir
	if dir == "" {
		dir = elevation.DefaultTileDir(*graphPath)
	}
	store := elevation.NewStore(dir)
	elevStart := time.Now()
	if err := graph.AssignElevations(g, store); err != nil {
		log.Fatalf("Failed to assign elevations: %v", err)
	}
	graph.UpdateEdgeClimbs(g)
	fmt.Fprintf(os.Stderr, "Elevations assigned in %s (%d tiles)\n", time.Since(elevStart).Round(time.Millisecond), store.CachedTiles())

	engine := routing.NewEngine(g)
	ctx := context.Background()

	if hasLatLon {
		idx := routing.NewNearestIndex(g)
		id := idx.Nearest(*lat, *lon)
		fmt.Printf("%g %g\n", g.NodeLat[id], g.NodeLon[id])
	}

	if *source >= 0 {
		oneStart := time.Now()
		result, err := engine.OneToAll(ctx, uint32(*source), *weight)
		if err != nil {
			log.Fatalf("one-to-all from %d failed: %v", *source, err)
		}
		reached := 0
		for _, c := range result {
			if c != routing.MaxCost {
				reached++
			}
		}
		fmt.Fprintf(os.Stderr, "One-to-all from %d (w=%g): %d/%d nodes reached in %s\n",
			*source, *weight, reached, g.NumNodes, time.Since(oneStart).Round(time.Millisecond))
	}

	if *from >= 0 && *to >= 0 {
		routeSvc := routing.NewRouteService(engine, g)
		outcome, err := routeSvc.Route(ctx, uint32(*from), uint32(*to), *weight)
		if err != nil {
			log.Fatalf("route %d -> %d failed: %v", *from, *to, err)
		}
		fmt.Printf("%d %d\n", outcome.DistanceCm, outcome.ElevationGainCm)

		if *gpxPath != "" {
			pts := make([]gpxexport.Point, len(outcome.Nodes))
			for i, n := range outcome.Nodes {
				pts[i] = gpxexport.Point{
					Lat:        g.NodeLat[n],
					Lon:        g.NodeLon[n],
					ElevationM: float64(g.NodeElev[n]) / 100,
				}
			}
			data, err := gpxexport.Track("bikeroute", pts)
			if err != nil {
				log.Fatalf("gpx export failed: %v", err)
			}
			if err := os.WriteFile(*gpxPath, data, 0o644); err != nil {
				log.Fatalf("write gpx file: %v", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote GPX track to %s\n", *gpxPath)
		}
	}

	if *quePath != "" {
		if err := runQueries(ctx, engine, *quePath); err != nil {
			log.Fatalf("Query run failed: %v", err)
		}
	}
}

// runQueries processes a .que file (src tgt weight per line) and writes one
// cost per line to standard output, byte-compatible with the .sol format:
// -1 denotes an unreachable target.
func runQueries(ctx context.Context, engine *routing.Engine, quePath string) error {
	f, err := os.Open(quePath)
	if err != nil {
		return fmt.Errorf("open query file: %w", err)
	}
	defer f.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	sc := bufio.NewScanner(f)
	start := time.Now()
	n := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return fmt.Errorf("malformed query line: %q", line)
		}
		src, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return fmt.Errorf("malformed source id %q: %w", fields[0], err)
		}
		tgt, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return fmt.Errorf("malformed target id %q: %w", fields[1], err)
		}
		w, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("malformed weight %q: %w", fields[2], err)
		}

		n++
		result, err := engine.OneToOne(ctx, uint32(src), uint32(tgt), w)
		if err != nil {
			fmt.Fprintln(out, -1)
			continue
		}
		fmt.Fprintln(out, result.CostCm)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan query file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Processed %d queries in %s\n", n, time.Since(start).Round(time.Millisecond))
	return nil
}
