package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Load parses a `.fmi` graph description: leading `#`/blank lines, a node
// count, an edge count, N node lines, then M edge lines sorted by source.
// It returns the built Graph.
//
// Node elevations are left at zero and every edge's climb at zero — both
// are filled in by the caller via AssignElevations and then UpdateEdgeClimbs
// once an elevation source is available, per the documented startup order (parse → elevations →
// climbs → ready).
func Load(r io.Reader) (*Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	nextLine := func() (string, bool) {
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			return line, true
		}
		return "", false
	}

	nLine, ok := nextLine()
	if !ok {
		return nil, fmt.Errorf("fmi: missing node count line")
	}
	n, err := strconv.ParseUint(nLine, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("fmi: line %d: malformed node count %q: %w", lineNo, nLine, err)
	}

	mLine, ok := nextLine()
	if !ok {
		return nil, fmt.Errorf("fmi: missing edge count line")
	}
	m, err := strconv.ParseUint(mLine, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("fmi: line %d: malformed edge count %q: %w", lineNo, mLine, err)
	}

	g := New(uint32(n), uint32(m))

	for i := uint32(0); i < g.NumNodes; i++ {
		line, ok := nextLine()
		if !ok {
			return nil, fmt.Errorf("fmi: truncated node section: expected %d nodes, got %d", g.NumNodes, i)
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("fmi: line %d: node line has %d fields, want >= 4", lineNo, len(fields))
		}
		id, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("fmi: line %d: malformed node id %q: %w", lineNo, fields[0], err)
		}
		if id >= uint64(g.NumNodes) {
			return nil, fmt.Errorf("fmi: line %d: node id %d out of range [0,%d)", lineNo, id, g.NumNodes)
		}
		lat, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("fmi: line %d: malformed latitude %q: %w", lineNo, fields[2], err)
		}
		lon, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("fmi: line %d: malformed longitude %q: %w", lineNo, fields[3], err)
		}
		g.NodeLat[id] = lat
		g.NodeLon[id] = lon
	}

	// Build edges, advancing FirstOut as the source id advances. Edges are
	// guaranteed sorted by source; any source with no outgoing edges gets
	// FirstOut[s+1] == FirstOut[s].
	var edgeIdx, curSource uint32
	for edgeIdx = 0; edgeIdx < g.NumEdges; edgeIdx++ {
		line, ok := nextLine()
		if !ok {
			return nil, fmt.Errorf("fmi: truncated edge section: expected %d edges, got %d", g.NumEdges, edgeIdx)
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("fmi: line %d: edge line has %d fields, want >= 3", lineNo, len(fields))
		}
		src, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("fmi: line %d: malformed source id %q: %w", lineNo, fields[0], err)
		}
		if src >= uint64(g.NumNodes) {
			return nil, fmt.Errorf("fmi: line %d: source id %d out of range [0,%d)", lineNo, src, g.NumNodes)
		}
		tgt, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("fmi: line %d: malformed target id %q: %w", lineNo, fields[1], err)
		}
		if tgt >= uint64(g.NumNodes) {
			return nil, fmt.Errorf("fmi: line %d: target id %d out of range [0,%d)", lineNo, tgt, g.NumNodes)
		}
		length, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("fmi: line %d: malformed edge length %q: %w", lineNo, fields[2], err)
		}

		s := uint32(src)
		for curSource < s {
			curSource++
			g.FirstOut[curSource] = edgeIdx
		}

		g.Head[edgeIdx] = uint32(tgt)
		g.Length[edgeIdx] = uint32(length)
		g.Climb[edgeIdx] = 0
	}
	for k := curSource + 1; k <= g.NumNodes; k++ {
		g.FirstOut[k] = g.NumEdges
	}

	return g, nil
}

// ElevationSource resolves a ground elevation in centimeters for a
// latitude/longitude. pkg/elevation.Store implements this.
type ElevationSource interface {
	ElevationCm(lat, lon float64) (int32, error)
}

// AssignElevations walks node ids in order and sets each node's elevation
// from src. Fatal to the caller's loading phase on the first failure; there
// is no fallback elevation.
func AssignElevations(g *Graph, src ElevationSource) error {
	for i := uint32(0); i < g.NumNodes; i++ {
		elev, err := src.ElevationCm(g.NodeLat[i], g.NodeLon[i])
		if err != nil {
			return fmt.Errorf("assign elevation for node %d: %w", i, err)
		}
		g.NodeElev[i] = elev
	}
	return nil
}

// UpdateEdgeClimbs walks every node's outgoing edges and sets each edge's
// climb to max(0, elev(target) - elev(source)), leaving length untouched.
// Must run after AssignElevations.
func UpdateEdgeClimbs(g *Graph) {
	for u := uint32(0); u < g.NumNodes; u++ {
		start, end := g.EdgesFrom(u)
		elevU := g.NodeElev[u]
		for e := start; e < end; e++ {
			v := g.Head[e]
			diff := g.NodeElev[v] - elevU
			if diff < 0 {
				diff = 0
			}
			g.Climb[e] = uint32(diff)
		}
	}
}
