package routing

import (
	"context"
	"errors"
	"sync"

	"bikeroute/pkg/cost"
	"bikeroute/pkg/graph"
)

// ErrNoRoute is returned when no path exists between the two requested nodes.
var ErrNoRoute = errors.New("routing: no path between source and target")

// ErrNodeOutOfRange is returned when a node id falls outside the graph.
var ErrNodeOutOfRange = errors.New("routing: node id out of range")

// Engine runs weighted Dijkstra searches over a single graph, reusing
// per-query state across calls via a sync.Pool to keep allocation off the
// hot path under concurrent HTTP request load.
type Engine struct {
	g *graph.Graph

	pathPool   sync.Pool
	noPathPool sync.Pool
}

// NewEngine creates an Engine bound to g. g is not copied and must not be
// mutated while queries are in flight.
func NewEngine(g *graph.Graph) *Engine {
	e := &Engine{g: g}
	e.pathPool.New = func() any { return newSearchState(g.NumNodes, true) }
	e.noPathPool.New = func() any { return newSearchState(g.NumNodes, false) }
	return e
}

// PathResult is the outcome of a one-to-one search.
type PathResult struct {
	CostCm  uint64
	DistCm  uint64
	ClimbCm uint64
	Nodes   []uint32
}

// OneToOne finds the minimum-cost path from source to target under edge
// weight w (cost.Compute), early-terminating the moment target is settled.
// Returns ErrNoRoute if target is unreachable.
func (e *Engine) OneToOne(ctx context.Context, source, target uint32, w float64) (*PathResult, error) {
	if source >= e.g.NumNodes || target >= e.g.NumNodes {
		return nil, ErrNodeOutOfRange
	}

	s := e.pathPool.Get().(*searchState)
	defer func() {
		s.reset()
		e.pathPool.Put(s)
	}()

	if source == target {
		return &PathResult{Nodes: []uint32{source}}, nil
	}

	s.touch(source, 0)
	s.heap.Push(source, 0)

	iterations := 0
	for s.heap.Len() > 0 {
		iterations++
		if iterations&1023 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		item := s.heap.Pop()
		u := item.Node
		if s.settled[u] || item.Cost > s.dist[u] {
			continue // stale entry from a superseded push
		}
		s.settled[u] = true

		if u == target {
			break
		}

		start, end := e.g.EdgesFrom(u)
		for ei := start; ei < end; ei++ {
			v := e.g.Head[ei]
			if s.settled[v] {
				continue
			}
			edgeCost := cost.Compute(e.g.Length[ei], e.g.Climb[ei], w)
			nd := s.dist[u] + edgeCost
			if nd < s.dist[v] {
				s.touch(v, nd)
				s.pred[v] = int32(u)
				s.heap.Push(v, nd)
			}
		}
	}

	if !s.settled[target] {
		return nil, ErrNoRoute
	}

	nodes := reconstructPath(s.pred, source, target)
	distCm, climbCm := e.sumPath(nodes)
	return &PathResult{
		CostCm:  s.dist[target],
		DistCm:  distCm,
		ClimbCm: climbCm,
		Nodes:   nodes,
	}, nil
}

// OneToAll computes the minimum cost from source to every node in the
// graph under weight w, exhausting the queue. Unreached nodes carry
// MaxCost.
func (e *Engine) OneToAll(ctx context.Context, source uint32, w float64) ([]uint64, error) {
	if source >= e.g.NumNodes {
		return nil, ErrNodeOutOfRange
	}

	s := e.noPathPool.Get().(*searchState)
	defer func() {
		s.reset()
		e.noPathPool.Put(s)
	}()

	s.touch(source, 0)
	s.heap.Push(source, 0)

	iterations := 0
	for s.heap.Len() > 0 {
		iterations++
		if iterations&1023 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		item := s.heap.Pop()
		u := item.Node
		if s.settled[u] || item.Cost > s.dist[u] {
			continue
		}
		s.settled[u] = true

		start, end := e.g.EdgesFrom(u)
		for ei := start; ei < end; ei++ {
			v := e.g.Head[ei]
			if s.settled[v] {
				continue
			}
			edgeCost := cost.Compute(e.g.Length[ei], e.g.Climb[ei], w)
			nd := s.dist[u] + edgeCost
			if nd < s.dist[v] {
				s.touch(v, nd)
				s.heap.Push(v, nd)
			}
		}
	}

	result := make([]uint64, e.g.NumNodes)
	copy(result, s.dist)
	return result, nil
}

// reconstructPath walks pred backward from target to source and reverses
// the result into source-to-target order.
func reconstructPath(pred []int32, source, target uint32) []uint32 {
	path := make([]uint32, 0, 16)
	node := int32(target)
	for node != int32(source) {
		path = append(path, uint32(node))
		node = pred[node]
		if node == noPred {
			break
		}
	}
	path = append(path, source)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// sumPath re-derives total distance and climb by walking the consecutive
// edges of nodes, rather than deriving them from the blended cost.
func (e *Engine) sumPath(nodes []uint32) (distCm, climbCm uint64) {
	for i := 0; i < len(nodes)-1; i++ {
		u, v := nodes[i], nodes[i+1]
		start, end := e.g.EdgesFrom(u)
		for ei := start; ei < end; ei++ {
			if e.g.Head[ei] == v {
				distCm += uint64(e.g.Length[ei])
				climbCm += uint64(e.g.Climb[ei])
				break
			}
		}
	}
	return distCm, climbCm
}
