// Package routing implements the weighted shortest-path search (one-to-one
// and one-to-all Dijkstra), the slider-driven Route Service built on top of
// it, and the linear-scan Nearest-Node Index.
package routing

import "math"

// MaxCost is the "infinity" sentinel for an unreached node's tentative
// cost. A concrete-typed min-heap (below) and settled-flag discipline are
// used instead of container/heap + decrease-key: priority-queue entries are
// immutable value types, and a node whose cost improves gets a fresh,
// duplicate entry pushed rather than an existing one mutated in place.
// Stale entries are discarded at pop time by checking the settled flag —
// mutating a heap element in place is a classic way to corrupt the heap
// invariant.
const MaxCost = math.MaxUint64

// PQItem is an immutable priority-queue entry: a node and the tentative
// cost it was pushed with.
type PQItem struct {
	Node uint32
	Cost uint64
}

// MinHeap is a concrete-typed binary min-heap keyed by Cost. Concrete
// typing avoids the interface-boxing overhead container/heap would impose
// at the scale of a 12M-node search.
type MinHeap struct {
	items []PQItem
}

func (h *MinHeap) Len() int { return len(h.items) }

func (h *MinHeap) Push(node uint32, cost uint64) {
	h.items = append(h.items, PQItem{Node: node, Cost: cost})
	h.siftUp(len(h.items) - 1)
}

func (h *MinHeap) Pop() PQItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *MinHeap) PeekCost() uint64 {
	if len(h.items) == 0 {
		return MaxCost
	}
	return h.items[0].Cost
}

func (h *MinHeap) Reset() {
	h.items = h.items[:0]
}

func (h *MinHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].Cost >= h.items[parent].Cost {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *MinHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].Cost < h.items[smallest].Cost {
			smallest = left
		}
		if right < n && h.items[right].Cost < h.items[smallest].Cost {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// noPred marks "no predecessor" in a path-reconstruction run.
const noPred = int32(-1)

// searchState holds the three reusable work arrays a Dijkstra run needs
// (tentative cost, settled flag, optional predecessor), plus a touched-node
// list so reset only clears what the previous run actually wrote, avoiding
// a full O(N) wipe between queries on a 12M-node graph.
type searchState struct {
	dist     []uint64
	settled  []bool
	pred     []int32 // nil when path reconstruction isn't requested
	touched  []uint32
	withPath bool
	heap     MinHeap
}

func newSearchState(n uint32, withPath bool) *searchState {
	s := &searchState{
		dist:     make([]uint64, n),
		settled:  make([]bool, n),
		touched:  make([]uint32, 0, 1024),
		withPath: withPath,
		heap:     MinHeap{items: make([]PQItem, 0, 256)},
	}
	for i := range s.dist {
		s.dist[i] = MaxCost
	}
	if withPath {
		s.pred = make([]int32, n)
		for i := range s.pred {
			s.pred[i] = noPred
		}
	}
	return s
}

// reset clears only the entries touched by the previous run and empties
// the heap, reinitializing the state for reuse.
func (s *searchState) reset() {
	for _, n := range s.touched {
		s.dist[n] = MaxCost
		s.settled[n] = false
		if s.withPath {
			s.pred[n] = noPred
		}
	}
	s.touched = s.touched[:0]
	s.heap.Reset()
}

func (s *searchState) touch(node uint32, d uint64) {
	if s.dist[node] == MaxCost {
		s.touched = append(s.touched, node)
	}
	s.dist[node] = d
}
