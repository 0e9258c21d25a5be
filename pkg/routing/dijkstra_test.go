package routing

import "testing"

func TestMinHeapOrdersByCost(t *testing.T) {
	var h MinHeap
	h.Push(3, 30)
	h.Push(1, 10)
	h.Push(2, 20)

	want := []uint32{1, 2, 3}
	for _, w := range want {
		item := h.Pop()
		if item.Node != w {
			t.Fatalf("Pop() = node %d, want %d", item.Node, w)
		}
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after draining", h.Len())
	}
}

func TestMinHeapPeekCostOnEmpty(t *testing.T) {
	var h MinHeap
	if got := h.PeekCost(); got != MaxCost {
		t.Errorf("PeekCost() on empty heap = %d, want MaxCost", got)
	}
}

func TestMinHeapResetClearsItems(t *testing.T) {
	var h MinHeap
	h.Push(1, 5)
	h.Push(2, 6)
	h.Reset()
	if h.Len() != 0 {
		t.Errorf("Len() after Reset() = %d, want 0", h.Len())
	}
}

func TestSearchStateResetOnlyTouchedEntries(t *testing.T) {
	s := newSearchState(10, true)
	s.touch(3, 100)
	s.pred[3] = 2
	s.settled[3] = true

	s.reset()

	if s.dist[3] != MaxCost {
		t.Errorf("dist[3] after reset = %d, want MaxCost", s.dist[3])
	}
	if s.settled[3] {
		t.Error("settled[3] after reset = true, want false")
	}
	if s.pred[3] != noPred {
		t.Errorf("pred[3] after reset = %d, want noPred", s.pred[3])
	}
	if len(s.touched) != 0 {
		t.Errorf("touched after reset has %d entries, want 0", len(s.touched))
	}
}
