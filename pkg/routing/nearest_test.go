package routing

import (
	"strings"
	"testing"

	"bikeroute/pkg/graph"
)

func TestNearestPicksClosestNode(t *testing.T) {
	const fmi = `3
0
0 0 48.0 9.0 0
1 0 48.01 9.0 0
2 0 49.0 9.0 0
`
	g, err := graph.Load(strings.NewReader(fmi))
	if err != nil {
		t.Fatalf("graph.Load: %v", err)
	}
	idx := NewNearestIndex(g)
	if got := idx.Nearest(48.005, 9.0); got != 1 {
		t.Errorf("Nearest = %d, want 1", got)
	}
}

func TestNearestTieBreaksToLowerID(t *testing.T) {
	const fmi = `2
0
0 0 48.0 9.0 0
1 0 48.0 9.0 0
`
	g, err := graph.Load(strings.NewReader(fmi))
	if err != nil {
		t.Fatalf("graph.Load: %v", err)
	}
	idx := NewNearestIndex(g)
	if got := idx.Nearest(48.0, 9.0); got != 0 {
		t.Errorf("Nearest on tie = %d, want 0 (first id wins)", got)
	}
}
