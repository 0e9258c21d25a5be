package cost

import "testing"

func TestComputeScenario1(t *testing.T) {
	// length=1500, climb=400.
	cases := []struct {
		w    float64
		want uint64
	}{
		{1.0, 1500},
		{0.0, 400},
		{0.5, 950},
	}
	for _, c := range cases {
		got := Compute(1500, 400, c.w)
		if got != c.want {
			t.Errorf("Compute(1500,400,%v) = %d, want %d", c.w, got, c.want)
		}
	}
}

func TestComputeNonNegative(t *testing.T) {
	for w := 0.0; w <= 1.0; w += 0.1 {
		if got := Compute(0, 0, w); got != 0 {
			t.Errorf("Compute(0,0,%v) = %d, want 0", w, got)
		}
	}
}

func TestComputeRoundsHalfAwayFromZero(t *testing.T) {
	// w=0.5, length=3, climb=0 -> 1.5 -> rounds to 2.
	got := Compute(3, 0, 0.5)
	if got != 2 {
		t.Errorf("Compute(3,0,0.5) = %d, want 2", got)
	}
}
