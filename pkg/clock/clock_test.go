package clock

import "testing"

func TestNowUsMonotonic(t *testing.T) {
	c := New()
	prev := c.NowUs()
	for i := 0; i < 1_000_000; i++ {
		cur := c.NowUs()
		if cur < prev {
			t.Fatalf("NowUs went backwards: %d -> %d at iteration %d", prev, cur, i)
		}
		prev = cur
	}
}

func TestInstanceSingleton(t *testing.T) {
	a := Instance()
	b := Instance()
	if a != b {
		t.Fatalf("Instance() returned different pointers across calls")
	}
}

func TestMaybeRecalibrateNoopWithinInterval(t *testing.T) {
	c := New()
	before := c.baseMono
	c.MaybeRecalibrate(1_000_000_000_000) // absurdly large interval: never recalibrates
	if c.baseMono != before {
		t.Fatalf("expected base to remain unchanged within the calibration interval")
	}
}
