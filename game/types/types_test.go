package types

import (
	"testing"
	"time"
)

func TestResolveRejectsReversal(t *testing.T) {
	if got := Resolve(Right, Left); got != Right {
		t.Errorf("Expected Right to be kept when Left is requested, got %v", got)
	}
}

func TestResolveNeverReturnsOpposite(t *testing.T) {
	for _, current := range Headings {
		for _, requested := range Headings {
			got := Resolve(current, requested)
			if got == current.Opposite() {
				t.Errorf("Resolve(%v, %v) returned the opposite heading %v", current, requested, got)
			}
			if requested != current.Opposite() && got != requested {
				t.Errorf("Resolve(%v, %v) = %v, want %v", current, requested, got, requested)
			}
			// idempotent
			if again := Resolve(got, requested); again != got {
				t.Errorf("Resolve not idempotent for (%v, %v): %v then %v", current, requested, got, again)
			}
		}
	}
}

func TestResolveIgnoresInvalidHeading(t *testing.T) {
	if got := Resolve(Up, Heading(42)); got != Up {
		t.Errorf("Expected Up for invalid request, got %v", got)
	}
}

func TestVectorsAreUnitSteps(t *testing.T) {
	origin := Point{X: 5, Y: 5}
	for _, h := range Headings {
		next := origin.Add(h.Vector())
		if d := ManhattanDistance(origin, next); d != 1 {
			t.Errorf("Expected unit step for %v, got distance %d", h, d)
		}
		back := next.Add(h.Opposite().Vector())
		if back != origin {
			t.Errorf("Expected opposite of %v to undo the step, got %v", h, back)
		}
	}
}

func TestGridContains(t *testing.T) {
	g := NewSquareGrid(20)
	cases := []struct {
		p    Point
		want bool
	}{
		{Point{0, 0}, true},
		{Point{19, 19}, true},
		{Point{-1, 0}, false},
		{Point{0, 20}, false},
		{Point{20, 5}, false},
	}
	for _, tc := range cases {
		if got := g.Contains(tc.p); got != tc.want {
			t.Errorf("Contains(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
	if c := g.Center(); c != (Point{10, 10}) {
		t.Errorf("Expected center (10,10), got %v", c)
	}
}

func TestNextSpeedFloorsAtMinimum(t *testing.T) {
	r := DefaultRules()
	if got := r.NextSpeed(150 * time.Millisecond); got != 145*time.Millisecond {
		t.Errorf("Expected 145ms, got %v", got)
	}
	if got := r.NextSpeed(52 * time.Millisecond); got != 50*time.Millisecond {
		t.Errorf("Expected floor 50ms, got %v", got)
	}
	if got := r.NextSpeed(50 * time.Millisecond); got != 50*time.Millisecond {
		t.Errorf("Expected 50ms to stay at floor, got %v", got)
	}
}
