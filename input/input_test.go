package input

import (
	"testing"

	"firesnake/game/types"
)

func TestFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want Intent
	}{
		{"ArrowUp", IntentUp},
		{"w", IntentUp},
		{"W", IntentUp},
		{"ArrowDown", IntentDown},
		{"S", IntentDown},
		{"ArrowLeft", IntentLeft},
		{"a", IntentLeft},
		{"ArrowRight", IntentRight},
		{"D", IntentRight},
		{"p", IntentPause},
		{"P", IntentPause},
		{" ", IntentPause},
		{"Space", IntentPause},
		{"Enter", IntentStart},
		{"Escape", IntentQuit},
		{"x", IntentNone},
		{"F5", IntentNone},
		{"", IntentNone},
	}
	for _, tt := range tests {
		if got := FromKey(tt.key); got != tt.want {
			t.Errorf("FromKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestIntentHeadingRoundTrip(t *testing.T) {
	for _, h := range types.Headings {
		got, ok := FromHeading(h).Heading()
		if !ok || got != h {
			t.Errorf("Expected %v to round trip, got %v (ok=%v)", h, got, ok)
		}
	}
	if _, ok := IntentPause.Heading(); ok {
		t.Errorf("Expected pause to carry no heading")
	}
}

func TestClassifySwipe(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   Intent
	}{
		{"right", 80, 10, IntentRight},
		{"left", -45, 20, IntentLeft},
		{"down", 5, 60, IntentDown},
		{"up", -10, -31, IntentUp},
		{"too short", 20, -25, IntentNone},
		{"one axis long enough", 30, 0, IntentRight},
		{"diagonal tie goes vertical", 40, -40, IntentUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySwipe(tt.dx, tt.dy, DefaultSwipeThreshold); got != tt.want {
				t.Errorf("ClassifySwipe(%v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestSwipeGesture(t *testing.T) {
	s := NewSwipe(0)
	if got := s.End(100, 100); got != IntentNone {
		t.Errorf("Expected no intent without Begin, got %v", got)
	}

	s.Begin(100, 100)
	if !s.Active() {
		t.Fatalf("Expected active gesture")
	}
	if got := s.End(100, 150); got != IntentDown {
		t.Errorf("Expected down, got %v", got)
	}
	if s.Active() {
		t.Errorf("Expected gesture to end")
	}

	s.Begin(0, 0)
	s.Cancel()
	if got := s.End(100, 0); got != IntentNone {
		t.Errorf("Expected cancelled gesture to be ignored, got %v", got)
	}
}
