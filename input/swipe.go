package input

import "math"

// DefaultSwipeThreshold is the minimum drag distance in pixels
const DefaultSwipeThreshold = 30.0

// ClassifySwipe picks a direction from the dominant axis of a drag.
// Drags shorter than threshold on both axes are ignored.
func ClassifySwipe(dx, dy, threshold float64) Intent {
	adx, ady := math.Abs(dx), math.Abs(dy)
	if adx < threshold && ady < threshold {
		return IntentNone
	}

	if adx > ady {
		if dx > 0 {
			return IntentRight
		}
		return IntentLeft
	}
	if dy > 0 {
		return IntentDown
	}
	return IntentUp
}

// Swipe tracks one drag gesture at a time
type Swipe struct {
	threshold      float64
	startX, startY float64
	active         bool
}

func NewSwipe(threshold float64) *Swipe {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return &Swipe{threshold: threshold}
}

// Begin records the start of a drag
func (s *Swipe) Begin(x, y float64) {
	s.startX, s.startY = x, y
	s.active = true
}

// Active reports whether a drag is in progress
func (s *Swipe) Active() bool {
	return s.active
}

// End finishes the drag and classifies it
func (s *Swipe) End(x, y float64) Intent {
	if !s.active {
		return IntentNone
	}
	s.active = false
	return ClassifySwipe(x-s.startX, y-s.startY, s.threshold)
}

// Cancel drops an in-progress drag
func (s *Swipe) Cancel() {
	s.active = false
}
