package types

// Heading is the direction of travel
type Heading int

const (
	Up Heading = iota
	Down
	Left
	Right
)

// Headings lists every heading in declaration order
var Headings = [...]Heading{Up, Down, Left, Right}

// Vector converts a Heading to a unit step on the grid (Y grows downward)
func (h Heading) Vector() Point {
	switch h {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 1, Y: 0}
	}
}

// Opposite returns the 180° reversal of h
func (h Heading) Opposite() Heading {
	switch h {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Valid reports whether h is one of the four headings
func (h Heading) Valid() bool {
	return h >= Up && h <= Right
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "invalid"
	}
}

// Resolve returns requested unless it reverses current, in which case current is kept
func Resolve(current, requested Heading) Heading {
	if !requested.Valid() || requested == current.Opposite() {
		return current
	}
	return requested
}
