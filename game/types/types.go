package types

import "time"

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// NewSquareGrid returns an N×N grid
func NewSquareGrid(n int) Grid {
	return Grid{Width: n, Height: n}
}

// Contains reports whether p lies inside the grid
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells returns the number of addressable cells
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Center returns the interior starting cell
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

type Point struct {
	X, Y int
}

// Add returns p moved by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Game constants
const (
	DefaultGridSize       = 20
	DefaultInitialSpeed   = 150 * time.Millisecond
	DefaultMinSpeed       = 50 * time.Millisecond
	DefaultSpeedStep      = 5 * time.Millisecond
	DefaultScoreIncrement = 10
)

// Rules holds the tunables of a session
type Rules struct {
	Grid           Grid
	InitialSpeed   time.Duration
	MinSpeed       time.Duration
	SpeedStep      time.Duration
	ScoreIncrement int
}

// DefaultRules returns the classic 20×20, 150ms → 50ms ruleset
func DefaultRules() Rules {
	return Rules{
		Grid:           NewSquareGrid(DefaultGridSize),
		InitialSpeed:   DefaultInitialSpeed,
		MinSpeed:       DefaultMinSpeed,
		SpeedStep:      DefaultSpeedStep,
		ScoreIncrement: DefaultScoreIncrement,
	}
}

// NextSpeed returns the tick interval after one more food, floored at MinSpeed
func (r Rules) NextSpeed(current time.Duration) time.Duration {
	next := current - r.SpeedStep
	if next < r.MinSpeed {
		return r.MinSpeed
	}
	return next
}

// Collision classifies a candidate head position
type Collision int

const (
	Safe Collision = iota
	Wall
	Self
	Food
)

func (c Collision) String() string {
	switch c {
	case Wall:
		return "wall"
	case Self:
		return "self"
	case Food:
		return "food"
	default:
		return "safe"
	}
}

// Fatal reports whether the collision ends the session
func (c Collision) Fatal() bool {
	return c == Wall || c == Self
}

// Result is the session-level effect of a tick
type Result int

const (
	ResultContinue Result = iota
	ResultCrashed
	ResultBoardFull
)

func (r Result) String() string {
	switch r {
	case ResultCrashed:
		return "crashed"
	case ResultBoardFull:
		return "board full"
	default:
		return "continue"
	}
}

// Terminal reports whether the session is over
func (r Result) Terminal() bool {
	return r != ResultContinue
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ManhattanDistance returns |dx| + |dy|
func ManhattanDistance(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}
