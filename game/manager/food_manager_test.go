package manager

import (
	"errors"
	"testing"

	"firesnake/game/types"
)

func fill(grid types.Grid, except ...types.Point) map[types.Point]struct{} {
	skip := make(map[types.Point]bool, len(except))
	for _, p := range except {
		skip[p] = true
	}
	occupied := make(map[types.Point]struct{})
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if !skip[p] {
				occupied[p] = struct{}{}
			}
		}
	}
	return occupied
}

func TestPlaceAvoidsOccupied(t *testing.T) {
	grid := types.NewSquareGrid(20)
	fm := NewFoodManager(grid, 7)
	occupied := map[types.Point]struct{}{
		{10, 10}: {}, {11, 10}: {}, {12, 10}: {},
	}

	for i := 0; i < 500; i++ {
		p, err := fm.Place(occupied)
		if err != nil {
			t.Fatalf("Place returned error: %v", err)
		}
		if _, taken := occupied[p]; taken {
			t.Fatalf("Expected free cell, got occupied %v", p)
		}
		if !grid.Contains(p) {
			t.Fatalf("Expected cell inside grid, got %v", p)
		}
	}
}

func TestPlaceFindsLastFreeCell(t *testing.T) {
	grid := types.NewSquareGrid(6)
	last := types.Point{X: 4, Y: 2}
	fm := NewFoodManager(grid, 99)

	p, err := fm.Place(fill(grid, last))
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if p != last {
		t.Errorf("Expected the only free cell %v, got %v", last, p)
	}
}

func TestPlaceFullBoard(t *testing.T) {
	grid := types.NewSquareGrid(4)
	fm := NewFoodManager(grid, 1)

	_, err := fm.Place(fill(grid))
	if !errors.Is(err, ErrBoardFull) {
		t.Errorf("Expected ErrBoardFull, got %v", err)
	}
}

type constRand struct{ v int }

func (c constRand) Intn(n int) int { return c.v % n }

func TestPlaceFallsBackAfterRejections(t *testing.T) {
	grid := types.NewSquareGrid(3)
	// sampler keeps proposing (0,0), which is taken
	fm := NewFoodManagerWithRand(grid, constRand{v: 0})
	occupied := map[types.Point]struct{}{{0, 0}: {}}

	p, err := fm.Place(occupied)
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if p == (types.Point{}) {
		t.Errorf("Expected fallback to a free cell, got %v", p)
	}
}

func TestPlaceIgnoresOffGridOccupants(t *testing.T) {
	grid := types.NewSquareGrid(3)
	fm := NewFoodManagerWithRand(grid, constRand{v: 0})

	// more occupied points than cells, most of them outside the grid
	occupied := map[types.Point]struct{}{{0, 0}: {}}
	for i := 0; i < 10; i++ {
		occupied[types.Point{X: -1, Y: i}] = struct{}{}
	}

	p, err := fm.Place(occupied)
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if p != (types.Point{X: 1, Y: 0}) {
		t.Errorf("Expected the first free cell (1,0), got %v", p)
	}
}
