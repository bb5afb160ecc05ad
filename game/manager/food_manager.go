package manager

import (
	"errors"

	"firesnake/game/types"

	"golang.org/x/exp/rand"
)

// ErrBoardFull is returned when every cell of the grid is occupied
var ErrBoardFull = errors.New("no free cell left for food")

// attemptsPerCell bounds rejection sampling before falling back to a free-cell scan
const attemptsPerCell = 4

// Intner is the slice of *rand.Rand the placement needs
type Intner interface {
	Intn(n int) int
}

type FoodManager struct {
	grid        types.Grid
	rng         Intner
	maxAttempts int
}

// NewFoodManager creates a manager drawing from a seeded x/exp/rand source
func NewFoodManager(grid types.Grid, seed uint64) *FoodManager {
	return NewFoodManagerWithRand(grid, rand.New(rand.NewSource(seed)))
}

func NewFoodManagerWithRand(grid types.Grid, rng Intner) *FoodManager {
	return &FoodManager{
		grid:        grid,
		rng:         rng,
		maxAttempts: attemptsPerCell * grid.Cells(),
	}
}

// Place returns a uniformly random cell not in occupied, or ErrBoardFull
func (fm *FoodManager) Place(occupied map[types.Point]struct{}) (types.Point, error) {
	if len(occupied) >= fm.grid.Cells() && fm.countFree(occupied) == 0 {
		return types.Point{}, ErrBoardFull
	}

	for i := 0; i < fm.maxAttempts; i++ {
		food := types.Point{
			X: fm.rng.Intn(fm.grid.Width),
			Y: fm.rng.Intn(fm.grid.Height),
		}
		if _, taken := occupied[food]; !taken {
			return food, nil
		}
	}

	// Crowded board: pick uniformly among the remaining free cells
	free := fm.freeCells(occupied)
	if len(free) == 0 {
		return types.Point{}, ErrBoardFull
	}
	return free[fm.rng.Intn(len(free))], nil
}

func (fm *FoodManager) freeCells(occupied map[types.Point]struct{}) []types.Point {
	free := make([]types.Point, 0, max(0, fm.countFree(occupied)))
	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if _, taken := occupied[p]; !taken {
				free = append(free, p)
			}
		}
	}
	return free
}

func (fm *FoodManager) countFree(occupied map[types.Point]struct{}) int {
	n := 0
	for p := range occupied {
		if fm.grid.Contains(p) {
			n++
		}
	}
	return fm.grid.Cells() - n
}
