package ui

import "firesnake/game/types"

const (
	borderPadding = 10
	minCellSize   = 4
)

// Layout places the board and the stats panel inside the window
type Layout struct {
	CellSize   int32
	OffsetX    int32
	OffsetY    int32
	GridWidth  int32
	GridHeight int32
	PanelX     int32
	PanelWidth int32
}

// ComputeLayout fits square cells into the window left of a panel one seventh wide
func ComputeLayout(screenWidth, screenHeight int32, grid types.Grid) Layout {
	panel := screenWidth / 7
	gameWidth := screenWidth - panel

	availW := gameWidth - borderPadding*2
	availH := screenHeight - borderPadding*2
	cell := min(availW/int32(grid.Width), availH/int32(grid.Height))
	if cell < minCellSize {
		cell = minCellSize
	}

	l := Layout{
		CellSize:   cell,
		GridWidth:  cell * int32(grid.Width),
		GridHeight: cell * int32(grid.Height),
		PanelX:     gameWidth,
		PanelWidth: panel,
	}
	l.OffsetX = (gameWidth - l.GridWidth) / 2
	l.OffsetY = (screenHeight - l.GridHeight) / 2
	return l
}

// Cell returns the top-left pixel of a grid cell
func (l Layout) Cell(p types.Point) (int32, int32) {
	return l.OffsetX + int32(p.X)*l.CellSize, l.OffsetY + int32(p.Y)*l.CellSize
}
