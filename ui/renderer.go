package ui

import (
	"fmt"

	"firesnake/game"
	"firesnake/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const maxScores = 100 // sessions shown in the history graph

var (
	colorBoard = rl.NewColor(45, 8, 8, 255)
	colorSnake = rl.NewColor(255, 140, 0, 255)
	colorHead  = rl.NewColor(255, 69, 0, 255)
	colorFood  = rl.NewColor(255, 215, 0, 255)
	colorPanel = rl.NewColor(30, 12, 10, 255)
)

// Frame is everything drawn in one window frame
type Frame struct {
	Snapshot game.Snapshot
	HasBoard bool
	View     game.View
	Scores   []int
	NameBuf  string
}

type Renderer struct {
	screenWidth  int32
	screenHeight int32
	layout       Layout
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.UpdateDimensions(types.NewSquareGrid(types.DefaultGridSize))
	return r
}

func (r *Renderer) UpdateDimensions(grid types.Grid) {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())
	r.layout = ComputeLayout(r.screenWidth, r.screenHeight, grid)
}

func (r *Renderer) Draw(f Frame) {
	grid := f.Snapshot.Grid
	if !f.HasBoard {
		grid = types.NewSquareGrid(types.DefaultGridSize)
	}
	r.UpdateDimensions(grid)

	rl.BeginDrawing()
	rl.ClearBackground(colorPanel)

	fontSize := min(r.screenHeight/30, r.layout.PanelWidth/9)
	lineHeight := fontSize + fontSize/2

	l := r.layout
	rl.DrawRectangle(l.OffsetX-1, l.OffsetY-1, l.GridWidth+2, l.GridHeight+2, rl.DarkGray)
	rl.DrawRectangle(l.OffsetX, l.OffsetY, l.GridWidth, l.GridHeight, colorBoard)

	if f.HasBoard {
		r.drawBoard(f.Snapshot)
	}
	r.drawStatsPanel(f, fontSize, lineHeight)
	r.drawOverlay(f, fontSize)

	rl.EndDrawing()
}

func (r *Renderer) drawBoard(s game.Snapshot) {
	l := r.layout

	if s.HasFood {
		x, y := l.Cell(s.Food)
		rl.DrawRectangle(x+1, y+1, l.CellSize-2, l.CellSize-2, colorFood)
	}

	// tail first so the head stays on top
	for i := len(s.Snake) - 1; i >= 0; i-- {
		x, y := l.Cell(s.Snake[i])
		color := colorSnake
		if i == 0 {
			color = colorHead
		}
		rl.DrawRectangle(x+1, y+1, l.CellSize-2, l.CellSize-2, color)
	}

	if len(s.Snake) > 0 {
		r.drawHeading(s.Head(), s.Heading)
	}
}

// drawHeading puts a small triangle on the head pointing where the snake goes
func (r *Renderer) drawHeading(head types.Point, h types.Heading) {
	x, y := r.layout.Cell(head)
	fx, fy, c := float32(x), float32(y), float32(r.layout.CellSize)
	half := c / 2

	var a, b, d rl.Vector2
	switch h {
	case types.Right:
		a, b, d = rl.Vector2{X: fx + c, Y: fy + half}, rl.Vector2{X: fx + half, Y: fy}, rl.Vector2{X: fx + half, Y: fy + c}
	case types.Left:
		a, b, d = rl.Vector2{X: fx, Y: fy + half}, rl.Vector2{X: fx + half, Y: fy + c}, rl.Vector2{X: fx + half, Y: fy}
	case types.Down:
		a, b, d = rl.Vector2{X: fx + half, Y: fy + c}, rl.Vector2{X: fx + c, Y: fy + half}, rl.Vector2{X: fx, Y: fy + half}
	default:
		a, b, d = rl.Vector2{X: fx + half, Y: fy}, rl.Vector2{X: fx, Y: fy + half}, rl.Vector2{X: fx + c, Y: fy + half}
	}
	// raylib wants counter-clockwise vertices
	rl.DrawTriangle(a, b, d, colorBoard)
}

func (r *Renderer) drawStatsPanel(f Frame, fontSize, lineHeight int32) {
	x := r.layout.PanelX + 5
	y := int32(10)

	rl.DrawRectangle(r.layout.PanelX, 0, r.layout.PanelWidth, r.screenHeight, colorPanel)

	rl.DrawText(fmt.Sprintf("Score: %d", f.View.Score), x, y, fontSize, rl.White)
	y += lineHeight
	hs := f.View.HighScore
	rl.DrawText(fmt.Sprintf("Best: %d", hs.Score), x, y, fontSize, rl.Gold)
	y += lineHeight
	if hs.PlayerName != "" {
		rl.DrawText(hs.PlayerName, x+10, y, fontSize, rl.Gold)
		y += lineHeight
	}
	rl.DrawText(fmt.Sprintf("Avg: %.1f", f.View.AverageScore), x, y, fontSize, rl.LightGray)
	y += lineHeight
	if f.HasBoard {
		rl.DrawText(fmt.Sprintf("Speed: %dms", f.Snapshot.Speed.Milliseconds()), x, y, fontSize, rl.LightGray)
		y += lineHeight
		rl.DrawText(fmt.Sprintf("Length: %d", len(f.Snapshot.Snake)), x, y, fontSize, rl.LightGray)
	}

	r.drawHistoryGraph(f.Scores, fontSize)
}

// drawHistoryGraph plots recent session scores at the bottom of the panel
func (r *Renderer) drawHistoryGraph(scores []int, fontSize int32) {
	width := r.layout.PanelWidth - 20
	height := r.screenHeight / 5
	gx := r.layout.PanelX + 10
	gy := r.screenHeight - height - fontSize*2

	rl.DrawRectangleLines(gx, gy, width, height, rl.White)
	rl.DrawText("History", gx, gy-fontSize-5, fontSize, rl.White)

	if len(scores) > maxScores {
		scores = scores[len(scores)-maxScores:]
	}
	if len(scores) < 2 {
		return
	}

	maxScore := 1
	total := 0
	for _, s := range scores {
		maxScore = max(maxScore, s)
		total += s
	}
	px := func(i int) int32 { return gx + int32(float32(width)*float32(i)/float32(maxScores)) }
	py := func(s float32) int32 { return gy + height - int32(float32(height)*s/float32(maxScore)) }

	for i := 1; i < len(scores); i++ {
		rl.DrawLine(px(i-1), py(float32(scores[i-1])), px(i), py(float32(scores[i])), colorSnake)
	}

	// dashed average
	avgY := py(float32(total) / float32(len(scores)))
	for x := gx; x < gx+width; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, rl.Gold)
	}
}

func (r *Renderer) drawOverlay(f Frame, fontSize int32) {
	var lines []string
	switch f.View.State {
	case game.StateStart:
		lines = []string{"SNAKE", "Enter or tap to start", "Arrows/WASD or swipe to steer", "P or Space to pause"}
	case game.StatePaused:
		lines = []string{"Paused", "P or Space to resume"}
	case game.StateGameOver:
		lines = gameOverLines(f.View)
		if f.View.AwaitingName {
			lines = append(lines, "Your name: "+f.NameBuf+"_", "Enter to save")
		} else {
			lines = append(lines, "Enter or tap to play again")
		}
	default:
		return
	}

	l := r.layout
	rl.DrawRectangle(l.OffsetX, l.OffsetY, l.GridWidth, l.GridHeight, rl.Fade(rl.Black, 0.6))

	size := fontSize * 3 / 2
	y := l.OffsetY + (l.GridHeight-int32(len(lines))*(size+10))/2
	for i, line := range lines {
		s := size
		if i > 0 {
			s = fontSize
		}
		w := rl.MeasureText(line, s)
		rl.DrawText(line, l.OffsetX+(l.GridWidth-w)/2, y, s, rl.White)
		y += size + 10
	}
}

func gameOverLines(v game.View) []string {
	title := "Game Over"
	if v.Result == types.ResultBoardFull {
		title = "Board cleared!"
	}
	lines := []string{title, fmt.Sprintf("Score: %d", v.Score)}
	if v.AwaitingName {
		lines = append(lines, "New record!")
	}
	return lines
}
