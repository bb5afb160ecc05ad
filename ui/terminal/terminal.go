// Package terminal is the tcell frontend: the board drawn with two columns per
// cell, keyboard control and mouse-drag swipes.
package terminal

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"firesnake/game"
	"firesnake/game/types"
	"firesnake/input"

	"github.com/gdamore/tcell/v2"
)

const (
	// terminal cells are roughly 8x16 pixels; drags are measured in pixels
	cellPixelsX = 8
	cellPixelsY = 16

	boardX = 1
	boardY = 1

	maxNameLen = 16
)

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSnake  = tcell.StyleDefault.Foreground(tcell.ColorDarkOrange)
	styleHead   = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	styleFood   = tcell.StyleDefault.Foreground(tcell.ColorGold)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleGold   = tcell.StyleDefault.Foreground(tcell.ColorGold)
)

type Options struct {
	SwipeThreshold float64
	DefaultName    string
	Logger         *slog.Logger
}

// Frontend owns the screen. Only the Run goroutine draws or reads input;
// the controller reaches it through OnFrame and OnChange.
type Frontend struct {
	screen tcell.Screen
	opts   Options
	log    *slog.Logger
	swipe  *input.Swipe
	redraw chan struct{}

	nameBuf    string
	nameActive bool
}

func New(screen tcell.Screen, opts Options) *Frontend {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Frontend{
		screen: screen,
		opts:   opts,
		log:    log,
		swipe:  input.NewSwipe(opts.SwipeThreshold),
		redraw: make(chan struct{}, 1),
	}
}

// OnFrame requests a redraw; safe from any goroutine and never blocks
func (f *Frontend) OnFrame(game.Snapshot) {
	f.requestRedraw()
}

// OnChange requests a redraw after a lifecycle change
func (f *Frontend) OnChange(game.View) {
	f.requestRedraw()
}

func (f *Frontend) requestRedraw() {
	select {
	case f.redraw <- struct{}{}:
	default:
	}
}

// Run blocks until the player quits. The screen must already be initialized;
// the caller finalizes it.
func (f *Frontend) Run(ctrl *game.Controller) {
	f.screen.EnableMouse()
	f.screen.HideCursor()

	quit := make(chan struct{})
	defer close(quit)

	events := make(chan tcell.Event, 64)
	f.Go(func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	})

	f.draw(ctrl)
	for {
		select {
		case ev := <-events:
			if !f.handleEvent(ctrl, ev) {
				return
			}
			f.draw(ctrl)
		case <-f.redraw:
			f.draw(ctrl)
		}
	}
}

// Go runs fn on a new goroutine; a panic restores the terminal before it propagates
func (f *Frontend) Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				f.screen.Fini()
				f.log.Error("frontend goroutine crashed", "panic", r)
				panic(r)
			}
		}()
		fn()
	}()
}

// handleEvent returns false when the player quits
func (f *Frontend) handleEvent(ctrl *game.Controller, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		view := ctrl.View()
		if view.AwaitingName {
			f.editName(ctrl, ev)
			return true
		}
		f.nameActive = false

		in := input.FromKey(keyName(ev))
		if in == input.IntentQuit {
			return false
		}
		ctrl.HandleIntent(in)

	case *tcell.EventMouse:
		f.handleMouse(ctrl, ev)

	case *tcell.EventResize:
		f.screen.Sync()
	}
	return true
}

// keyName maps a tcell key to the names input.FromKey understands
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return "Escape"
	case tcell.KeyRune:
		return string(ev.Rune())
	default:
		return ""
	}
}

func (f *Frontend) handleMouse(ctrl *game.Controller, ev *tcell.EventMouse) {
	x, y := ev.Position()
	px, py := float64(x*cellPixelsX), float64(y*cellPixelsY)

	if ev.Buttons()&tcell.Button1 != 0 {
		if !f.swipe.Active() {
			f.swipe.Begin(px, py)
		}
		return
	}
	if !f.swipe.Active() {
		return
	}

	in := f.swipe.End(px, py)
	if state := ctrl.View().State; in == input.IntentNone && state != game.StatePlaying && state != game.StatePaused {
		in = input.IntentStart
	}
	ctrl.HandleIntent(in)
}

func (f *Frontend) editName(ctrl *game.Controller, ev *tcell.EventKey) {
	if !f.nameActive {
		f.nameActive = true
		f.nameBuf = f.opts.DefaultName
	}

	switch ev.Key() {
	case tcell.KeyEnter:
		ctrl.SubmitName(f.nameBuf)
	case tcell.KeyEscape:
		ctrl.SubmitName("")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if f.nameBuf != "" {
			_, size := utf8.DecodeLastRuneInString(f.nameBuf)
			f.nameBuf = f.nameBuf[:len(f.nameBuf)-size]
		}
	case tcell.KeyRune:
		if utf8.RuneCountInString(f.nameBuf) < maxNameLen {
			f.nameBuf += string(ev.Rune())
		}
	}
}

func (f *Frontend) draw(ctrl *game.Controller) {
	snap, ok := ctrl.Latest()
	f.render(ctrl.View(), snap, ok)
}

func (f *Frontend) render(view game.View, snap game.Snapshot, hasBoard bool) {
	f.screen.Clear()

	grid := types.NewSquareGrid(types.DefaultGridSize)
	if hasBoard {
		grid = snap.Grid
	}
	f.drawBorder(grid)

	if hasBoard {
		if snap.HasFood {
			f.setCell(snap.Food, '●', styleFood)
		}
		for i := len(snap.Snake) - 1; i >= 0; i-- {
			style := styleSnake
			if i == 0 {
				style = styleHead
			}
			f.setCell(snap.Snake[i], '█', style)
		}
	}

	panelX := boardX + grid.Width*2 + 3
	row := boardY
	f.text(panelX, row, fmt.Sprintf("Score %d", view.Score), styleText)
	row++
	best := fmt.Sprintf("Best  %d", view.HighScore.Score)
	if view.HighScore.PlayerName != "" {
		best += " (" + view.HighScore.PlayerName + ")"
	}
	f.text(panelX, row, best, styleGold)
	row++
	f.text(panelX, row, fmt.Sprintf("Avg   %.1f", view.AverageScore), styleText)
	row += 2

	for _, line := range statusLines(view, f.nameBuf) {
		f.text(panelX, row, line, styleText)
		row++
	}

	f.screen.Show()
}

func statusLines(view game.View, nameBuf string) []string {
	switch view.State {
	case game.StateStart:
		return []string{"Enter to start", "arrows/wasd to steer", "p or space to pause", "q to quit"}
	case game.StatePaused:
		return []string{"Paused", "p or space to resume"}
	case game.StateGameOver:
		title := "Game over"
		if view.Result == types.ResultBoardFull {
			title = "Board cleared!"
		}
		lines := []string{title}
		if view.AwaitingName {
			return append(lines, "New record!", "Name: "+nameBuf+"_", "Enter to save")
		}
		return append(lines, "Enter to play again", "q to quit")
	default:
		return nil
	}
}

func (f *Frontend) drawBorder(grid types.Grid) {
	right := boardX + grid.Width*2
	bottom := boardY + grid.Height
	for x := boardX - 1; x <= right; x++ {
		f.screen.SetContent(x, boardY-1, '─', nil, styleBorder)
		f.screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := boardY - 1; y <= bottom; y++ {
		f.screen.SetContent(boardX-1, y, '│', nil, styleBorder)
		f.screen.SetContent(right, y, '│', nil, styleBorder)
	}
	f.screen.SetContent(boardX-1, boardY-1, '┌', nil, styleBorder)
	f.screen.SetContent(right, boardY-1, '┐', nil, styleBorder)
	f.screen.SetContent(boardX-1, bottom, '└', nil, styleBorder)
	f.screen.SetContent(right, bottom, '┘', nil, styleBorder)
}

// setCell fills both columns of a grid cell
func (f *Frontend) setCell(p types.Point, r rune, style tcell.Style) {
	x, y := cellOrigin(p)
	f.screen.SetContent(x, y, r, nil, style)
	f.screen.SetContent(x+1, y, r, nil, style)
}

func cellOrigin(p types.Point) (int, int) {
	return boardX + p.X*2, boardY + p.Y
}

func (f *Frontend) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		f.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
