// Package ui is the raylib window frontend.
package ui

import (
	"log/slog"
	"unicode/utf8"

	"firesnake/game"
	"firesnake/game/manager"
	"firesnake/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const maxNameLen = 16

// keyNames translates raylib keys to the names input.FromKey understands
var keyNames = map[int32]string{
	rl.KeyUp:     "ArrowUp",
	rl.KeyDown:   "ArrowDown",
	rl.KeyLeft:   "ArrowLeft",
	rl.KeyRight:  "ArrowRight",
	rl.KeyW:      "w",
	rl.KeyA:      "a",
	rl.KeyS:      "s",
	rl.KeyD:      "d",
	rl.KeyP:      "p",
	rl.KeySpace:  "Space",
	rl.KeyEnter:  "Enter",
	rl.KeyEscape: "Escape",
	rl.KeyQ:      "q",
}

type WindowOptions struct {
	Title          string
	Width, Height  int32
	SwipeThreshold float64
	DefaultName    string
	Stats          *manager.StatsManager
	Logger         *slog.Logger
}

// Window runs the controller inside a raylib window. All raylib calls happen
// on the goroutine that calls Run.
type Window struct {
	ctrl     *game.Controller
	opts     WindowOptions
	log      *slog.Logger
	renderer *Renderer
	swipe    *input.Swipe

	nameBuf    string
	nameActive bool
}

func NewWindow(ctrl *game.Controller, opts WindowOptions) *Window {
	if opts.Title == "" {
		opts.Title = "Snake"
	}
	if opts.Width == 0 || opts.Height == 0 {
		opts.Width, opts.Height = 1120, 800
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Window{
		ctrl:  ctrl,
		opts:  opts,
		log:   log,
		swipe: input.NewSwipe(opts.SwipeThreshold),
	}
}

// Run blocks until the window is closed or the player quits
func (w *Window) Run() {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(w.opts.Width, w.opts.Height, w.opts.Title)
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()

	// Escape is a game key, not a close request
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)

	w.renderer = NewRenderer()
	w.log.Info("window opened", "width", w.opts.Width, "height", w.opts.Height)

	for !rl.WindowShouldClose() {
		view := w.ctrl.View()
		if w.handleInput(view) {
			break
		}

		snap, ok := w.ctrl.Latest()
		w.renderer.Draw(Frame{
			Snapshot: snap,
			HasBoard: ok,
			View:     w.ctrl.View(),
			Scores:   w.scores(),
			NameBuf:  w.nameBuf,
		})
	}
	w.log.Info("window closed")
}

// handleInput reports true when the player asked to quit
func (w *Window) handleInput(view game.View) bool {
	if view.AwaitingName {
		w.editName()
		return false
	}
	w.nameActive = false

	for key, name := range keyNames {
		if !rl.IsKeyPressed(key) {
			continue
		}
		in := input.FromKey(name)
		if in == input.IntentQuit {
			return true
		}
		w.ctrl.HandleIntent(in)
	}

	w.handleSwipe(view)
	return false
}

func (w *Window) handleSwipe(view game.View) {
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		pos := rl.GetMousePosition()
		w.swipe.Begin(float64(pos.X), float64(pos.Y))
		return
	}
	if !rl.IsMouseButtonReleased(rl.MouseButtonLeft) || !w.swipe.Active() {
		return
	}

	pos := rl.GetMousePosition()
	in := w.swipe.End(float64(pos.X), float64(pos.Y))
	if in == input.IntentNone && view.State != game.StatePlaying && view.State != game.StatePaused {
		// a tap starts a session
		in = input.IntentStart
	}
	w.ctrl.HandleIntent(in)
}

// editName collects typed characters for a new record
func (w *Window) editName() {
	if !w.nameActive {
		w.nameActive = true
		w.nameBuf = w.opts.DefaultName
	}

	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		if utf8.RuneCountInString(w.nameBuf) < maxNameLen && r >= 32 {
			w.nameBuf += string(rune(r))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && w.nameBuf != "" {
		_, size := utf8.DecodeLastRuneInString(w.nameBuf)
		w.nameBuf = w.nameBuf[:len(w.nameBuf)-size]
	}

	switch {
	case rl.IsKeyPressed(rl.KeyEnter):
		w.ctrl.SubmitName(w.nameBuf)
	case rl.IsKeyPressed(rl.KeyEscape):
		w.ctrl.SubmitName("")
	}
}

func (w *Window) scores() []int {
	if w.opts.Stats == nil {
		return nil
	}
	sessions := w.opts.Stats.GetSessions()
	out := make([]int, len(sessions))
	for i, s := range sessions {
		out[i] = s.Score
	}
	return out
}
