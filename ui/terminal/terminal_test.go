package terminal

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"firesnake/game"
	"firesnake/game/manager"
	"firesnake/game/types"
	"firesnake/store"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	return s
}

func newController(rules types.Rules, fe *Frontend) *game.Controller {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewMemory()
	return game.NewController(game.Options{
		Rules:   rules,
		Seed:    7,
		Scores:  manager.NewStateManager(st, log),
		Stats:   manager.NewStatsManager(st, log),
		Frame:   fe.OnFrame,
		Changed: fe.OnChange,
		Logger:  log,
	})
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "ArrowUp"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "ArrowLeft"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "Enter"},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "Escape"},
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), "w"},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), ""},
	}
	for _, tt := range tests {
		if got := keyName(tt.ev); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestRenderBoard(t *testing.T) {
	screen := newSimScreen(t)
	screen.SetSize(80, 30)

	fe := New(screen, Options{})
	snap := game.Snapshot{
		Grid:    types.NewSquareGrid(10),
		Snake:   []types.Point{{X: 3, Y: 2}, {X: 2, Y: 2}},
		Food:    types.Point{X: 7, Y: 5},
		HasFood: true,
		Heading: types.Right,
	}
	fe.render(game.View{State: game.StatePlaying, Score: 30}, snap, true)

	x, y := cellOrigin(snap.Food)
	if r, _, _, _ := screen.GetContent(x, y); r != '●' {
		t.Errorf("Expected food at (%d,%d), got %q", x, y, r)
	}
	x, y = cellOrigin(snap.Head())
	if r, _, style, _ := screen.GetContent(x+1, y); r != '█' || style != styleHead {
		t.Errorf("Expected the head drawn over two columns, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(0, 0); r != '┌' {
		t.Errorf("Expected the border corner, got %q", r)
	}
}

func TestStatusLines(t *testing.T) {
	lines := statusLines(game.View{State: game.StateGameOver, AwaitingName: true}, "Ana")
	if len(lines) != 4 || lines[2] != "Name: Ana_" {
		t.Errorf("Unexpected lines %q", lines)
	}
	if lines := statusLines(game.View{State: game.StatePlaying}, ""); lines != nil {
		t.Errorf("Expected no status while playing, got %q", lines)
	}
}

func TestRunStartsAndQuits(t *testing.T) {
	screen := newSimScreen(t)
	fe := New(screen, Options{})

	rules := types.DefaultRules()
	rules.InitialSpeed = time.Hour
	rules.MinSpeed = time.Hour
	ctrl := newController(rules, fe)
	defer ctrl.Close()

	done := make(chan struct{})
	go func() {
		fe.Run(ctrl)
		close(done)
	}()

	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	waitFor(t, "session start", func() bool { return ctrl.View().State == game.StatePlaying })

	screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	waitFor(t, "pause", func() bool { return ctrl.View().State == game.StatePaused })

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Expected Run to return after quit")
	}
}

func TestNameEntry(t *testing.T) {
	fe := New(newSimScreen(t), Options{DefaultName: "Bo"})

	ev := func(k tcell.Key, r rune) *tcell.EventKey { return tcell.NewEventKey(k, r, tcell.ModNone) }
	rules := types.DefaultRules()
	ctrl := newController(rules, fe)
	defer ctrl.Close()

	// the buffer starts from the default name
	fe.editName(ctrl, ev(tcell.KeyRune, 'b'))
	fe.editName(ctrl, ev(tcell.KeyBackspace2, 0))
	fe.editName(ctrl, ev(tcell.KeyBackspace2, 0))
	fe.editName(ctrl, ev(tcell.KeyRune, 'Z'))
	if fe.nameBuf != "BZ" {
		t.Errorf("Expected BZ, got %q", fe.nameBuf)
	}
}
