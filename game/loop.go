package game

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"firesnake/game/types"
)

// Pilot steers the snake instead of (or alongside) a human
type Pilot interface {
	// Steer is asked before every tick; ok=false leaves the input cell untouched
	Steer(s Snapshot) (h types.Heading, ok bool)
	// Observe receives the result of the tick and the state it produced
	Observe(o Outcome, next Snapshot)
}

// LoopOptions wires the loop's collaborators; every field is optional
type LoopOptions struct {
	// Frame receives every published snapshot on the loop goroutine
	Frame func(Snapshot)
	// OnTick runs after every non-terminal tick
	OnTick func(Outcome)
	// OnEnd runs exactly once after a terminal tick, after the loop has exited
	OnEnd  func(Outcome)
	Pilot  Pilot
	Logger *slog.Logger
}

// Loop drives a Game on a single re-armed timer. The loop goroutine is the only
// writer of the Game; everything else reads published snapshots.
type Loop struct {
	game *Game
	cell *InputCell
	opts LoopOptions
	log  *slog.Logger

	paused  atomic.Bool
	running atomic.Bool
	latest  atomic.Pointer[Snapshot]
	ended   atomic.Pointer[Outcome]
	ticks   atomic.Uint64

	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewLoop(g *Game, cell *InputCell, opts LoopOptions) *Loop {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	cell.reset(g.Heading())

	l := &Loop{
		game:   g,
		cell:   cell,
		opts:   opts,
		log:    log,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	snap := g.Snapshot()
	l.latest.Store(&snap)
	return l
}

// Start launches the loop goroutine; later calls are no-ops
func (l *Loop) Start(ctx context.Context) {
	if l.running.CompareAndSwap(false, true) {
		go l.run(ctx)
	}
}

// Stop cancels the pending tick and waits for the loop goroutine to exit.
// Safe to call more than once, and from OnEnd.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
	})
	if l.running.Load() {
		<-l.done
	}
}

// Done is closed once the loop goroutine has exited
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// SetPaused suspends ticking without disarming the timer or clearing the pending heading
func (l *Loop) SetPaused(paused bool) {
	l.paused.Store(paused)
}

func (l *Loop) Paused() bool {
	return l.paused.Load()
}

// Latest returns the most recently published snapshot
func (l *Loop) Latest() Snapshot {
	return *l.latest.Load()
}

// Ended returns the terminal outcome once the loop has produced one
func (l *Loop) Ended() (Outcome, bool) {
	if o := l.ended.Load(); o != nil {
		return *o, true
	}
	return Outcome{}, false
}

// Ticks returns the number of executed (non-paused) ticks
func (l *Loop) Ticks() uint64 {
	return l.ticks.Load()
}

func (l *Loop) run(ctx context.Context) {
	var end *Outcome
	defer func() {
		close(l.done)
		if end != nil && l.opts.OnEnd != nil {
			l.opts.OnEnd(*end)
		}
	}()

	timer := time.NewTimer(l.game.Speed())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stopCh:
			return
		case <-timer.C:
		}

		if !l.paused.Load() {
			out := l.step()
			if out.Result.Terminal() {
				end = &out
				l.ended.Store(end)
				return
			}
		}

		// re-arm with the speed the last tick produced
		timer.Reset(l.game.Speed())
	}
}

func (l *Loop) step() Outcome {
	if l.opts.Pilot != nil {
		if h, ok := l.opts.Pilot.Steer(l.Latest()); ok {
			l.cell.Request(h)
		}
	}

	out := l.game.Tick(l.cell.take(l.game.Heading()))
	l.ticks.Add(1)

	snap := l.game.Snapshot()
	l.latest.Store(&snap)
	if l.opts.Frame != nil {
		l.opts.Frame(snap)
	}
	if l.opts.Pilot != nil {
		l.opts.Pilot.Observe(out, snap)
	}

	if out.Result.Terminal() {
		l.log.Debug("terminal tick", "result", out.Result, "collision", out.Collision, "score", out.Score)
	} else if l.opts.OnTick != nil {
		l.opts.OnTick(out)
	}
	return out
}
