package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"firesnake/game/manager"
	"firesnake/game/types"
	"firesnake/input"
)

// Feedback plays cues for game events
type Feedback interface {
	Turn()
	Eat()
	Record()
	GameOver()
}

// NopFeedback is silent
type NopFeedback struct{}

func (NopFeedback) Turn()     {}
func (NopFeedback) Eat()      {}
func (NopFeedback) Record()   {}
func (NopFeedback) GameOver() {}

// Options configures a Controller; Scores and Stats are required
type Options struct {
	Rules    types.Rules
	Seed     uint64 // 0 seeds from the clock
	Scores   *manager.StateManager
	Stats    *manager.StatsManager
	Feedback Feedback
	Pilot    Pilot
	// Frame receives each published snapshot on the loop goroutine.
	// It must not call back into the Controller.
	Frame func(Snapshot)
	// Changed is called with the controller lock held whenever the lifecycle
	// state changes; like Frame it must only hand the View off.
	Changed func(View)
	Logger  *slog.Logger
}

// View is what the presentation chrome needs
type View struct {
	State        State
	SessionID    string
	Score        int
	Result       types.Result
	Collision    types.Collision
	HighScore    manager.HighScore
	AverageScore float64
	AwaitingName bool
}

// Controller runs sessions: it owns the Session, the current Loop and the
// input cell, and applies end-of-session bookkeeping.
type Controller struct {
	mu       sync.Mutex
	opts     Options
	log      *slog.Logger
	feedback Feedback
	session  *Session
	cell     *InputCell
	loop     *Loop
	seq      uint64
	awaiting bool
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewController(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	fb := opts.Feedback
	if fb == nil {
		fb = NopFeedback{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		opts:     opts,
		log:      log,
		feedback: fb,
		session:  NewSession(),
		cell:     NewInputCell(types.Right),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// HandleIntent applies one input intent; unknown or out-of-state intents are ignored
func (c *Controller) HandleIntent(in input.Intent) {
	switch in {
	case input.IntentStart:
		c.Start()
	case input.IntentPause:
		c.TogglePause()
	case input.IntentUp, input.IntentDown, input.IntentLeft, input.IntentRight:
		h, _ := in.Heading()
		c.RequestHeading(h)
	}
}

// RequestHeading writes into the input cell while a session is playing or
// paused; a request made during a pause applies on the first tick after it.
func (c *Controller) RequestHeading(h types.Heading) bool {
	if state := c.session.State(); state != StatePlaying && state != StatePaused {
		return false
	}
	pending, had := c.cell.Pending()
	if !c.cell.Request(h) {
		return false
	}
	if !had || pending != h {
		c.feedback.Turn()
	}
	return true
}

// Start begins a new session from the start or game-over screen
func (c *Controller) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.awaiting {
		c.submitNameLocked("")
	}
	if !c.session.Start() {
		return false
	}

	if c.loop != nil {
		c.loop.Stop()
	}

	seed := c.opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	} else {
		// distinct boards per session while staying reproducible for a fixed seed
		seed += c.seq
	}
	c.seq++

	g := NewGame(c.opts.Rules, manager.NewFoodManager(c.opts.Rules.Grid, seed))
	c.loop = c.newLoopLocked(g)
	c.loop.Start(c.ctx)

	c.log.Info("session started", "session", c.session.ID(), "grid", c.opts.Rules.Grid.Width)
	c.notifyLocked()
	return true
}

func (c *Controller) newLoopLocked(g *Game) *Loop {
	var l *Loop
	l = NewLoop(g, c.cell, LoopOptions{
		Frame: c.opts.Frame,
		Pilot: c.opts.Pilot,
		OnTick: func(o Outcome) {
			if o.Ate() {
				c.feedback.Eat()
			}
		},
		OnEnd: func(o Outcome) {
			c.finish(l, o)
		},
		Logger: c.log,
	})
	return l
}

// finish runs on the loop goroutine after a terminal tick
func (c *Controller) finish(l *Loop, o Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// a newer session already replaced this loop
	if l != c.loop || !c.session.End(o) {
		return
	}
	c.closeSessionLocked(o)
}

func (c *Controller) closeSessionLocked(o Outcome) {
	rec := c.session.Record()
	if err := c.opts.Stats.AddSession(rec); err != nil {
		c.log.Warn("session history not saved", "err", err)
	}
	c.log.Info("session ended",
		"session", rec.UUID,
		"score", rec.Score,
		"length", rec.Length,
		"cause", rec.Cause,
		"duration", rec.Duration().Round(time.Millisecond),
	)

	if c.opts.Scores.IsRecord(o.Score) {
		c.awaiting = true
		c.feedback.Record()
	} else {
		c.feedback.GameOver()
	}
	c.notifyLocked()
}

// TogglePause flips Playing/Paused; the pending heading survives the pause
func (c *Controller) TogglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.session.TogglePause()
	if !ok {
		return false
	}
	if c.loop != nil {
		c.loop.SetPaused(state == StatePaused)
	}
	c.notifyLocked()
	return true
}

// SubmitName stores the record of the session that just ended
func (c *Controller) SubmitName(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitNameLocked(name)
}

func (c *Controller) submitNameLocked(name string) bool {
	if !c.awaiting {
		return false
	}
	c.awaiting = false
	score := c.session.Outcome().Score
	saved, err := c.opts.Scores.Submit(score, name)
	if err != nil {
		c.log.Warn("high score not persisted", "err", err)
	}
	c.notifyLocked()
	return saved
}

// Latest returns the most recent board snapshot, if a session has run
func (c *Controller) Latest() (Snapshot, bool) {
	c.mu.Lock()
	l := c.loop
	c.mu.Unlock()
	if l == nil {
		return Snapshot{}, false
	}
	return l.Latest(), true
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	o := c.session.Outcome()
	score := o.Score
	if c.loop != nil && c.session.State() != StateGameOver {
		score = c.loop.Latest().Score
	}
	return View{
		State:        c.session.State(),
		SessionID:    c.session.ID(),
		Score:        score,
		Result:       o.Result,
		Collision:    o.Collision,
		HighScore:    c.opts.Scores.GetHighScore(),
		AverageScore: c.opts.Stats.GetAverageScore(),
		AwaitingName: c.awaiting,
	}
}

func (c *Controller) notifyLocked() {
	if c.opts.Changed != nil {
		c.opts.Changed(c.viewLocked())
	}
}

// Close stops the running session, records it if it was still in play and
// saves a pending record under the default name. Nothing keeps running afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLoopLocked()
	if c.awaiting {
		c.submitNameLocked("")
	}
	c.cancel()
}

// stopLoopLocked stops the current loop and ends its session. A terminal tick
// whose OnEnd has not reached finish yet is recorded as it happened.
func (c *Controller) stopLoopLocked() {
	if c.loop == nil {
		return
	}
	c.loop.Stop()
	if o, ok := c.loop.Ended(); ok {
		if c.session.End(o) {
			c.closeSessionLocked(o)
		}
		return
	}
	snap := c.loop.Latest()
	if c.session.Abort(Outcome{Score: snap.Score, Length: len(snap.Snake)}) {
		c.closeSessionLocked(c.session.Outcome())
	}
}
