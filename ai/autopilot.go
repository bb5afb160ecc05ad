package ai

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"firesnake/game"
	"firesnake/game/manager"
	"firesnake/game/types"
	"firesnake/store"
)

// QTableKey is the store key holding the learned table
const QTableKey = "autopilotQTable"

const (
	rewardFood   = 1.0
	rewardCrash  = -1.0
	rewardCloser = 0.1
	rewardAway   = -0.15
)

// Autopilot steers a session through the same input cell a player uses and
// keeps learning from every tick.
type Autopilot struct {
	mu         sync.Mutex
	q          *QLearning
	store      store.Store
	log        *slog.Logger
	collisions *manager.CollisionManager
	grid       types.Grid

	last       State
	lastAction types.Heading
	lastDist   int
	acting     bool
	episodes   int
	autosave   bool
}

// NewAutopilot restores a table from st when one is present
func NewAutopilot(st store.Store, seed uint64, log *slog.Logger) *Autopilot {
	if log == nil {
		log = slog.Default()
	}
	a := &Autopilot{
		q:        NewQLearning(seed),
		store:    st,
		log:      log,
		autosave: true,
	}

	raw, ok, err := st.Get(QTableKey)
	switch {
	case err != nil:
		log.Warn("autopilot table unavailable", "err", err)
	case ok:
		if err := json.Unmarshal([]byte(raw), a.q); err != nil {
			log.Warn("malformed autopilot table, starting fresh", "err", err)
		} else {
			log.Info("autopilot table loaded", "states", a.q.Len())
		}
	}
	return a
}

// Sense extracts the agent state from a snapshot
func (a *Autopilot) Sense(s game.Snapshot) State {
	if a.collisions == nil || a.grid != s.Grid {
		a.grid = s.Grid
		a.collisions = manager.NewCollisionManager(s.Grid)
	}

	head := s.Head()
	st := State{Heading: s.Heading}
	if s.HasFood {
		st.FoodDir = [2]int{sign(s.Food.X - head.X), sign(s.Food.Y - head.Y)}
	}
	for i, h := range types.Headings {
		st.Danger[i] = a.collisions.IsDanger(head.Add(h.Vector()), s.Snake)
	}
	return st
}

// Steer implements game.Pilot
func (a *Autopilot) Steer(s game.Snapshot) (types.Heading, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	st := a.Sense(s)
	h := a.q.Choose(st)
	a.last, a.lastAction, a.acting = st, h, true
	a.lastDist = foodDistance(s)
	return h, true
}

// Observe implements game.Pilot
func (a *Autopilot) Observe(o game.Outcome, next game.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.acting {
		return
	}
	a.acting = false

	terminal := o.Result.Terminal()
	reward := a.reward(o, next)
	a.q.Update(a.last, o.Heading, reward, a.Sense(next), terminal)

	if terminal {
		a.episodes++
		if !a.autosave {
			return
		}
		if err := a.saveLocked(); err != nil {
			a.log.Warn("autopilot table not saved", "err", err)
		}
	}
}

// abandon counts an episode that was cut short without a terminal tick
func (a *Autopilot) abandon() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acting = false
	a.episodes++
}

func (a *Autopilot) setAutosave(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.autosave = on
}

func (a *Autopilot) reward(o game.Outcome, next game.Snapshot) float64 {
	switch {
	case o.Collision.Fatal():
		return rewardCrash
	case o.Ate():
		return rewardFood
	case foodDistance(next) < a.lastDist:
		return rewardCloser
	default:
		return rewardAway
	}
}

// Episodes returns the number of finished sessions the autopilot played
func (a *Autopilot) Episodes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.episodes
}

// Save writes the table to the store
func (a *Autopilot) Save() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saveLocked()
}

func (a *Autopilot) saveLocked() error {
	data, err := json.Marshal(a.q)
	if err != nil {
		return fmt.Errorf("encode autopilot table: %w", err)
	}
	if err := a.store.Set(QTableKey, string(data)); err != nil {
		return fmt.Errorf("save autopilot table: %w", err)
	}
	return nil
}

func foodDistance(s game.Snapshot) int {
	if !s.HasFood {
		return 0
	}
	return types.ManhattanDistance(s.Head(), s.Food)
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
