// Package ai contains a tabular Q-learning agent that can steer the snake.
package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"firesnake/game/types"

	"golang.org/x/exp/rand"
)

const numActions = len(types.Headings)

// State is what the agent sees around the head
type State struct {
	FoodDir [2]int           // sign of the food offset from the head (x, y)
	Danger  [numActions]bool // a fatal cell one step away, indexed like types.Headings
	Heading types.Heading    // current heading
}

func (s State) key() string {
	d := 0
	for i, danger := range s.Danger {
		if danger {
			d |= 1 << i
		}
	}
	return fmt.Sprintf("%d,%d|%x|%d", s.FoodDir[0], s.FoodDir[1], d, s.Heading)
}

// QTable maps a state key to one value per heading
type QTable map[string][numActions]float64

type QLearning struct {
	mu           sync.RWMutex
	table        QTable
	rng          *rand.Rand
	LearningRate float64
	Discount     float64
	Epsilon      float64
}

func NewQLearning(seed uint64) *QLearning {
	return &QLearning{
		table:        make(QTable),
		rng:          rand.New(rand.NewSource(seed)),
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.1,
	}
}

// Choose picks a heading for s: random with probability Epsilon, best known otherwise.
// The reversal of the current heading is never chosen.
func (q *QLearning) Choose(s State) types.Heading {
	if q.rng.Float64() < q.Epsilon {
		for {
			h := types.Headings[q.rng.Intn(numActions)]
			if h != s.Heading.Opposite() {
				return h
			}
		}
	}
	return q.Best(s)
}

// Best returns the highest valued heading for s, preferring headings without danger on ties
func (q *QLearning) Best(s State) types.Heading {
	q.mu.RLock()
	values := q.table[s.key()]
	q.mu.RUnlock()

	best := s.Heading
	bestValue := math.Inf(-1)
	for i, h := range types.Headings {
		if h == s.Heading.Opposite() {
			continue
		}
		v := values[i]
		if s.Danger[i] {
			v -= 1e-9
		}
		if v > bestValue {
			best, bestValue = h, v
		}
	}
	return best
}

// Update applies one Q-learning step. A terminal transition has no future value.
func (q *QLearning) Update(s State, action types.Heading, reward float64, next State, terminal bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	future := 0.0
	if !terminal {
		future = math.Inf(-1)
		for _, v := range q.table[next.key()] {
			future = math.Max(future, v)
		}
	}

	k := s.key()
	values := q.table[k]
	current := values[action]
	values[action] = current + q.LearningRate*(reward+q.Discount*future-current)
	q.table[k] = values
}

// Value returns the learned value of taking action in s
func (q *QLearning) Value(s State, action types.Heading) float64 {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.table[s.key()][action]
}

func (q *QLearning) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.table)
}

func (q *QLearning) MarshalJSON() ([]byte, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return json.Marshal(q.table)
}

func (q *QLearning) UnmarshalJSON(data []byte) error {
	table := make(QTable)
	if err := json.Unmarshal(data, &table); err != nil {
		return err
	}
	q.mu.Lock()
	q.table = table
	q.mu.Unlock()
	return nil
}
