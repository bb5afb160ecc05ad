package game

import (
	"errors"
	"time"

	"firesnake/game/entity"
	"firesnake/game/manager"
	"firesnake/game/types"
)

// Game is the simulation state of one session. It is mutated only by Tick.
type Game struct {
	rules   types.Rules
	snake   *entity.Snake
	food    types.Point
	hasFood bool
	heading types.Heading
	speed   time.Duration
	score   int
	steps   int

	collisions *manager.CollisionManager
	foods      *manager.FoodManager
}

// Outcome describes what a single tick did
type Outcome struct {
	Collision types.Collision
	Result    types.Result
	Heading   types.Heading
	Turned    bool
	Score     int
	Speed     time.Duration
	Length    int
}

// Ate reports whether the tick consumed food
func (o Outcome) Ate() bool {
	return o.Collision == types.Food
}

// Snapshot is a read-only copy of the state for renderers
type Snapshot struct {
	Grid    types.Grid
	Snake   []types.Point
	Food    types.Point
	HasFood bool
	Heading types.Heading
	Score   int
	Speed   time.Duration
	Steps   int
}

// Head returns the first segment
func (s Snapshot) Head() types.Point {
	return s.Snake[0]
}

// NewGame starts a fresh session state: one segment at the grid center heading Right
func NewGame(rules types.Rules, foods *manager.FoodManager) *Game {
	g := &Game{
		rules:      rules,
		snake:      entity.NewSnake(rules.Grid.Center()),
		heading:    types.Right,
		speed:      rules.InitialSpeed,
		collisions: manager.NewCollisionManager(rules.Grid),
		foods:      foods,
	}
	g.relocateFood()
	return g
}

func (g *Game) relocateFood() error {
	food, err := g.foods.Place(g.snake.Occupied())
	if err != nil {
		g.hasFood = false
		return err
	}
	g.food = food
	g.hasFood = true
	return nil
}

func (g *Game) Heading() types.Heading {
	return g.heading
}

func (g *Game) Speed() time.Duration {
	return g.speed
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) Rules() types.Rules {
	return g.rules
}

// Tick advances the snake one cell in the resolved heading
func (g *Game) Tick(requested types.Heading) Outcome {
	heading := types.Resolve(g.heading, requested)
	newHead := g.snake.GetHead().Add(heading.Vector())

	food := g.food
	if !g.hasFood {
		// no food on a full board; keep the sentinel off-grid
		food = types.Point{X: -1, Y: -1}
	}
	collision := g.collisions.Classify(newHead, g.snake.Body, food)

	if collision.Fatal() {
		return g.outcome(collision, types.ResultCrashed, heading, false)
	}

	turned := heading != g.heading
	g.heading = heading
	g.steps++
	g.snake.Move(newHead)

	result := types.ResultContinue
	if collision == types.Food {
		g.score += g.rules.ScoreIncrement
		g.speed = g.rules.NextSpeed(g.speed)
		if err := g.relocateFood(); errors.Is(err, manager.ErrBoardFull) {
			result = types.ResultBoardFull
		}
	} else {
		g.snake.RemoveTail()
	}

	return g.outcome(collision, result, heading, turned)
}

func (g *Game) outcome(c types.Collision, r types.Result, h types.Heading, turned bool) Outcome {
	return Outcome{
		Collision: c,
		Result:    r,
		Heading:   h,
		Turned:    turned,
		Score:     g.score,
		Speed:     g.speed,
		Length:    g.snake.Len(),
	}
}

// Snapshot copies the current state
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Grid:    g.rules.Grid,
		Snake:   g.snake.Clone(),
		Food:    g.food,
		HasFood: g.hasFood,
		Heading: g.heading,
		Score:   g.score,
		Speed:   g.speed,
		Steps:   g.steps,
	}
}
