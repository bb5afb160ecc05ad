package ai

import (
	"context"

	"firesnake/game"
	"firesnake/game/manager"
	"firesnake/game/types"
)

const (
	logEvery  = 50
	saveEvery = 500
	// an episode that neither eats nor dies for this many ticks per cell is cut short
	idleTicksPerCell = 2
)

// TrainingStats summarizes a headless training run
type TrainingStats struct {
	Episodes int
	Best     int
	Average  float64
}

// Train plays episodes without a timer or frontend, feeding every tick to the
// autopilot. The table is saved every few hundred episodes and at the end.
func Train(ctx context.Context, a *Autopilot, rules types.Rules, episodes int, seed uint64) (TrainingStats, error) {
	var stats TrainingStats
	total := 0

	a.setAutosave(false)
	defer a.setAutosave(true)

	for ep := 0; ep < episodes; ep++ {
		if err := ctx.Err(); err != nil {
			return stats, a.Save()
		}

		score := runEpisode(a, rules, seed+uint64(ep))
		stats.Episodes++
		total += score
		stats.Best = max(stats.Best, score)
		stats.Average = float64(total) / float64(stats.Episodes)

		if stats.Episodes%logEvery == 0 {
			a.log.Info("training progress", "episodes", stats.Episodes, "best", stats.Best, "avg", stats.Average, "states", a.q.Len())
		}
		if stats.Episodes%saveEvery == 0 {
			if err := a.Save(); err != nil {
				return stats, err
			}
		}
	}
	return stats, a.Save()
}

func runEpisode(a *Autopilot, rules types.Rules, seed uint64) int {
	g := game.NewGame(rules, manager.NewFoodManager(rules.Grid, seed))
	idleLimit := idleTicksPerCell * rules.Grid.Cells()
	idle := 0

	for {
		h, _ := a.Steer(g.Snapshot())
		out := g.Tick(h)
		a.Observe(out, g.Snapshot())

		if out.Result.Terminal() {
			return out.Score
		}
		if out.Ate() {
			idle = 0
			continue
		}
		idle++
		if idle >= idleLimit {
			a.abandon()
			return out.Score
		}
	}
}
