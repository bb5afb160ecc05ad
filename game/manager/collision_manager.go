package manager

import (
	"firesnake/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// Classify checks a candidate head against walls, the pre-move body and food, in that order
func (cm *CollisionManager) Classify(pos types.Point, body []types.Point, food types.Point) types.Collision {
	if cm.isWallCollision(pos) {
		return types.Wall
	}

	// The tail is still part of the body here even though it would vacate this tick
	if isSnakeCollision(pos, body) {
		return types.Self
	}

	if cm.IsFoodCollision(pos, food) {
		return types.Food
	}

	return types.Safe
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}

func isSnakeCollision(pos types.Point, body []types.Point) bool {
	for _, part := range body {
		if pos == part {
			return true
		}
	}
	return false
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Point, food types.Point) bool {
	return pos == food
}

// IsDanger reports whether moving onto p would end the session
func (cm *CollisionManager) IsDanger(p types.Point, body []types.Point) bool {
	return cm.isWallCollision(p) || isSnakeCollision(p, body)
}
