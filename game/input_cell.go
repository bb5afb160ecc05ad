package game

import (
	"sync"

	"firesnake/game/types"
)

// InputCell is the single-slot "latest requested heading" shared between input
// listeners and the tick engine. Requests coalesce; only the newest valid one is read.
type InputCell struct {
	mu        sync.Mutex
	active    types.Heading
	requested types.Heading
	pending   bool
}

func NewInputCell(active types.Heading) *InputCell {
	return &InputCell{active: active}
}

// Request records h unless it reverses the heading active since the last tick.
// A rejected request leaves an earlier valid one in place.
func (c *InputCell) Request(h types.Heading) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !h.Valid() || h == c.active.Opposite() {
		return false
	}
	c.requested = h
	c.pending = true
	return true
}

// Pending returns the request waiting for the next tick
func (c *InputCell) Pending() (types.Heading, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requested, c.pending
}

// take is called once per tick; it returns the heading to feed the engine and clears the slot
func (c *InputCell) take(current types.Heading) types.Heading {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := current
	if c.pending {
		next = types.Resolve(current, c.requested)
		c.pending = false
	}
	c.active = next
	return next
}

// reset prepares the cell for a new session
func (c *InputCell) reset(active types.Heading) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = active
	c.pending = false
}
