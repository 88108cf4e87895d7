package reversi

import "sync"

// Canceller guards a pending action such as a delayed computer move.
// Cancel marks it cancelled and runs the cleanup function at most once.
// It is safe for concurrent use.
type Canceller struct {
	mu        sync.Mutex
	cancelled bool
	cleanUp   func()
}

// NewCanceller creates a Canceller. cleanUp may be nil.
func NewCanceller(cleanUp func()) *Canceller {
	return &Canceller{cleanUp: cleanUp}
}

// Cancel marks the action cancelled. Calls after the first are no-ops.
func (c *Canceller) Cancel() {
	c.mu.Lock()
	if c.cancelled {
		c.mu.Unlock()
		return
	}
	c.cancelled = true
	cleanUp := c.cleanUp
	c.mu.Unlock()

	if cleanUp != nil {
		cleanUp()
	}
}

// IsCancelled reports whether Cancel has been called.
func (c *Canceller) IsCancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}
