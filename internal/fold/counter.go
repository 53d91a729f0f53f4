package fold

import "sync/atomic"

// Counter tallies energy evaluations for budget-based termination. Each
// run owns its own counter instead of sharing process-wide state, so
// concurrent runs (benchmark and tuning harnesses) stay independent.
type Counter struct {
	n atomic.Int64
}

func (c *Counter) Inc() {
	c.n.Add(1)
}

func (c *Counter) Total() int64 {
	return c.n.Load()
}

func (c *Counter) Reset() {
	c.n.Store(0)
}
