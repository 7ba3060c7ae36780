package registry

import "sync/atomic"

// Clock stamps entries with strictly increasing sequence numbers.
type Clock interface {
	Next() int64
}

// SeqClock is the default Clock. It is safe for concurrent use.
type SeqClock struct {
	seq atomic.Int64
}

// NewSeqClock creates a clock whose first Next returns 1.
func NewSeqClock() *SeqClock {
	return &SeqClock{}
}

// Next returns the next sequence number.
func (c *SeqClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last sequence number handed out.
func (c *SeqClock) Current() int64 {
	return c.seq.Load()
}

// Advance moves the clock forward so the next Next returns more than seq.
// It never moves the clock backward.
func (c *SeqClock) Advance(seq int64) {
	for {
		cur := c.seq.Load()
		if cur >= seq || c.seq.CompareAndSwap(cur, seq) {
			return
		}
	}
}
