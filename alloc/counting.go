package alloc

import "sync/atomic"

// Stats is a snapshot of the calls observed by a Counting allocator.
type Stats struct {
	Allocs, Resizes, Frees, Failures uint64
	// LiveBytes is the sum of region lengths allocated and not yet freed.
	LiveBytes int64
}

// Counting wraps another Allocator and counts every call it forwards.
type Counting struct {
	next Allocator

	allocs, resizes, frees, failures atomic.Uint64
	live                             atomic.Int64
}

// NewCounting returns a Counting allocator forwarding to next.
func NewCounting(next Allocator) *Counting {
	return &Counting{next: next}
}

func (c *Counting) Alloc(n int) []byte {
	return c.track(c.next.Alloc(n))
}

func (c *Counting) AllocZeroed(n int) []byte {
	return c.track(c.next.AllocZeroed(n))
}

func (c *Counting) Resize(b []byte, n int) []byte {
	c.resizes.Add(1)
	resized := c.next.Resize(b, n)
	if resized == nil {
		c.failures.Add(1)
		return nil
	}
	c.live.Add(int64(len(resized) - len(b)))
	return resized
}

func (c *Counting) Free(b []byte) {
	c.frees.Add(1)
	c.live.Add(-int64(len(b)))
	c.next.Free(b)
}

func (c *Counting) track(b []byte) []byte {
	c.allocs.Add(1)
	if b == nil {
		c.failures.Add(1)
		return nil
	}
	c.live.Add(int64(len(b)))
	return b
}

// Stats returns the counts observed so far.
func (c *Counting) Stats() Stats {
	return Stats{
		Allocs:    c.allocs.Load(),
		Resizes:   c.resizes.Load(),
		Frees:     c.frees.Load(),
		Failures:  c.failures.Load(),
		LiveBytes: c.live.Load(),
	}
}
