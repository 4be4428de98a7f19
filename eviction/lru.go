// This file implements LRU replacement.

package eviction

import "github.com/krisalay/pagesim/types"

// lru is the concrete implementation of the LRU replacement policy.
type lru struct {
	capacity int

	// recency orders resident pages by last reference.
	// Front is the LEAST recently used page, back the MOST recently used one.
	recency *PageSet

	faults int
}

// NewLRU creates an LRU policy over capacity frames.
func NewLRU(capacity int) (Policy, error) {
	if err := checkCapacity("new LRU", capacity); err != nil {
		return nil, err
	}
	return &lru{capacity: capacity, recency: NewPageSet()}, nil
}

func (l *lru) Name() string           { return string(LRU) }
func (l *lru) Capacity() int          { return l.capacity }
func (l *lru) Faults() int            { return l.faults }
func (l *lru) Resident() []types.Page { return l.recency.Pages() }

func (l *lru) Reset() {
	l.recency.Reset()
	l.faults = 0
}

/*
Step processes one reference.

A hit is a full recency refresh: the page moves to the most recently used end.
On a fault with every frame occupied the least recently used page (front) is
evicted. Every access reorders exactly one page, so there are never ties.
*/
func (l *lru) Step(page types.Page) types.StepResult {
	res := types.StepResult{Page: page}

	if l.recency.Contains(page) {
		l.recency.MoveToBack(page)
		res.Frames = types.Snapshot(l.recency.Pages(), l.capacity)
		return res
	}

	res.Fault = true
	l.faults++

	if l.recency.Len() >= l.capacity {
		res.Evicted, res.HasEvicted = l.recency.PopFront()
	}
	l.recency.PushBack(page)

	res.Frames = types.Snapshot(l.recency.Pages(), l.capacity)
	return res
}
