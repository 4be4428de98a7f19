// This file implements FIFO replacement.

package eviction

import "github.com/krisalay/pagesim/types"

type fifo struct {
	capacity int

	// queue keeps resident pages in the order they were loaded.
	// The front of the queue is the oldest page.
	queue *PageSet

	faults int
}

// NewFIFO creates a FIFO policy over capacity frames.
func NewFIFO(capacity int) (Policy, error) {
	if err := checkCapacity("new FIFO", capacity); err != nil {
		return nil, err
	}
	return &fifo{capacity: capacity, queue: NewPageSet()}, nil
}

func (f *fifo) Name() string           { return string(FIFO) }
func (f *fifo) Capacity() int          { return f.capacity }
func (f *fifo) Faults() int            { return f.faults }
func (f *fifo) Resident() []types.Page { return f.queue.Pages() }

func (f *fifo) Reset() {
	f.queue.Reset()
	f.faults = 0
}

/*
Step processes one reference.

  - Resident page: hit. FIFO ignores reads completely, the load order stays as is.
  - Not resident, free frame: load it at the back of the queue.
  - Not resident, all frames full: the front of the queue (oldest load) is the
    victim, then the new page goes to the back.
*/
func (f *fifo) Step(page types.Page) types.StepResult {
	res := types.StepResult{Page: page}

	if f.queue.Contains(page) {
		res.Frames = types.Snapshot(f.queue.Pages(), f.capacity)
		return res
	}

	res.Fault = true
	f.faults++

	if f.queue.Len() >= f.capacity {
		res.Evicted, res.HasEvicted = f.queue.PopFront()
	}
	f.queue.PushBack(page)

	res.Frames = types.Snapshot(f.queue.Pages(), f.capacity)
	return res
}
