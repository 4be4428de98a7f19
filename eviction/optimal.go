// This file implements Optimal (OPT) replacement.

package eviction

import (
	"fmt"
	"sort"

	"github.com/krisalay/pagesim/types"
)

/*
optimal evicts the resident page that will not be used for the longest time.

It is clairvoyant: StepAt gets the whole reference string and the current
position. The resident set keeps load order (victims removed, new pages at the
back); that order is the enumeration order used to break ties:

 1. the first resident page with no occurrence after the current position wins
    immediately
 2. otherwise the page whose next occurrence has the greatest index wins

Two resident pages can never share a next-occurrence index, so rule 2 has no
real ties; rule 1 is where enumeration order matters.
*/
type optimal struct {
	capacity int
	resident *PageSet
	faults   int

	// look-ahead index for the sequence currently being stepped
	refs        []types.Page
	occurrences map[types.Page][]int
}

// NewOptimal creates an Optimal policy over capacity frames.
func NewOptimal(capacity int) (Policy, error) {
	if err := checkCapacity("new Optimal", capacity); err != nil {
		return nil, err
	}
	return &optimal{capacity: capacity, resident: NewPageSet()}, nil
}

func (o *optimal) Name() string           { return string(Optimal) }
func (o *optimal) Capacity() int          { return o.capacity }
func (o *optimal) Faults() int            { return o.faults }
func (o *optimal) Resident() []types.Page { return o.resident.Pages() }

func (o *optimal) Reset() {
	o.resident.Reset()
	o.faults = 0
	o.refs = nil
	o.occurrences = nil
}

// Step without a sequence treats every resident page as never used again,
// so the first page in enumeration order is the victim.
func (o *optimal) Step(page types.Page) types.StepResult {
	return o.step(page, func(types.Page) (int, bool) { return 0, false })
}

// StepAt processes refs[i]. It panics when i is out of range.
func (o *optimal) StepAt(refs []types.Page, i int) types.StepResult {
	if i < 0 || i >= len(refs) {
		panic(fmt.Sprintf("optimal: reference index %d out of range [0,%d)", i, len(refs)))
	}
	o.index(refs)

	res := o.step(refs[i], func(p types.Page) (int, bool) {
		return o.nextUse(p, i)
	})
	res.Index = i
	return res
}

func (o *optimal) step(page types.Page, next func(types.Page) (int, bool)) types.StepResult {
	res := types.StepResult{Page: page}

	if o.resident.Contains(page) {
		res.Frames = types.Snapshot(o.resident.Pages(), o.capacity)
		return res
	}

	res.Fault = true
	o.faults++

	if o.resident.Len() >= o.capacity {
		victim := o.victim(next)
		o.resident.Remove(victim)
		res.Evicted, res.HasEvicted = victim, true
	}
	o.resident.PushBack(page)

	res.Frames = types.Snapshot(o.resident.Pages(), o.capacity)
	return res
}

// victim picks the page to evict using the farthest-future-use rule.
// The resident set must not be empty.
func (o *optimal) victim(next func(types.Page) (int, bool)) types.Page {
	var (
		farthestPage  types.Page
		farthestIndex = -1
	)
	o.resident.Each(func(p types.Page) bool {
		at, ok := next(p)
		if !ok {
			// never referenced again: nothing can beat it
			farthestPage = p
			return false
		}
		if at > farthestIndex {
			farthestPage, farthestIndex = p, at
		}
		return true
	})
	return farthestPage
}

// nextUse returns the first index after i where p is referenced.
func (o *optimal) nextUse(p types.Page, i int) (int, bool) {
	at := o.occurrences[p]
	k := sort.SearchInts(at, i+1)
	if k == len(at) {
		return 0, false
	}
	return at[k], true
}

// index builds the per-page occurrence lists once per sequence.
func (o *optimal) index(refs []types.Page) {
	if o.occurrences != nil && sameSequence(o.refs, refs) {
		return
	}
	o.refs = refs
	o.occurrences = make(map[types.Page][]int)
	for i, p := range refs {
		o.occurrences[p] = append(o.occurrences[p], i)
	}
}

// sameSequence reports whether a and b are the same backing slice.
func sameSequence(a, b []types.Page) bool {
	return len(a) == len(b) && len(a) > 0 && &a[0] == &b[0]
}
