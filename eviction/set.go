// This file implements the ordered resident set shared by all policies.

package eviction

import "github.com/krisalay/pagesim/types"

// pageNode represents ONE resident page inside the ordered set.
type pageNode struct {
	// page is the resident page this node represents
	page types.Page

	// prev points towards the front (older end) of the set
	prev *pageNode

	// next points towards the back (newer end) of the set
	next *pageNode
}

/*
PageSet is an ordered collection of resident pages with O(1) membership.

Order is front → back. What "order" means is up to the policy:
  - FIFO keeps it as load order (front = loaded longest ago)
  - LRU keeps it as recency order (front = least recently used)
  - Optimal only uses it as the enumeration order for tie-breaks

A page is never stored twice. PageSet does not enforce a capacity; policies do.
It does not permit concurrent access.
*/
type PageSet struct {
	// nodes maps pages to their list nodes so we can find and unlink them in O(1).
	nodes map[types.Page]*pageNode

	// head is the front of the set
	head *pageNode

	// tail is the back of the set
	tail *pageNode
}

// NewPageSet creates an empty set.
func NewPageSet() *PageSet {
	return &PageSet{nodes: make(map[types.Page]*pageNode)}
}

// Len returns the number of resident pages.
func (s *PageSet) Len() int {
	return len(s.nodes)
}

// Contains reports whether p is resident.
func (s *PageSet) Contains(p types.Page) bool {
	_, ok := s.nodes[p]
	return ok
}

// PushBack appends p at the back. Pushing a page that is already present is a no-op.
func (s *PageSet) PushBack(p types.Page) {
	if _, ok := s.nodes[p]; ok {
		return
	}
	n := &pageNode{page: p}
	s.nodes[p] = n
	s.linkBack(n)
}

// MoveToBack moves a resident page to the back. Unknown pages are ignored.
func (s *PageSet) MoveToBack(p types.Page) {
	n, ok := s.nodes[p]
	if !ok || n == s.tail {
		return
	}
	s.unlink(n)
	s.linkBack(n)
}

// Front returns the page at the front, false if the set is empty.
func (s *PageSet) Front() (types.Page, bool) {
	if s.head == nil {
		return 0, false
	}
	return s.head.page, true
}

// PopFront removes and returns the front page, false if the set is empty.
func (s *PageSet) PopFront() (types.Page, bool) {
	if s.head == nil {
		return 0, false
	}
	p := s.head.page
	s.Remove(p)
	return p, true
}

// Remove drops p from the set and reports whether it was present.
func (s *PageSet) Remove(p types.Page) bool {
	n, ok := s.nodes[p]
	if !ok {
		return false
	}
	s.unlink(n)
	delete(s.nodes, p)
	return true
}

// Pages returns the resident pages front → back.
func (s *PageSet) Pages() []types.Page {
	out := make([]types.Page, 0, len(s.nodes))
	for n := s.head; n != nil; n = n.next {
		out = append(out, n.page)
	}
	return out
}

// Each calls fn for every page front → back until fn returns false.
func (s *PageSet) Each(fn func(types.Page) bool) {
	for n := s.head; n != nil; n = n.next {
		if !fn(n.page) {
			return
		}
	}
}

// Reset empties the set.
func (s *PageSet) Reset() {
	s.nodes = make(map[types.Page]*pageNode)
	s.head = nil
	s.tail = nil
}

// linkBack attaches a detached node at the back of the list.
func (s *PageSet) linkBack(n *pageNode) {
	n.prev = s.tail
	n.next = nil
	if s.tail != nil {
		s.tail.next = n
	}
	s.tail = n

	// If the list was empty, head and tail are the same
	if s.head == nil {
		s.head = n
	}
}

// unlink detaches a node, fixing up its neighbours and head/tail.
func (s *PageSet) unlink(n *pageNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}
