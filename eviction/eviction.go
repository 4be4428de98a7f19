package eviction

import (
	"strings"

	"github.com/krisalay/pagesim/types"
)

/*
This file defines how a simulated memory decides which page to remove when all
frames are occupied.
*/

/*
Policy is the interface that all replacement strategies must follow.

The runner does NOT care how replacement works internally.
It resets the policy, feeds it one reference at a time, and reads the result.

A policy owns a bounded resident set of at most Capacity() pages and is mutated
exactly once per reference. It does not permit concurrent access.
*/
type Policy interface {

	// Name is the label used in traces and comparison tables.
	Name() string

	// Capacity is the number of frames.
	Capacity() int

	// Faults returns the faults counted since the last Reset.
	Faults() int

	// Resident returns the resident pages in display order.
	Resident() []types.Page

	// Reset empties every frame and zeroes the fault count.
	Reset()

	// Step processes one reference without any knowledge of the future.
	//
	// Online policies (FIFO, LRU) only ever need this.
	Step(page types.Page) types.StepResult
}

/*
Clairvoyant is implemented by policies that need the whole reference sequence.

The runner calls StepAt instead of Step for these, passing the full sequence and
the position of the current reference. refs must not change during a run.
*/
type Clairvoyant interface {
	Policy
	StepAt(refs []types.Page, i int) types.StepResult
}

// PolicyType is a simple identifier for supported replacement strategies.
type PolicyType string

const (
	// FIFO (First In First Out): evicts the page loaded longest ago, regardless of access.
	FIFO PolicyType = "FIFO"

	// LRU (Least Recently Used): evicts the page that has NOT been referenced for the longest time.
	LRU PolicyType = "LRU"

	// Optimal (OPT / OPR): evicts the page whose next reference is farthest in the future.
	// It needs the whole reference string, so it is a benchmark rather than a real policy.
	Optimal PolicyType = "OPTIMAL"
)

// AllPolicyTypes lists the policies in the order comparisons run them.
func AllPolicyTypes() []PolicyType {
	return []PolicyType{FIFO, LRU, Optimal}
}

// Description is the long display name of a policy type.
func (t PolicyType) Description() string {
	switch t {
	case FIFO:
		return "FIFO (First-In-First-Out)"
	case LRU:
		return "LRU (Least Recently Used)"
	case Optimal:
		return "Optimal"
	default:
		return string(t)
	}
}

// ParsePolicyType accepts the usual spellings, case-insensitive:
// fifo, lru, opt, opr, optimal, and the menu numbers 1, 2, 3.
func ParsePolicyType(s string) (PolicyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fifo", "1":
		return FIFO, nil
	case "lru", "2":
		return LRU, nil
	case "opt", "opr", "optimal", "3":
		return Optimal, nil
	default:
		return "", types.UnknownPolicy("parse policy", s)
	}
}

// NewEvictionPolicy is a small factory function.
// Given a PolicyType and a frame count, it creates the correct policy.
func NewEvictionPolicy(t PolicyType, capacity int) (Policy, error) {
	switch t {
	case FIFO:
		return NewFIFO(capacity)
	case LRU:
		return NewLRU(capacity)
	case Optimal:
		return NewOptimal(capacity)
	default:
		return nil, types.UnknownPolicy("new policy", string(t))
	}
}

func checkCapacity(op string, capacity int) error {
	if capacity <= 0 {
		return types.InvalidCapacity(op, capacity)
	}
	return nil
}
