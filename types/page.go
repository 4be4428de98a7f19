package types

import "strconv"

// Page identifies one page of a reference string. Any integer is a valid page.
type Page int

// Frame is one slot of a frame snapshot.
// An empty slot has Occupied == false and a zero Page.
type Frame struct {
	Page     Page
	Occupied bool
}

// String renders the slot the way a trace shows it: "[7]" or "[ ]".
func (f Frame) String() string {
	if !f.Occupied {
		return "[ ]"
	}
	return "[" + strconv.Itoa(int(f.Page)) + "]"
}

/*
Snapshot builds a frame snapshot of exactly capacity slots.

The resident pages fill the first slots in the order given, the rest of the
slots are empty. The caller decides the order (load order, recency order, ...).
*/
func Snapshot(resident []Page, capacity int) []Frame {
	frames := make([]Frame, capacity)
	for i, p := range resident {
		if i >= capacity {
			break
		}
		frames[i] = Frame{Page: p, Occupied: true}
	}
	return frames
}
