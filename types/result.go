package types

// StepResult is what a policy reports after processing one reference.
type StepResult struct {
	// Index is the 0-based position of the reference in the sequence.
	Index int

	// Page is the referenced page.
	Page Page

	// Frames is the frame occupancy after the step, len == capacity.
	Frames []Frame

	// Fault is true when Page was not resident before the step.
	Fault bool

	// Evicted is the victim page. Only meaningful when HasEvicted is true,
	// which happens on a fault at full capacity.
	Evicted    Page
	HasEvicted bool
}

// RunResult is the outcome of feeding a whole reference sequence to one policy.
type RunResult struct {
	Policy     string
	Frames     int
	References []Page
	Faults     int
	Steps      []StepResult
}

// TotalReferences returns how many references were processed.
func (r RunResult) TotalReferences() int {
	return len(r.References)
}

// Hits returns the number of references that found their page resident.
func (r RunResult) Hits() int {
	return r.TotalReferences() - r.Faults
}

// Evictions counts the steps that removed a victim.
func (r RunResult) Evictions() int {
	n := 0
	for _, s := range r.Steps {
		if s.HasEvicted {
			n++
		}
	}
	return n
}

// FaultRatio is Faults / TotalReferences, 0 for an empty result.
func (r RunResult) FaultRatio() float64 {
	if r.TotalReferences() == 0 {
		return 0
	}
	return float64(r.Faults) / float64(r.TotalReferences())
}

// HitRatio is Hits / TotalReferences, 0 for an empty result.
func (r RunResult) HitRatio() float64 {
	if r.TotalReferences() == 0 {
		return 0
	}
	return float64(r.Hits()) / float64(r.TotalReferences())
}
