package types

// This file defines how the simulator reports what it is doing.

/*
Metrics is an interface that defines what the runner wants to measure.
Each method represents an event in a simulation. The runner will call these methods
once per processed reference (Hit or Fault) and once more for every eviction.
*/
type Metrics interface {

	// Hit is called when the referenced page was already resident.
	Hit()

	// Fault is called when the referenced page had to be loaded into a frame.
	Fault()

	// Eviction is called when a fault at full capacity removed a victim page.
	Eviction()
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

Callers that do not care about counters can leave metrics unset and the runner
falls back to this, so no nil checks are needed on the hot path.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Fault()    {}
func (NoopMetrics) Eviction() {}
