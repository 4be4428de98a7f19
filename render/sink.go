// This file defines the presentation hook of the simulator.
// The runner reports every step and every finished run to a Sink and moves on;
// what the sink does with it (print, record, ignore) is not the runner's business.
package render

import (
	"sync"

	"github.com/krisalay/pagesim/types"
)

/*
Sink is the interface for presentation behavior.

The runner calls OnStep once per processed reference, in sequence order, and
OnComplete once when the whole sequence was consumed. A sink must not modify the
values it receives.
*/
type Sink interface {
	// OnStep receives one step of policy's run; total is the sequence length.
	OnStep(policy string, step types.StepResult, total int)

	// OnComplete receives the finished run.
	OnComplete(result types.RunResult)
}

// NoopSink ignores everything.
type NoopSink struct{}

func (NoopSink) OnStep(string, types.StepResult, int) {}
func (NoopSink) OnComplete(types.RunResult)           {}

type event struct {
	policy string
	step   types.StepResult
	total  int
	result *types.RunResult
}

/*
Recorder is a Sink that keeps every event so it can be replayed later.

Comparisons that run policies concurrently give each run its own Recorder and
replay them in a fixed order, so the real sink sees the same output every time.
*/
type Recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *Recorder) OnStep(policy string, step types.StepResult, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{policy: policy, step: step, total: total})
}

func (r *Recorder) OnComplete(result types.RunResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{policy: result.Policy, result: &result})
}

// Steps returns the recorded steps in arrival order.
func (r *Recorder) Steps() []types.StepResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []types.StepResult
	for _, e := range r.events {
		if e.result == nil {
			out = append(out, e.step)
		}
	}
	return out
}

// Results returns the recorded completed runs in arrival order.
func (r *Recorder) Results() []types.RunResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []types.RunResult
	for _, e := range r.events {
		if e.result != nil {
			out = append(out, *e.result)
		}
	}
	return out
}

// Replay forwards every recorded event to s, in the order they were recorded.
func (r *Recorder) Replay(s Sink) {
	r.mu.Lock()
	events := append([]event(nil), r.events...)
	r.mu.Unlock()

	for _, e := range events {
		if e.result != nil {
			s.OnComplete(*e.result)
			continue
		}
		s.OnStep(e.policy, e.step, e.total)
	}
}

// Multi fans events out to several sinks in order.
type Multi []Sink

func (m Multi) OnStep(policy string, step types.StepResult, total int) {
	for _, s := range m {
		s.OnStep(policy, step, total)
	}
}

func (m Multi) OnComplete(result types.RunResult) {
	for _, s := range m {
		s.OnComplete(result)
	}
}
