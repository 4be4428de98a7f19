package engine

import (
	"context"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/krisalay/pagesim/eviction"
	"github.com/krisalay/pagesim/render"
	"github.com/krisalay/pagesim/types"
)

/*
Runner is the "driver" of the simulator.
It is responsible for feeding references to policies, NOT for deciding evictions.

It decides:
- Which step signature a policy gets (online Step or clairvoyant StepAt)
- When the presentation sink hears about a step or a finished run
- How metrics are recorded
- How several policies are compared over the same reference string

It does NOT:
- Choose victims
- Format output
- Read or validate user input
*/
type Runner struct {

	// Sink receives every step and every finished run.
	// If this is nil, nothing is presented.
	Sink render.Sink

	// Metrics counts hits, faults and evictions across runs.
	// With Parallel enabled it is called from several goroutines.
	Metrics types.Metrics

	// Logger gets run-level debug records. Never nil after NewRunner.
	Logger *slog.Logger

	// Parallel lets RunComparison run policies concurrently.
	// Policies share no state, so this only changes wall-clock time;
	// the sink still sees runs in input order.
	Parallel bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithSink sets where steps and finished runs are reported.
func WithSink(s render.Sink) Option {
	return func(r *Runner) { r.Sink = s }
}

// WithMetrics sets the hit/fault counters.
func WithMetrics(m types.Metrics) Option {
	return func(r *Runner) { r.Metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.Logger = l }
}

func WithParallel(parallel bool) Option {
	return func(r *Runner) { r.Parallel = parallel }
}

/*
NewRunner creates a Runner.
*/
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}

	// Ensure sink, metrics and logger are always non-nil
	// so the step loop does not need nil checks
	if r.Sink == nil {
		r.Sink = render.NoopSink{}
	}
	if r.Metrics == nil {
		r.Metrics = types.NoopMetrics{}
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

/*
RunSingle feeds refs to p, in order, and returns the run result.

BEHAVIOR:
---------
  - Fails with ErrEmptySequence when refs is empty; p is left untouched
  - Resets p first, so a reused instance behaves like a fresh one
  - Calls StepAt for Clairvoyant policies, Step for everything else
  - Reports each step to the sink, then the finished run
*/
func (r *Runner) RunSingle(p eviction.Policy, refs []types.Page) (types.RunResult, error) {
	return r.run(p, refs, r.Sink)
}

func (r *Runner) run(p eviction.Policy, refs []types.Page, sink render.Sink) (types.RunResult, error) {
	if len(refs) == 0 {
		return types.RunResult{}, types.EmptySequence("run " + p.Name())
	}

	r.Logger.Debug("run started", "policy", p.Name(), "frames", p.Capacity(), "references", len(refs))

	p.Reset()
	clairvoyant, isClairvoyant := p.(eviction.Clairvoyant)

	result := types.RunResult{
		Policy:     p.Name(),
		Frames:     p.Capacity(),
		References: copyRefs(refs),
		Steps:      make([]types.StepResult, 0, len(refs)),
	}

	for i, page := range refs {
		var step types.StepResult
		if isClairvoyant {
			step = clairvoyant.StepAt(refs, i)
		} else {
			step = p.Step(page)
		}
		step.Index = i

		r.record(step)
		result.Steps = append(result.Steps, step)
		sink.OnStep(result.Policy, step, len(refs))
	}
	result.Faults = p.Faults()

	sink.OnComplete(result)
	r.Logger.Debug("run finished", "policy", result.Policy, "faults", result.Faults, "hits", result.Hits())
	return result, nil
}

func (r *Runner) record(step types.StepResult) {
	if !step.Fault {
		r.Metrics.Hit()
		return
	}
	r.Metrics.Fault()
	if step.HasEvicted {
		r.Metrics.Eviction()
	}
}

/*
RunComparison runs every policy over its own copy of refs and ranks the results.

Policies never share state. With Parallel enabled they run concurrently, each
writing to a private recorder; the recorders are replayed to the sink in input
order afterwards, so the output is identical to a sequential comparison.

ctx is only checked before a policy starts: a started run always completes.
Every policy must be a distinct instance.
*/
func (r *Runner) RunComparison(ctx context.Context, policies []eviction.Policy, refs []types.Page) (Comparison, error) {
	if len(refs) == 0 {
		return Comparison{}, types.EmptySequence("compare")
	}

	results := make([]types.RunResult, len(policies))

	if !r.Parallel {
		for i, p := range policies {
			if err := ctx.Err(); err != nil {
				return Comparison{}, err
			}
			res, err := r.run(p, copyRefs(refs), r.Sink)
			if err != nil {
				return Comparison{}, err
			}
			results[i] = res
		}
		return Rank(results), nil
	}

	recorders := make([]*render.Recorder, len(policies))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range policies {
		i, p := i, p
		recorders[i] = &render.Recorder{}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.run(p, copyRefs(refs), recorders[i])
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}

	for _, rec := range recorders {
		rec.Replay(r.Sink)
	}
	return Rank(results), nil
}

func copyRefs(refs []types.Page) []types.Page {
	return append([]types.Page(nil), refs...)
}
