package api

import (
	"context"

	"github.com/krisalay/pagesim/engine"
	"github.com/krisalay/pagesim/eviction"
	"github.com/krisalay/pagesim/types"
)

/*
Simulator defines the PUBLIC API of the page replacement simulator.
Callers hand it reference strings and get results back; policy construction,
frame counts, presentation and export format all come from the configuration
the simulator was built with.
*/
type Simulator interface {

	/*
		Run simulates one policy over refs.

		BEHAVIOR:
		---------
		- Builds a fresh policy with the configured frame count
		- Feeds every reference in order, reporting each step to the sink
		- Returns the complete run (faults, per-step frames, victims)

		ERRORS:
		-------
		- ErrUnknownPolicy   : policy is not FIFO, LRU or OPTIMAL
		- ErrEmptySequence   : refs is empty
		- ctx.Err()          : ctx was done before the run started
	*/
	Run(ctx context.Context, policy eviction.PolicyType, refs []types.Page) (types.RunResult, error)

	/*
		Compare runs every configured policy over its own copy of refs
		and ranks them by page faults, fewest first.

		Ties keep the configured policy order. Every policy with the
		minimum fault count is marked Best.
	*/
	Compare(ctx context.Context, refs []types.Page) (engine.Comparison, error)

	/*
		Export writes summaries of results to path and returns the path written.

		An empty path means a timestamped file in the configured export
		directory, with the extension of the configured compression.
	*/
	Export(path string, results ...types.RunResult) (string, error)

	/*
		Close releases the simulator. Further calls fail with ErrClosed.
		Closing twice is safe.
	*/
	Close() error
}
