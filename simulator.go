package pagesim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/krisalay/pagesim/api"
	"github.com/krisalay/pagesim/config"
	"github.com/krisalay/pagesim/engine"
	"github.com/krisalay/pagesim/eviction"
	"github.com/krisalay/pagesim/export"
	"github.com/krisalay/pagesim/types"
)

// ErrClosed is returned by every operation on a closed Simulator.
var ErrClosed = errors.New("simulator is closed")

var _ api.Simulator = (*Simulator)(nil)

/*
Simulator is the main implementation of api.Simulator.
This struct is the orchestrator that connects:
- configuration (frames, policies, export settings)
- policy construction
- the runner (sink, metrics, logging, parallel comparisons)
- export write policies
*/
type Simulator struct {
	// cfg is a private copy; later changes by the caller have no effect.
	cfg *config.Config

	// runner drives every run and comparison.
	runner *engine.Runner

	// compression is cfg.Compression, resolved once.
	compression export.Compression

	// now is the clock used for default export file names.
	now func() time.Time

	closed atomic.Bool
}

/*
New creates a Simulator from cfg. A nil cfg means config.Default().

The runner is built from the configuration (parallel comparisons, a stderr
text logger at the configured level); opts are applied afterwards and win.
*/
func New(cfg *config.Config, opts ...engine.Option) (*Simulator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.SlogLevel()
	compression, _ := cfg.ExportCompression()

	base := []engine.Option{
		engine.WithParallel(cfg.Parallel),
		engine.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))),
	}
	runner := engine.NewRunner(append(base, opts...)...)

	return &Simulator{
		cfg:         cfg.Clone(),
		runner:      runner,
		compression: compression,
		now:         time.Now,
	}, nil
}

// Config returns a copy of the active configuration.
func (s *Simulator) Config() *config.Config {
	return s.cfg.Clone()
}

// Runner exposes the underlying runner, e.g. to read its metrics.
func (s *Simulator) Runner() *engine.Runner {
	return s.runner
}

/*
Run simulates one policy over refs with the configured frame count.
*/
func (s *Simulator) Run(ctx context.Context, policy eviction.PolicyType, refs []types.Page) (types.RunResult, error) {
	if s.closed.Load() {
		return types.RunResult{}, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return types.RunResult{}, err
	}

	p, err := eviction.NewEvictionPolicy(policy, s.cfg.Frames)
	if err != nil {
		return types.RunResult{}, err
	}
	return s.runner.RunSingle(p, refs)
}

/*
Compare runs every configured policy over refs and ranks the results.
Each policy is a fresh instance.
*/
func (s *Simulator) Compare(ctx context.Context, refs []types.Page) (engine.Comparison, error) {
	if s.closed.Load() {
		return engine.Comparison{}, ErrClosed
	}

	policyTypes, err := s.cfg.PolicyTypes()
	if err != nil {
		return engine.Comparison{}, err
	}

	policies := make([]eviction.Policy, 0, len(policyTypes))
	for _, pt := range policyTypes {
		p, err := eviction.NewEvictionPolicy(pt, s.cfg.Frames)
		if err != nil {
			return engine.Comparison{}, err
		}
		policies = append(policies, p)
	}
	return s.runner.RunComparison(ctx, policies, refs)
}

/*
Export writes results through the configured write policy and returns the
path written. The compression suffix of path is adjusted to the configured
compression, so the returned path always loads back with export.LoadFile.

	WriteThrough : every result rewrites the file before the next is handled
	WriteBack    : results are queued to a background writer, flushed on return
*/
func (s *Simulator) Export(path string, results ...types.RunResult) (string, error) {
	if s.closed.Load() {
		return "", ErrClosed
	}
	if len(results) == 0 {
		return "", fmt.Errorf("export: no results")
	}
	if path == "" {
		path = filepath.Join(s.cfg.ExportDir, export.DefaultFileName(s.now(), s.compression))
	}
	// LoadFile picks the decoder from the name
	path = s.compression.Rename(path)

	var w export.WritePolicy
	switch s.cfg.WriteMode {
	case config.WriteBack:
		w = export.NewWriteBackPolicy(path, s.compression, s.cfg.WriteBuffer)
	default:
		w = export.NewWriteThroughPolicy(path, s.compression)
	}

	for _, res := range results {
		w.OnComplete(res)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	s.runner.Logger.Info("results exported", "path", path, "runs", len(results), "compression", string(s.compression))
	return path, nil
}

// Close marks the simulator closed. It holds no background resources.
func (s *Simulator) Close() error {
	s.closed.Store(true)
	return nil
}
