package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/krisalay/pagesim"
	"github.com/krisalay/pagesim/config"
	"github.com/krisalay/pagesim/engine"
	"github.com/krisalay/pagesim/reference"
	"github.com/krisalay/pagesim/render"
	"github.com/krisalay/pagesim/types"
)

// flags shared by every command
var (
	configPath string
	frames     int
	refsFlag   string
	refsFile   string
	randomLen  int
	randomSeed int64
	noColor    bool
	logLevel   string
	parallel   bool
	stats      bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "pagesim",
	Short: "pagesim simulates FIFO, LRU and Optimal page replacement over a reference string.",
	Long: `pagesim simulates FIFO, LRU and Optimal page replacement over a reference string,
prints every step, counts page faults and compares the algorithms.

Without a subcommand it starts the interactive menu.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd, os.Stdin)
	},
}

// AddCommand adds a subcommand to the root command.
func AddCommand(cmdline *cobra.Command) {
	rootCmd.AddCommand(cmdline)
}

// Execute runs the command line. Cancelling ctx stops runs that have not started yet.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "JSON configuration file")
	pf.IntVarP(&frames, "frames", "f", 0, "number of page frames")
	pf.StringVarP(&refsFlag, "refs", "r", "", `reference string, e.g. "1 2 3 4 1 2 5"`)
	pf.StringVar(&refsFile, "file", "", "read the reference string from a file")
	pf.IntVar(&randomLen, "random", 0, "generate a random reference string of this length")
	pf.Int64Var(&randomSeed, "seed", 0, "seed for --random (default: current time)")
	pf.BoolVar(&noColor, "no-color", false, "disable coloured output")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVar(&parallel, "parallel", false, "run compared algorithms concurrently")
	pf.BoolVar(&stats, "stats", false, "print detailed statistics after each run")
	pf.BoolVarP(&quiet, "quiet", "q", false, "do not print individual steps")
}

/*
loadConfig resolves the configuration in order of precedence:

	defaults < --config file < PAGESIM_* environment < flags
*/
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg = config.LoadEnv(cfg)

	flags := cmd.Flags()
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("no-color") {
		cfg.Color = !noColor
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}
	if flags.Changed("stats") {
		cfg.Stats = stats
	}
	if flags.Changed("quiet") {
		cfg.Trace = !quiet
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app bundles what a command needs to talk to the user and run simulations.
type app struct {
	cfg      *config.Config
	console  *render.Console
	logger   *slog.Logger
	counters *engine.Counters
	sim      *pagesim.Simulator
}

func newApp(cmd *cobra.Command, out io.Writer) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return buildApp(cfg, out)
}

func buildApp(cfg *config.Config, out io.Writer) (*app, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := append(colorOptions(cfg), render.WithTrace(cfg.Trace), render.WithStats(cfg.Stats))
	console := render.NewConsole(out, opts...)

	counters := &engine.Counters{}
	sim, err := pagesim.New(cfg,
		engine.WithSink(console),
		engine.WithMetrics(counters),
		engine.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, console: console, logger: logger, counters: counters, sim: sim}, nil
}

func colorOptions(cfg *config.Config) []render.ConsoleOption {
	if cfg.Color {
		return nil
	}
	return []render.ConsoleOption{render.WithoutColor()}
}

func (a *app) Close() error {
	a.logger.Debug("simulator closed", "metrics", a.counters.String())
	return a.sim.Close()
}

// loader picks the reference source from --refs, --file or --random.
func loader() (types.Loader, error) {
	set := 0
	for _, on := range []bool{refsFlag != "", refsFile != "", randomLen > 0} {
		if on {
			set++
		}
	}
	switch {
	case set > 1:
		return nil, fmt.Errorf("use only one of --refs, --file and --random")
	case refsFlag != "":
		return reference.StringLoader(refsFlag), nil
	case refsFile != "":
		return reference.FileLoader{Path: refsFile}, nil
	case randomLen > 0:
		seed := randomSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return reference.RandomLoader{Length: randomLen, Seed: seed}, nil
	default:
		return nil, fmt.Errorf("no reference string: use --refs, --file or --random")
	}
}

func loadReferences(ctx context.Context) ([]types.Page, error) {
	l, err := loader()
	if err != nil {
		return nil, err
	}
	refs, err := l.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference string: %w", err)
	}
	return refs, nil
}
