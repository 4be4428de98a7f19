package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/krisalay/pagesim/eviction"
	"github.com/krisalay/pagesim/export"
	"github.com/krisalay/pagesim/reference"
	"github.com/krisalay/pagesim/render"
	"github.com/krisalay/pagesim/types"
)

var (
	policyName   string
	exportPolicy string
	outPath      string
	compression  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one algorithm step by step",
	Example: `  pagesim run --policy lru -f 3 -r "1 2 3 4 1 2 5 1 2 3 4 5"
  pagesim run --policy opt --random 30`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pt, err := eviction.ParsePolicyType(policyName)
		if err != nil {
			return err
		}
		a, err := newApp(cmd, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()

		refs, err := loadReferences(cmd.Context())
		if err != nil {
			return err
		}
		warnLargeFrames(a)

		a.console.Header("Running " + pt.Description() + " Algorithm")
		_, err = a.sim.Run(cmd.Context(), pt, refs)
		return err
	},
}

var compareCmd = &cobra.Command{
	Use:     "compare",
	Short:   "Run every configured algorithm and rank them by page faults",
	Example: `  pagesim compare -f 3 -r "1 2 3 4 1 2 5 1 2 3 4 5" --quiet`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()

		refs, err := loadReferences(cmd.Context())
		if err != nil {
			return err
		}
		warnLargeFrames(a)

		a.console.Header("Algorithm Comparison")
		cmp, err := a.sim.Compare(cmd.Context(), refs)
		if err != nil {
			return err
		}
		a.console.Comparison(refs, a.cfg.Frames, cmp.Rows())
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Compare the algorithms and save the results to a file",
	Example: `  pagesim export -r "7 0 1 2 0 3 0 4" -f 3 --compression lz4
  pagesim export --random 50 --out results.txt --policy fifo`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("compression") {
			cfg.Compression = compression
		}
		// runs are silent, only the outcome is printed
		a, err := buildApp(cfg, io.Discard)
		if err != nil {
			return err
		}
		defer a.Close()
		console := render.NewConsole(cmd.OutOrStdout(), colorOptions(cfg)...)

		refs, err := loadReferences(cmd.Context())
		if err != nil {
			return err
		}

		var results []types.RunResult
		if exportPolicy != "" {
			pt, err := eviction.ParsePolicyType(exportPolicy)
			if err != nil {
				return err
			}
			res, err := a.sim.Run(cmd.Context(), pt, refs)
			if err != nil {
				return err
			}
			results = append(results, res)
		} else {
			cmp, err := a.sim.Compare(cmd.Context(), refs)
			if err != nil {
				return err
			}
			results = cmp.Runs()
		}

		path, err := a.sim.Export(outPath, results...)
		if err != nil {
			console.Error(err.Error())
			return err
		}
		console.Success("Results saved to " + path)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [export file]",
	Short: "Print the results stored in an export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summaries, err := export.LoadFile(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		console := render.NewConsole(cmd.OutOrStdout(), colorOptions(cfg)...)
		if len(summaries) == 0 {
			console.Warning("No results in " + args[0])
			return nil
		}
		for _, s := range summaries {
			console.OnComplete(types.RunResult{
				Policy:     s.Algorithm,
				Frames:     s.Frames,
				References: s.References,
				Faults:     s.Faults,
			})
		}
		return nil
	},
}

var helpAlgorithmsCmd = &cobra.Command{
	Use:   "help-algorithms",
	Short: "Describe the page replacement algorithms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		render.NewConsole(cmd.OutOrStdout(), colorOptions(cfg)...).Help()
		return nil
	},
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start the interactive menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd, os.Stdin)
	},
}

func warnLargeFrames(a *app) {
	if reference.IsLargeFrameCount(a.cfg.Frames) {
		a.console.Warning(fmt.Sprintf("Large number of frames (%d) detected. This may affect display readability.", a.cfg.Frames))
	}
}

func init() {
	runCmd.Flags().StringVarP(&policyName, "policy", "p", "fifo", "algorithm: fifo, lru or opt")
	exportCmd.Flags().StringVarP(&exportPolicy, "policy", "p", "", "export a single algorithm instead of all")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: timestamped file in the export directory)")
	exportCmd.Flags().StringVar(&compression, "compression", "", "none, snappy or lz4")

	AddCommand(runCmd)
	AddCommand(compareCmd)
	AddCommand(exportCmd)
	AddCommand(showCmd)
	AddCommand(helpAlgorithmsCmd)
	AddCommand(interactiveCmd)
}
