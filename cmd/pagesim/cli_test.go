package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/pagesim/config"
	"github.com/krisalay/pagesim/export"
)

//
// ================= HELPER: RUN THE COMMAND LINE =================
//

// resetFlags puts every flag back to its default so each test parses from scratch.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--no-color"))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

const classic = "1 2 3 4 1 2 5 1 2 3 4 5"

//
// ================= COMMANDS =================
//

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "--policy", "lru", "-f", "3", "-r", classic)
	require.NoError(t, err)

	assert.Contains(t, out, "Running LRU (Least Recently Used) Algorithm")
	assert.Contains(t, out, "Step 12/12")
	assert.Contains(t, out, "Total Page Faults: 10")
	assert.NotContains(t, out, "\x1b[")
}

func TestRunCommandErrors(t *testing.T) {
	_, err := execute(t, "run", "--policy", "clock", "-r", classic)
	assert.Error(t, err)

	_, err = execute(t, "run", "-f", "0", "-r", classic)
	assert.Error(t, err)

	_, err = execute(t, "run", "-r", "1 two 3")
	assert.Error(t, err)

	_, err = execute(t, "run")
	assert.ErrorContains(t, err, "no reference string")

	_, err = execute(t, "run", "-r", classic, "--random", "5")
	assert.ErrorContains(t, err, "only one of")
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", "-f", "3", "-r", classic, "--quiet", "--parallel")
	require.NoError(t, err)

	assert.Contains(t, out, "Comparison Results")
	assert.NotContains(t, out, "Step 1/12")
	assert.Regexp(t, `OPTIMAL\s+7\s+Best`, out)
	assert.Regexp(t, `FIFO\s+9\s+77\.8%`, out)
	assert.Regexp(t, `LRU\s+10\s+70\.0%`, out)
}

func TestCompareFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.txt")
	require.NoError(t, os.WriteFile(path, []byte("7 7 7 7\n"), 0o644))

	out, err := execute(t, "compare", "-f", "1", "--file", path, "-q")
	require.NoError(t, err)
	assert.Regexp(t, `FIFO\s+1\s+Best`, out)
}

func TestExportAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.txt.lz4")

	out, err := execute(t, "export", "-f", "3", "-r", classic, "--out", path, "--compression", "lz4")
	require.NoError(t, err)
	assert.Contains(t, out, "Results saved to "+path)
	assert.NotContains(t, out, "Step 1/12")

	summaries, err := export.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "OPTIMAL", summaries[0].Algorithm)

	out, err = execute(t, "show", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Algorithm: OPTIMAL")
	assert.Contains(t, out, "Total Page Faults: 10")
}

func TestExportCompressedToPlainName(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "export", "-r", classic, "--out", filepath.Join(dir, "results.txt"), "--compression", "lz4")
	require.NoError(t, err)
	path := filepath.Join(dir, "results.txt.lz4")
	assert.Contains(t, out, "Results saved to "+path)

	out, err = execute(t, "show", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Algorithm: FIFO")
}

func TestExportSinglePolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fifo.txt")

	_, err := execute(t, "export", "-r", classic, "--out", path, "--policy", "fifo")
	require.NoError(t, err)

	summaries, err := export.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 9, summaries[0].Faults)
}

func TestHelpAlgorithms(t *testing.T) {
	out, err := execute(t, "help-algorithms")
	require.NoError(t, err)
	assert.Contains(t, out, "Belady's anomaly")
}

func TestHelpAlgorithmsHonoursColorSetting(t *testing.T) {
	t.Setenv("PAGESIM_COLOR", "0")
	// pretend stdout is a terminal so only the setting can turn colour off
	was := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = was })
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"help-algorithms"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "Belady's anomaly")
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestConfigFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagesim.json")
	cfg := config.Default()
	cfg.Frames = 4
	cfg.Policies = []string{"lru"}
	require.NoError(t, cfg.SaveFile(path))

	out, err := execute(t, "compare", "--config", path, "-r", classic, "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "Number of Frames : 4")
	assert.Regexp(t, `LRU\s+8\s+Best`, out)
	assert.NotContains(t, out, "FIFO ")

	// flags win over the file
	out, err = execute(t, "compare", "--config", path, "-f", "3", "-r", classic, "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "Number of Frames : 3")
}

//
// ================= INTERACTIVE =================
//

func newTestSession(t *testing.T, input string) (*session, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Color = false
	cfg.ExportDir = t.TempDir()

	var out bytes.Buffer
	s := newSession(context.Background(), cfg, strings.NewReader(input), &out)
	s.seed = func() int64 { return 1 }
	return s, &out
}

func TestInteractiveSession(t *testing.T) {
	input := strings.Join([]string{
		"",      // empty reference string
		classic, // reference string
		"3",     // frames
		"4",     // compare
		"3",     // save
		"1",     // run another
		"9",     // invalid choice
		"1",     // FIFO
		"4",     // exit
	}, "\n") + "\n"

	s, out := newTestSession(t, input)
	require.NoError(t, s.Loop())

	text := out.String()
	assert.Contains(t, text, "Reference string cannot be empty")
	assert.Contains(t, text, "Comparison Results")
	assert.Contains(t, text, "Results saved to ")
	assert.Contains(t, text, "Please enter one of 1, 2, 3, 4, 5")
	assert.Contains(t, text, "FIFO Page Replacement Algorithm")
	assert.Contains(t, text, "Total Page Faults: 9")
	assert.Contains(t, text, "Thank you for using the Page Replacement Algorithm Solver!")

	entries, err := os.ReadDir(s.cfg.ExportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	summaries, err := export.LoadFile(filepath.Join(s.cfg.ExportDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Len(t, summaries, 3)
}

func TestInteractiveSettings(t *testing.T) {
	input := strings.Join([]string{
		"1 2 x",  // malformed
		"random", // sample
		"0",      // invalid frames
		"60",     // large
		"n",      // declined
		"2",      // frames
		"5",      // help
		"2",      // LRU
		"2",      // change settings
		"7 7 7",  // new reference string
		"1",      // frames
		"3",      // optimal
	}, "\n") + "\n"

	s, out := newTestSession(t, input)
	require.NoError(t, s.Loop()) // end of input exits

	text := out.String()
	assert.Contains(t, text, "Please enter only integers")
	assert.Contains(t, text, "Generated: ")
	assert.Contains(t, text, "Number of frames must be a positive integer")
	assert.Contains(t, text, "Large number of frames detected")
	assert.Contains(t, text, "Algorithm Help")
	assert.Contains(t, text, "LRU Page Replacement Algorithm")
	assert.Contains(t, text, "OPTIMAL Page Replacement Algorithm")
	assert.Contains(t, text, "Thank you for using")
	assert.Equal(t, 1, s.frames)
}

func TestInteractiveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, _ := newTestSession(t, classic+"\n")
	s.ctx = ctx
	assert.ErrorIs(t, s.Loop(), context.Canceled)
}
