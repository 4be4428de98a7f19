package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/krisalay/pagesim/types"
)

const (
	headerWidth    = 60
	algorithmWidth = 50
)

/*
Console is the terminal Sink.

For every run it prints a small header, one line per step (when tracing is on)
and a results summary. Comparison tables, statistics and help text are printed
on request by the caller.

Console is not safe for concurrent use; the runner serialises sink calls.
*/
type Console struct {
	out   io.Writer
	trace bool
	stats bool

	bold   *color.Color
	title  *color.Color
	rule   *color.Color
	minor  *color.Color
	red    *color.Color
	green  *color.Color
	yellow *color.Color
	blue   *color.Color
	purple *color.Color
	cyan   *color.Color

	success *color.Color
	failure *color.Color
	warning *color.Color
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithoutColor strips all ANSI sequences, e.g. for files and tests.
func WithoutColor() ConsoleOption {
	return func(c *Console) {
		for _, col := range c.palette() {
			col.DisableColor()
		}
	}
}

// WithTrace toggles the per-step lines.
func WithTrace(on bool) ConsoleOption {
	return func(c *Console) { c.trace = on }
}

// WithStats prints detailed statistics after each summary.
func WithStats(on bool) ConsoleOption {
	return func(c *Console) { c.stats = on }
}

// NewConsole creates a Console writing to w. Tracing is on by default.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{
		out:    w,
		trace:  true,
		bold:   color.New(color.Bold, color.FgHiWhite),
		title:  color.New(color.Bold, color.FgHiCyan),
		rule:   color.New(color.Bold, color.FgHiMagenta),
		minor:  color.New(color.Bold, color.FgHiBlue),
		red:    color.New(color.FgHiRed),
		green:  color.New(color.FgHiGreen),
		yellow: color.New(color.FgHiYellow),
		blue:   color.New(color.FgHiBlue),
		purple: color.New(color.FgHiMagenta),
		cyan:   color.New(color.FgHiCyan),

		success: color.New(color.Bold, color.FgHiGreen),
		failure: color.New(color.Bold, color.FgHiRed),
		warning: color.New(color.Bold, color.FgHiYellow),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) palette() []*color.Color {
	return []*color.Color{c.bold, c.title, c.rule, c.minor, c.red, c.green, c.yellow, c.blue, c.purple, c.cyan, c.success, c.failure, c.warning}
}

// Header prints a boxed, centred title.
func (c *Console) Header(text string) {
	line := strings.Repeat("=", headerWidth)
	c.title.Fprintln(c.out, line)
	c.bold.Fprintln(c.out, center(text, headerWidth))
	c.title.Fprintln(c.out, line)
}

// AlgorithmHeader prints the smaller header that opens a run.
func (c *Console) AlgorithmHeader(text string) {
	line := strings.Repeat("-", algorithmWidth)
	c.rule.Fprintln(c.out, line)
	c.minor.Fprintln(c.out, center(text, algorithmWidth))
	c.rule.Fprintln(c.out, line)
}

// OnStep prints one trace line. The first step of a run also prints the run header.
func (c *Console) OnStep(policy string, step types.StepResult, total int) {
	if step.Index == 0 {
		c.AlgorithmHeader(policy + " Page Replacement Algorithm")
	}
	if !c.trace {
		return
	}
	fmt.Fprintln(c.out, c.StepLine(step, total))
}

// StepLine formats one step:
//
//	Step 4/12    | Page: 4  | Frames : [4] [2] [3] | Status : FAULT (Replaced : 1)
func (c *Console) StepLine(step types.StepResult, total int) string {
	slots := make([]string, len(step.Frames))
	for i, f := range step.Frames {
		slots[i] = f.String()
	}

	status := c.green.Sprint("HIT")
	if step.Fault {
		status = c.red.Sprint("FAULT")
	}
	victim := ""
	if step.HasEvicted {
		victim = fmt.Sprintf(" (Replaced : %d)", step.Evicted)
	}

	return fmt.Sprintf("%s | %s | Frames : %s | Status : %s%s",
		c.cyan.Sprintf("%-12s", fmt.Sprintf("Step %d/%d", step.Index+1, total)),
		c.yellow.Sprintf("%-8s", fmt.Sprintf("Page: %d", step.Page)),
		strings.Join(slots, " "),
		status,
		victim,
	)
}

// OnComplete prints the results summary of a run.
func (c *Console) OnComplete(result types.RunResult) {
	fmt.Fprintln(c.out)
	c.Header("Results Summary")
	fmt.Fprintf(c.out, "%s %s\n", c.green.Sprint("Algorithm:"), result.Policy)
	fmt.Fprintf(c.out, "%s %s\n", c.green.Sprint("Reference String:"), JoinPages(result.References))
	fmt.Fprintf(c.out, "%s %d\n", c.green.Sprint("Number of Frames:"), result.Frames)
	fmt.Fprintf(c.out, "%s %d\n", c.red.Sprint("Total Page Faults:"), result.Faults)
	fmt.Fprintf(c.out, "%s %d\n", c.blue.Sprint("Total References:"), result.TotalReferences())
	fmt.Fprintf(c.out, "%s %.2f%%\n", c.purple.Sprint("Page Fault Ratio:"), result.FaultRatio()*100)
	if c.stats {
		c.Statistics(result)
	}
	fmt.Fprintln(c.out)
}

// Statistics prints hit/fault counts and ratios of a run.
func (c *Console) Statistics(result types.RunResult) {
	c.Header("Detailed Statistics")
	fmt.Fprintf(c.out, "%s %d\n", c.green.Sprint("Total References :"), result.TotalReferences())
	fmt.Fprintf(c.out, "%s %d\n", c.green.Sprint("Page Hits :"), result.Hits())
	fmt.Fprintf(c.out, "%s %d\n", c.red.Sprint("Page Faults :"), result.Faults)
	fmt.Fprintf(c.out, "%s %d\n", c.red.Sprint("Evictions :"), result.Evictions())
	fmt.Fprintf(c.out, "%s %.2f%%\n", c.blue.Sprint("Hit Ratio :"), result.HitRatio()*100)
	fmt.Fprintf(c.out, "%s %.2f%%\n", c.blue.Sprint("Fault Ratio :"), result.FaultRatio()*100)
	fmt.Fprintf(c.out, "%s %d\n", c.purple.Sprint("Frames Used :"), result.Frames)
	fmt.Fprintf(c.out, "%s %d\n", c.yellow.Sprint("Reference String Length :"), len(result.References))
}

// ComparisonRow is one line of the comparison table.
type ComparisonRow struct {
	Policy     string
	Faults     int
	Efficiency string // "Best" or a percentage
	Best       bool
}

// Comparison prints the comparison table.
func (c *Console) Comparison(refs []types.Page, frames int, rows []ComparisonRow) {
	c.Header("Comparison Results")
	fmt.Fprintf(c.out, "%s %s\n", c.blue.Sprint("Reference String :"), JoinPages(refs))
	fmt.Fprintf(c.out, "%s %d\n\n", c.blue.Sprint("Number of Frames :"), frames)
	fmt.Fprintf(c.out, "%-15s %-15s %-15s\n", "Algorithm", "Page Faults", "Efficiency")
	fmt.Fprintln(c.out, strings.Repeat("-", 45))
	for _, r := range rows {
		name := fmt.Sprintf("%-15s", r.Policy)
		if r.Best {
			name = c.green.Sprint(name)
		}
		fmt.Fprintf(c.out, "%s %-15d %-15s\n", name, r.Faults, r.Efficiency)
	}
}

// Help prints a short description of every algorithm.
func (c *Console) Help() {
	c.Header("Algorithm Help")
	for _, h := range helpText {
		c.cyan.Fprintf(c.out, "%s:\n", h.title)
		for _, line := range h.lines {
			fmt.Fprintf(c.out, "  - %s\n", line)
		}
		fmt.Fprintln(c.out)
	}
}

var helpText = []struct {
	title string
	lines []string
}{
	{"FIFO (First-In-First-Out)", []string{
		"Replaces the oldest page in memory",
		"Simple to implement but can suffer from Belady's anomaly",
	}},
	{"LRU (Least Recently Used)", []string{
		"Replaces the page that hasn't been used for the longest time",
		"More efficient than FIFO but harder to implement",
	}},
	{"OPT (Optimal)", []string{
		"Replaces the page that won't be used for the longest time in future",
		"Theoretical optimal algorithm (impossible to implement in practice)",
		"Used as a benchmark for other algorithms",
	}},
}

// Success, Error, Warning and Info print one status message each.
func (c *Console) Success(msg string) { c.success.Fprintf(c.out, " ✓ %s\n", msg) }
func (c *Console) Error(msg string)   { c.failure.Fprintf(c.out, " ✗ %s\n", msg) }
func (c *Console) Warning(msg string) { c.warning.Fprintf(c.out, " ⚠ %s\n", msg) }
func (c *Console) Info(msg string)    { c.blue.Fprintf(c.out, "ℹ %s\n", msg) }

// Prompt prints an input prompt without a newline.
func (c *Console) Prompt(msg string) { c.cyan.Fprint(c.out, msg) }

// JoinPages renders pages space separated.
func JoinPages(refs []types.Page) string {
	parts := make([]string, len(refs))
	for i, p := range refs {
		parts[i] = strconv.Itoa(int(p))
	}
	return strings.Join(parts, " ")
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
