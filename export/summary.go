// Package export saves run summaries as human readable text and reads them back.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/krisalay/pagesim/reference"
	"github.com/krisalay/pagesim/types"
)

// Summary is what gets persisted of a run.
type Summary struct {
	Algorithm  string
	References []types.Page
	Frames     int
	Faults     int
}

// FromResult keeps the exportable part of a run.
func FromResult(r types.RunResult) Summary {
	return Summary{
		Algorithm:  r.Policy,
		References: append([]types.Page(nil), r.References...),
		Frames:     r.Frames,
		Faults:     r.Faults,
	}
}

const (
	keyAlgorithm  = "Algorithm"
	keyReferences = "Reference String"
	keyFrames     = "Frames"
	keyFaults     = "Total Page Faults"
)

/*
Write renders summaries in the text format:

	Algorithm: FIFO
	Reference String: 1 2 3 4 1 2 5
	Frames: 3
	Total Page Faults: 7

Summaries are separated by one blank line.
*/
func Write(w io.Writer, summaries ...Summary) error {
	bw := bufio.NewWriter(w)
	for i, s := range summaries {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "%s: %s\n", keyAlgorithm, s.Algorithm)
		fmt.Fprintf(bw, "%s: %s\n", keyReferences, joinPages(s.References))
		fmt.Fprintf(bw, "%s: %d\n", keyFrames, s.Frames)
		fmt.Fprintf(bw, "%s: %d\n", keyFaults, s.Faults)
	}
	return bw.Flush()
}

// Read parses what Write produced. Unknown keys are ignored.
func Read(r io.Reader) ([]Summary, error) {
	var (
		out     []Summary
		cur     Summary
		started bool
		line    int
	)
	flush := func() {
		if started {
			out = append(out, cur)
		}
		cur, started = Summary{}, false
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			flush()
			continue
		}
		key, value, ok := strings.Cut(text, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected \"key: value\", got %q", line, text)
		}
		value = strings.TrimSpace(value)
		started = true

		var err error
		switch strings.TrimSpace(key) {
		case keyAlgorithm:
			cur.Algorithm = value
		case keyReferences:
			cur.References, err = reference.Parse(value)
		case keyFrames:
			cur.Frames, err = strconv.Atoi(value)
		case keyFaults:
			cur.Faults, err = strconv.Atoi(value)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return out, nil
}

func joinPages(refs []types.Page) string {
	parts := make([]string, len(refs))
	for i, p := range refs {
		parts[i] = strconv.Itoa(int(p))
	}
	return strings.Join(parts, " ")
}
