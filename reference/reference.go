// Package reference is the input side of the simulator: it turns user input,
// files and generators into validated reference sequences and frame counts.
package reference

import (
	"context"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/krisalay/pagesim/types"
)

// LargeFrameCount is the frame count above which traces get hard to read.
const LargeFrameCount = 50

// Parse reads a reference string: integers separated by whitespace and/or commas.
func Parse(s string) ([]types.Page, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	if len(fields) == 0 {
		return nil, types.EmptySequence("parse reference string")
	}

	refs := make([]types.Page, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, types.MalformedInput("parse reference string", f, err)
		}
		refs[i] = types.Page(n)
	}
	return refs, nil
}

// ValidateFrames rejects frame counts below 1.
func ValidateFrames(frames int) error {
	if frames <= 0 {
		return types.InvalidCapacity("validate frames", frames)
	}
	return nil
}

// ParseFrames parses and validates a frame count.
func ParseFrames(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, types.NewError(types.CodeInvalidCapacity, "parse frames",
			"frame count must be a positive integer", err)
	}
	if err := ValidateFrames(n); err != nil {
		return 0, err
	}
	return n, nil
}

// IsLargeFrameCount reports whether frames deserves a readability warning.
func IsLargeFrameCount(frames int) bool {
	return frames > LargeFrameCount
}

// Distinct returns the number of different pages in refs.
func Distinct(refs []types.Page) int {
	seen := make(map[types.Page]struct{}, len(refs))
	for _, p := range refs {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// StringLoader parses a reference string held in memory.
type StringLoader string

func (s StringLoader) Load(ctx context.Context) ([]types.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Parse(string(s))
}

// FileLoader reads a reference string from a text file.
type FileLoader struct {
	Path string
}

func (f FileLoader) Load(ctx context.Context) ([]types.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

const (
	DefaultSampleLength  = 20
	DefaultSampleMaxPage = 10
)

/*
RandomLoader generates a sample reference string.

Pages are drawn uniformly from [0, MaxPage]. Zero values fall back to
DefaultSampleLength and DefaultSampleMaxPage. The same Seed always yields the
same sequence.
*/
type RandomLoader struct {
	Length  int
	MaxPage int
	Seed    int64
}

func (g RandomLoader) Load(ctx context.Context) ([]types.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := g.Length
	if n <= 0 {
		n = DefaultSampleLength
	}
	maxPage := g.MaxPage
	if maxPage <= 0 {
		maxPage = DefaultSampleMaxPage
	}

	r := rand.New(rand.NewSource(g.Seed))
	refs := make([]types.Page, n)
	for i := range refs {
		refs[i] = types.Page(r.Intn(maxPage + 1))
	}
	return refs, nil
}
