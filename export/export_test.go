package export_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/pagesim/export"
	"github.com/krisalay/pagesim/render"
	"github.com/krisalay/pagesim/types"
)

var (
	_ render.Sink        = (*export.WriteThroughPolicy)(nil)
	_ render.Sink        = (*export.WriteBackPolicy)(nil)
	_ export.WritePolicy = (*export.WriteBackPolicy)(nil)
)

func sampleSummaries() []export.Summary {
	refs := []types.Page{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}
	return []export.Summary{
		{Algorithm: "FIFO", References: refs, Frames: 3, Faults: 9},
		{Algorithm: "LRU", References: refs, Frames: 3, Faults: 10},
		{Algorithm: "OPTIMAL", References: []types.Page{-1, 0}, Frames: 1, Faults: 2},
	}
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, sampleSummaries()[:2]...))

	want := strings.Join([]string{
		"Algorithm: FIFO",
		"Reference String: 1 2 3 4 1 2 5 1 2 3 4 5",
		"Frames: 3",
		"Total Page Faults: 9",
		"",
		"Algorithm: LRU",
		"Reference String: 1 2 3 4 1 2 5 1 2 3 4 5",
		"Frames: 3",
		"Total Page Faults: 10",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, sampleSummaries()...))

	got, err := export.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleSummaries(), got)
}

func TestReadErrors(t *testing.T) {
	_, err := export.Read(strings.NewReader("Algorithm FIFO\n"))
	assert.Error(t, err)

	_, err = export.Read(strings.NewReader("Algorithm: FIFO\nFrames: three\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = export.Read(strings.NewReader("Reference String: 1 x\n"))
	assert.ErrorIs(t, err, types.ErrMalformedInput)

	got, err := export.Read(strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFromResult(t *testing.T) {
	res := types.RunResult{Policy: "LRU", Frames: 2, References: []types.Page{1, 2, 1}, Faults: 2}
	s := export.FromResult(res)
	assert.Equal(t, export.Summary{Algorithm: "LRU", References: []types.Page{1, 2, 1}, Frames: 2, Faults: 2}, s)

	res.References[0] = 9
	assert.Equal(t, types.Page(1), s.References[0])
}

func TestCompressionRoundTrip(t *testing.T) {
	for _, c := range []export.Compression{export.CompressionNone, export.CompressionSnappy, export.CompressionLZ4} {
		t.Run(string(c), func(t *testing.T) {
			data, err := export.Encode(c, sampleSummaries()...)
			require.NoError(t, err)

			got, err := export.Decode(data, c)
			require.NoError(t, err)
			assert.Equal(t, sampleSummaries(), got)

			path := filepath.Join(t.TempDir(), export.DefaultFileName(time.Unix(1700000000, 0), c))
			require.NoError(t, export.SaveFile(path, c, sampleSummaries()...))
			assert.Equal(t, c, export.DetectCompression(path))

			loaded, err := export.LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, sampleSummaries(), loaded)
		})
	}
}

func TestCompressionNames(t *testing.T) {
	for in, want := range map[string]export.Compression{
		"":       export.CompressionNone,
		"none":   export.CompressionNone,
		"Snappy": export.CompressionSnappy,
		"sz":     export.CompressionSnappy,
		"lz4":    export.CompressionLZ4,
	} {
		got, err := export.ParseCompression(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := export.ParseCompression("zstd")
	assert.Error(t, err)

	assert.Equal(t, "page_replacement_results_1700000000.txt",
		export.DefaultFileName(time.Unix(1700000000, 0), export.CompressionNone))
	assert.Equal(t, ".txt.lz4", export.CompressionLZ4.Extension())
}

func TestRename(t *testing.T) {
	tests := []struct {
		path string
		c    export.Compression
		want string
	}{
		{"out.txt", export.CompressionNone, "out.txt"},
		{"out.txt", export.CompressionLZ4, "out.txt.lz4"},
		{"out.txt", export.CompressionSnappy, "out.txt.sz"},
		{"out.txt.sz", export.CompressionNone, "out.txt"},
		{"out.txt.sz", export.CompressionLZ4, "out.txt.lz4"},
		{"out.txt.snappy", export.CompressionSnappy, "out.txt.snappy"},
		{"out.lz4.sz", export.CompressionNone, "out"},
		{"results", export.CompressionLZ4, "results.lz4"},
	}
	for _, tt := range tests {
		got := tt.c.Rename(tt.path)
		assert.Equal(t, tt.want, got, tt.path)
		assert.Equal(t, tt.c, export.DetectCompression(got), tt.path)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	_, err := export.Decode([]byte("definitely not snappy"), export.CompressionSnappy)
	assert.Error(t, err)
	_, err = export.Decode([]byte("definitely not lz4"), export.CompressionLZ4)
	assert.Error(t, err)
}

func TestSaveFileIsReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	require.NoError(t, export.SaveFile(path, export.CompressionNone, sampleSummaries()[0]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Algorithm: FIFO\n"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func runResults() []types.RunResult {
	var out []types.RunResult
	for _, s := range sampleSummaries() {
		out = append(out, types.RunResult{Policy: s.Algorithm, References: s.References, Frames: s.Frames, Faults: s.Faults})
	}
	return out
}

func TestWriteThroughPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "through.txt")
	w := export.NewWriteThroughPolicy(path, export.CompressionNone)

	results := runResults()
	w.OnComplete(results[0])

	// written before OnComplete returns
	got, err := export.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	w.OnComplete(results[1])
	require.NoError(t, w.Close())

	got, err = export.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleSummaries()[:2], got)
}

func TestWriteBackPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "back.txt.sz")
	w := export.NewWriteBackPolicy(path, export.CompressionSnappy, 1)

	for _, r := range runResults() {
		w.OnComplete(r)
	}
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	got, err := export.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleSummaries(), got)
}

func TestWriteBackIgnoresRunsAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "back.txt")
	w := export.NewWriteBackPolicy(path, export.CompressionNone, 1)

	results := runResults()
	w.OnComplete(results[0])
	require.NoError(t, w.Close())

	assert.NotPanics(t, func() { w.OnComplete(results[1]) })

	got, err := export.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleSummaries()[:1], got)
}

func TestWriteThroughReportsErrors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	// the parent of the export path is a regular file
	w := export.NewWriteThroughPolicy(filepath.Join(blocker, "out.txt"), export.CompressionNone)
	w.OnComplete(runResults()[0])
	assert.Error(t, w.Close())
}
