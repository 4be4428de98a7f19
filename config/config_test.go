package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/pagesim/eviction"
	"github.com/krisalay/pagesim/export"
	"github.com/krisalay/pagesim/types"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3, cfg.Frames)
	assert.True(t, cfg.Color)
	assert.True(t, cfg.Trace)
	assert.False(t, cfg.Parallel)
	assert.Equal(t, WriteThrough, cfg.WriteMode)
	require.NoError(t, cfg.Validate())

	pts, err := cfg.PolicyTypes()
	require.NoError(t, err)
	assert.Equal(t, eviction.AllPolicyTypes(), pts)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid config", func(*Config) {}, true},
		{"zero frames", func(c *Config) { c.Frames = 0 }, false},
		{"negative frames", func(c *Config) { c.Frames = -2 }, false},
		{"no policies", func(c *Config) { c.Policies = nil }, false},
		{"unknown policy", func(c *Config) { c.Policies = []string{"fifo", "clock"} }, false},
		{"numeric policies", func(c *Config) { c.Policies = []string{"3", "1"} }, true},
		{"bad compression", func(c *Config) { c.Compression = "gzip" }, false},
		{"lz4 compression", func(c *Config) { c.Compression = "lz4" }, true},
		{"empty export dir", func(c *Config) { c.ExportDir = "" }, false},
		{"bad write mode", func(c *Config) { c.WriteMode = "sideways" }, false},
		{"write back without buffer", func(c *Config) { c.WriteMode = WriteBack; c.WriteBuffer = 0 }, false},
		{"write back", func(c *Config) { c.WriteMode = WriteBack }, true},
		{"invalid log level", func(c *Config) { c.LogLevel = "loud" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateTypedErrors(t *testing.T) {
	cfg := Default()
	cfg.Frames = 0
	assert.ErrorIs(t, cfg.Validate(), types.ErrInvalidCapacity)

	cfg = Default()
	cfg.Policies = []string{"mru"}
	assert.ErrorIs(t, cfg.Validate(), types.ErrUnknownPolicy)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "pagesim.json")

	original := Default()
	original.Frames = 4
	original.Policies = []string{"lru", "opt"}
	original.Compression = "snappy"
	original.LogLevel = "debug"
	require.NoError(t, original.SaveFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)

	c, err := loaded.ExportCompression()
	require.NoError(t, err)
	assert.Equal(t, export.CompressionSnappy, c)
}

func TestLoadFilePartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"frames": 7}`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Frames)
	assert.Equal(t, Default().Policies, cfg.Policies)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile("/nonexistent/pagesim.json")
	assert.Error(t, err)

	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"frames": `), 0o644))
	_, err = LoadFile(broken)
	assert.ErrorContains(t, err, "parse")

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"frames": 0}`), 0o644))
	_, err = LoadFile(invalid)
	assert.ErrorIs(t, err, types.ErrInvalidCapacity)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PAGESIM_FRAMES", "5")
	t.Setenv("PAGESIM_POLICIES", "lru, optimal")
	t.Setenv("PAGESIM_PARALLEL", "1")
	t.Setenv("PAGESIM_COLOR", "false")
	t.Setenv("PAGESIM_TRACE", "0")
	t.Setenv("PAGESIM_STATS", "true")
	t.Setenv("PAGESIM_EXPORT_DIR", "/tmp/out")
	t.Setenv("PAGESIM_COMPRESSION", "lz4")
	t.Setenv("PAGESIM_WRITE_MODE", "back")
	t.Setenv("PAGESIM_WRITE_BUFFER", "64")
	t.Setenv("PAGESIM_LOG_LEVEL", "debug")

	cfg := LoadEnv(nil)
	assert.Equal(t, 5, cfg.Frames)
	assert.Equal(t, []string{"lru", "optimal"}, cfg.Policies)
	assert.True(t, cfg.Parallel)
	assert.False(t, cfg.Color)
	assert.False(t, cfg.Trace)
	assert.True(t, cfg.Stats)
	assert.Equal(t, "/tmp/out", cfg.ExportDir)
	assert.Equal(t, "lz4", cfg.Compression)
	assert.Equal(t, WriteBack, cfg.WriteMode)
	assert.Equal(t, 64, cfg.WriteBuffer)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvKeepsValues(t *testing.T) {
	t.Setenv("PAGESIM_FRAMES", "many")
	t.Setenv("PAGESIM_WRITE_BUFFER", "big")

	base := Default()
	base.Frames = 9
	cfg := LoadEnv(base)
	assert.Same(t, base, cfg)
	assert.Equal(t, 9, cfg.Frames)
	assert.Equal(t, 16, cfg.WriteBuffer)
}

func TestSlogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		cfg := Default()
		cfg.LogLevel = in
		got, err := cfg.SlogLevel()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestClone(t *testing.T) {
	original := Default()
	clone := original.Clone()
	assert.Equal(t, original, clone)

	clone.Frames = 10
	clone.Policies[0] = "lru"
	assert.Equal(t, 3, original.Frames)
	assert.Equal(t, "fifo", original.Policies[0])
}
