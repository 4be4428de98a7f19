package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/krisalay/pagesim/eviction"
	"github.com/krisalay/pagesim/export"
	"github.com/krisalay/pagesim/reference"
)

// Write modes for exports.
const (
	WriteThrough = "through"
	WriteBack    = "back"
)

// Config holds simulator configuration
type Config struct {
	// Simulation
	Frames   int      `json:"frames"`   // Number of page frames
	Policies []string `json:"policies"` // Policies used by compare, in run order
	Parallel bool     `json:"parallel"` // Run compared policies concurrently

	// Presentation
	Color bool `json:"color"` // Coloured console output
	Trace bool `json:"trace"` // Print one line per step
	Stats bool `json:"stats"` // Print detailed statistics after each run

	// Export
	ExportDir   string `json:"export_dir"`   // Directory for result files
	Compression string `json:"compression"`  // none, snappy or lz4
	WriteMode   string `json:"write_mode"`   // through or back
	WriteBuffer int    `json:"write_buffer"` // Queue size of the write-back exporter

	LogLevel string `json:"log_level"` // debug, info, warn, error
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Frames:      3,
		Policies:    []string{"fifo", "lru", "optimal"},
		Parallel:    false,
		Color:       true,
		Trace:       true,
		Stats:       false,
		ExportDir:   ".",
		Compression: string(export.CompressionNone),
		WriteMode:   WriteThrough,
		WriteBuffer: 16,
		LogLevel:    "warn",
	}
}

// LoadFile loads configuration from a JSON file.
// Keys missing from the file keep their default value.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadEnv applies PAGESIM_* environment variables on top of cfg.
// Unset or unparsable variables leave the current value alone.
func LoadEnv(cfg *Config) *Config {
	if cfg == nil {
		cfg = Default()
	}

	if val := os.Getenv("PAGESIM_FRAMES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Frames = n
		}
	}

	if val := os.Getenv("PAGESIM_POLICIES"); val != "" {
		cfg.Policies = splitList(val)
	}

	if val := os.Getenv("PAGESIM_PARALLEL"); val != "" {
		cfg.Parallel = parseBool(val)
	}

	if val := os.Getenv("PAGESIM_COLOR"); val != "" {
		cfg.Color = parseBool(val)
	}

	if val := os.Getenv("PAGESIM_TRACE"); val != "" {
		cfg.Trace = parseBool(val)
	}

	if val := os.Getenv("PAGESIM_STATS"); val != "" {
		cfg.Stats = parseBool(val)
	}

	if val := os.Getenv("PAGESIM_EXPORT_DIR"); val != "" {
		cfg.ExportDir = val
	}

	if val := os.Getenv("PAGESIM_COMPRESSION"); val != "" {
		cfg.Compression = val
	}

	if val := os.Getenv("PAGESIM_WRITE_MODE"); val != "" {
		cfg.WriteMode = val
	}

	if val := os.Getenv("PAGESIM_WRITE_BUFFER"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.WriteBuffer = n
		}
	}

	if val := os.Getenv("PAGESIM_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}

	return cfg
}

func parseBool(val string) bool {
	return val == "true" || val == "1"
}

func splitList(val string) []string {
	return strings.FieldsFunc(val, func(r rune) bool { return r == ',' || r == ' ' })
}

// SaveFile saves the configuration to a JSON file
func (c *Config) SaveFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := reference.ValidateFrames(c.Frames); err != nil {
		return err
	}

	if len(c.Policies) == 0 {
		return fmt.Errorf("at least one policy is required")
	}
	if _, err := c.PolicyTypes(); err != nil {
		return err
	}

	if _, err := c.ExportCompression(); err != nil {
		return err
	}

	if c.ExportDir == "" {
		return fmt.Errorf("export directory cannot be empty")
	}

	switch c.WriteMode {
	case WriteThrough:
	case WriteBack:
		if c.WriteBuffer <= 0 {
			return fmt.Errorf("write buffer must be greater than 0 in write-back mode")
		}
	default:
		return fmt.Errorf("invalid write mode: %s (must be through or back)", c.WriteMode)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// PolicyTypes resolves Policies, keeping their order.
func (c *Config) PolicyTypes() ([]eviction.PolicyType, error) {
	out := make([]eviction.PolicyType, 0, len(c.Policies))
	for _, name := range c.Policies {
		t, err := eviction.ParsePolicyType(name)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// ExportCompression resolves Compression.
func (c *Config) ExportCompression() (export.Compression, error) {
	return export.ParseCompression(c.Compression)
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	clone.Policies = append([]string(nil), c.Policies...)
	return &clone
}
