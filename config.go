package embeval

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config configures an evaluation.
type Config struct {
	// Lower lowercases question files before lookup. When false, words
	// that are not found are retried capitalized and title-cased.
	Lower bool `yaml:"lower"`

	// Verbose logs progress and a summary at info level.
	Verbose bool `yaml:"verbose"`

	// RowLimit is the maximum number of queries scored at once.
	RowLimit int `yaml:"row_limit"`

	// Backend is the name of the compute backend, see Backends.
	Backend string `yaml:"backend"`

	// CheckMemory verifies that a block fits in available memory before
	// its buffers are allocated.
	CheckMemory bool `yaml:"check_memory"`

	// Format of embedding files: "bin", "text" or "auto".
	Format string `yaml:"format"`

	// Logger receives warnings, and progress when Verbose is set. Nil
	// means slog.Default() when Verbose is set and no logging otherwise.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Lower:       true,
		RowLimit:    DefaultRowLimit,
		Backend:     DefaultBackend,
		CheckMemory: true,
		Format:      FormatAuto,
	}
}

// LoadConfig reads a YAML configuration file. Settings that are absent from
// the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.RowLimit <= 0 {
		return fmt.Errorf("row_limit must be positive, was %d", c.RowLimit)
	}

	if _, err := NewBackend(c.Backend); err != nil {
		return err
	}

	switch c.Format {
	case FormatAuto, FormatBinary, FormatText:
	default:
		return fmt.Errorf("unknown embedding format %q", c.Format)
	}

	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	if c.Verbose {
		return slog.Default()
	}
	return slog.New(discardHandler)
}
