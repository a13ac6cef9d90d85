package config

import (
	"fmt"

	"dcmsort/internal/pattern"
)

// Validate checks file-backed settings for values the run cannot work with.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}

	switch c.Metadata.Adapter {
	case "auto", "native", "dcmdump":
	default:
		return fmt.Errorf("metadata.adapter: unsupported value %q", c.Metadata.Adapter)
	}

	if !pattern.HasFields(c.Sorting.DefaultPattern) {
		return fmt.Errorf("sorting.default_pattern: %q has no fields", c.Sorting.DefaultPattern)
	}
	if _, err := pattern.Compile(c.Sorting.DefaultPattern); err != nil {
		return fmt.Errorf("sorting.default_pattern: %w", err)
	}

	if c.Selftest.ExpectedSize < 0 {
		return fmt.Errorf("selftest.expected_size: must not be negative")
	}
	return nil
}
