package config

import "strings"

func (c *Config) normalize() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Sorting.DefaultPattern = strings.TrimSpace(c.Sorting.DefaultPattern)
	c.Metadata.Adapter = strings.ToLower(strings.TrimSpace(c.Metadata.Adapter))
	c.Metadata.DcmdumpBinary = strings.TrimSpace(c.Metadata.DcmdumpBinary)
	c.Selftest.DataURL = strings.TrimSpace(c.Selftest.DataURL)

	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Sorting.DefaultPattern == "" {
		c.Sorting.DefaultPattern = DefaultPattern
	}
	if c.Metadata.Adapter == "" {
		c.Metadata.Adapter = "auto"
	}
	if c.Metadata.DcmdumpBinary == "" {
		c.Metadata.DcmdumpBinary = "dcmdump"
	}

	if c.Selftest.CacheDir != "" {
		expanded, err := expandPath(c.Selftest.CacheDir)
		if err != nil {
			return err
		}
		c.Selftest.CacheDir = expanded
	}
	return nil
}
