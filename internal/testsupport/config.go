// Package testsupport provides shared fixtures for dcmsort tests: run
// options seeded with temp directories, file helpers, and a stub metadata
// adapter.
package testsupport

import (
	"path/filepath"
	"testing"

	"dcmsort/internal/config"
)

// OptionsOption customizes the generated test run options.
type OptionsOption func(*config.Options)

// NewOptions produces run options rooted in per-test temp directories. The
// target pattern defaults to "<tmp>/sorted/%PatientName/%InstanceNumber.dcm".
func NewOptions(t testing.TB, opts ...OptionsOption) *config.Options {
	t.Helper()

	base := t.TempDir()
	options := &config.Options{
		SourceDir:      filepath.Join(base, "source"),
		TargetPattern:  filepath.Join(base, "sorted", "%PatientName", "%InstanceNumber.dcm"),
		DefaultPattern: config.DefaultPattern,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithTarget overrides the target pattern.
func WithTarget(target string) OptionsOption {
	return func(o *config.Options) {
		o.TargetPattern = target
	}
}

// WithKeepGoing enables keep-going mode.
func WithKeepGoing() OptionsOption {
	return func(o *config.Options) {
		o.KeepGoing = true
	}
}
