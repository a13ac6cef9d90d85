package config

import (
	"errors"
	"fmt"
	"os"
)

// Options is the immutable per-run configuration assembled once at startup
// from flags and config-file defaults. Components read it; nothing mutates
// it mid-run.
type Options struct {
	// SourceDir is the tree to scan. Empty means read a newline-delimited
	// file list from standard input.
	SourceDir string
	// TargetPattern is either a bare output directory (the default pattern
	// applies) or a template with '%Field' placeholders.
	TargetPattern string
	// DefaultPattern is joined onto a bare target directory.
	DefaultPattern string

	Verbose         bool
	CompressTargets bool
	DeleteSource    bool
	ForceDelete     bool
	KeepGoing       bool
	Symlink         bool
	Move            bool
	Unsafe          bool
	TruncateTime    bool
}

// Validate enforces the flag combinations a run refuses to start with.
// A symlinked file cannot be archived-and-removed or survive source
// deletion, and a moved file has no source left to delete.
func (o *Options) Validate() error {
	if o.TargetPattern == "" {
		return errors.New("target pattern must not be empty")
	}
	if o.Symlink && (o.CompressTargets || o.DeleteSource || o.ForceDelete) {
		return errors.New("symlink is not compatible with compressTargets, deleteSource, or forceDelete")
	}
	if o.Move && o.Symlink {
		return errors.New("move and symlink are mutually exclusive")
	}
	if o.Move && (o.DeleteSource || o.ForceDelete) {
		return errors.New("move already removes source files; deleteSource and forceDelete do not apply")
	}
	if (o.DeleteSource || o.ForceDelete) && o.SourceDir == "" {
		return errors.New("deleteSource requires a source directory, not a stdin file list")
	}
	if o.SourceDir != "" {
		info, err := os.Stat(o.SourceDir)
		if err != nil {
			return fmt.Errorf("source directory does not exist: %s", o.SourceDir)
		}
		if !info.IsDir() {
			return fmt.Errorf("source is not a directory: %s", o.SourceDir)
		}
	}
	return nil
}

// DeleteRequested reports whether the run ends with source removal, which
// makes placement I/O failures fatal.
func (o *Options) DeleteRequested() bool {
	return o.DeleteSource || o.ForceDelete
}
