package sorter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"dcmsort/internal/config"
	"dcmsort/internal/fileutil"
	"dcmsort/internal/logging"
)

// Engine materializes one source file at its resolved destination. The
// existence check and the write are not atomic; the engine relies on the
// run being the single writer of the target tree (see runlock).
type Engine struct {
	opts   *config.Options
	record *Record
	logger *slog.Logger
}

// NewEngine constructs the placement engine writing into record.
func NewEngine(opts *config.Options, record *Record, logger *slog.Logger) *Engine {
	return &Engine{
		opts:   opts,
		record: record,
		logger: logging.NewComponentLogger(logger, "placement"),
	}
}

// Place copies, links, or moves src to dest. An existing destination is a
// pattern collision and nothing is written; the caller decides whether the
// run survives it. The record is updated only after the file is on disk.
func (e *Engine) Place(ctx context.Context, src, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := os.Lstat(dest); err == nil {
		return Wrap(
			ErrCollision,
			"placing",
			"check destination",
			fmt.Sprintf("target already exists: source %s, destination %s", src, dest),
			nil,
		)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Wrap(ErrPlacement, "placing", "check destination", dest, err)
	}

	targetDir := filepath.Dir(dest)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return Wrap(ErrPlacement, "placing", "create target directory", targetDir, err)
	}

	action, err := e.materialize(src, dest)
	if err != nil {
		return Wrap(ErrPlacement, "placing", action, fmt.Sprintf("source %s, destination %s", src, dest), err)
	}

	e.record.Add(targetDir, filepath.Base(dest))
	e.logger.Debug("placed file",
		logging.String("action", action),
		logging.String("source", src),
		logging.String("destination", dest),
	)
	return nil
}

func (e *Engine) materialize(src, dest string) (string, error) {
	switch {
	case e.opts.Symlink:
		absSrc, err := filepath.Abs(src)
		if err != nil {
			return "symlink", err
		}
		return "symlink", os.Symlink(absSrc, dest)
	case e.opts.Move:
		return "move", fileutil.MoveFile(src, dest)
	case e.opts.DeleteRequested():
		// The source goes away after the run; verify the copy first.
		return "copy", fileutil.CopyFileVerified(src, dest)
	default:
		return "copy", fileutil.CopyFile(src, dest)
	}
}
