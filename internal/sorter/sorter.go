package sorter

import (
	"bufio"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"dcmsort/internal/config"
	"dcmsort/internal/dicom"
	"dcmsort/internal/logging"
	"dcmsort/internal/pattern"
)

// Summary reports what a run accomplished.
type Summary struct {
	Renamed int
	Skipped int
}

// Sorter is the batch driver: it enumerates candidate files and pushes each
// one through metadata extraction, path resolution, and placement.
// Processing is strictly sequential; the collision check depends on it.
type Sorter struct {
	opts     *config.Options
	adapter  dicom.Adapter
	template *pattern.Template
	resolver pattern.Resolver
	record   *Record
	engine   *Engine
	logger   *slog.Logger
	input    io.Reader
}

// New compiles the target pattern and wires up a run. A target without
// placeholders gets the default pattern appended.
func New(opts *config.Options, adapter dicom.Adapter, logger *slog.Logger) (*Sorter, error) {
	target := opts.TargetPattern
	if !pattern.HasFields(target) {
		defaultPattern := opts.DefaultPattern
		if defaultPattern == "" {
			defaultPattern = config.DefaultPattern
		}
		target = pattern.DefaultTarget(target, defaultPattern)
	}

	template, err := pattern.Compile(target)
	if err != nil {
		return nil, Wrap(ErrUsage, "sorting", "compile target pattern", target, err)
	}

	record := NewRecord()
	runLogger := logging.NewComponentLogger(logger, "sorter").With(logging.String("run_id", record.RunID()))

	return &Sorter{
		opts:     opts,
		adapter:  adapter,
		template: template,
		resolver: pattern.Resolver{Safe: !opts.Unsafe, TruncateTime: opts.TruncateTime},
		record:   record,
		engine:   NewEngine(opts, record, logger),
		logger:   runLogger,
		input:    os.Stdin,
	}, nil
}

// Target returns the fully resolved target pattern for this run.
func (s *Sorter) Target() string {
	return s.template.String()
}

// Record exposes the placement record for the archiving pass.
func (s *Sorter) Record() *Record {
	return s.record
}

// SetInput overrides the stream the stdin file-list mode reads from.
func (s *Sorter) SetInput(r io.Reader) {
	s.input = r
}

// Run processes every candidate file once and returns the counts. The
// returned error, when non-nil, carries one of the sentinel markers; the
// summary is valid either way.
func (s *Sorter) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	s.logger.Debug("preparing file list", logging.String("source", s.opts.SourceDir))
	files, err := s.collectFiles()
	if err != nil {
		return summary, Wrap(ErrRunFailed, "sorting", "enumerate source files", s.opts.SourceDir, err)
	}

	s.logger.Info("sorting files",
		logging.Int("count", len(files)),
		logging.String("target", s.template.String()),
		logging.String("adapter", s.adapter.Name()),
	)

	bar := s.newProgressBar(len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		placed, err := s.processFile(ctx, file)
		if err != nil {
			return summary, err
		}
		if placed {
			summary.Renamed++
		} else {
			summary.Skipped++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	s.logger.Info("sort complete",
		logging.Int("renamed", summary.Renamed),
		logging.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

// processFile handles one candidate. It reports (true, nil) when the file
// was placed, (false, nil) when it was skipped, and a sentinel-wrapped
// error when the run must stop.
func (s *Sorter) processFile(ctx context.Context, file string) (bool, error) {
	s.logger.Debug("considering file", logging.String("file", file))

	record, err := s.adapter.Extract(ctx, file)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return false, err
		case errors.Is(err, dicom.ErrNotDICOM):
			s.logger.Debug("skipping unrecognized file", logging.String("file", file))
		default:
			// Read problems are routine during recursive scans; the run
			// continues without this file.
			s.logger.Warn("skipping unreadable file", logging.String("file", file), logging.Error(err))
		}
		return false, nil
	}

	dest := s.resolver.Resolve(s.template, record)
	err = s.engine.Place(ctx, file, dest)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, ErrCollision) {
		s.logger.Warn("target file already exists, pattern is probably not unique",
			logging.String("source", file),
			logging.String("destination", dest),
		)
		if s.opts.KeepGoing {
			return false, nil
		}
		return false, err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false, err
	}

	if s.opts.DeleteRequested() {
		return false, Wrap(
			ErrDataLossRisk,
			"sorting",
			"place file",
			"halting because deleteSource or forceDelete could cause data loss after a failed placement",
			err,
		)
	}
	s.logger.Warn("placement failed", logging.String("file", file), logging.Error(err))
	return false, nil
}

// collectFiles enumerates candidates: every file under the source tree, or
// the newline-delimited list on the input stream when the source directory
// is the empty string. List entries that are missing or not regular files
// are dropped.
func (s *Sorter) collectFiles() ([]string, error) {
	if s.opts.SourceDir == "" {
		return s.readFileList()
	}

	var files []string
	err := filepath.WalkDir(s.opts.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Sorter) readFileList() ([]string, error) {
	var files []string
	scanner := bufio.NewScanner(s.input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		info, err := os.Stat(line)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

// newProgressBar builds the per-file progress indicator. It stays silent
// for non-interactive output, verbose runs, and empty batches.
func (s *Sorter) newProgressBar(total int) *progressbar.ProgressBar {
	if total == 0 || s.opts.Verbose || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("sorting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
