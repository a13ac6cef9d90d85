// Package selftest exercises the full sort pipeline against a published
// reference data set: download, extract, sort into a scratch target, and
// check that files actually landed.
package selftest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dcmsort/internal/config"
	"dcmsort/internal/dicom"
	"dcmsort/internal/logging"
	"dcmsort/internal/sorter"
)

const (
	archiveName = "dicomsort-testdata.zip"
	dataDirName = "testdata"
)

// Result describes where the self test worked and what it produced.
type Result struct {
	Archive   string
	DataDir   string
	TargetDir string
	Summary   sorter.Summary
}

// Run performs the self test. The downloaded archive and its extracted
// contents are cached under the configured cache directory so repeat runs
// skip the network; the sorted output lands in a fresh temp directory that
// is reported back to the caller rather than cleaned up, so the result can
// be inspected.
func Run(ctx context.Context, cfg *config.Config, adapter dicom.Adapter, logger *slog.Logger) (*Result, error) {
	log := logging.NewComponentLogger(logger, "selftest")

	cacheDir, err := resolveCacheDir(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	archive := filepath.Join(cacheDir, archiveName)
	if err := ensureArchive(ctx, cfg, archive, log); err != nil {
		return nil, err
	}

	dataDir := filepath.Join(cacheDir, dataDirName)
	if err := ensureExtracted(archive, dataDir, log); err != nil {
		return nil, err
	}

	targetDir, err := os.MkdirTemp("", "dcmsort-selftest-")
	if err != nil {
		return nil, fmt.Errorf("create scratch target: %w", err)
	}

	opts := &config.Options{
		SourceDir:      dataDir,
		TargetPattern:  targetDir,
		DefaultPattern: cfg.Sorting.DefaultPattern,
		KeepGoing:      true,
	}
	s, err := sorter.New(opts, adapter, logger)
	if err != nil {
		return nil, err
	}

	log.Info("sorting reference data",
		logging.String("source", dataDir),
		logging.String("target", s.Target()),
	)
	summary, err := s.Run(ctx)
	if err != nil {
		return nil, err
	}
	if summary.Renamed == 0 {
		return nil, fmt.Errorf("self test sorted no files from %s", dataDir)
	}

	log.Info("self test passed",
		logging.Int("renamed", summary.Renamed),
		logging.Int("skipped", summary.Skipped),
		logging.String("output", targetDir),
	)
	return &Result{
		Archive:   archive,
		DataDir:   dataDir,
		TargetDir: targetDir,
		Summary:   summary,
	}, nil
}

func resolveCacheDir(cfg *config.Config) (string, error) {
	dir := cfg.Selftest.CacheDir
	if dir == "" {
		dir = "~/.cache/dcmsort"
	}
	return config.ExpandPath(dir)
}

// ensureArchive downloads the reference archive unless a cached copy of the
// expected size is already present.
func ensureArchive(ctx context.Context, cfg *config.Config, archive string, log *slog.Logger) error {
	if info, err := os.Stat(archive); err == nil {
		if cfg.Selftest.ExpectedSize <= 0 || info.Size() == cfg.Selftest.ExpectedSize {
			log.Debug("using cached archive", logging.String("archive", archive))
			return nil
		}
		log.Warn("cached archive has unexpected size, downloading again",
			logging.String("archive", archive),
			logging.Int("size", int(info.Size())),
		)
	}
	if cfg.Selftest.DataURL == "" {
		return fmt.Errorf("no self test data URL configured")
	}
	return download(ctx, cfg.Selftest.DataURL, archive, cfg.Selftest.ExpectedSize, log)
}

func ensureExtracted(archive, dataDir string, log *slog.Logger) error {
	if info, err := os.Stat(dataDir); err == nil && info.IsDir() {
		log.Debug("using extracted data", logging.String("dir", dataDir))
		return nil
	}
	count, err := extractArchive(archive, dataDir)
	if err != nil {
		return fmt.Errorf("extract %s: %w", archive, err)
	}
	log.Info("extracted reference data",
		logging.String("dir", dataDir),
		logging.Int("files", count),
	)
	return nil
}
