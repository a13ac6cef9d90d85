package selftest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"dcmsort/internal/logging"
)

// download fetches url into dest through a .partial sibling so an
// interrupted transfer never leaves a plausible-looking archive behind.
func download(ctx context.Context, url, dest string, expectedSize int64, log *slog.Logger) error {
	log.Info("downloading reference data", logging.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}
	partial := dest + ".partial"
	out, err := os.Create(partial)
	if err != nil {
		return fmt.Errorf("create %s: %w", partial, err)
	}

	var sink io.Writer = out
	if bar := newDownloadBar(resp.ContentLength); bar != nil {
		sink = io.MultiWriter(out, bar)
	}

	written, err := io.Copy(sink, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(partial)
		return fmt.Errorf("download %s: %w", url, err)
	}

	if expectedSize > 0 && written != expectedSize {
		_ = os.Remove(partial)
		return fmt.Errorf("download %s: got %s, expected %s",
			url,
			humanize.Bytes(uint64(written)),
			humanize.Bytes(uint64(expectedSize)),
		)
	}

	if err := os.Rename(partial, dest); err != nil {
		return fmt.Errorf("finalize download: %w", err)
	}
	log.Info("download complete",
		logging.String("archive", dest),
		logging.String("size", humanize.Bytes(uint64(written))),
	)
	return nil
}

func newDownloadBar(total int64) *progressbar.ProgressBar {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)
}
