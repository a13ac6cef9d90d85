package sorter

import (
	"archive/zip"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"

	"dcmsort/internal/logging"
)

// ArchiveRecord compresses each directory the run populated into a
// `<dirBase>.zip` next to it, removing the archived originals. The final
// directory removal is best effort: it fails harmlessly when the directory
// holds files this run never placed. Everything else is fatal; a partial
// archive must not be left behind silently.
func ArchiveRecord(ctx context.Context, record *Record, logger *slog.Logger) error {
	archiveLogger := logging.NewComponentLogger(logger, "archive")

	for _, dir := range record.Dirs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		zipPath := filepath.Join(filepath.Dir(dir), filepath.Base(dir)+".zip")
		archiveLogger.Info("creating archive",
			logging.String("archive", zipPath),
			logging.Int("files", len(record.Files(dir))),
		)
		if err := writeArchive(zipPath, dir, record.Files(dir)); err != nil {
			return Wrap(ErrArchive, "archiving", "write archive", zipPath, err)
		}
		// Succeeds only when every file in the directory was archived.
		_ = os.Remove(dir)
	}
	return nil
}

func writeArchive(zipPath, dir string, names []string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.DefaultCompression)
	})

	base := filepath.Base(dir)
	for _, name := range names {
		if err := addEntry(zw, base+"/"+name, filepath.Join(dir, name)); err != nil {
			_ = zw.Close()
			return err
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			_ = zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return err
	}
	return out.Close()
}

func addEntry(zw *zip.Writer, entryName, filePath string) error {
	entry, err := zw.CreateHeader(&zip.FileHeader{Name: entryName, Method: zip.Deflate})
	if err != nil {
		return err
	}
	in, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer in.Close()

	_, err = io.Copy(entry, in)
	return err
}
