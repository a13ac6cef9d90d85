package dicom_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dcmsort/internal/config"
	"dcmsort/internal/dicom"
)

func TestNewConfiguredAdapterDefaultsToNative(t *testing.T) {
	cfg := config.Default()
	adapter, err := dicom.NewConfiguredAdapter(&cfg)
	if err != nil {
		t.Fatalf("NewConfiguredAdapter: %v", err)
	}
	if adapter.Name() != "native" {
		t.Fatalf("adapter = %q, want native", adapter.Name())
	}
}

func TestNewConfiguredAdapterMissingDcmdump(t *testing.T) {
	cfg := config.Default()
	cfg.Metadata.Adapter = "dcmdump"
	cfg.Metadata.DcmdumpBinary = "definitely-not-a-real-binary-name"
	if _, err := dicom.NewConfiguredAdapter(&cfg); err == nil {
		t.Fatal("expected error for missing dcmdump binary")
	}
}

func TestNativeExtractRejectsNonDICOM(t *testing.T) {
	cfg := config.Default()
	adapter, err := dicom.NewConfiguredAdapter(&cfg)
	if err != nil {
		t.Fatalf("NewConfiguredAdapter: %v", err)
	}

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("just some text, no magic word"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err = adapter.Extract(context.Background(), path)
	if !errors.Is(err, dicom.ErrNotDICOM) {
		t.Fatalf("Extract error = %v, want ErrNotDICOM", err)
	}
}

func TestNativeExtractMissingFile(t *testing.T) {
	cfg := config.Default()
	adapter, err := dicom.NewConfiguredAdapter(&cfg)
	if err != nil {
		t.Fatalf("NewConfiguredAdapter: %v", err)
	}

	_, err = adapter.Extract(context.Background(), filepath.Join(t.TempDir(), "absent.dcm"))
	if !errors.Is(err, dicom.ErrUnreadable) {
		t.Fatalf("Extract error = %v, want ErrUnreadable", err)
	}
}
