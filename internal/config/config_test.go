package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"dcmsort/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Sorting.DefaultPattern != config.DefaultPattern {
		t.Fatalf("unexpected default pattern: %q", cfg.Sorting.DefaultPattern)
	}
	if cfg.Metadata.Adapter != "auto" {
		t.Fatalf("unexpected adapter: %q", cfg.Metadata.Adapter)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[logging]
format = " JSON "
level = "DEBUG"

[metadata]
adapter = "Native"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected resolved existing config, got %q exists=%v", resolved, exists)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("normalization failed: %+v", cfg.Logging)
	}
	if cfg.Metadata.Adapter != "native" {
		t.Fatalf("normalization failed: %q", cfg.Metadata.Adapter)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []string{
		"[logging]\nformat = \"xml\"\n",
		"[logging]\nlevel = \"loud\"\n",
		"[metadata]\nadapter = \"carrier-pigeon\"\n",
		"[sorting]\ndefault_pattern = \"no-fields-here\"\n",
		"[selftest]\nexpected_size = -1\n",
	}
	for _, body := range cases {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, _, _, err := config.Load(path); err == nil {
			t.Fatalf("Load accepted %q", body)
		}
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("Load(sample): exists=%v err=%v", exists, err)
	}
}

func TestOptionsValidate(t *testing.T) {
	source := t.TempDir()

	valid := config.Options{SourceDir: source, TargetPattern: "out"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	cases := []config.Options{
		{SourceDir: source},
		{SourceDir: source, TargetPattern: "out", Symlink: true, CompressTargets: true},
		{SourceDir: source, TargetPattern: "out", Symlink: true, DeleteSource: true},
		{SourceDir: source, TargetPattern: "out", Symlink: true, ForceDelete: true},
		{SourceDir: source, TargetPattern: "out", Move: true, Symlink: true},
		{SourceDir: source, TargetPattern: "out", Move: true, DeleteSource: true},
		{SourceDir: "", TargetPattern: "out", DeleteSource: true},
		{SourceDir: filepath.Join(source, "absent"), TargetPattern: "out"},
	}
	for i, opts := range cases {
		if err := opts.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, opts)
		}
	}
}

func TestOptionsDeleteRequested(t *testing.T) {
	if (&config.Options{}).DeleteRequested() {
		t.Fatal("unexpected delete request")
	}
	if !(&config.Options{DeleteSource: true}).DeleteRequested() {
		t.Fatal("deleteSource should request deletion")
	}
	if !(&config.Options{ForceDelete: true}).DeleteRequested() {
		t.Fatal("forceDelete should request deletion")
	}
}
