package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"dcmsort/internal/testsupport"
)

func runConfigCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigShowDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")
	out, err := runConfigCommand(t, "config", "show", "--config", missing)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, fragment := range []string{"built-in defaults", "default_pattern", "%PatientName"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("missing %q in output:\n%s", fragment, out)
		}
	}
}

func TestConfigShowLoadedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	testsupport.WriteFile(t, path, "[logging]\nlevel = \"debug\"\n")

	out, err := runConfigCommand(t, "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "# loaded from "+path) {
		t.Fatalf("missing source note in output:\n%s", out)
	}
	if !strings.Contains(out, "level = 'debug'") && !strings.Contains(out, `level = "debug"`) {
		t.Fatalf("configured level missing:\n%s", out)
	}
}

func TestConfigNewWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, err := runConfigCommand(t, "config", "new", "--path", target)
	if err != nil {
		t.Fatalf("config new: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("output does not name the target:\n%s", out)
	}
	contents := testsupport.ReadFile(t, target)
	if !strings.Contains(contents, "[sorting]") {
		t.Fatalf("sample config missing sorting section:\n%s", contents)
	}

	// A second run without --overwrite must refuse.
	if _, err := runConfigCommand(t, "config", "new", "--path", target); err == nil {
		t.Fatal("expected an already-exists error")
	}
	if _, err := runConfigCommand(t, "config", "new", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config new --overwrite: %v", err)
	}
}
