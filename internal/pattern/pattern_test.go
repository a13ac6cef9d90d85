package pattern_test

import (
	"path/filepath"
	"strings"
	"testing"

	"dcmsort/internal/pattern"
)

func TestCompileFieldOrder(t *testing.T) {
	tpl, err := pattern.Compile("%A/%B-%C.dcm")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	fields := tpl.Fields()
	want := []string{"A", "B", "C"}
	if len(fields) != len(want) {
		t.Fatalf("fields = %v, want %v", fields, want)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Fatalf("fields[%d] = %q, want %q", i, fields[i], want[i])
		}
	}
	literals := tpl.Literals()
	wantLiterals := []string{"/", "-", ".dcm"}
	if len(literals) != len(wantLiterals) {
		t.Fatalf("literals = %v, want %v", literals, wantLiterals)
	}
	for i := range wantLiterals {
		if literals[i] != wantLiterals[i] {
			t.Fatalf("literals[%d] = %q, want %q", i, literals[i], wantLiterals[i])
		}
	}
}

func TestCompileReconstructsTemplate(t *testing.T) {
	templates := []string{
		"%A/%B-%C.dcm",
		"sorted/%PatientName-%Modality%StudyID/%InstanceNumber.dcm",
		"%SeriesNumber_%SeriesDescription-%InstanceNumber.dcm",
	}
	for _, raw := range templates {
		tpl, err := pattern.Compile(raw)
		if err != nil {
			t.Fatalf("Compile(%q): %v", raw, err)
		}
		var rebuilt strings.Builder
		for _, seg := range tpl.Segments() {
			if seg.Kind == pattern.SegmentField {
				rebuilt.WriteByte('%')
			}
			rebuilt.WriteString(seg.Text)
		}
		if rebuilt.String() != raw {
			t.Fatalf("reconstructed %q from %q", rebuilt.String(), raw)
		}
	}
}

func TestCompileDuplicateFieldsPreserved(t *testing.T) {
	tpl, err := pattern.Compile("%A/%B/%A.dcm")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	fields := tpl.Fields()
	if len(fields) != 3 || fields[0] != "A" || fields[2] != "A" {
		t.Fatalf("fields = %v, want [A B A]", fields)
	}
}

func TestCompileRejectsEmptyFieldName(t *testing.T) {
	for _, raw := range []string{"%", "out/%", "out/%-suffix", "%1Name", "a%%b"} {
		if _, err := pattern.Compile(raw); err == nil {
			t.Fatalf("Compile(%q) succeeded, want error", raw)
		}
	}
}

func TestCompileRejectsFieldlessTemplate(t *testing.T) {
	if _, err := pattern.Compile("plain/output/dir"); err == nil {
		t.Fatal("expected error for template without fields")
	}
}

func TestCompileFieldStopsAtNonLetter(t *testing.T) {
	tpl, err := pattern.Compile("%SeriesNumber2-%Modality.dcm")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	fields := tpl.Fields()
	if len(fields) != 2 || fields[0] != "SeriesNumber" || fields[1] != "Modality" {
		t.Fatalf("fields = %v, want [SeriesNumber Modality]", fields)
	}
	literals := tpl.Literals()
	if len(literals) != 2 || literals[0] != "2-" || literals[1] != ".dcm" {
		t.Fatalf("literals = %v, want [2- .dcm]", literals)
	}
}

func TestDefaultTarget(t *testing.T) {
	got := pattern.DefaultTarget("out", "%PatientName/%InstanceNumber.dcm")
	want := filepath.Join("out", "%PatientName/%InstanceNumber.dcm")
	if got != want {
		t.Fatalf("DefaultTarget = %q, want %q", got, want)
	}
	if !pattern.HasFields(got) {
		t.Fatalf("expected fields in %q", got)
	}
	if pattern.HasFields("out") {
		t.Fatal("bare directory should not report fields")
	}
}

func TestTargetRoot(t *testing.T) {
	cases := map[string]string{
		"sorted/%PatientName/%InstanceNumber.dcm": "sorted",
		"a/b/%C.dcm":   filepath.Join("a", "b"),
		"%A/%B.dcm":    ".",
		"plain/output": filepath.Join("plain", "output"),
	}
	for target, want := range cases {
		if got := pattern.TargetRoot(target); got != want {
			t.Fatalf("TargetRoot(%q) = %q, want %q", target, got, want)
		}
	}
}
