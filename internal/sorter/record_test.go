package sorter_test

import (
	"testing"

	"dcmsort/internal/sorter"
)

func TestRecordOrdering(t *testing.T) {
	record := sorter.NewRecord()
	record.Add("out/a", "1.dcm")
	record.Add("out/b", "2.dcm")
	record.Add("out/a", "3.dcm")

	dirs := record.Dirs()
	if len(dirs) != 2 || dirs[0] != "out/a" || dirs[1] != "out/b" {
		t.Fatalf("dirs = %v", dirs)
	}
	files := record.Files("out/a")
	if len(files) != 2 || files[0] != "1.dcm" || files[1] != "3.dcm" {
		t.Fatalf("files = %v", files)
	}
	if record.Len() != 3 {
		t.Fatalf("Len = %d", record.Len())
	}
	if record.Empty() {
		t.Fatal("record should not be empty")
	}
}

func TestRecordRunID(t *testing.T) {
	a := sorter.NewRecord()
	b := sorter.NewRecord()
	if a.RunID() == "" || a.RunID() == b.RunID() {
		t.Fatalf("run IDs not unique: %q vs %q", a.RunID(), b.RunID())
	}
	if !a.Empty() {
		t.Fatal("fresh record should be empty")
	}
}

func TestRecordUnknownDir(t *testing.T) {
	record := sorter.NewRecord()
	if files := record.Files("never-seen"); len(files) != 0 {
		t.Fatalf("files = %v", files)
	}
}
