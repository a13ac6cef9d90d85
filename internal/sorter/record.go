package sorter

import "github.com/google/uuid"

// Record tracks, per destination directory, the filenames placed there
// during this run. It is owned by the Sorter, handed to the archiving pass
// once, then discarded. Files that existed in the target tree before the
// run are invisible to it.
type Record struct {
	runID string
	dirs  []string
	files map[string][]string
}

// NewRecord returns an empty record stamped with a fresh run ID.
func NewRecord() *Record {
	return &Record{
		runID: uuid.NewString(),
		files: make(map[string][]string),
	}
}

// RunID identifies the run in logs and diagnostics.
func (r *Record) RunID() string {
	return r.runID
}

// Add appends name under dir, keeping directory insertion order.
func (r *Record) Add(dir, name string) {
	if _, ok := r.files[dir]; !ok {
		r.dirs = append(r.dirs, dir)
	}
	r.files[dir] = append(r.files[dir], name)
}

// Dirs returns the destination directories in first-placement order.
func (r *Record) Dirs() []string {
	out := make([]string, len(r.dirs))
	copy(out, r.dirs)
	return out
}

// Files returns the filenames placed into dir, in placement order.
func (r *Record) Files(dir string) []string {
	out := make([]string, len(r.files[dir]))
	copy(out, r.files[dir])
	return out
}

// Len is the total number of placements recorded.
func (r *Record) Len() int {
	total := 0
	for _, names := range r.files {
		total += len(names)
	}
	return total
}

// Empty reports whether the run placed anything at all.
func (r *Record) Empty() bool {
	return len(r.dirs) == 0
}
