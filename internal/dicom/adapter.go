package dicom

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"dcmsort/internal/config"
)

// Record maps DICOM field keywords (PatientName, StudyDate, …) to their
// stringified values. One record is built per source file and discarded
// after path resolution.
type Record map[string]string

var (
	// ErrNotDICOM marks files that are not recognizable DICOM. Routine
	// during recursive scans of mixed directories; callers skip and continue.
	ErrNotDICOM = errors.New("not a dicom file")
	// ErrUnreadable marks recoverable read failures. Callers skip and
	// continue.
	ErrUnreadable = errors.New("unreadable file")
)

// Adapter extracts the metadata record for a single file.
type Adapter interface {
	// Name identifies the backend in logs.
	Name() string
	// Extract parses path and returns its record. Unrecognized formats
	// return ErrNotDICOM; I/O problems return ErrUnreadable.
	Extract(ctx context.Context, path string) (Record, error)
}

// NewConfiguredAdapter selects the metadata backend from configuration.
// The choice is made exactly once per run, never per file.
func NewConfiguredAdapter(cfg *config.Config) (Adapter, error) {
	backend := "auto"
	binary := "dcmdump"
	if cfg != nil {
		backend = cfg.Metadata.Adapter
		binary = cfg.Metadata.DcmdumpBinary
	}

	switch backend {
	case "dcmdump":
		resolved, err := exec.LookPath(binary)
		if err != nil {
			return nil, fmt.Errorf("dcmdump adapter: %q not found in PATH: %w", binary, err)
		}
		return &dcmdumpAdapter{binary: resolved}, nil
	case "auto", "native", "":
		// The native parser is compiled in and always available, so auto
		// never needs the external tool.
		return nativeAdapter{}, nil
	default:
		return nil, fmt.Errorf("unknown metadata adapter %q", backend)
	}
}
