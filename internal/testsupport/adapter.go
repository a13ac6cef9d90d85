package testsupport

import (
	"context"
	"fmt"

	"dcmsort/internal/dicom"
)

// StubAdapter serves canned metadata records keyed by file path. Paths
// without a record report ErrNotDICOM, like a scan over a mixed directory.
type StubAdapter struct {
	Records map[string]dicom.Record
	Errs    map[string]error
}

// NewStubAdapter returns an empty stub ready to be populated.
func NewStubAdapter() *StubAdapter {
	return &StubAdapter{
		Records: make(map[string]dicom.Record),
		Errs:    make(map[string]error),
	}
}

func (a *StubAdapter) Name() string { return "stub" }

func (a *StubAdapter) Extract(_ context.Context, path string) (dicom.Record, error) {
	if err, ok := a.Errs[path]; ok {
		return nil, err
	}
	if record, ok := a.Records[path]; ok {
		return record, nil
	}
	return nil, fmt.Errorf("%w: %s", dicom.ErrNotDICOM, path)
}
