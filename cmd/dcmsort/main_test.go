package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"dcmsort/internal/sorter"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"usage", sorter.Wrap(sorter.ErrUsage, "sorting", "parse flags", "bad flags", nil), exitFailure},
		{"configuration", sorter.ErrConfiguration, exitFailure},
		{"data loss risk", sorter.Wrap(sorter.ErrDataLossRisk, "sorting", "place file", "halting", errors.New("io")), exitFailure},
		{"placement", sorter.ErrPlacement, exitFailure},
		{"archive", sorter.ErrArchive, exitFailure},
		{"run failed", sorter.Wrap(sorter.ErrRunFailed, "sorting", "enumerate", "walk failed", errors.New("io")), exitRunFailed},
		{"collision", sorter.Wrap(sorter.ErrCollision, "placing", "check destination", "exists", nil), exitCollision},
		{"interrupt", context.Canceled, exitInterrupted},
		{"deadline", context.DeadlineExceeded, exitInterrupted},
		{"wrapped interrupt", fmt.Errorf("run: %w", context.Canceled), exitInterrupted},
		{"plain error", errors.New("anything else"), exitFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.err); got != tc.want {
				t.Fatalf("exitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
