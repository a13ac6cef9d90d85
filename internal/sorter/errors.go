package sorter

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers used to classify failures. Components return wrapped
// errors; only the top-level command dispatcher turns them into process
// exit codes.
var (
	ErrUsage         = errors.New("usage error")
	ErrConfiguration = errors.New("configuration error")
	ErrCollision     = errors.New("destination collision")
	ErrPlacement     = errors.New("placement failure")
	ErrDataLossRisk  = errors.New("data loss risk")
	ErrRunFailed     = errors.New("run failed")
	ErrArchive       = errors.New("archive failure")
)

// Wrap builds an error message that includes run context while tagging it
// with the provided marker for later exit-code classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrRunFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "sort failure"
	}
	return strings.Join(parts, ": ")
}
