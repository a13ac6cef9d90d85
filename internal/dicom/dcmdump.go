package dicom

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// dcmdumpAdapter shells out to DCMTK's dcmdump and parses its text output.
// Output lines look like:
//
//	(0010,0010) PN [Doe^John]            #  8, 1 PatientName
//	(0028,0010) US 256                   #  2, 1 Rows
type dcmdumpAdapter struct {
	binary string
}

var (
	dumpBracketLine = regexp.MustCompile(`^\(([0-9a-fA-F]{4}),([0-9a-fA-F]{4})\)\s+[A-Z]{2}\s+\[(.*)\]\s+#\s*\d+,\s*\d+\s+(\w+)\s*$`)
	dumpPlainLine   = regexp.MustCompile(`^\(([0-9a-fA-F]{4}),([0-9a-fA-F]{4})\)\s+[A-Z]{2}\s+(\S+)\s+#\s*\d+,\s*\d+\s+(\w+)\s*$`)
)

func (a *dcmdumpAdapter) Name() string { return "dcmdump" }

func (a *dcmdumpAdapter) Extract(ctx context.Context, path string) (Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	cmd := exec.CommandContext(ctx, a.binary, path)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = nil

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// dcmdump exits non-zero for anything it cannot parse.
			return nil, fmt.Errorf("%w: %s", ErrNotDICOM, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	record := parseDump(stdout.Bytes())
	if len(record) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotDICOM, path)
	}
	return record, nil
}

func parseDump(output []byte) Record {
	record := Record{}
	charset := ""

	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		keyword, value, ok := parseDumpLine(line)
		if !ok || value == "" {
			continue
		}
		if keyword == "SpecificCharacterSet" && charset == "" {
			charset = value
		}
		record[keyword] = value
	}

	for keyword, value := range record {
		record[keyword] = RepairText(value, charset)
	}
	return record
}

func parseDumpLine(line string) (keyword, value string, ok bool) {
	if m := dumpBracketLine.FindStringSubmatch(line); m != nil {
		return m[4], strings.TrimSpace(m[3]), true
	}
	if m := dumpPlainLine.FindStringSubmatch(line); m != nil {
		value := m[3]
		// Skip dcmdump's symbolic UID names; the raw value is not printed.
		if strings.HasPrefix(value, "=") {
			return "", "", false
		}
		return m[4], value, true
	}
	return "", "", false
}
