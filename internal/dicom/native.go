package dicom

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// nativeAdapter parses DICOM headers in-process, stopping before pixel data.
type nativeAdapter struct{}

func (nativeAdapter) Name() string { return "native" }

func (nativeAdapter) Extract(ctx context.Context, path string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	dataset, err := dicom.Parse(file, info.Size(), nil, dicom.SkipPixelData())
	if err != nil {
		// Anything the parser rejects is treated as not-DICOM; the caller
		// skips the file and keeps scanning.
		return nil, fmt.Errorf("%w: %s: %v", ErrNotDICOM, path, err)
	}

	return recordFromDataset(dataset), nil
}

func recordFromDataset(dataset dicom.Dataset) Record {
	charset := ""
	if el, err := dataset.FindElementByTag(tag.SpecificCharacterSet); err == nil {
		charset = stringifyValue(el.Value)
	}

	record := make(Record, len(dataset.Elements))
	for _, el := range dataset.Elements {
		if el == nil {
			continue
		}
		tagInfo, err := tag.Find(el.Tag)
		if err != nil || tagInfo.Name == "" {
			continue
		}
		value := stringifyValue(el.Value)
		if value == "" {
			continue
		}
		record[tagInfo.Name] = RepairText(value, charset)
	}
	return record
}

// stringifyValue flattens a header value into the string form used for path
// resolution. Multi-valued fields join with backslash, the DICOM value
// separator; sanitization maps it away later.
func stringifyValue(value dicom.Value) string {
	if value == nil {
		return ""
	}
	switch v := value.GetValue().(type) {
	case []string:
		return strings.TrimSpace(strings.Join(v, "\\"))
	case []int:
		parts := make([]string, 0, len(v))
		for _, n := range v {
			parts = append(parts, strconv.Itoa(n))
		}
		return strings.Join(parts, "\\")
	case []float64:
		parts := make([]string, 0, len(v))
		for _, f := range v {
			parts = append(parts, strconv.FormatFloat(f, 'f', -1, 64))
		}
		return strings.Join(parts, "\\")
	default:
		return ""
	}
}
