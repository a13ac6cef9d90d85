package pattern

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// SegmentKind distinguishes literal template text from metadata fields.
type SegmentKind int

const (
	SegmentLiteral SegmentKind = iota
	SegmentField
)

// Segment is one compiled unit of a template: either literal text copied
// verbatim into the output path, or the name of a metadata field to resolve.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Template is the compiled form of a path template. Field names are maximal
// runs of alphabetic characters introduced by '%'; everything else,
// including path separators, is literal.
type Template struct {
	raw      string
	segments []Segment
}

// Compile scans a template left to right. A '%' starts a field name that
// consumes letters until the first non-letter, which is re-emitted as
// literal text. A bare '%' (end of string or immediately followed by a
// non-letter) is rejected rather than guessed at, as is a template with no
// fields at all.
func Compile(template string) (*Template, error) {
	var segments []Segment
	var literal strings.Builder
	fields := 0

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, Segment{Kind: SegmentLiteral, Text: literal.String()})
			literal.Reset()
		}
	}

	runes := []rune(template)
	for i := 0; i < len(runes); {
		if runes[i] != '%' {
			literal.WriteRune(runes[i])
			i++
			continue
		}
		start := i
		i++
		nameStart := i
		for i < len(runes) && unicode.IsLetter(runes[i]) {
			i++
		}
		if i == nameStart {
			return nil, fmt.Errorf("empty field name at offset %d in template %q", start, template)
		}
		flush()
		segments = append(segments, Segment{Kind: SegmentField, Text: string(runes[nameStart:i])})
		fields++
	}
	flush()

	if fields == 0 {
		return nil, fmt.Errorf("template %q contains no fields", template)
	}
	return &Template{raw: template, segments: segments}, nil
}

// DefaultTarget joins a bare output directory with the default pattern,
// used when the supplied target contains no '%' placeholders.
func DefaultTarget(dir, defaultPattern string) string {
	return filepath.Join(dir, defaultPattern)
}

// HasFields reports whether target carries any '%' placeholders.
func HasFields(target string) bool {
	return strings.ContainsRune(target, '%')
}

// TargetRoot returns the fixed directory prefix of a target pattern, the
// part before the first placeholder. This is where the run lock lives.
func TargetRoot(target string) string {
	i := strings.IndexRune(target, '%')
	if i < 0 {
		return filepath.Clean(target)
	}
	root := filepath.Dir(target[:i])
	return filepath.Clean(root)
}

// Segments returns the compiled segments in template order.
func (t *Template) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// Fields returns every field name in template order, duplicates preserved.
func (t *Template) Fields() []string {
	var fields []string
	for _, seg := range t.segments {
		if seg.Kind == SegmentField {
			fields = append(fields, seg.Text)
		}
	}
	return fields
}

// Literals returns the literal fragments in template order.
func (t *Template) Literals() []string {
	var literals []string
	for _, seg := range t.segments {
		if seg.Kind == SegmentLiteral {
			literals = append(literals, seg.Text)
		}
	}
	return literals
}

func (t *Template) String() string {
	return t.raw
}
