package pattern

import (
	"strings"
	"unicode/utf8"
)

// Resolver turns a compiled template plus a metadata record into a
// destination path. Resolution is pure: no I/O, no shared state, and the
// same inputs always produce the same path.
type Resolver struct {
	// Safe runs every substituted value through Sanitize. Literal segments
	// are never sanitized, so separators in the template survive.
	Safe bool
	// TruncateTime drops an all-zero fractional-seconds suffix from fields
	// whose name ends in "Time".
	TruncateTime bool
}

// Resolve substitutes each field segment with its record value. Missing or
// empty fields become "Unknown<Field>"; values that are not valid UTF-8
// become "Unknown_<Field>_". Duplicate field names resolve every occurrence
// from the same lookup.
func (r Resolver) Resolve(tpl *Template, record map[string]string) string {
	var out strings.Builder
	out.Grow(len(tpl.raw))
	for _, seg := range tpl.segments {
		if seg.Kind == SegmentLiteral {
			out.WriteString(seg.Text)
			continue
		}
		out.WriteString(r.resolveField(seg.Text, record))
	}
	return out.String()
}

func (r Resolver) resolveField(name string, record map[string]string) string {
	value, ok := record[name]
	if !ok || value == "" {
		value = "Unknown" + name
	}
	if r.TruncateTime && strings.HasSuffix(name, "Time") {
		if i := strings.IndexByte(value, '.'); i >= 0 && value[i+1:] == "000000" {
			value = value[:i]
		}
	}
	if !utf8.ValidString(value) {
		value = "Unknown_" + name + "_"
	}
	if r.Safe {
		value = Sanitize(value)
	}
	return value
}
