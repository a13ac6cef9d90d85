package dicom

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// charmaps maps DICOM Specific Character Set terms to their single-byte
// decoders. ISO_IR 192 is UTF-8 and needs no repair; unknown terms fall
// back to ISO_IR 100 (Latin-1), the most common extended set in the wild.
var charmaps = map[string]*charmap.Charmap{
	"ISO_IR 100": charmap.ISO8859_1,
	"ISO_IR 101": charmap.ISO8859_2,
	"ISO_IR 109": charmap.ISO8859_3,
	"ISO_IR 110": charmap.ISO8859_4,
	"ISO_IR 144": charmap.ISO8859_5,
	"ISO_IR 127": charmap.ISO8859_6,
	"ISO_IR 126": charmap.ISO8859_7,
	"ISO_IR 138": charmap.ISO8859_8,
	"ISO_IR 148": charmap.ISO8859_9,
}

// RepairText returns value re-decoded through the file's declared character
// set when it is not already valid UTF-8. Values that cannot be repaired
// are returned as-is; the path resolver substitutes a placeholder for them.
func RepairText(value, specificCharacterSet string) string {
	if utf8.ValidString(value) {
		return value
	}

	term := strings.TrimSpace(specificCharacterSet)
	// Multi-valued character sets select per code extension; the first
	// non-default term decides the single-byte repertoire used here.
	if i := strings.IndexByte(term, '\\'); i >= 0 {
		term = strings.TrimSpace(term[i+1:])
	}

	cm, ok := charmaps[term]
	if !ok {
		cm = charmap.ISO8859_1
	}
	decoded, err := cm.NewDecoder().String(value)
	if err != nil || !utf8.ValidString(decoded) {
		return value
	}
	return decoded
}
