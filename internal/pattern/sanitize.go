package pattern

import "strings"

// unsafeRunes are the characters replaced by '_' in resolved path segments.
// The set includes the path separators so a metadata value can never escape
// into a different directory level.
const unsafeRunes = "+`~!@#$%^&*(){}[]/=\\|<>,.\":' "

// Sanitize maps every unsafe rune in s to '_'. All other runes pass through
// unchanged; the result never shrinks and sanitizing twice is a no-op.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeRunes, r) {
			return '_'
		}
		return r
	}, s)
}
