package utils

import "strings"

// patternMeta are the characters a server-side regular expression would
// interpret: . * + ? ^ $ { } ( ) | [ ] \
const patternMeta = `.*+?^${}()|[]\`

// EscapePattern prefixes every pattern metacharacter in s with a backslash so
// the result matches s literally when the server builds a regex from it.
func EscapePattern(s string) string {
	if !strings.ContainsAny(s, patternMeta) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) * 2)
	// all metacharacters are ASCII, so a byte walk keeps multibyte runes intact
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(patternMeta, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
