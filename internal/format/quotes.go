package format

import (
	"strings"
)

// normalizeQuotes switches a '...' or "..." literal to the preferred quote
// when its interior does not contain that quote. Template literals and
// unterminated strings are returned unchanged.
func normalizeQuotes(lit string, single bool) string {
	want := byte('"')
	if single {
		want = '\''
	}
	if len(lit) < 2 {
		return lit
	}
	q := lit[0]
	if q == want || (q != '"' && q != '\'') {
		return lit
	}
	if !terminated(lit) {
		return lit
	}
	body := lit[1 : len(lit)-1]
	if strings.IndexByte(body, want) >= 0 {
		return lit
	}
	return string(want) + body + string(want)
}

// terminated reports whether the closing quote of lit is its last byte.
func terminated(lit string) bool {
	q := lit[0]
	for i := 1; i < len(lit); i++ {
		switch lit[i] {
		case '\\':
			i++
		case q:
			return i == len(lit)-1
		}
	}
	return false
}
