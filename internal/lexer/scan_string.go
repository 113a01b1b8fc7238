package lexer

import (
	"prim/internal/token"
)

// scanString consumes a "...", '...' or `...` literal. A backslash always
// escapes the following byte. Newlines are allowed inside the literal and
// an unterminated literal runs to the end of input.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == quote {
			break
		}
		if b == '\\' {
			lx.cursor.Bump()
		}
	}
	return lx.emit(token.String, start)
}
