package lexer

import (
	"prim/internal/token"
)

// scanNumber is greedy over digits and dots: "1.2.3" is one token,
// exponents and radix prefixes are not recognized.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if !isDec(ch) && ch != '.' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.Number, start)
}
