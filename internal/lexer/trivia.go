package lexer

import (
	"prim/internal/token"
)

func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch < utf8RuneSelf {
			if !isSpaceByte(ch) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if !lx.atUnicodeSpace() {
			break
		}
		lx.bumpRune()
	}
	return lx.emit(token.Whitespace, start)
}

func (lx *Lexer) atLineComment() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '/' && b1 == '/'
}

// scanLineComment consumes "//" up to, not including, the next newline.
func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.emit(token.Comment, start)
}
