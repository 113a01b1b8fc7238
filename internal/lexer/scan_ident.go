package lexer

import (
	"prim/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Identifier, start)
	if kind, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = kind
	}
	return tok
}
