package lexer

import (
	"prim/internal/token"
)

// twoCharOps is the closed list of two-character operators, checked before
// falling back to a single operator character.
var twoCharOps = [...][2]byte{
	{'=', '='}, {'!', '='}, {'<', '='}, {'>', '='},
	{'+', '+'}, {'-', '-'},
	{'+', '='}, {'-', '='}, {'*', '='}, {'/', '='},
	{'&', '&'}, {'|', '|'},
	{'=', '>'},
}

func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Mark()
	for _, op := range twoCharOps {
		if lx.try2(op[0], op[1]) {
			return lx.emit(token.Operator, start)
		}
	}
	lx.cursor.Bump()
	return lx.emit(token.Operator, start)
}

// scanOther emits one whole UTF-8 sequence, or one byte if it is invalid.
func (lx *Lexer) scanOther() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	return lx.emit(token.Other, start)
}

func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if ok && b0 == a && b1 == b {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return true
	}
	return false
}
