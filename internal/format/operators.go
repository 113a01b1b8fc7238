package format

import (
	"prim/internal/token"
)

// fusedOperators are operators the lexer splits into pieces; adjacent
// pieces print as one operator.
var fusedOperators = map[string]struct{}{
	"===": {}, "!==": {},
	"**": {}, "**=": {},
	"??": {}, "??=": {}, "?.": {},
	"<<": {}, ">>": {}, ">>>": {},
	"<<=": {}, ">>=": {}, ">>>=": {},
	"%=": {}, "&=": {}, "|=": {}, "^=": {},
	"&&=": {}, "||=": {},
}

func fuseOperators(left, right string) (string, bool) {
	fused := left + right
	_, ok := fusedOperators[fused]
	return fused, ok
}

// fusesWithNext reports whether tok is the first piece of an operator
// completed by the next raw token; a soft wrap waits for the whole operator.
func fusesWithNext(tok token.Token, la Lookahead) bool {
	if tok.Kind != token.Operator || la.Raw.Kind != token.Operator {
		return false
	}
	_, ok := fuseOperators(tok.Text, la.Raw.Text)
	return ok
}

func (s *State) operator(tok token.Token, la Lookahead) {
	switch text := tok.Text; {
	case text == "." || text == "?.":
		s.line += text
		s.record(tok, roleNone)

	case text == "++" || text == "--":
		if s.cur.value() {
			s.line += text
			s.record(tok, rolePostfix)
			return
		}
		s.prefix(tok)

	case text == "!" || text == "~":
		s.prefix(tok)

	case (text == "+" || text == "-") && !s.cur.value():
		s.prefix(tok)

	case text == ":" && s.inObject():
		s.trimRight()
		s.line += ":"
		s.trailingSpace(la)
		s.record(tok, roleNone)

	case text == "=>":
		s.arrowParams()
		s.binarySpace()
		s.line += text
		if !la.Raw.Is(token.Bracket, "{") {
			s.line += " "
		}
		s.record(tok, roleNone)

	default:
		s.binarySpace()
		s.line += text
		s.trailingSpace(la)
		s.record(tok, roleNone)
	}
}

// prefix prints a unary operator bound to the operand that follows it.
func (s *State) prefix(tok token.Token) {
	if !s.cur.opener() && !s.cur.op(".") && s.cur.role != roleUnary {
		s.space()
	}
	s.line += tok.Text
	s.record(tok, roleUnary)
}

func (s *State) binarySpace() {
	if !s.cur.opener() {
		s.space()
	}
}

// trailingSpace adds the space after a binary operator unless the next
// token closes or separates.
func (s *State) trailingSpace(la Lookahead) {
	next := la.Raw
	if next.Kind == token.Punctuation || next.IsCloseBracket() {
		return
	}
	s.line += " "
}
