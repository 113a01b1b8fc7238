package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"prim/internal/token"
)

// Step consumes tok and returns the next state together with the text of
// the lines committed while doing so.
func (s State) Step(tok token.Token, la Lookahead) (State, string) {
	s.out = ""

	if tok.Kind == token.Operator && s.beforeOp != nil && s.last == token.Operator {
		if fused, ok := fuseOperators(s.cur.tok.Text, tok.Text); ok {
			base := *s.beforeOp
			merged := tok
			merged.Text = fused
			merged.Span = s.cur.tok.Span.Cover(tok.Span)
			return base.Step(merged, la)
		}
	}
	snapshot := s
	s.beforeOp = nil

	if tok.Kind == token.Keyword && s.cur.op(".") {
		tok.Kind = token.Identifier
	}

	switch tok.Kind {
	case token.Whitespace:
		s.whitespace(la)
	case token.Comment:
		s.comment(tok)
	case token.Keyword:
		s.keyword(tok, la)
	case token.Identifier, token.Number:
		s.track(tok)
		s.operand()
		s.line += tok.Text
		s.record(tok, roleNone)
	case token.String:
		s.track(tok)
		s.operand()
		s.line += normalizeQuotes(tok.Text, s.opts.SingleQuote)
		s.record(tok, roleNone)
	case token.Bracket:
		s.bracket(tok, la)
	case token.Operator:
		s.track(tok)
		s.operator(tok, la)
	case token.Punctuation:
		s.punctuation(tok, la)
	default:
		s.track(tok)
		s.line += tok.Text
		s.record(tok, roleNone)
	}

	if tok.Kind != token.String && !fusesWithNext(tok, la) && runewidth.StringWidth(s.line) > s.opts.PrintWidth {
		s.commit()
	}
	s.last = tok.Kind

	if tok.Kind == token.Operator && s.out == "" {
		s.beforeOp = &snapshot
	}
	return s, s.out
}

// Finish flushes the pending line and returns the remaining output. A
// run that produced nothing yields a single newline.
func (s State) Finish() string {
	s.out = ""
	s.commitStatement()
	if !s.wrote {
		return "\n"
	}
	return s.out
}

// track advances the block expectation past a significant token that is
// neither a bracket nor ';'.
func (s *State) track(tok token.Token) {
	if !s.expect.awaiting {
		return
	}
	if s.expect.listClosed && s.Depth() == s.expect.depth {
		s.expect = expectation{}
	}
}

// operand spaces an identifier, number or string away from the previous
// token unless that token binds to it.
func (s *State) operand() {
	if s.cur.none() {
		return
	}
	switch s.cur.tok.Kind {
	case token.Operator, token.Bracket, token.Other:
		return
	}
	s.space()
}

func (s *State) whitespace(la Lookahead) {
	if s.line == "" || s.endsWithSpace() {
		return
	}
	if s.cur.opener() || s.cur.op(".") || s.cur.op("?.") {
		return
	}
	if s.cur.role == roleUnary && la.Raw.Kind != token.Operator {
		return
	}
	next := la.Raw
	switch {
	case next.Kind == token.Punctuation,
		next.IsCloseBracket(),
		next.Is(token.Operator, ".") && s.cur.value(),
		next.Is(token.Operator, ":") && s.inObject():
		return
	case next.Is(token.Bracket, "(") || next.Is(token.Bracket, "["):
		if s.cur.tok.Kind == token.Identifier || (s.cur.tok.IsCloseBracket() && s.cur.role != roleBlockClose) {
			return
		}
	case next.Is(token.Operator, "++") || next.Is(token.Operator, "--"):
		if s.cur.value() {
			return
		}
	}
	s.line += " "
}

func (s *State) comment(tok token.Token) {
	if strings.TrimSpace(s.line) != "" {
		s.space()
	}
	s.line += tok.Text
	s.commit()
}

func (s *State) keyword(tok token.Token, la Lookahead) {
	s.track(tok)
	if !s.cur.opener() && !s.cur.op(".") && s.cur.role != roleUnary {
		s.space()
	}
	s.line += tok.Text
	if token.IntroducesBlock(tok.Text) {
		s.expect = expectation{awaiting: true, depth: s.Depth()}
	}
	next := la.Raw
	if next.Kind != token.Bracket && !next.Is(token.Punctuation, ";") && !next.Is(token.Punctuation, ",") {
		s.line += " "
	}
	s.record(tok, roleNone)
}

func (s *State) punctuation(tok token.Token, la Lookahead) {
	switch tok.Text {
	case ";":
		if s.expect.awaiting && s.Depth() == s.expect.depth {
			s.expect = expectation{}
		}
		s.trimRight()
		s.line += ";"
		s.record(tok, roleNone)
		s.commit()
	default:
		s.track(tok)
		s.trimRight()
		s.line += tok.Text
		if la.Raw.Kind != token.Whitespace {
			s.line += " "
		}
		s.record(tok, roleNone)
	}
}
