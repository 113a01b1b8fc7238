package format

import (
	"strings"

	"prim/internal/token"
)

// objectPrefixes are the significant tokens after which '{' starts an
// object literal rather than a block.
var objectPrefixes = map[string]token.Kind{
	"=": token.Operator,
	",": token.Punctuation,
	"(": token.Bracket,
	"[": token.Bracket,
	":": token.Operator,
}

// extendedObjectPrefixes join objectPrefixes under ExtendedBraces.
var extendedObjectPrefixes = map[string]token.Kind{
	"?":      token.Operator,
	"&&":     token.Operator,
	"||":     token.Operator,
	"??":     token.Operator,
	"return": token.Keyword,
	"const":  token.Keyword,
	"let":    token.Keyword,
	"var":    token.Keyword,
}

// spacedCallers are words that take a space before their '('.
var spacedCallers = map[string]struct{}{
	"if": {}, "for": {}, "while": {}, "switch": {}, "catch": {},
}

// sameLineAfterBlock are words that continue a statement after its
// closing '}'.
var sameLineAfterBlock = map[string]struct{}{
	"else": {}, "catch": {}, "finally": {},
}

func (s *State) bracket(tok token.Token, la Lookahead) {
	switch tok.Text {
	case "{":
		s.openBrace(tok, la)
	case "(", "[":
		s.openList(tok)
	default:
		s.closeBracket(tok, la)
	}
}

func (s *State) opensObject() bool {
	if s.cur.none() {
		return false
	}
	text, k := s.cur.tok.Text, s.cur.tok.Kind
	if kind, ok := objectPrefixes[text]; ok && kind == k {
		return true
	}
	if !s.opts.ExtendedBraces {
		return false
	}
	kind, ok := extendedObjectPrefixes[text]
	return ok && kind == k
}

func (s *State) openBrace(tok token.Token, la Lookahead) {
	block := true
	if s.expect.awaiting && s.Depth() == s.expect.depth {
		s.expect = expectation{}
	} else {
		block = !s.opensObject()
	}

	if block {
		s.space()
		s.line += "{"
		s.record(tok, roleBlockOpen)
		s.commit()
		s.stack = s.stack.push(frameBlock)
		return
	}

	if !s.cur.opener() {
		s.space()
	}
	s.line += "{"
	if s.opts.BracketSpacing && !la.Raw.Is(token.Bracket, "}") {
		s.line += " "
	}
	s.record(tok, roleObjectOpen)
	s.stack = s.stack.push(frameObject)
}

func (s *State) openList(tok token.Token) {
	s.track(tok)
	if _, ok := spacedCallers[s.cur.tok.Text]; ok && !s.prev.op(".") &&
		(s.cur.tok.Kind == token.Keyword || s.cur.tok.Kind == token.Identifier) {
		s.space()
	}
	s.line += tok.Text
	if tok.Text == "(" {
		s.stack = s.stack.push(frameParen)
	} else {
		s.stack = s.stack.push(frameArray)
	}
	s.record(tok, roleNone)
}

func (s *State) closeBracket(tok token.Token, la Lookahead) {
	f := s.stack.find(tok.Text)
	if f == nil {
		// unmatched: keep the text, leave the stack alone
		s.track(tok)
		s.line += tok.Text
		s.record(tok, roleNone)
		return
	}

	if tok.Text == "}" && f.kind == frameBlock {
		s.closeBlock(tok, f, la)
		return
	}

	s.dropTrailingComma(f.kind)
	s.trimRight()
	r := roleNone
	switch {
	case f.kind == frameObject && s.cur.role == roleObjectOpen:
		s.line += "}"
		r = roleObjectClose
	case f.kind == frameObject:
		if s.opts.BracketSpacing && s.line != "" {
			s.line += " "
		}
		s.line += "}"
		r = roleObjectClose
	default:
		s.line += tok.Text
	}
	s.stack = f.parent
	s.afterClose(tok.Text)
	s.record(tok, r)
}

func (s *State) closeBlock(tok token.Token, f *frame, la Lookahead) {
	s.commitStatement()
	s.stack = f.parent
	s.afterClose("}")
	s.line += "}"
	s.record(tok, roleBlockClose)

	next := la.Sig
	if _, ok := sameLineAfterBlock[next.Text]; ok && (next.Kind == token.Keyword || next.Kind == token.Identifier) {
		s.line += " "
		return
	}
	if s.opts.ExtendedBraces {
		switch {
		case next.Is(token.Bracket, ")"), next.Is(token.Bracket, "]"),
			next.Is(token.Punctuation, ","), next.Is(token.Punctuation, ";"),
			next.Is(token.Operator, "."):
			return
		}
	}
	s.commit()
}

// afterClose updates the block expectation once a closer brought the
// stack back to depth.
func (s *State) afterClose(text string) {
	if !s.expect.awaiting {
		return
	}
	depth := s.Depth()
	switch {
	case depth < s.expect.depth:
		s.expect = expectation{}
	case depth == s.expect.depth && s.expect.listClosed:
		s.expect = expectation{}
	case depth == s.expect.depth && text == ")":
		s.expect.listClosed = true
	}
}

// dropTrailingComma removes a ',' right before a closer of kind when the
// TrailingComma option asks for it.
func (s *State) dropTrailingComma(kind frameKind) {
	if !s.cur.is(token.Punctuation, ",") {
		return
	}
	drop := false
	switch s.opts.TrailingComma {
	case TrailingCommaNone:
		drop = kind == frameParen || kind == frameArray || kind == frameObject
	case TrailingCommaES5:
		drop = kind == frameParen
	}
	if !drop {
		return
	}
	trimmed := strings.TrimRight(s.line, " ")
	if strings.HasSuffix(trimmed, ",") {
		s.line = trimmed[:len(trimmed)-1]
	}
}
