package format

import (
	"strings"

	"prim/internal/token"
)

type frameKind uint8

const (
	frameBlock frameKind = iota
	frameObject
	frameParen
	frameArray
)

// frame is one open bracket. Frames form a persistent linked list, so a
// State can be copied freely and every copy keeps its own stack.
type frame struct {
	kind   frameKind
	parent *frame
	depth  int // frames up to and including this one
	blocks int // block frames up to and including this one
}

func (f *frame) push(kind frameKind) *frame {
	nf := &frame{kind: kind, parent: f, depth: 1}
	if kind == frameBlock {
		nf.blocks = 1
	}
	if f != nil {
		nf.depth += f.depth
		nf.blocks += f.blocks
	}
	return nf
}

func (f *frame) opens(close string) bool {
	switch close {
	case ")":
		return f.kind == frameParen
	case "]":
		return f.kind == frameArray
	default:
		return f.kind == frameBlock || f.kind == frameObject
	}
}

// find returns the nearest frame closed by close, or nil.
func (f *frame) find(close string) *frame {
	for cur := f; cur != nil; cur = cur.parent {
		if cur.opens(close) {
			return cur
		}
	}
	return nil
}

// role is what the printer decided a significant token was.
type role uint8

const (
	roleNone role = iota
	roleBlockOpen
	roleBlockClose
	roleObjectOpen
	roleObjectClose
	roleUnary
	rolePostfix
)

type sig struct {
	tok  token.Token
	role role
}

func (s sig) none() bool { return s.tok.Kind == token.Invalid }

func (s sig) is(k token.Kind, text string) bool { return s.tok.Is(k, text) }

func (s sig) op(text string) bool { return s.tok.Is(token.Operator, text) }

func (s sig) opener() bool { return s.tok.IsOpenBracket() }

// value reports whether the token ends an operand. A block close does not.
func (s sig) value() bool {
	if s.role == roleBlockClose {
		return false
	}
	return s.tok.IsValue() || s.role == rolePostfix
}

// expectation is the block-start tracker set by block-introducing
// keywords. The zero value is "none".
type expectation struct {
	awaiting   bool
	depth      int  // stack depth at the keyword
	listClosed bool // the parenthesized list after the keyword has closed
}

// Lookahead is what the printer may see past the current token.
type Lookahead struct {
	// Raw is the token immediately after the current one.
	Raw token.Token
	// Sig is the next non-whitespace token.
	Sig token.Token
}

// State is the printer state between two tokens. The zero value is not
// usable; start from NewState.
type State struct {
	opts *Options
	unit string

	stack  *frame
	line   string
	last   token.Kind // kind of the previous token, whitespace included
	cur    sig        // last significant token
	prev   sig        // the one before cur
	expect expectation

	// beforeOp is the state just before the previous operator, kept while
	// that operator emitted nothing so an adjacent operator can merge
	// with it.
	beforeOp *State

	out   string
	wrote bool
}

// NewState returns the initial printer state for opts.
func NewState(opts Options) State {
	opts = opts.sanitized()
	unit := strings.Repeat(" ", opts.TabWidth)
	if opts.UseTabs {
		unit = "\t"
	}
	return State{opts: &opts, unit: unit}
}

// Indent is the current indentation depth: the number of open blocks.
func (s State) Indent() int {
	if s.stack == nil {
		return 0
	}
	return s.stack.blocks
}

// Depth is the number of open brackets of any kind.
func (s State) Depth() int {
	if s.stack == nil {
		return 0
	}
	return s.stack.depth
}

// AwaitingBlock reports whether a block keyword is waiting for its '{'.
func (s State) AwaitingBlock() bool { return s.expect.awaiting }

// Pending is the buffered, not yet committed line.
func (s State) Pending() string { return s.line }

func (s *State) inObject() bool {
	return s.stack != nil && s.stack.kind == frameObject
}

func (s *State) record(tok token.Token, r role) {
	s.prev = s.cur
	s.cur = sig{tok: tok, role: r}
}

// commit flushes the pending line with the current indentation.
func (s *State) commit() {
	text := strings.TrimSpace(s.line)
	s.line = ""
	if text == "" {
		return
	}
	s.out += strings.Repeat(s.unit, s.Indent()) + text + "\n"
	s.wrote = true
}

// commitStatement is a commit that may terminate a statement: with Semi
// set, a missing ';' is added first.
func (s *State) commitStatement() {
	if s.opts.Semi && s.needsSemi() {
		s.line = strings.TrimRight(s.line, " ") + ";"
	}
	s.commit()
}

func (s *State) needsSemi() bool {
	if strings.TrimSpace(s.line) == "" {
		return false
	}
	switch s.cur.role {
	case roleObjectClose, rolePostfix:
		return true
	case roleNone:
	default:
		return false
	}
	switch s.cur.tok.Kind {
	case token.Identifier, token.Number, token.String, token.Keyword:
		return true
	case token.Bracket:
		return s.cur.tok.Text == ")" || s.cur.tok.Text == "]"
	default:
		return false
	}
}

func (s *State) endsWithSpace() bool {
	return strings.HasSuffix(s.line, " ")
}

// space appends one space unless the line is empty or already ends in one.
func (s *State) space() {
	if s.line != "" && !s.endsWithSpace() {
		s.line += " "
	}
}

func (s *State) trimRight() {
	s.line = strings.TrimRight(s.line, " ")
}
