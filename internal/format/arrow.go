package format

import (
	"regexp"
	"strings"

	"prim/internal/token"
)

// parenParam matches a parenthesized sole parameter at the end of a line.
var parenParam = regexp.MustCompile(`(^|[^A-Za-z0-9_$])\(\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*\)\s*$`)

// arrowParams rewrites the parameter list in front of an '=>' according
// to ArrowParens. It only looks at the pending line.
func (s *State) arrowParams() {
	switch s.opts.ArrowParens {
	case ArrowParensAlways:
		if s.cur.tok.Kind != token.Identifier {
			return
		}
		if s.prev.op(".") || (s.prev.value() && !s.prev.is(token.Identifier, "async")) {
			return
		}
		line := strings.TrimRight(s.line, " ")
		if !strings.HasSuffix(line, s.cur.tok.Text) {
			return
		}
		s.line = line[:len(line)-len(s.cur.tok.Text)] + "(" + s.cur.tok.Text + ")"

	case ArrowParensAvoid:
		if !s.cur.is(token.Bracket, ")") || s.prev.tok.Kind != token.Identifier {
			return
		}
		s.line = parenParam.ReplaceAllString(s.line, "${1}${2}")
	}
}
