package format

import (
	"strings"

	"prim/internal/lexer"
	"prim/internal/token"
)

// Format lexes and prints src with ov applied over the default options.
// It never fails and the result always ends with a newline.
func Format(src string, ov Overrides) string {
	return FormatWith(src, ov.Apply(DefaultOptions()))
}

// FormatWith is Format with fully resolved options.
func FormatWith(src string, opts Options) string {
	return Print(lexer.Tokenize(src), opts)
}

// Tokenize exposes the lexer for introspection.
func Tokenize(src string) []token.Token {
	return lexer.Tokenize(src)
}

// Print folds tokens through the printer.
func Print(tokens []token.Token, opts Options) string {
	var sb strings.Builder
	st := NewState(opts)
	nextSig := nextSignificant(tokens)
	for i, tok := range tokens {
		var la Lookahead
		if i+1 < len(tokens) {
			la.Raw = tokens[i+1]
		}
		if j := nextSig[i]; j >= 0 {
			la.Sig = tokens[j]
		}
		var out string
		st, out = st.Step(tok, la)
		sb.WriteString(out)
	}
	sb.WriteString(st.Finish())
	return sb.String()
}

// nextSignificant maps every index to the index of the first
// non-whitespace token after it, or -1.
func nextSignificant(tokens []token.Token) []int {
	out := make([]int, len(tokens))
	next := -1
	for i := len(tokens) - 1; i >= 0; i-- {
		out[i] = next
		if tokens[i].Kind != token.Whitespace {
			next = i
		}
	}
	return out
}
