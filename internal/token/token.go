package token

import (
	"prim/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Text string
	Span source.Span
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(k Kind, text string) bool {
	return t.Kind == k && t.Text == text
}

// IsOpenBracket reports whether the token is '(', '[' or '{'.
func (t Token) IsOpenBracket() bool {
	return t.Kind == Bracket && (t.Text == "(" || t.Text == "[" || t.Text == "{")
}

// IsCloseBracket reports whether the token is ')', ']' or '}'.
func (t Token) IsCloseBracket() bool {
	return t.Kind == Bracket && (t.Text == ")" || t.Text == "]" || t.Text == "}")
}

// IsValue reports whether the token can end an operand: a name, a literal
// or a closing bracket. Operators following a value are binary.
func (t Token) IsValue() bool {
	switch t.Kind {
	case Identifier, Number, String:
		return true
	case Bracket:
		return t.IsCloseBracket()
	default:
		return false
	}
}

// Quote returns the opening quote byte of a string token, or 0.
func (t Token) Quote() byte {
	if t.Kind != String || t.Text == "" {
		return 0
	}
	return t.Text[0]
}

// Join concatenates the text of every token.
func Join(tokens []Token) string {
	n := 0
	for _, t := range tokens {
		n += len(t.Text)
	}
	buf := make([]byte, 0, n)
	for _, t := range tokens {
		buf = append(buf, t.Text...)
	}
	return string(buf)
}
