package lexer

import (
	"prim/internal/source"
	"prim/internal/token"
)

// Lexer splits a file into a lossless sequence of classified tokens.
// It never fails: every byte of the input ends up in exactly one token.
type Lexer struct {
	file   *source.File
	cursor Cursor
}

func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Next returns the next token. ok is false once the input is exhausted.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	if lx.cursor.EOF() {
		return token.Token{}, false
	}

	ch := lx.cursor.Peek()
	switch {
	case ch < utf8RuneSelf && isSpaceByte(ch):
		return lx.scanWhitespace(), true
	case ch >= utf8RuneSelf && lx.atUnicodeSpace():
		return lx.scanWhitespace(), true
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword(), true
	case isDec(ch):
		return lx.scanNumber(), true
	case ch == '"' || ch == '\'' || ch == '`':
		return lx.scanString(), true
	case ch == '/' && lx.atLineComment():
		return lx.scanLineComment(), true
	case isBracket(ch):
		return lx.single(token.Bracket), true
	case ch == ';' || ch == ',':
		return lx.single(token.Punctuation), true
	case isOperatorByte(ch):
		return lx.scanOperator(), true
	default:
		return lx.scanOther(), true
	}
}

// All drains the lexer.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, len(lx.file.Content)/2+1)
	for {
		tok, ok := lx.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

// Tokenize lexes src as an anonymous in-memory file.
func Tokenize(src string) []token.Token {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(src))
	return TokenizeFile(fs.Get(id))
}

// TokenizeFile lexes the whole content of f.
func TokenizeFile(f *source.File) []token.Token {
	return New(f).All()
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) single(k token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return lx.emit(k, start)
}
