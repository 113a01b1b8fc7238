package lexer

import (
	"unicode"
	"unicode/utf8"
)

const utf8RuneSelf = utf8.RuneSelf

// peekRune decodes the rune at the cursor. Invalid bytes decode as
// RuneError with size 1.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	lx.cursor.Advance(sz)
}

func (lx *Lexer) atUnicodeSpace() bool {
	r, sz := lx.peekRune()
	if r == utf8.RuneError && sz <= 1 {
		return false
	}
	return unicode.IsSpace(r)
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isIdentStartByte(b byte) bool {
	return b == '_' || b == '$' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isBracket(b byte) bool {
	switch b {
	case '(', ')', '{', '}', '[', ']':
		return true
	}
	return false
}

func isOperatorByte(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '%', '=', '<', '>', '!', '&', '|', '^', '~', '?', ':', '.':
		return true
	}
	return false
}
