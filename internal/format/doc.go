// Package format is the grammar-free printer: it folds a token sequence
// into reformatted text without building a syntax tree.
//
// The printer is a pure reducer. State.Step consumes one token and
// returns the next state together with the text of every line it
// committed; State.Finish flushes the pending line. Format and FormatWith
// wire the lexer and the printer together.
//
// Does not: parse expressions, reflow long lines, attach comments.
// Depends on: internal/lexer, internal/token, go-runewidth.
package format
