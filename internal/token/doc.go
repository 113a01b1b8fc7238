// Package token defines the lexical token kinds produced by the prim lexer.
// Invariants:
//   - Token.Text is the exact substring consumed from the source.
//   - Concatenating Text over a token sequence reproduces the source.
//   - Kind is a closed set; Invalid is the zero value and is never produced.
//   - Whitespace and comments are ordinary tokens, not trivia, so the
//     printer sees every byte of the input.
package token
