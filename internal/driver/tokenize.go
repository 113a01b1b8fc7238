package driver

import (
	"context"

	"prim/internal/lexer"
	"prim/internal/source"
	"prim/internal/token"
	"prim/internal/trace"
)

// TokenizeResult holds the lexed tokens of one file together with the
// FileSet needed to resolve their spans.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
}

// Tokenize loads path and lexes it.
func Tokenize(ctx context.Context, path string) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(ctx, fs, fs.Get(fileID)), nil
}

// TokenizeSource lexes in-memory content registered under name.
func TokenizeSource(ctx context.Context, name string, content []byte) (*TokenizeResult, error) {
	decoded, flags, err := source.Decode(content)
	if err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	fileID := fs.Add(name, decoded, flags|source.FileVirtual)
	return tokenizeFile(ctx, fs, fs.Get(fileID)), nil
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File) *TokenizeResult {
	_, span := trace.Start(ctx, trace.ScopePass, "lex")
	tokens := lexer.TokenizeFile(file)
	span.End("")
	return &TokenizeResult{FileSet: fs, File: file, Tokens: tokens}
}
