// Package diagfmt renders tokens and formatting reports for the CLI.
package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"prim/internal/source"
	"prim/internal/token"
)

// TokenOutput is the JSON shape of one token.
type TokenOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text"`
	Span  source.Span `json:"span"`
	Start string      `json:"start,omitempty"` // line:col
	End   string      `json:"end,omitempty"`
}

// FormatTokensPretty prints one token per line with its resolved range.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-11s %q at %d:%d-%d:%d\n",
			i+1, tok.Kind.String(), tok.Text,
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes tokens as an indented JSON array. When fs is
// non-nil every token also carries line:col positions.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		}
		if fs != nil {
			start, end := fs.Resolve(tok.Span)
			out.Start = fmt.Sprintf("%d:%d", start.Line, start.Col)
			out.End = fmt.Sprintf("%d:%d", end.Line, end.Col)
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
