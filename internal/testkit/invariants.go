package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"prim/internal/source"
	"prim/internal/token"
)

// CheckTokenInvariants verifies a lexed token stream against its file:
// 1) every token is non-empty and has a classified kind
// 2) spans are contiguous, start at 0 and end at len(Content)
// 3) each token's text is exactly the bytes its span covers
func CheckTokenInvariants(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	end, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var pos uint32
	for i, tok := range tokens {
		if tok.Text == "" {
			return fmt.Errorf("token %d is empty", i)
		}
		if tok.Kind == token.Invalid {
			return fmt.Errorf("token %d (%q) has no kind", i, tok.Text)
		}
		if tok.Span.File != sf.ID {
			return fmt.Errorf("token %d points to file %d, want %d", i, tok.Span.File, sf.ID)
		}
		if tok.Span.Start != pos {
			return fmt.Errorf("token %d starts at %d, previous ended at %d", i, tok.Span.Start, pos)
		}
		if tok.Span.End > end || tok.Span.End <= tok.Span.Start {
			return fmt.Errorf("token %d has bad span %v", i, tok.Span)
		}
		if got := string(sf.Content[tok.Span.Start:tok.Span.End]); got != tok.Text {
			return fmt.Errorf("token %d text %q does not match source %q", i, tok.Text, got)
		}
		pos = tok.Span.End
	}
	if pos != end {
		return fmt.Errorf("tokens cover %d of %d bytes", pos, end)
	}
	return nil
}

// CheckOutputInvariants verifies printer output shape: it ends with
// exactly one newline and no line carries trailing blanks. Lines inside
// template or string literals are exempt when src contains quotes.
func CheckOutputInvariants(src, out string) error {
	if !strings.HasSuffix(out, "\n") {
		return fmt.Errorf("output does not end with a newline")
	}
	if strings.HasSuffix(out, "\n\n") {
		return fmt.Errorf("output ends with a blank line")
	}
	if strings.ContainsAny(src, "\"'`") {
		return nil
	}
	for n, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if strings.TrimRight(line, " \t") != line {
			return fmt.Errorf("line %d has trailing whitespace: %q", n+1, line)
		}
	}
	return nil
}
