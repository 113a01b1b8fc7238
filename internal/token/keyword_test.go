package token_test

import (
	"testing"

	"prim/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	for _, kw := range []string{"if", "else", "for", "while", "function", "return", "const", "let", "var", "class", "new"} {
		k, ok := token.LookupKeyword(kw)
		if !ok || k != token.Keyword {
			t.Fatalf("%q should be a keyword", kw)
		}
	}
	for _, id := range []string{"If", "switch", "catch", "finally", "true", "foo123", "typeof"} {
		k, ok := token.LookupKeyword(id)
		if ok || k != token.Identifier {
			t.Fatalf("%q must NOT be a keyword", id)
		}
	}
	if n := len(token.Keywords()); n != 11 {
		t.Fatalf("keyword set has %d entries, want 11", n)
	}
}

func TestIntroducesBlock(t *testing.T) {
	for _, kw := range []string{"if", "for", "while", "function", "class"} {
		if !token.IntroducesBlock(kw) {
			t.Fatalf("%q should introduce a block", kw)
		}
	}
	for _, kw := range []string{"else", "return", "const", "new", "switch"} {
		if token.IntroducesBlock(kw) {
			t.Fatalf("%q must NOT introduce a block", kw)
		}
	}
}
