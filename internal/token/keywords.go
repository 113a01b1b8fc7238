package token

var keywords = map[string]struct{}{
	"if":       {},
	"else":     {},
	"for":      {},
	"while":    {},
	"function": {},
	"return":   {},
	"const":    {},
	"let":      {},
	"var":      {},
	"class":    {},
	"new":      {},
}

// blockKeywords introduce a statement whose body is expected to be a block.
var blockKeywords = map[string]struct{}{
	"if":       {},
	"for":      {},
	"while":    {},
	"function": {},
	"class":    {},
}

// LookupKeyword reports whether ident is in the keyword set.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	if _, ok := keywords[ident]; ok {
		return Keyword, true
	}
	return Identifier, false
}

// IntroducesBlock reports whether the keyword starts a construct whose
// next '{' opens a block.
func IntroducesBlock(word string) bool {
	_, ok := blockKeywords[word]
	return ok
}

// Keywords returns the keyword set in no particular order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}
