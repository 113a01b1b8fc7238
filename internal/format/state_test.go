package format

import (
	"strings"
	"testing"

	"prim/internal/lexer"
)

// fold runs src through the printer and returns every intermediate state,
// one per token.
func fold(t *testing.T, src string, opts Options) []State {
	t.Helper()
	toks := lexer.Tokenize(src)
	next := nextSignificant(toks)
	st := NewState(opts)
	states := make([]State, 0, len(toks))
	for i, tok := range toks {
		var la Lookahead
		if i+1 < len(toks) {
			la.Raw = toks[i+1]
		}
		if next[i] >= 0 {
			la.Sig = toks[next[i]]
		}
		st, _ = st.Step(tok, la)
		states = append(states, st)
	}
	return states
}

func TestBlockExpectation(t *testing.T) {
	tests := []struct {
		src  string
		want []bool // AwaitingBlock after each significant token
	}{
		{"if(x){", []bool{true, true, true, true, false}},
		{"if(x)y;", []bool{true, true, true, true, false, false}},
		{"while(a(b)){", []bool{true, true, true, true, true, true, true, false}},
		{"function f(){", []bool{true, true, true, true, false}},
		{"class A{", []bool{true, true, false}},
		{"if(x);", []bool{true, true, true, true, false}},
		{"x.if", []bool{false, false, false}},
	}
	for _, tt := range tests {
		var got []bool
		toks := lexer.Tokenize(tt.src)
		for i, st := range fold(t, tt.src, DefaultOptions()) {
			if toks[i].Kind.IsSignificant() {
				got = append(got, st.AwaitingBlock())
			}
		}
		if len(got) != len(tt.want) {
			t.Fatalf("%q: %d significant tokens, want %d", tt.src, len(got), len(tt.want))
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("%q: AwaitingBlock after token %d = %v, want %v (all %v)", tt.src, i, got[i], tt.want[i], got)
			}
		}
	}
}

func TestExpectationForcesBlock(t *testing.T) {
	// '=' would open an object, but the pending 'class' claims the brace
	states := fold(t, "class A = {", DefaultOptions())
	last := states[len(states)-1]
	if last.Indent() != 1 {
		t.Fatalf("Indent = %d, want 1", last.Indent())
	}

	states = fold(t, "x = (a, {", DefaultOptions())
	last = states[len(states)-1]
	if last.Indent() != 0 || last.Depth() != 2 {
		t.Fatalf("object brace changed indent: Indent=%d Depth=%d", last.Indent(), last.Depth())
	}
}

func TestDepthTracksBrackets(t *testing.T) {
	src := "f(a, [b, {c: (d)}]) { g() }"
	states := fold(t, src, DefaultOptions())
	maxDepth := 0
	for _, st := range states {
		if st.Depth() < 0 || st.Indent() < 0 {
			t.Fatalf("negative depth")
		}
		if st.Indent() > st.Depth() {
			t.Fatalf("indent %d exceeds depth %d", st.Indent(), st.Depth())
		}
		maxDepth = max(maxDepth, st.Depth())
	}
	if maxDepth != 4 {
		t.Fatalf("max depth = %d, want 4", maxDepth)
	}
	if last := states[len(states)-1]; last.Depth() != 0 {
		t.Fatalf("final depth = %d, want 0", last.Depth())
	}
}

func TestStepIsPure(t *testing.T) {
	toks := lexer.Tokenize("if (a) {")
	st := NewState(DefaultOptions())
	for _, tok := range toks[:len(toks)-1] {
		st, _ = st.Step(tok, Lookahead{})
	}
	before := st
	brace := toks[len(toks)-1]
	after, out := st.Step(brace, Lookahead{})
	if out != "if (a) {\n" {
		t.Fatalf("emitted %q", out)
	}
	if before.Indent() != 0 || before.Pending() != "if (a) " {
		t.Fatalf("Step mutated its receiver: indent=%d pending=%q", before.Indent(), before.Pending())
	}
	if after.Indent() != 1 {
		t.Fatalf("Indent after '{' = %d", after.Indent())
	}
	again, out2 := before.Step(brace, Lookahead{})
	if out2 != out || again.Indent() != after.Indent() {
		t.Fatalf("replaying Step diverged")
	}
}

func TestIndentationInvariant(t *testing.T) {
	src := "function f(){if(a){while(b){c()}}}\nclass K{m(){return 1}}"
	for _, opts := range []Options{
		DefaultOptions(),
		{PrintWidth: 80, TabWidth: 4, Semi: true, TrailingComma: TrailingCommaNone, ArrowParens: ArrowParensAlways},
		{PrintWidth: 80, UseTabs: true, TrailingComma: TrailingCommaAll, ArrowParens: ArrowParensAvoid},
	} {
		out := FormatWith(src, opts)
		unit := strings.Repeat(" ", opts.TabWidth)
		if opts.UseTabs {
			unit = "\t"
		}
		for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
			trimmed := strings.TrimLeft(line, " \t")
			lead := line[:len(line)-len(trimmed)]
			if unit != "" && strings.ReplaceAll(lead, unit, "") != "" {
				t.Fatalf("line %q: indentation %q is not a multiple of %q", line, lead, unit)
			}
			if strings.TrimRight(line, " \t") != line {
				t.Fatalf("line %q has trailing whitespace", line)
			}
		}
	}
}

func TestSanitizedOptions(t *testing.T) {
	st := NewState(Options{PrintWidth: -1, TabWidth: -3, TrailingComma: "bogus", ArrowParens: "sometimes"})
	def := DefaultOptions()
	if st.opts.PrintWidth != def.PrintWidth || st.opts.TabWidth != def.TabWidth {
		t.Fatalf("numeric options not sanitized: %+v", *st.opts)
	}
	if st.opts.TrailingComma != def.TrailingComma || st.opts.ArrowParens != def.ArrowParens {
		t.Fatalf("enum options not sanitized: %+v", *st.opts)
	}
}

func TestNormalizeQuotes(t *testing.T) {
	tests := []struct {
		in     string
		single bool
		want   string
	}{
		{`'hello'`, false, `"hello"`},
		{`'he said "hi"'`, false, `'he said "hi"'`},
		{`"x"`, true, `'x'`},
		{`"it's"`, true, `"it's"`},
		{"`t`", false, "`t`"},
		{`'abc`, false, `'abc`},
		{`'abc\'`, false, `'abc\'`},
		{`'a\'b'`, false, `"a\'b"`},
		{`'`, false, `'`},
	}
	for _, tt := range tests {
		if got := normalizeQuotes(tt.in, tt.single); got != tt.want {
			t.Fatalf("normalizeQuotes(%q, %v) = %q, want %q", tt.in, tt.single, got, tt.want)
		}
	}
}
