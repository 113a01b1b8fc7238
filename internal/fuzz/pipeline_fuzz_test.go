package fuzztests

import (
	"testing"

	"prim/internal/format"
	"prim/internal/lexer"
	"prim/internal/source"
	"prim/internal/testkit"
)

func FuzzPipeline(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, raw []byte) {
		if len(raw) > maxSeedBytes {
			t.Skip()
		}
		content, flags, err := source.Decode(raw)
		if err != nil {
			return
		}
		fs := source.NewFileSet()
		file := fs.Get(fs.Add("fuzz.js", content, flags|source.FileVirtual))

		tokens := lexer.TokenizeFile(file)
		if err := testkit.CheckTokenInvariants(tokens, file); err != nil {
			t.Fatalf("lexer: %v\ninput: %q", err, content)
		}

		out := format.Print(tokens, format.DefaultOptions())
		if err := testkit.CheckOutputInvariants(string(content), out); err != nil {
			t.Fatalf("printer: %v\ninput: %q\noutput: %q", err, content, out)
		}
	})
}
