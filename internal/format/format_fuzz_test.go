package format_test

import (
	"strings"
	"testing"

	"prim/internal/format"
)

func FuzzFormat(f *testing.F) {
	for _, seed := range stableInputs {
		f.Add(seed)
	}
	f.Add("}{)(][")
	f.Add("\xff\xfe if (")
	f.Fuzz(func(t *testing.T, src string) {
		out := format.Format(src, format.Overrides{})
		if !strings.HasSuffix(out, "\n") {
			t.Fatalf("output %q does not end with a newline", out)
		}
		if strings.ContainsAny(src, "\"'`") {
			return
		}
		for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
			if line != strings.TrimSpace(line) && strings.TrimLeft(line, " ") != strings.TrimSpace(line) {
				t.Fatalf("line %q has stray whitespace", line)
			}
		}
	})
}
