package diagfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"prim/internal/diff"
	"prim/internal/driver"
	"prim/internal/lexer"
	"prim/internal/source"
)

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.js", []byte("let x\n= 1")))
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, lexer.TokenizeFile(f), fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if want := `  1: Keyword     "let" at 1:1-1:4`; lines[0] != want {
		t.Fatalf("line 1 = %q, want %q", lines[0], want)
	}
	if !strings.HasSuffix(lines[4], `"=" at 2:1-2:2`) {
		t.Fatalf("line 5 = %q", lines[4])
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.js", []byte("a;")))
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, lexer.TokenizeFile(f), fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].Kind != "Identifier" || out[1].Text != ";" || out[1].Start != "1:2" {
		t.Fatalf("tokens = %+v", out)
	}
}

func sampleResults() []driver.FormatResult {
	return []driver.FormatResult{
		{Path: "a.js", Changed: true, Diff: diff.Compute("a\n", "a;\n", diff.DefaultContext)},
		{Path: "b.js", Cached: true},
		{Path: "c.js", Err: errors.New("boom")},
	}
}

func TestSummarize(t *testing.T) {
	if got := Summarize(sampleResults()); got != (Summary{Files: 3, Changed: 1, Cached: 1, Errors: 1}) {
		t.Fatalf("summary = %+v", got)
	}
}

func TestFormatReportText(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatReportText(&buf, sampleResults(), ReportOpts{Check: true, NoColor: true}); err != nil {
		t.Fatal(err)
	}
	want := "would reformat a.js\nerror: c.js: boom\n3 files, 1 changed, 1 errors\n"
	if buf.String() != want {
		t.Fatalf("got %q\nwant %q", buf.String(), want)
	}

	buf.Reset()
	if err := FormatReportText(&buf, sampleResults(), ReportOpts{Diff: true, Quiet: true, NoColor: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "-a\n+a;\n") || strings.Contains(buf.String(), "files,") {
		t.Fatalf("diff report = %q", buf.String())
	}
}

func TestFormatReportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatReportJSON(&buf, sampleResults()); err != nil {
		t.Fatal(err)
	}
	var out reportOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Summary.Files != 3 || len(out.Files) != 3 || out.Files[2].Error != "boom" || len(out.Files[0].Diff) == 0 {
		t.Fatalf("report = %s", buf.String())
	}
}
