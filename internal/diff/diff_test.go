package diff

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestComputeNoChanges(t *testing.T) {
	res := Compute("a\nb\n", "a\nb\n", DefaultContext)
	if res.HasChanges() || res.Stat != (Stat{}) {
		t.Fatalf("unexpected changes: %+v", res)
	}
	if Unified("x.js", "a\n", "a\n") != "" {
		t.Fatal("Unified of equal texts must be empty")
	}
}

func TestUnifiedSingleChange(t *testing.T) {
	a := "one\ntwo\nthree\n"
	b := "one\n2\nthree\n"
	want := strings.Join([]string{
		"--- x.js.orig",
		"+++ x.js",
		"@@ -1,3 +1,3 @@",
		" one",
		"-two",
		"+2",
		" three",
		"",
	}, "\n")
	if got := Unified("x.js", a, b); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestInsertIntoEmpty(t *testing.T) {
	res := Compute("", "a\nb\n", DefaultContext)
	if len(res.Hunks) != 1 {
		t.Fatalf("hunks = %d", len(res.Hunks))
	}
	if got := res.Hunks[0].Header(); got != "@@ -0,0 +1,2 @@" {
		t.Fatalf("header = %q", got)
	}
	if res.Stat != (Stat{Added: 2}) {
		t.Fatalf("stat = %+v", res.Stat)
	}
}

func TestDistantChangesSplitHunks(t *testing.T) {
	var a, b []string
	for i := 0; i < 20; i++ {
		line := string(rune('a' + i))
		a = append(a, line)
		if i == 1 || i == 17 {
			line = strings.ToUpper(line)
		}
		b = append(b, line)
	}
	res := Compute(strings.Join(a, "\n")+"\n", strings.Join(b, "\n")+"\n", 3)
	if len(res.Hunks) != 2 {
		t.Fatalf("hunks = %d, want 2", len(res.Hunks))
	}
	if h := res.Hunks[0]; h.OldStart != 1 || h.OldCount != 5 {
		t.Fatalf("first hunk %s", h.Header())
	}
	if h := res.Hunks[1]; h.OldStart != 15 || h.OldCount != 6 || h.NewCount != 6 {
		t.Fatalf("second hunk %s", h.Header())
	}
	if res.Stat != (Stat{Added: 2, Removed: 2}) {
		t.Fatalf("stat = %+v", res.Stat)
	}
}

func TestNearbyChangesMerge(t *testing.T) {
	a := "1\n2\n3\n4\n5\n6\n"
	b := "1\nX\n3\n4\nY\n6\n"
	res := Compute(a, b, 3)
	if len(res.Hunks) != 1 {
		t.Fatalf("hunks = %d, want 1", len(res.Hunks))
	}
	if got := res.Hunks[0].Header(); got != "@@ -1,6 +1,6 @@" {
		t.Fatalf("header = %q", got)
	}
}

// applying the + and context lines of a script must rebuild the new text
func TestEditScriptReconstructs(t *testing.T) {
	pairs := [][2]string{
		{"a\nb\nc\nd\n", "b\nc\ne\nd\nf\n"},
		{"x\n", ""},
		{"if (a) {\nb\n}\n", "if (a) {\n  b;\n}\n"},
		{"1\n2\n3\n", "3\n2\n1\n"},
	}
	for _, p := range pairs {
		script := editScript(splitLines(p[0]), splitLines(p[1]))
		var oldOut, newOut []string
		for _, l := range script {
			if l.Op != OpInsert {
				oldOut = append(oldOut, l.Text)
			}
			if l.Op != OpDelete {
				newOut = append(newOut, l.Text)
			}
		}
		if got := strings.Join(oldOut, "\n"); got != strings.Join(splitLines(p[0]), "\n") {
			t.Errorf("old side %q != %q", got, p[0])
		}
		if got := strings.Join(newOut, "\n"); got != strings.Join(splitLines(p[1]), "\n") {
			t.Errorf("new side %q != %q", got, p[1])
		}
	}
}

func TestReplacementLineNumbers(t *testing.T) {
	lines := editScript([]string{"a", "x", "c"}, []string{"a", "y", "z", "c"})
	want := []Line{
		{Op: OpEqual, Text: "a", Old: 1, New: 1},
		{Op: OpDelete, Text: "x", Old: 2},
		{Op: OpInsert, Text: "y", New: 2},
		{Op: OpInsert, Text: "z", New: 3},
		{Op: OpEqual, Text: "c", Old: 3, New: 4},
	}
	if len(lines) != len(want) {
		t.Fatalf("script = %+v", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %+v, want %+v", i, lines[i], want[i])
		}
	}
}

func TestDeleteAllHeader(t *testing.T) {
	res := Compute("a\nb\n", "", DefaultContext)
	if len(res.Hunks) != 1 || res.Hunks[0].Header() != "@@ -1,2 +0,0 @@" {
		t.Fatalf("hunks = %+v", res.Hunks)
	}
	if res.Stat != (Stat{Removed: 2}) {
		t.Fatalf("stat = %+v", res.Stat)
	}
}

func TestRenderColor(t *testing.T) {
	res := Compute("a\n", "b\n", DefaultContext)
	var plain, colored bytes.Buffer
	if err := (Renderer{NoColor: true}).Render(&plain, "f.js", res); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("NoColor output has escapes: %q", plain.String())
	}
	r := Renderer{}
	if err := r.Render(&colored, "f.js", res); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(colored.String(), "-a") || !strings.Contains(colored.String(), "+b") {
		t.Fatalf("colored output lost content: %q", colored.String())
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON("f.js", Compute("a\n", "b\n", DefaultContext))
	if err != nil {
		t.Fatal(err)
	}
	var out jsonDiff
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.File != "f.js" || len(out.Hunks) != 1 || out.Hunks[0].Lines[0] != "-a" || out.Stat.Added != 1 {
		t.Fatalf("json = %s", data)
	}
}
