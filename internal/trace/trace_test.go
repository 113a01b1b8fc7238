package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		lvl, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if lvl.String() != strings.ToLower(name) {
			t.Fatalf("round trip %q -> %q", name, lvl.String())
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestLevelFiltering(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeToken, false},
		{LevelDebug, ScopeToken, true},
	}
	for _, c := range cases {
		if got := c.level.ShouldEmit(c.scope); got != c.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", c.level, c.scope, got, c.want)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Mode: ModeStream, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithTracer(context.Background(), tr)
	ctx, run := Start(ctx, ScopeDriver, "fmt")
	_, file := Start(ctx, ScopeFile, "a.js")
	file.WithExtra("bytes", "12").End("")
	Error(tr, "write", errors.New("disk full"), run.ID())
	run.End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d events:\n%s", len(lines), buf.String())
	}
	var fileEnd struct {
		Kind     string            `json:"kind"`
		ParentID uint64            `json:"parent_id"`
		Extra    map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &fileEnd); err != nil {
		t.Fatal(err)
	}
	if fileEnd.Kind != "end" || fileEnd.ParentID != run.ID() || fileEnd.Extra["bytes"] != "12" {
		t.Fatalf("unexpected file end event: %s", lines[2])
	}
	if !strings.Contains(lines[3], `"kind":"error"`) {
		t.Fatalf("expected an error event, got %s", lines[3])
	}
}

func TestDisabledTracerIsInert(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr != Nop {
		t.Fatalf("LevelOff must yield Nop")
	}
	span := Begin(tr, ScopeDriver, "x", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Fatal("span on a disabled tracer must be inert")
	}
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeToken, name, "", 0)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	if strings.Join(names, ",") != "c,d,e" {
		t.Fatalf("snapshot = %v", names)
	}
	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 || !strings.Contains(buf.String(), "• e") {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestMultiTracer(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase)
	multi := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)
	Begin(multi, ScopeDriver, "run", 0).End("")
	if len(ring.Snapshot()) != 2 || strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("fan-out failed: ring=%d stream=%q", len(ring.Snapshot()), buf.String())
	}
	if err := multi.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRingModeDumpsOnClose(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeRing, Format: FormatText, Output: &buf, RingSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a", "b", "c"} {
		Point(tr, ScopeDriver, name, "", 0)
	}
	if buf.Len() != 0 {
		t.Fatalf("ring wrote before Close: %q", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 2 || strings.Contains(buf.String(), "• a") {
		t.Fatalf("dump:\n%s", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
