package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"prim/internal/driver"
)

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("fmt", []string{"a.js", "b.js"}, events).(*progressModel)

	m.applyEvent(driver.Event{Stage: driver.StageCollect, Status: driver.StatusDone})
	if m.stageLabel != "formatting" {
		t.Fatalf("stage label = %q", m.stageLabel)
	}

	m.applyEvent(driver.Event{File: "a.js", Stage: driver.StagePrint, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "printing" {
		t.Fatalf("a.js status = %q", got)
	}
	if p := m.percent(); p != 0.3 {
		t.Fatalf("percent = %v, want 0.3", p)
	}

	m.applyEvent(driver.Event{File: "a.js", Stage: driver.StageWrite, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.js", Stage: driver.StageWrite, Status: driver.StatusUnchanged})
	if p := m.percent(); p != 1 {
		t.Fatalf("percent = %v, want 1", p)
	}
	m.applyEvent(driver.Event{File: "unknown.js", Status: driver.StatusError})

	view := m.View()
	for _, want := range []string{"fmt (formatting)", "formatted", "unchanged", "a.js", "b.js"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressModelTallyAndWindow(t *testing.T) {
	files := make([]string, 20)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.js", i)
	}
	m := NewProgressModel("fmt", files, make(chan driver.Event)).(*progressModel)
	for _, f := range files[:18] {
		m.applyEvent(driver.Event{File: f, Stage: driver.StageWrite, Status: driver.StatusUnchanged})
	}
	m.applyEvent(driver.Event{File: "f18.js", Stage: driver.StageWrite, Status: driver.StatusError, Err: errors.New("permission denied")})
	// terminal events are counted once
	m.applyEvent(driver.Event{File: "f18.js", Stage: driver.StageWrite, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "f19.js", Stage: driver.StageLex, Status: driver.StatusWorking})

	if m.tally != (tally{unchanged: 18, failed: 1}) {
		t.Fatalf("tally = %+v", m.tally)
	}
	rows, hidden := m.visibleRows()
	if len(rows) != 2 || hidden != 18 {
		t.Fatalf("rows = %d, hidden = %d", len(rows), hidden)
	}
	view := m.View()
	for _, want := range []string{"f18.js", "permission denied", "f19.js", "18 more", "19/20 files, 0 formatted, 18 unchanged, 1 errors"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "f00.js") {
		t.Errorf("settled file shown:\n%s", view)
	}
}

func TestProgressModelQuitsWhenEventsClose(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("fmt", []string{"a.js"}, events).(*progressModel)

	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("msg = %T, want doneMsg", msg)
	}
	_, cmd := m.Update(msg)
	if !m.done || cmd == nil {
		t.Fatal("model did not finish")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected quit command")
	}
	if !strings.Contains(m.View(), "done: fmt") {
		t.Fatalf("view = %q", m.View())
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short.js", 20, "short.js"},
		{"a/very/long/path.js", 10, "a/ve..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
