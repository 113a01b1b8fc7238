// Package diff computes line diffs between original and formatted text.
package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Op is the kind of a diff line.
type Op uint8

const (
	OpEqual  Op = iota // unchanged context line
	OpDelete           // only in the original (-)
	OpInsert           // only in the formatted text (+)
)

func (op Op) prefix() string {
	switch op {
	case OpDelete:
		return "-"
	case OpInsert:
		return "+"
	default:
		return " "
	}
}

// Line is one line of an edit script. Old and New are 1-based line
// numbers, 0 on the side the line is absent from.
type Line struct {
	Op   Op
	Text string
	Old  int
	New  int
}

// Hunk is a contiguous block of changes with surrounding context.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Header renders the unified `@@ -l,s +l,s @@` line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Stat counts changed lines.
type Stat struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// Result is the diff of two texts.
type Result struct {
	Hunks []Hunk
	Stat  Stat
}

// HasChanges reports whether the texts differ line-wise.
func (r Result) HasChanges() bool { return len(r.Hunks) > 0 }

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 3

// Compute diffs original against modified line by line.
func Compute(original, modified string, context int) Result {
	if context < 0 {
		context = DefaultContext
	}
	a, b := splitLines(original), splitLines(modified)
	m := difflib.NewMatcher(a, b)
	var res Result
	for _, group := range m.GetGroupedOpCodes(context) {
		h := hunk(a, b, group)
		for _, l := range h.Lines {
			switch l.Op {
			case OpInsert:
				res.Stat.Added++
			case OpDelete:
				res.Stat.Removed++
			}
		}
		res.Hunks = append(res.Hunks, h)
	}
	return res
}

// Unified renders a plain unified diff; it returns "" when nothing changed.
func Unified(name, original, modified string) string {
	res := Compute(original, modified, DefaultContext)
	if !res.HasChanges() {
		return ""
	}
	var b strings.Builder
	_ = Renderer{NoColor: true}.Render(&b, name, res)
	return b.String()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// editScript returns the full line-level edit script from a to b.
func editScript(a, b []string) []Line {
	var out []Line
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		out = appendOp(out, a, b, op)
	}
	return out
}

// hunk turns one opcode group into a hunk; an empty side starts one line
// earlier, as in GNU diff.
func hunk(a, b []string, group []difflib.OpCode) Hunk {
	first, last := group[0], group[len(group)-1]
	h := Hunk{
		OldStart: first.I1 + 1,
		OldCount: last.I2 - first.I1,
		NewStart: first.J1 + 1,
		NewCount: last.J2 - first.J1,
	}
	if h.OldCount == 0 {
		h.OldStart--
	}
	if h.NewCount == 0 {
		h.NewStart--
	}
	for _, op := range group {
		h.Lines = appendOp(h.Lines, a, b, op)
	}
	return h
}

func appendOp(out []Line, a, b []string, op difflib.OpCode) []Line {
	switch op.Tag {
	case 'e':
		for i, j := op.I1, op.J1; i < op.I2; i, j = i+1, j+1 {
			out = append(out, Line{Op: OpEqual, Text: a[i], Old: i + 1, New: j + 1})
		}
		return out
	}
	if op.Tag == 'd' || op.Tag == 'r' {
		for i := op.I1; i < op.I2; i++ {
			out = append(out, Line{Op: OpDelete, Text: a[i], Old: i + 1})
		}
	}
	if op.Tag == 'i' || op.Tag == 'r' {
		for j := op.J1; j < op.J2; j++ {
			out = append(out, Line{Op: OpInsert, Text: b[j], New: j + 1})
		}
	}
	return out
}
