package diff

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Renderer prints a Result as a unified diff.
type Renderer struct {
	NoColor bool
}

// Render writes the file headers and every hunk of res to w.
func (r Renderer) Render(w io.Writer, name string, res Result) error {
	header := color.New(color.Bold)
	hunk := color.New(color.FgCyan)
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	if r.NoColor {
		for _, c := range []*color.Color{header, hunk, del, ins} {
			c.DisableColor()
		}
	}

	if _, err := header.Fprintf(w, "--- %s\n+++ %s\n", name+".orig", name); err != nil {
		return err
	}
	for _, h := range res.Hunks {
		if _, err := hunk.Fprintln(w, h.Header()); err != nil {
			return err
		}
		for _, l := range h.Lines {
			var err error
			switch l.Op {
			case OpDelete:
				_, err = del.Fprintln(w, l.Op.prefix()+l.Text)
			case OpInsert:
				_, err = ins.Fprintln(w, l.Op.prefix()+l.Text)
			default:
				_, err = fmt.Fprintln(w, l.Op.prefix()+l.Text)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

type jsonHunk struct {
	Header string   `json:"header"`
	Lines  []string `json:"lines"`
}

type jsonDiff struct {
	File  string     `json:"file"`
	Stat  Stat       `json:"stat"`
	Hunks []jsonHunk `json:"hunks"`
}

// MarshalJSON renders res for `prim fmt --diff --format json`.
func MarshalJSON(name string, res Result) ([]byte, error) {
	out := jsonDiff{File: name, Stat: res.Stat, Hunks: make([]jsonHunk, 0, len(res.Hunks))}
	for _, h := range res.Hunks {
		jh := jsonHunk{Header: h.Header(), Lines: make([]string, len(h.Lines))}
		for i, l := range h.Lines {
			jh.Lines[i] = l.Op.prefix() + l.Text
		}
		out.Hunks = append(out.Hunks, jh)
	}
	return json.Marshal(out)
}
